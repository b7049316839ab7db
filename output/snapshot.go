// 对外快照数据结构。渲染等外部协作方每tick只能读取这里的不可变副本，
// 不得持有仿真核心内部对象的引用
package output

import (
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
)

// VehicleState 单辆车的快照
type VehicleState struct {
	ID           int32
	Position     float64 // 主轴带符号坐标（米）
	Lateral      float64 // 次轴坐标（米）
	Length       float64 // 车长（米）
	TurningRight bool
	Crossed      bool
	Waiting      bool
}

// LaneState 单车道的快照
// 说明：车辆按到达顺序排列，头部为最接近完成的车辆
type LaneState struct {
	Direction entity.Direction
	Index     int
	Vehicles  []VehicleState
}

// DirectionSummary 单方向的统计摘要快照
type DirectionSummary struct {
	Direction       entity.Direction
	CurrentVolume   int
	WaitingCount    int
	AverageWaitTime float64 // 秒
	CompletedCount  int64
}

// Snapshot 一个tick结束后的完整仿真状态快照
// 说明：值语义深拷贝，跨tick持有是安全的
type Snapshot struct {
	Step  int32
	T     float64 // 仿真时间（秒）
	Phase entity.Phase
	Light entity.LightStates

	Lanes     []LaneState
	Summaries [entity.DirectionCount]DirectionSummary
}
