package lane

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
)

// log 车道模块的日志记录器
var log = logrus.WithField("module", "lane")

// Lane 车道实体
// 功能：表示一个(方向, 车道索引)对应的进口车道，持有按到达顺序排列的
// 车辆列表
// 不变式：列表顺序一经建立不再重排（车道内禁止超车）；头节点为最接近
// 完成的车辆
type Lane struct {
	ctx entity.ITaskContext

	direction entity.Direction // 所属方向
	index     int              // 车道索引，0为最内侧
	outermost bool             // 是否为最外侧（右转许可）车道
	lateral   float64          // 车道中心线的横向偏移（米）

	vehicles entity.VehicleList // 车辆列表
}

// newLane 创建并初始化一个新的Lane实例
// 参数：ctx-任务上下文，d-方向，index-车道索引
// 返回：初始化完成的Lane实例
func newLane(ctx entity.ITaskContext, d entity.Direction, index int) *Lane {
	laneCount := ctx.RuntimeConfig().All.Road.LaneCount
	l := &Lane{
		ctx:       ctx,
		direction: d,
		index:     index,
		outermost: index == laneCount-1,
		lateral:   entity.LateralOffset(d, index),
	}
	l.vehicles.ID = fmt.Sprintf("lane %v-%d vehicles", d, index)
	return l
}

// Direction 获取所属方向
func (l *Lane) Direction() entity.Direction {
	return l.direction
}

// Index 获取车道索引
func (l *Lane) Index() int {
	return l.index
}

// IsOutermost 是否为最外侧车道
// 说明：只有最外侧车道上的车辆才可能被标记为右转
func (l *Lane) IsOutermost() bool {
	return l.outermost
}

// LateralOffset 获取车道中心线横向偏移
func (l *Lane) LateralOffset() float64 {
	return l.lateral
}

// Vehicles 获取车辆列表
// 说明：仅供仿真核心在tick内遍历，外部消费者只能读取快照
func (l *Lane) Vehicles() *entity.VehicleList {
	return &l.vehicles
}

// AddVehicle 追加新到达的车辆
// 参数：node-车辆节点
// 说明：新车辆总是出现在观测区边界，因此总是追加到尾部
func (l *Lane) AddVehicle(node *entity.VehicleNode) {
	l.vehicles.PushBack(node)
}

// RemoveVehicle 移除车辆
// 参数：node-车辆节点
func (l *Lane) RemoveVehicle(node *entity.VehicleNode) {
	l.vehicles.Remove(node)
}

// TailGap 获取生成点到队尾车辆的距离
// 功能：供到达生成器判断边界处是否有足够空间生成新车辆
// 返回：距离（米），空车道返回+Inf
// 说明：队尾车辆为最近到达者，其进度与观测区边界(-L)之差即为空间
func (l *Lane) TailGap() float64 {
	tail := l.vehicles.Last()
	if tail == nil {
		return math.Inf(1)
	}
	return tail.Value.Progress() + l.ctx.RuntimeConfig().All.Road.ObservationZone
}
