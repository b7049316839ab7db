package vehicle

import (
	"fmt"

	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
)

// vehicleRuntime 车辆运行时数据结构
// 功能：存储每tick被运动模块改写的全部可变状态
type vehicleRuntime struct {
	position  float64 // 主轴带符号坐标（米），单调变化、过零不翻转
	lateral   float64 // 次轴坐标（米），直行时为车道中心线偏移，转弯后推进
	crossed   bool    // 是否已通过路口
	turning   bool    // 是否处于转弯运动模式（右转且已过街）
	waitStart float64 // 当前等待区间的开始时间（秒），负值表示无进行中的等待
	waitTotal float64 // 累计等待时长（秒）
	isWaiting bool    // 本tick位移是否小于阈值
}

// Vehicle 车辆实体
// 功能：管理一辆车的不可变属性与运行时状态
// 说明：方向、车道、车长、右转标记在创建后不可变；
// 生命周期为 生成→逐tick运动→完成后从车道移除并并入统计
type Vehicle struct {
	ctx entity.ITaskContext

	id           int32
	direction    entity.Direction
	laneIndex    int
	length       float64 // 车长（米），小概率为长车
	turningRight bool    // 右转标记，仅最外侧车道可能为true

	node    *entity.VehicleNode // 车道列表节点
	runtime vehicleRuntime
}

// newVehicle 创建车辆实例
// 功能：在观测区边界生成一辆新车
// 参数：ctx-任务上下文，id-车辆ID，lane-所在车道，
// length-车长，turningRight-右转标记
// 返回：初始化完成的车辆实例
// 说明：初始位置为 -行进符号×观测区长度，即边界处
func newVehicle(ctx entity.ITaskContext, id int32, lane entity.ILane, length float64, turningRight bool) *Vehicle {
	d := lane.Direction()
	zone := ctx.RuntimeConfig().All.Road.ObservationZone
	v := &Vehicle{
		ctx:          ctx,
		id:           id,
		direction:    d,
		laneIndex:    lane.Index(),
		length:       length,
		turningRight: turningRight,
		runtime: vehicleRuntime{
			position:  -d.TravelSign() * zone,
			lateral:   lane.LateralOffset(),
			waitStart: -1,
		},
	}
	v.node = &entity.VehicleNode{S: -zone, Value: v}
	return v
}

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle{ID:%d, %v-%d, pos:%.2f}", v.id, v.direction, v.laneIndex, v.runtime.position)
}

// ID 获取车辆ID
func (v *Vehicle) ID() int32 {
	return v.id
}

// Direction 获取进口方向
func (v *Vehicle) Direction() entity.Direction {
	return v.direction
}

// LaneIndex 获取车道索引
func (v *Vehicle) LaneIndex() int {
	return v.laneIndex
}

// Position 获取主轴带符号坐标
func (v *Vehicle) Position() float64 {
	return v.runtime.position
}

// Lateral 获取次轴坐标
func (v *Vehicle) Lateral() float64 {
	return v.runtime.lateral
}

// Progress 获取沿行进方向的进度
// 返回：进度（米），生成时为-观测区长度，完成时达到+观测区长度
func (v *Vehicle) Progress() float64 {
	return v.direction.TravelSign() * v.runtime.position
}

// Length 获取车长
func (v *Vehicle) Length() float64 {
	return v.length
}

// TurningRight 是否为右转车
func (v *Vehicle) TurningRight() bool {
	return v.turningRight
}

// Crossed 是否已通过路口
func (v *Vehicle) Crossed() bool {
	return v.runtime.crossed
}

// IsWaiting 本tick是否处于等待
func (v *Vehicle) IsWaiting() bool {
	return v.runtime.isWaiting
}

// WaitedTotal 获取累计等待时长
// 说明：完成前读取时不含进行中的等待区间
func (v *Vehicle) WaitedTotal() float64 {
	return v.runtime.waitTotal
}

// vacating 是否正在让出车道路径
// 说明：已过街的右转车不再阻挡本车道后方车辆
func (v *Vehicle) vacating() bool {
	return v.turningRight && v.runtime.crossed
}

// closeWait 结束进行中的等待区间
// 功能：将等待区间时长并入累计等待时长并清除waitStart
// 说明：滚动窗口只在车辆完成时收到一条累计记录
func (v *Vehicle) closeWait() {
	if v.runtime.waitStart >= 0 {
		v.runtime.waitTotal += v.ctx.Clock().T - v.runtime.waitStart
		v.runtime.waitStart = -1
	}
}

// finalize 完成处理
// 功能：结束未结算的等待区间，将完成计数与等待时长并入统计
// 说明：由管理器在车辆离开观测区后调用，调用后车辆不再被引用
func (v *Vehicle) finalize() {
	v.closeWait()
	v.ctx.Stats().NotifyCompleted(v.direction, v.runtime.waitTotal, v.runtime.waitTotal > 0)
}
