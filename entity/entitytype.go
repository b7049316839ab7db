package entity

import (
	"fmt"
	"math"

	"github.com/tsinghua-fib-lab/junction-sim-oss/clock"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/container"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/randengine"
)

// Direction 进口方向
// 说明：四个进口方向，车辆的方向在创建后不可变
type Direction int

const (
	North Direction = iota // 北进口（自北向南行驶）
	South                  // 南进口（自南向北行驶）
	East                   // 东进口（自东向西行驶）
	West                   // 西进口（自西向东行驶）

	DirectionCount = 4
)

// Directions 全部方向的固定顺序列表
// 说明：避免字符串key的动态字典，所有按方向索引的数据结构用它构建
var Directions = [DirectionCount]Direction{North, South, East, West}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Group 获取方向所属的信号组
// 返回：南北向为GroupNS，东西向为GroupEW
func (d Direction) Group() SignalGroup {
	if d == North || d == South {
		return GroupNS
	}
	return GroupEW
}

// TravelSign 获取行进方向在主轴上的符号
// 功能：车辆每tick的位移为 TravelSign×位移量，位置坐标单调变化、过零后不翻转
// 返回：+1或-1
func (d Direction) TravelSign() float64 {
	switch d {
	case North, East:
		return -1
	default:
		return 1
	}
}

// LateralSign 获取行进方向右侧在次轴上的符号
// 功能：车道横向偏移与右转后的行进方向均沿该符号方向
// 返回：+1或-1
func (d Direction) LateralSign() float64 {
	switch d {
	case North, West:
		return -1
	default:
		return 1
	}
}

// IsVertical 判断是否为南北向（主轴为y轴）
func (d Direction) IsVertical() bool {
	return d == North || d == South
}

// SignalGroup 信号组
// 说明：南北、东西两组方向各共享一个灯色
type SignalGroup int

const (
	GroupNS SignalGroup = iota // 南北信号组
	GroupEW                    // 东西信号组
)

func (g SignalGroup) String() string {
	if g == GroupNS {
		return "NS"
	}
	return "EW"
}

// LightColor 信号灯灯色
type LightColor int

const (
	LightRed LightColor = iota
	LightYellow
	LightGreen
)

func (c LightColor) String() string {
	switch c {
	case LightRed:
		return "red"
	case LightYellow:
		return "yellow"
	case LightGreen:
		return "green"
	default:
		return fmt.Sprintf("color(%d)", int(c))
	}
}

// Phase 信号灯相位
// 说明：固定四相位循环：东西绿→东西黄→南北绿→南北黄
type Phase int

const (
	PhaseEWGreen Phase = iota
	PhaseEWYellow
	PhaseNSGreen
	PhaseNSYellow

	PhaseCount = 4
)

func (p Phase) String() string {
	switch p {
	case PhaseEWGreen:
		return "EW_GREEN"
	case PhaseEWYellow:
		return "EW_YELLOW"
	case PhaseNSGreen:
		return "NS_GREEN"
	case PhaseNSYellow:
		return "NS_YELLOW"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Next 获取循环中的下一个相位
func (p Phase) Next() Phase {
	return (p + 1) % PhaseCount
}

// LightStates 两个信号组的灯色
// 说明：不可变值对象，每tick由相位推导后整体替换，杜绝共享可变状态
type LightStates struct {
	NS LightColor
	EW LightColor
}

// Of 获取指定信号组的灯色
func (s LightStates) Of(g SignalGroup) LightColor {
	if g == GroupNS {
		return s.NS
	}
	return s.EW
}

// States 相位到灯色的纯函数
// 功能：由相位推导两个信号组的灯色
// 不变式：任何相位下恰有一组处于绿或黄，另一组为红
func (p Phase) States() LightStates {
	switch p {
	case PhaseEWGreen:
		return LightStates{NS: LightRed, EW: LightGreen}
	case PhaseEWYellow:
		return LightStates{NS: LightRed, EW: LightYellow}
	case PhaseNSGreen:
		return LightStates{NS: LightGreen, EW: LightRed}
	default: // PhaseNSYellow
		return LightStates{NS: LightYellow, EW: LightRed}
	}
}

// 几何常量
const (
	LaneWidth = 3.5 // 车道宽度（米）

	// 停车区占观测区长度的比例，车辆在该区间内因红灯或排队停止时计入等待
	stoppingZoneRatio = 0.3
)

// CrossingThreshold 计算过街阈值
// 功能：车辆距路口中心小于等于该值时视为进入路口
// 参数：laneCount-单侧车道数，vehicleLength-标称车长
// 返回：阈值（米），即路口区半宽加一个车长的让行余量
func CrossingThreshold(laneCount int, vehicleLength float64) float64 {
	return float64(laneCount)*LaneWidth + vehicleLength
}

// TurnFreezeOffset 计算右转后主轴坐标的冻结偏移
// 功能：右转车辆过街后主轴坐标冻结在出口道路最外侧车道的中心线上
// 参数：laneCount-单侧车道数
// 返回：偏移量（米）
func TurnFreezeOffset(laneCount int) float64 {
	return (float64(laneCount) - 0.5) * LaneWidth
}

// LateralOffset 计算车道中心线的横向偏移
// 参数：d-方向，index-车道索引（0为最内侧，laneCount-1为最外侧）
// 返回：带符号的横向偏移（米）
func LateralOffset(d Direction, index int) float64 {
	return d.LateralSign() * (float64(index) + 0.5) * LaneWidth
}

// StoppingZone 计算停车区长度
// 参数：observationZone-观测区长度
// 返回：距路口中心的停车区范围（米）
func StoppingZone(observationZone float64) float64 {
	return stoppingZoneRatio * observationZone
}

// MinFollowDistance 计算最小跟车距离
// 功能：取两车中较长者的车长加最小车头间隙
// 参数：lenA、lenB-两车车长，minGap-最小车头间隙
// 返回：最小跟车距离（米）
func MinFollowDistance(lenA, lenB, minGap float64) float64 {
	return math.Max(lenA, lenB) + minGap
}

// VehicleList 车道上车辆的有序列表
type VehicleList = container.List[IVehicle]

// VehicleNode 车辆在车道列表中的节点
type VehicleNode = container.ListNode[IVehicle]

// entity/vehicle/vehicle.go的依赖倒置
type IVehicle interface {
	ID() int32             // 获取车辆ID（按生成成功顺序全局自增）
	Direction() Direction  // 获取进口方向
	LaneIndex() int        // 获取车道索引
	Position() float64     // 获取主轴带符号坐标
	Lateral() float64      // 获取次轴坐标
	Progress() float64     // 获取沿行进方向的进度（-L到+L）
	Length() float64       // 获取车长
	TurningRight() bool    // 是否为右转车
	Crossed() bool         // 是否已通过路口
	IsWaiting() bool       // 上一tick是否处于等待
	WaitedTotal() float64  // 累计等待时长（秒）
}

// entity/lane/lane.go的依赖倒置
type ILane interface {
	Direction() Direction             // 获取所属方向
	Index() int                       // 获取车道索引
	IsOutermost() bool                // 是否为最外侧（右转许可）车道
	LateralOffset() float64           // 获取车道中心线横向偏移
	Vehicles() *VehicleList           // 获取车辆列表（头节点最接近完成）
	AddVehicle(node *VehicleNode)     // 尾部追加新到达车辆
	RemoveVehicle(node *VehicleNode)  // 移除完成或转弯离开的车辆
	TailGap() float64                 // 生成点到队尾车辆的距离，空车道为+Inf
}

type ILaneManager interface {
	Get(d Direction, index int) ILane // 获取指定车道，不存在则panic
	LanesOf(d Direction) []ILane      // 获取某方向的全部车道
	Lanes() []ILane                   // 获取全部车道（固定顺序）
}

type ILightController interface {
	Phase() Phase                         // 当前相位
	States() LightStates                  // 当前两组灯色
	GroupColor(g SignalGroup) LightColor  // 指定信号组的灯色
	CycleTime() float64                   // 完整周期时长 2×绿+2×黄
}

type IVehicleManager interface {
	Count() int // 当前在观测区内的车辆总数（准入控制用）
}

type IStatsCollector interface {
	// 车辆完成时由运动模块调用：累加完成计数并在waited为true时将
	// 等待时长写入滚动窗口（每辆车至多一条）
	NotifyCompleted(d Direction, waitTime float64, waited bool)
}

type ITaskContext interface {
	Clock() *clock.Clock
	Rand() *randengine.Engine
	RuntimeConfig() *config.RuntimeConfig
	LaneManager() ILaneManager
	Light() ILightController
	VehicleManager() IVehicleManager
	Stats() IStatsCollector
}
