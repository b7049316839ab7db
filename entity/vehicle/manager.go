package vehicle

import (
	"math"

	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/container"
)

// Manager 车辆管理器
// 功能：持有全部到达生成器与在场车辆计数，驱动每tick的到达与运动
// 说明：运动按车道内到达顺序从前到后处理，后车的移动判定总是读取
// 前车在本tick已更新完毕的位置
type Manager struct {
	ctx entity.ITaskContext

	generators []*Generator
	schedule   *container.PriorityQueue[*Generator] // 各生成器下一次到达时刻的最小堆

	count  int   // 当前在观测区内的车辆总数
	nextID int32 // 下一个分配的车辆ID，仿真生命周期内唯一
}

// NewManager 创建车辆管理器实例
// 功能：为每个车道建立一个到达生成器并调度首次到达
// 参数：ctx-任务上下文
// 返回：新创建的车辆管理器实例
func NewManager(ctx entity.ITaskContext) *Manager {
	m := &Manager{
		ctx:      ctx,
		schedule: container.NewPriorityQueue[*Generator](),
	}
	for _, l := range ctx.LaneManager().Lanes() {
		g := newGenerator(ctx, l)
		m.generators = append(m.generators, g)
		if at := ctx.Clock().T + g.nextInterval(); !math.IsInf(at, 1) {
			m.schedule.HeapPush(g, at)
		}
	}
	log.Infof("created %d arrival generators", len(m.generators))
	return m
}

// Count 获取当前在观测区内的车辆总数
// 说明：准入控制读取该值
func (m *Manager) Count() int {
	return m.count
}

// Spawned 获取累计生成的车辆总数
// 说明：ID按生成成功顺序分配，该值与已分配的ID数一致
func (m *Manager) Spawned() int32 {
	return m.nextID
}

// Inject 立即在指定车道生成一辆车
// 功能：绕过到达调度，在边界直接生成车辆，供脚本化场景使用
// 参数：d-方向，laneIndex-车道索引，length-车长，turningRight-右转标记
// 返回：生成的车辆
func (m *Manager) Inject(d entity.Direction, laneIndex int, length float64, turningRight bool) *Vehicle {
	l := m.ctx.LaneManager().Get(d, laneIndex)
	v := newVehicle(m.ctx, m.allocID(), l, length, turningRight)
	l.AddVehicle(v.node)
	m.count++
	return v
}

func (m *Manager) allocID() int32 {
	id := m.nextID
	m.nextID++
	return id
}

// Update 更新阶段，执行一个tick的到达与运动
// 功能：先处理所有到期的到达机会，再逐车道从前到后推进车辆
// 参数：dt-时间步长（秒）
func (m *Manager) Update(dt float64) {
	m.updateArrivals()
	for _, l := range m.ctx.LaneManager().Lanes() {
		m.updateLane(l, dt)
	}
}

// updateArrivals 处理到期的到达机会
// 算法说明：从最小堆中弹出所有到达时刻不晚于当前时间的生成器，
// 尝试生成车辆后以新抽取的间隔重新入堆；拒绝的机会不补偿
func (m *Manager) updateArrivals() {
	t := m.ctx.Clock().T
	for m.schedule.Len() > 0 && m.schedule.FirstPriority() <= t {
		g, _ := m.schedule.HeapPop()
		if v := g.trySpawn(m.nextID); v != nil {
			m.nextID++
			m.count++
		}
		m.schedule.HeapPush(g, t+g.nextInterval())
	}
}

// updateLane 推进一个车道的全部车辆
// 功能：按到达顺序（头节点即最接近完成的车辆）依次推进，完成的车辆
// 从车道移除并并入统计
// 参数：l-车道，dt-时间步长
// 说明：前车先于后车完成本tick更新，后车的跟车判定因此不会读到
// 过期位置；更新后校验最小跟车距离不变式，违反即为逻辑错误
func (m *Manager) updateLane(l entity.ILane, dt float64) {
	cfg := m.ctx.RuntimeConfig().All.Road
	green := m.ctx.Light().GroupColor(l.Direction().Group()) == entity.LightGreen

	var ahead *Vehicle
	for node := l.Vehicles().First(); node != nil; {
		next := node.Next()
		v := node.Value.(*Vehicle)
		allow := green || v.turningRight
		if v.step(dt, ahead, allow) {
			l.RemoveVehicle(node)
			v.finalize()
			m.count--
		} else {
			if ahead != nil && !ahead.vacating() && !v.runtime.turning {
				mf := entity.MinFollowDistance(v.length, ahead.length, cfg.MinGap)
				if gap := ahead.Progress() - v.Progress(); gap < mf-posEpsilon {
					log.Panicf("follow distance breach in %v: %v behind %v, gap %.3f < %.3f",
						l, v, ahead, gap, mf)
				}
			}
			if !v.runtime.crossed && v.Progress() > cfg.ObservationZone {
				log.Panicf("vehicle %v passed the boundary without crossing", v)
			}
			ahead = v
		}
		node = next
	}
}
