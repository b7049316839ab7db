package lane

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
)

// LaneManager Lane管理器
// 功能：管理固定的4×N车道网格，提供查找与遍历功能
// 说明：车道集合在构造时一次性建立，运行期间不增不减
type LaneManager struct {
	ctx entity.ITaskContext

	data  [entity.DirectionCount][]*Lane // 按方向索引的车道数组
	lanes []*Lane                        // 全部车道的固定顺序列表
}

// NewManager 创建Lane管理器实例
// 功能：按配置的车道数为四个方向各建立一组车道
// 参数：ctx-任务上下文
// 返回：新创建的Lane管理器实例
func NewManager(ctx entity.ITaskContext) *LaneManager {
	m := &LaneManager{ctx: ctx}
	laneCount := ctx.RuntimeConfig().All.Road.LaneCount
	for _, d := range entity.Directions {
		lanes := make([]*Lane, laneCount)
		for i := range lanes {
			lanes[i] = newLane(ctx, d, i)
		}
		m.data[d] = lanes
		m.lanes = append(m.lanes, lanes...)
	}
	log.Infof("created %d lanes (%d per direction)", len(m.lanes), laneCount)
	return m
}

// Get 获取指定车道
// 参数：d-方向，index-车道索引
// 返回：对应的Lane实例，越界则panic
func (m *LaneManager) Get(d entity.Direction, index int) entity.ILane {
	lanes := m.data[d]
	if index < 0 || index >= len(lanes) {
		log.Panicf("no lane %v-%d", d, index)
		return nil
	}
	return lanes[index]
}

// LanesOf 获取某方向的全部车道
// 返回：按索引从内到外排列的车道列表
func (m *LaneManager) LanesOf(d entity.Direction) []entity.ILane {
	return lo.Map(m.data[d], func(l *Lane, _ int) entity.ILane { return l })
}

// Lanes 获取全部车道
// 返回：固定顺序（北、南、东、西，各按索引从内到外）的车道列表
func (m *LaneManager) Lanes() []entity.ILane {
	return lo.Map(m.lanes, func(l *Lane, _ int) entity.ILane { return l })
}
