package stats

import (
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
)

// log 统计模块的日志记录器
var log = logrus.WithField("module", "stats")

// directionStats 单方向交通统计
// 功能：保存某个进口方向的完成计数、等待时长滚动窗口与每tick重算的
// 等待/在场车辆数
type directionStats struct {
	completed int64   // 累计完成车辆数，单调递增
	window    *Window // 最近完成车辆的等待时长
	waiting   int     // 当前等待车辆数，每tick从头重算
	volume    int     // 当前在场车辆数，每tick从头重算
}

// Summary 单方向统计摘要（只读）
type Summary struct {
	Direction       entity.Direction
	CurrentVolume   int     // 当前在场车辆数
	WaitingCount    int     // 当前等待车辆数
	AverageWaitTime float64 // 滚动窗口内等待时长均值（秒），空窗口为0
	CompletedCount  int64   // 累计完成车辆数
}

// Collector 统计收集器
// 功能：在每tick运动结束后从车道内容重新推导等待车辆数，
// 并持有运动模块写入的完成计数与等待时长窗口
type Collector struct {
	ctx entity.ITaskContext

	data [entity.DirectionCount]*directionStats
}

// NewCollector 创建统计收集器
// 参数：ctx-任务上下文
// 返回：初始化完成的收集器实例
func NewCollector(ctx entity.ITaskContext) *Collector {
	c := &Collector{ctx: ctx}
	capacity := ctx.RuntimeConfig().All.Road.WaitWindowCapacity
	for _, d := range entity.Directions {
		c.data[d] = &directionStats{window: NewWindow(capacity)}
	}
	return c
}

// NotifyCompleted 记录一辆车的完成
// 功能：累加完成计数；车辆有过等待时将累计等待时长写入滚动窗口
// 参数：d-方向，waitTime-累计等待时长（秒），waited-是否发生过等待
// 说明：仅由运动模块在完成/转弯离开时调用，每辆车至多写入一条
func (c *Collector) NotifyCompleted(d entity.Direction, waitTime float64, waited bool) {
	s := c.data[d]
	s.completed++
	if waited {
		s.window.Push(waitTime)
	}
	log.Debugf("%v completed #%d wait=%.2f", d, s.completed, waitTime)
}

// Recompute 每tick重算等待与在场车辆数
// 功能：在运动结束后扫描全部车道，从头推导各方向的等待车辆数
// 算法说明：对每个车道从前到后遍历：
// 1. 车辆未过街、非右转、所属信号组为红灯且位于停车区内 → 计为等待
// 2. 紧跟在已计为等待的前车之后且间距不超过最小跟车距离加一个
//    最大tick位移 → 等待沿队列向后传播
// 说明：只读车道内容，不修改任何车辆状态
func (c *Collector) Recompute() {
	cfg := c.ctx.RuntimeConfig().All.Road
	light := c.ctx.Light()
	stopZone := entity.StoppingZone(cfg.ObservationZone)
	// 停止排队中车辆间距的上界：最小跟车距离加一个最大tick位移
	queueSlack := cfg.AvgSpeed * c.ctx.Clock().DT * 1.2

	for _, d := range entity.Directions {
		c.data[d].waiting = 0
		c.data[d].volume = 0
	}
	for _, l := range c.ctx.LaneManager().Lanes() {
		d := l.Direction()
		s := c.data[d]
		red := light.GroupColor(d.Group()) == entity.LightRed

		var prev entity.IVehicle
		prevCounted := false
		for node := l.Vehicles().First(); node != nil; node = node.Next() {
			v := node.Value
			s.volume++
			counted := false
			if red && !v.Crossed() && !v.TurningRight() && v.Progress() >= -stopZone {
				counted = true
			} else if prevCounted {
				mf := entity.MinFollowDistance(v.Length(), prev.Length(), cfg.MinGap)
				if prev.Progress()-v.Progress() <= mf+queueSlack {
					counted = true
				}
			}
			if counted {
				s.waiting++
			}
			prev, prevCounted = v, counted
		}
	}
}

// SummaryOf 获取单方向统计摘要
// 参数：d-方向
// 返回：只读摘要
func (c *Collector) SummaryOf(d entity.Direction) Summary {
	s := c.data[d]
	return Summary{
		Direction:       d,
		CurrentVolume:   s.volume,
		WaitingCount:    s.waiting,
		AverageWaitTime: s.window.Mean(),
		CompletedCount:  s.completed,
	}
}

// Summaries 获取全部方向的统计摘要
// 返回：按固定方向顺序排列的摘要数组
func (c *Collector) Summaries() [entity.DirectionCount]Summary {
	var out [entity.DirectionCount]Summary
	for _, d := range entity.Directions {
		out[d] = c.SummaryOf(d)
	}
	return out
}

// WaitSamples 获取某方向滚动窗口内的等待时长样本
// 返回：从最旧到最新排列的样本副本
func (c *Collector) WaitSamples(d entity.Direction) []float64 {
	return c.data[d].window.Samples()
}
