package light

import (
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
)

// log 信号灯模块的日志记录器
var log = logrus.WithField("module", "light")

// tlRuntime 信号灯运行时数据结构
// 功能：存储固定相位信号灯的运行时状态
type tlRuntime struct {
	phase     entity.Phase // 当前相位
	remaining float64      // 当前相位剩余时长（秒）
}

// Controller 固定相位信号灯控制器
// 功能：按照固定的四相位循环（东西绿→东西黄→南北绿→南北黄）推进灯色，
// 两个信号组的灯色始终互补：一组为绿或黄时另一组必为红
// 说明：无外部输入可改变相位，相位时长为固定配置
type Controller struct {
	ctx entity.ITaskContext

	green  float64 // 绿灯时长（秒）
	yellow float64 // 黄灯时长（秒）

	snapshot tlRuntime // snapshot，本tick内所有读取方看到的状态
	runtime  tlRuntime // 运行时数据
}

// New 创建固定相位信号灯控制器
// 功能：初始化信号灯控制器，初始相位为东西绿灯
// 参数：ctx-任务上下文
// 返回：初始化完成的控制器实例
func New(ctx entity.ITaskContext) *Controller {
	cfg := ctx.RuntimeConfig().All.Signal
	c := &Controller{
		ctx:    ctx,
		green:  cfg.GreenDuration,
		yellow: cfg.YellowDuration,
		runtime: tlRuntime{
			phase:     entity.PhaseEWGreen,
			remaining: cfg.GreenDuration,
		},
	}
	c.snapshot = c.runtime
	return c
}

// duration 获取相位的配置时长
func (c *Controller) duration(p entity.Phase) float64 {
	switch p {
	case entity.PhaseEWGreen, entity.PhaseNSGreen:
		return c.green
	default:
		return c.yellow
	}
}

// Update 更新阶段，执行固定相位信号灯的核心逻辑
// 功能：扣减当前相位剩余时长，到期后切换到循环中的下一个相位
// 参数：dt-时间步长（秒）
// 说明：超出部分结转到下一相位，保证任意dt下周期总长严格为2×绿+2×黄
func (c *Controller) Update(dt float64) {
	c.runtime.remaining -= dt
	for c.runtime.remaining <= 0 {
		next := c.runtime.phase.Next()
		log.Debugf("phase %v -> %v at t=%.2f", c.runtime.phase, next, c.ctx.Clock().T)
		c.runtime.phase = next
		c.runtime.remaining += c.duration(next)
	}
}

// Prepare 准备阶段，发布当前运行时状态
// 功能：将运行时数据写入snapshot，供本tick内运动模块与统计模块读取
// 说明：驱动器在每tick先调用Update再调用Prepare，因此相位切换发生的
// 当tick内，车辆读到的一定是切换后的灯色
func (c *Controller) Prepare() {
	c.snapshot = c.runtime
}

// Phase 获取当前相位（纯读取）
func (c *Controller) Phase() entity.Phase {
	return c.snapshot.phase
}

// Remaining 获取当前相位剩余时长（秒）
func (c *Controller) Remaining() float64 {
	return c.snapshot.remaining
}

// States 获取两个信号组的灯色（纯读取）
func (c *Controller) States() entity.LightStates {
	return c.snapshot.phase.States()
}

// GroupColor 获取指定信号组的灯色（纯读取）
func (c *Controller) GroupColor(g entity.SignalGroup) entity.LightColor {
	return c.snapshot.phase.States().Of(g)
}

// CycleTime 获取完整周期时长
// 返回：2×绿灯时长+2×黄灯时长（秒）
func (c *Controller) CycleTime() float64 {
	return 2*c.green + 2*c.yellow
}
