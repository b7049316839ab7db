package task

import (
	"flag"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/junction-sim-oss/clock"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity/lane"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity/light"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity/stats"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/junction-sim-oss/output"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/randengine"
)

var (
	log = logrus.WithField("module", "task")

	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// Context 仿真任务上下文
// 功能：持有时钟、随机数引擎与全部实体管理器，驱动固定顺序的tick循环
// 说明：单线程协作式推进：一个tick内依次执行信号灯推进、车辆到达、
// 车辆运动、统计重算，彼此不交错；车道与统计数据在tick内由核心独占，
// 外部只能通过Snapshot获得不可变副本
type Context struct {
	rc    *config.RuntimeConfig
	clock *clock.Clock
	rand  *randengine.Engine

	laneManager    *lane.LaneManager
	light          *light.Controller
	vehicleManager *vehicle.Manager
	stats          *stats.Collector
}

// NewContext 创建仿真任务上下文
// 功能：按依赖顺序初始化配置、时钟、随机数引擎与各管理器
// 参数：c-全局配置
// 返回：初始化完成的上下文实例
func NewContext(c config.Config) *Context {
	ctx := &Context{}
	ctx.rc = config.NewRuntimeConfig(c)
	ctx.clock = clock.New(c.Control.Step)
	ctx.rand = randengine.New(c.Control.Seed)
	ctx.laneManager = lane.NewManager(ctx)
	ctx.light = light.New(ctx)
	ctx.stats = stats.NewCollector(ctx)
	ctx.vehicleManager = vehicle.NewManager(ctx)
	return ctx
}

// Clock 获取仿真时钟
func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

// Rand 获取随机数引擎
func (ctx *Context) Rand() *randengine.Engine {
	return ctx.rand
}

// RuntimeConfig 获取运行时配置
func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.rc
}

// LaneManager 获取车道管理器
func (ctx *Context) LaneManager() entity.ILaneManager {
	return ctx.laneManager
}

// Light 获取信号灯控制器
func (ctx *Context) Light() entity.ILightController {
	return ctx.light
}

// VehicleManager 获取车辆管理器
func (ctx *Context) VehicleManager() entity.IVehicleManager {
	return ctx.vehicleManager
}

// Stats 获取统计收集器（依赖倒置接口）
func (ctx *Context) Stats() entity.IStatsCollector {
	return ctx.stats
}

// StatsCollector 获取统计收集器（具体类型，供摘要读取）
func (ctx *Context) StatsCollector() *stats.Collector {
	return ctx.stats
}

// Vehicles 获取车辆管理器（具体类型，供脚本化场景使用）
func (ctx *Context) Vehicles() *vehicle.Manager {
	return ctx.vehicleManager
}

// Step 执行一个模拟步
// 功能：按固定顺序推进一个tick
// 算法说明：
// 1. 时钟推进：步数加一
// 2. 心跳日志：按配置间隔输出系统状态
// 3. 信号灯：先Update后Prepare，保证相位切换当tick内车辆读到的
//    是切换后的灯色
// 4. 车辆：先处理到达机会，再逐车道从前到后运动
// 5. 统计：从车道内容重算等待与在场车辆数
func (ctx *Context) Step() {
	ctx.clock.Advance()
	if ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		log.Infof(
			"STEP: %d(%d:%d:%.2f) vehicles=%d",
			ctx.clock.InternalStep,
			hour, minute, second,
			ctx.vehicleManager.Count(),
		)
	}
	dt := ctx.clock.DT
	ctx.light.Update(dt)
	ctx.light.Prepare()
	ctx.vehicleManager.Update(dt)
	ctx.stats.Recompute()
}

// Run 运行整个模拟区间
// 功能：循环执行Step直至时钟到达结束步
// 参数：consume-每tick结束后对快照的消费回调，可为nil
func (ctx *Context) Run(consume func(*output.Snapshot)) {
	log.Infof("simulation start: steps [%d, %d), dt=%.2fs",
		ctx.clock.START_STEP, ctx.clock.END_STEP, ctx.clock.DT)
	for !ctx.clock.Done() {
		ctx.Step()
		if consume != nil {
			consume(ctx.Snapshot())
		}
	}
	log.Infof("simulation done at %v", ctx.clock)
}

// Snapshot 生成当前仿真状态的不可变快照
// 功能：深拷贝灯色、各车道车辆状态与统计摘要
// 返回：快照指针，外部可跨tick安全持有
func (ctx *Context) Snapshot() *output.Snapshot {
	s := &output.Snapshot{
		Step:  ctx.clock.InternalStep,
		T:     ctx.clock.T,
		Phase: ctx.light.Phase(),
		Light: ctx.light.States(),
	}
	for _, l := range ctx.laneManager.Lanes() {
		ls := output.LaneState{
			Direction: l.Direction(),
			Index:     l.Index(),
			Vehicles: lo.Map(l.Vehicles().Values(), func(v entity.IVehicle, _ int) output.VehicleState {
				return output.VehicleState{
					ID:           v.ID(),
					Position:     v.Position(),
					Lateral:      v.Lateral(),
					Length:       v.Length(),
					TurningRight: v.TurningRight(),
					Crossed:      v.Crossed(),
					Waiting:      v.IsWaiting(),
				}
			}),
		}
		s.Lanes = append(s.Lanes, ls)
	}
	for _, d := range entity.Directions {
		sum := ctx.stats.SummaryOf(d)
		s.Summaries[d] = output.DirectionSummary{
			Direction:       d,
			CurrentVolume:   sum.CurrentVolume,
			WaitingCount:    sum.WaitingCount,
			AverageWaitTime: sum.AverageWaitTime,
			CompletedCount:  sum.CompletedCount,
		}
	}
	return s
}
