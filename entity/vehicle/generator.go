package vehicle

import (
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
)

// Generator 单车道到达生成器
// 功能：按指数分布间隔为一个车道决定是否生成新车辆
// 说明：无失败语义，被拒绝的生成机会在下一个抽取的间隔后重试
type Generator struct {
	ctx entity.ITaskContext

	lane entity.ILane
	rate float64 // 到达率（辆/秒）
}

// newGenerator 创建到达生成器
// 参数：ctx-任务上下文，lane-目标车道
// 返回：初始化完成的生成器实例
// 说明：目标流量（辆/分钟）均分给全部车道得到各车道的到达率
func newGenerator(ctx entity.ITaskContext, lane entity.ILane) *Generator {
	cfg := ctx.RuntimeConfig().All.Road
	laneTotal := float64(entity.DirectionCount * cfg.LaneCount)
	return &Generator{
		ctx:  ctx,
		lane: lane,
		rate: cfg.TargetVolumePerMin / 60 / laneTotal,
	}
}

// nextInterval 抽取下一次到达间隔
// 返回：间隔（秒）
// 说明：无记忆到达过程；到达率为0时返回+Inf，该车道永不调度
func (g *Generator) nextInterval() float64 {
	return g.ctx.Rand().Exp(g.rate)
}

// trySpawn 尝试在车道边界生成一辆新车
// 功能：执行准入控制与间距检查，通过后创建车辆并追加到车道尾部
// 参数：id-分配给新车的ID
// 返回：生成的车辆，被拒绝时返回nil
// 算法说明：
// 1. 准入控制：全局车辆总数超过 目标流量×上限系数 时拒绝
// 2. 间距检查：生成点到队尾车辆的距离不足最小跟车距离时拒绝
// 3. 属性抽取：小概率生成长车；最外侧车道按配置概率标记右转
func (g *Generator) trySpawn(id int32) *Vehicle {
	cfg := g.ctx.RuntimeConfig().All.Road
	rng := g.ctx.Rand()

	if float64(g.ctx.VehicleManager().Count()) > cfg.TargetVolumePerMin*cfg.AdmissionCapFactor {
		return nil
	}

	length := cfg.VehicleLength
	if rng.PTrue(cfg.LongVehicleProb) {
		length = cfg.LongVehicleLength
	}
	tail := g.lane.Vehicles().Last()
	if tail != nil {
		mf := entity.MinFollowDistance(length, tail.L(), cfg.MinGap)
		if g.lane.TailGap() <= mf {
			return nil
		}
	}

	turningRight := g.lane.IsOutermost() && rng.PTrue(cfg.RightTurnProb)
	v := newVehicle(g.ctx, id, g.lane, length, turningRight)
	g.lane.AddVehicle(v.node)
	log.Debugf("spawn %v turning=%v len=%.1f t=%.2f", v, turningRight, length, g.ctx.Clock().T)
	return v
}
