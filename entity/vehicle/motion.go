package vehicle

import (
	"math"

	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
)

const (
	posEpsilon  = 1e-9 // 位置比较容差（米）
	waitEpsilon = 1e-3 // 等待判定的位移阈值（米）

	// 每tick位移的均匀抖动范围，避免车流步调完全一致
	jitterLo = 0.8
	jitterHi = 1.2
)

// displacement 抽取本tick的期望位移
// 功能：按平均车速与时间步长计算位移，并施加均匀随机抖动
// 参数：dt-时间步长（秒）
// 返回：位移（米）
func (v *Vehicle) displacement(dt float64) float64 {
	cfg := v.ctx.RuntimeConfig().All.Road
	return cfg.AvgSpeed * dt * v.ctx.Rand().UniformRange(jitterLo, jitterHi)
}

// step 推进车辆一个tick
// 功能：按既定顺序执行跟车闸门、红灯停止闸门、过街判定、完成检查
// 与等待簿记
// 参数：dt-时间步长，ahead-同车道前车（已在本tick更新完毕），
// allow-本tick是否允许通过路口（绿灯，或右转车在最外侧车道）
// 返回：true表示车辆已完成、应从车道移除
// 算法说明：
// 1. 转弯模式：主轴坐标冻结，次轴按右转出口方向推进，到达边界即完成
// 2. 跟车闸门：与前车的进度差不足最小跟车距离时禁止移动，
//    否则移动量不得使间距低于最小跟车距离；已过街的右转前车不阻挡
// 3. 红灯停止闸门：未过街且不允许通过时，位移截断在停止线处
// 4. 过街判定：本tick进度达到过街阈值且允许通过时置crossed并结算
//    等待，右转车同时切换到转弯模式并将主轴坐标冻结在出口车道中心线
// 5. 完成检查：已过街且进度达到观测区边界时完成
// 6. 等待簿记：本tick位移小于阈值视为等待，未过街且处于停车区时
//    记录等待开始时间，否则结算进行中的等待区间
func (v *Vehicle) step(dt float64, ahead *Vehicle, allow bool) bool {
	r := &v.runtime
	cfg := v.ctx.RuntimeConfig().All.Road
	zone := cfg.ObservationZone

	// 转弯运动模式：次轴推进
	if r.turning {
		r.lateral += v.direction.LateralSign() * v.displacement(dt)
		r.isWaiting = false
		return math.Abs(r.lateral) >= zone
	}

	cur := v.Progress()
	crossT := entity.CrossingThreshold(cfg.LaneCount, cfg.VehicleLength)
	target := cur + v.displacement(dt)

	// 跟车闸门
	if ahead != nil && !ahead.vacating() {
		mf := entity.MinFollowDistance(v.length, ahead.length, cfg.MinGap)
		gap := ahead.Progress() - cur
		if gap < mf+posEpsilon {
			target = cur
		} else if target > ahead.Progress()-mf {
			target = ahead.Progress() - mf
		}
	}

	// 红灯停止闸门：不越过停止线
	if !r.crossed && !allow && target > -crossT {
		target = math.Max(cur, -crossT)
	}

	// 过街判定：本tick达到过街阈值且允许通过
	if !r.crossed && allow && target >= -crossT-posEpsilon {
		r.crossed = true
		v.closeWait()
		if v.turningRight {
			// 切换到转弯模式：主轴坐标冻结在出口道路最外侧车道中心线
			r.turning = true
			target = -entity.TurnFreezeOffset(cfg.LaneCount)
		}
	}

	moved := target - cur
	r.position = v.direction.TravelSign() * target
	v.node.S = target

	// 完成检查
	if r.crossed && target >= zone-posEpsilon {
		return true
	}

	// 等待簿记
	r.isWaiting = moved < waitEpsilon
	if r.isWaiting && !r.crossed && cur >= -entity.StoppingZone(zone) {
		if r.waitStart < 0 {
			r.waitStart = v.ctx.Clock().T
		}
	} else {
		v.closeWait()
	}
	return false
}
