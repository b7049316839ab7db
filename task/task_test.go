package task_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/task"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
)

// quietConfig 场景测试用配置：单车道、无随机到达、无右转
func quietConfig() config.Config {
	c := config.Default()
	c.Road.LaneCount = 1
	c.Road.TargetVolumePerMin = 0
	c.Road.RightTurnProb = 0
	return c
}

func TestRedThenGreenWait(t *testing.T) {
	ctx := task.NewContext(quietConfig())
	v := ctx.Vehicles().Inject(entity.North, 0, 4.5, false)
	l := ctx.LaneManager().Get(entity.North, 0)

	// 初始相位为东西绿，南北在t=35（绿30+黄5）才转绿
	tStop := -1.0
	prevToGo := math.Abs(v.Position())
	for step := 0; l.Vehicles().Len() > 0; step++ {
		require.Less(t, step, 400, "vehicle never completed")
		ctx.Step()
		if ctx.Clock().T < 35 {
			assert.False(t, v.Crossed(), "crossed before NS green at t=%.1f", ctx.Clock().T)
		}
		if tStop < 0 && v.IsWaiting() {
			tStop = ctx.Clock().T
		}
		if !v.Crossed() {
			// 过街前距路口距离单调不增
			toGo := math.Abs(v.Position())
			assert.LessOrEqual(t, toGo, prevToGo+1e-9)
			prevToGo = toGo
		}
	}

	require.Greater(t, tStop, 0.0, "vehicle never waited at the red light")
	s := ctx.StatsCollector().SummaryOf(entity.North)
	assert.Equal(t, int64(1), s.CompletedCount)
	samples := ctx.StatsCollector().WaitSamples(entity.North)
	require.Len(t, samples, 1)
	// 记录的等待时长应等于从停稳到南北转绿的时间
	assert.InDelta(t, 35-tStop, samples[0], 1e-6)
	assert.InDelta(t, samples[0], s.AverageWaitTime, 1e-9)
}

func TestRightTurnOnRed(t *testing.T) {
	ctx := task.NewContext(quietConfig())
	v := ctx.Vehicles().Inject(entity.North, 0, 4.5, true)
	l := ctx.LaneManager().Get(entity.North, 0)

	tCross := -1.0
	for step := 0; l.Vehicles().Len() > 0; step++ {
		require.Less(t, step, 400, "turning vehicle never completed")
		ctx.Step()
		if tCross < 0 && v.Crossed() {
			tCross = ctx.Clock().T
			// 右转后主轴坐标冻结在出口车道中心线
			assert.InDelta(t, entity.TurnFreezeOffset(1), math.Abs(v.Position()), 1e-9)
		}
	}

	// 南北仍为红灯时即已通过（红灯右转许可）
	require.Greater(t, tCross, 0.0)
	assert.Less(t, tCross, 35.0)
	assert.Equal(t, int64(1), ctx.StatsCollector().SummaryOf(entity.North).CompletedCount)
}

func TestNoTurnsWithZeroProbability(t *testing.T) {
	c := quietConfig()
	c.Road.TargetVolumePerMin = 120
	ctx := task.NewContext(c)

	crossedAt := map[int32]bool{}
	for step := 0; step < 2000; step++ {
		ctx.Step()
		green := ctx.Light().States()
		for _, l := range ctx.LaneManager().Lanes() {
			for _, v := range l.Vehicles().Values() {
				assert.False(t, v.TurningRight())
				if v.Crossed() && !crossedAt[v.ID()] {
					crossedAt[v.ID()] = true
					// 右转概率为0时，所有过街都发生在本组绿灯期间
					assert.Equal(t, entity.LightGreen, green.Of(v.Direction().Group()),
						"vehicle %d crossed against the light", v.ID())
				}
			}
		}
	}
	assert.NotEmpty(t, crossedAt)
}

func TestSpacingInvariant(t *testing.T) {
	c := config.Default()
	c.Road.TargetVolumePerMin = 120 // 高流量下排队充分
	ctx := task.NewContext(c)

	for step := 0; step < 3000; step++ {
		ctx.Step()
		for _, l := range ctx.LaneManager().Lanes() {
			var ahead entity.IVehicle
			for _, v := range l.Vehicles().Values() {
				if ahead != nil &&
					!(ahead.TurningRight() && ahead.Crossed()) &&
					!(v.TurningRight() && v.Crossed()) {
					mf := entity.MinFollowDistance(v.Length(), ahead.Length(), c.Road.MinGap)
					gap := math.Abs(ahead.Position() - v.Position())
					assert.GreaterOrEqual(t, gap+1e-9, mf,
						"lane %v-%d: %d behind %d", l.Direction(), l.Index(), v.ID(), ahead.ID())
				}
				ahead = v
			}
		}
	}
}

func TestAdmissionCap(t *testing.T) {
	c := config.Default()
	c.Road.TargetVolumePerMin = 120
	c.Road.AdmissionCapFactor = 0.05 // 上限 120×0.05=6辆
	ctx := task.NewContext(c)

	peak := 0
	for step := 0; step < 2000; step++ {
		ctx.Step()
		n := ctx.Vehicles().Count()
		// 超过上限后不再准入，计数至多越过上限一辆
		assert.LessOrEqual(t, n, 7)
		if n > peak {
			peak = n
		}
	}
	assert.GreaterOrEqual(t, peak, 6, "cap was never reached")
}

func TestCompletionConservation(t *testing.T) {
	ctx := task.NewContext(config.Default())
	for step := 0; step < 5000; step++ {
		ctx.Step()
	}
	var completed int64
	var waitSamples int
	for _, d := range entity.Directions {
		completed += ctx.StatsCollector().SummaryOf(d).CompletedCount
		waitSamples += len(ctx.StatsCollector().WaitSamples(d))
	}
	assert.Greater(t, completed, int64(0))
	// 每辆车恰好移除一次：生成数 = 完成数 + 在场数
	assert.Equal(t, ctx.Vehicles().Spawned(), int32(completed)+int32(ctx.Vehicles().Count()))
	// 每辆车至多一条等待样本（窗口容量内）
	assert.LessOrEqual(t, waitSamples, int(completed))
}

func TestWaitingCountQueue(t *testing.T) {
	ctx := task.NewContext(quietConfig())
	stepUntil := func(tTarget float64) {
		for ctx.Clock().T < tTarget {
			ctx.Step()
		}
	}

	ctx.Vehicles().Inject(entity.North, 0, 4.5, false)
	stepUntil(5)
	ctx.Vehicles().Inject(entity.North, 0, 4.5, false)
	stepUntil(10)
	ctx.Vehicles().Inject(entity.North, 0, 4.5, false)

	// 南北红灯尾声：三辆车全部在停止线后排队等待
	stepUntil(34.5)
	s := ctx.StatsCollector().SummaryOf(entity.North)
	assert.Equal(t, 3, s.CurrentVolume)
	assert.Equal(t, 3, s.WaitingCount)
	assert.Equal(t, 0, ctx.StatsCollector().SummaryOf(entity.East).WaitingCount)

	// 转绿后队列消散
	stepUntil(45)
	assert.Equal(t, 0, ctx.StatsCollector().SummaryOf(entity.North).WaitingCount)
}

func TestSnapshot(t *testing.T) {
	c := config.Default()
	c.Road.TargetVolumePerMin = 120
	ctx := task.NewContext(c)
	for step := 0; step < 200; step++ {
		ctx.Step()
	}
	s := ctx.Snapshot()

	assert.Equal(t, ctx.Clock().InternalStep, s.Step)
	assert.Equal(t, ctx.Clock().T, s.T)
	assert.Len(t, s.Lanes, 4*c.Road.LaneCount)
	assert.Equal(t, s.Phase.States(), s.Light)
	total := 0
	for _, ls := range s.Lanes {
		total += len(ls.Vehicles)
		for _, v := range ls.Vehicles {
			assert.LessOrEqual(t, math.Abs(v.Position), c.Road.ObservationZone+1)
		}
	}
	assert.Equal(t, ctx.Vehicles().Count(), total)

	// 快照为深拷贝：继续推进不影响已持有的快照
	tBefore := s.T
	ctx.Step()
	assert.Equal(t, tBefore, s.T)
	assert.NotEqual(t, ctx.Clock().T, s.T)
}
