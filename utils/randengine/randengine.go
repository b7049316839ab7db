// 随机数引擎，包装了golang.org/x/exp/rand，提供了一些常用的随机数生成方法
package randengine

import (
	"flag"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：提供仿真所需的若干分布的随机数生成
// 说明：基于golang.org/x/exp/rand库，所有随机性均同步消费、不涉及并发
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 功能：初始化一个新的随机数引擎实例
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改代码的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// PTrue 以指定概率返回true
// 功能：根据给定概率返回布尔值
// 参数：p-返回true的概率（0.0到1.0之间）
// 返回：true或false
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// Exp 按指数分布生成随机数
// 功能：生成参数为rate的指数分布随机数
// 参数：rate-到达率（每秒事件数）
// 返回：下一次事件的间隔（秒）
// 说明：无记忆到达过程的间隔抽样，rate<=0时返回+Inf等价的大数由调用方避免
func (e *Engine) Exp(rate float64) float64 {
	return e.ExpFloat64() / rate
}

// UniformRange 在指定区间生成均匀分布随机数
// 功能：生成[lo, hi)范围内的随机浮点数
// 参数：lo-下界，hi-上界
// 返回：[lo, hi)范围内的随机浮点数
func (e *Engine) UniformRange(lo, hi float64) float64 {
	return lo + (hi-lo)*e.Float64()
}
