package randengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/randengine"
)

func TestDeterminism(t *testing.T) {
	e1 := randengine.New(42)
	e2 := randengine.New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, e1.Float64(), e2.Float64())
	}
}

func TestPTrue(t *testing.T) {
	e := randengine.New(1)
	for i := 0; i < 100; i++ {
		assert.False(t, e.PTrue(0))
		assert.True(t, e.PTrue(1))
	}
}

func TestExp(t *testing.T) {
	e := randengine.New(7)
	sum := 0.0
	const n = 10000
	for i := 0; i < n; i++ {
		v := e.Exp(0.1)
		assert.Greater(t, v, 0.0)
		sum += v
	}
	// 均值应接近 1/rate = 10
	assert.InDelta(t, 10, sum/n, 0.5)
}

func TestUniformRange(t *testing.T) {
	e := randengine.New(9)
	for i := 0; i < 1000; i++ {
		v := e.UniformRange(0.8, 1.2)
		assert.GreaterOrEqual(t, v, 0.8)
		assert.Less(t, v, 1.2)
	}
}
