package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
	"gopkg.in/yaml.v2"
)

func TestDefaultIsValid(t *testing.T) {
	c := config.Default()
	rc := config.NewRuntimeConfig(c)
	assert.Equal(t, c.Control, rc.C)
	assert.Equal(t, 30.0, rc.All.Signal.GreenDuration)
	assert.Equal(t, 5.0, rc.All.Signal.YellowDuration)
}

func TestYamlOverride(t *testing.T) {
	c := config.Default()
	data := `
control:
  step:
    start: 0
    total: 100
    interval: 1
  seed: 7
road:
  lane_count: 3
`
	require.NoError(t, yaml.UnmarshalStrict([]byte(data), &c))
	assert.Equal(t, int32(100), c.Control.Step.Total)
	assert.Equal(t, uint64(7), c.Control.Seed)
	assert.Equal(t, 3, c.Road.LaneCount)
	// 未覆盖的字段保留默认值
	assert.Equal(t, 30.0, c.Signal.GreenDuration)
}

func TestYamlStrict(t *testing.T) {
	c := config.Default()
	err := yaml.UnmarshalStrict([]byte("road:\n  no_such_key: 1\n"), &c)
	assert.Error(t, err)
}

func TestRuntimeDefaults(t *testing.T) {
	c := config.Default()
	c.Road.AdmissionCapFactor = 0
	c.Road.WaitWindowCapacity = 0
	rc := config.NewRuntimeConfig(c)
	assert.Equal(t, 1.3, rc.All.Road.AdmissionCapFactor)
	assert.Equal(t, 50, rc.All.Road.WaitWindowCapacity)
}

func TestInvalidConfigPanics(t *testing.T) {
	c := config.Default()
	c.Road.LaneCount = 0
	assert.Panics(t, func() { config.NewRuntimeConfig(c) })

	c = config.Default()
	c.Road.RightTurnProb = 1.5
	assert.Panics(t, func() { config.NewRuntimeConfig(c) })

	c = config.Default()
	c.Control.Step.Interval = 0
	assert.Panics(t, func() { config.NewRuntimeConfig(c) })
}
