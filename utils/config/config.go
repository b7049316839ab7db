package config

import "log"

// Default 默认配置
// 功能：提供一组与参考行为一致的默认参数（绿灯30秒、黄灯5秒、指数到达）
// 说明：未指定配置文件时使用
func Default() Config {
	return Config{
		Control: Control{
			Step: ControlStep{Start: 0, Total: 7200, Interval: 0.5},
			Seed: 43,
		},
		Signal: Signal{
			GreenDuration:  30,
			YellowDuration: 5,
		},
		Road: Road{
			LaneCount:          2,
			ObservationZone:    200,
			AvgSpeed:           12,
			VehicleLength:      4.5,
			LongVehicleLength:  12,
			LongVehicleProb:    0.05,
			MinGap:             2,
			RightTurnProb:      0.15,
			TargetVolumePerMin: 60,
			AdmissionCapFactor: 1.3,
			WaitWindowCapacity: 50,
		},
	}
}

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息，补齐默认值并做合法性检查
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，进行配置验证与默认值补齐
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
// 说明：配置错误属于启动期致命错误，直接panic
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	if config.Control.Step.Interval <= 0 {
		log.Panicf("config: step interval must be positive, got %v", config.Control.Step.Interval)
	}
	if config.Road.LaneCount <= 0 {
		log.Panicf("config: lane count must be positive, got %v", config.Road.LaneCount)
	}
	if config.Road.ObservationZone <= 0 {
		log.Panicf("config: observation zone must be positive, got %v", config.Road.ObservationZone)
	}
	if config.Signal.GreenDuration <= 0 || config.Signal.YellowDuration <= 0 {
		log.Panicf("config: signal durations must be positive, got %+v", config.Signal)
	}
	if config.Road.RightTurnProb < 0 || config.Road.RightTurnProb > 1 {
		log.Panicf("config: right turn prob must be in [0,1], got %v", config.Road.RightTurnProb)
	}
	if config.Road.LongVehicleProb < 0 || config.Road.LongVehicleProb > 1 {
		log.Panicf("config: long vehicle prob must be in [0,1], got %v", config.Road.LongVehicleProb)
	}
	if config.Road.AdmissionCapFactor == 0 {
		config.Road.AdmissionCapFactor = 1.3
	}
	if config.Road.WaitWindowCapacity <= 0 {
		config.Road.WaitWindowCapacity = 50
	}

	rc.All = config
	rc.C = config.Control

	return rc
}
