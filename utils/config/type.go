package config

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
type Control struct {
	Step ControlStep `yaml:"step"`
	Seed uint64      `yaml:"seed"` // 随机数种子
}

// Signal 信号灯配置
// 功能：定义信号灯各相位的固定时长
type Signal struct {
	GreenDuration  float64 `yaml:"green_duration"`  // 绿灯时长（秒）
	YellowDuration float64 `yaml:"yellow_duration"` // 黄灯时长（秒）
}

// Road 道路与车辆几何配置
type Road struct {
	LaneCount           int     `yaml:"lane_count"`            // 每个进口方向的车道数
	ObservationZone     float64 `yaml:"observation_zone"`      // 观测区长度（米），车辆在此范围内被模拟
	AvgSpeed            float64 `yaml:"avg_speed"`             // 平均车速（米/秒）
	VehicleLength       float64 `yaml:"vehicle_length"`        // 普通车辆长度（米）
	LongVehicleLength   float64 `yaml:"long_vehicle_length"`   // 长车长度（米）
	LongVehicleProb     float64 `yaml:"long_vehicle_prob"`     // 生成长车的概率
	MinGap              float64 `yaml:"min_gap"`               // 最小车头间隙（米），跟车距离=较长车长+该值
	RightTurnProb       float64 `yaml:"right_turn_prob"`       // 最外侧车道车辆右转的概率
	TargetVolumePerMin  float64 `yaml:"target_volume_per_min"` // 目标流量（辆/分钟），驱动到达率
	AdmissionCapFactor  float64 `yaml:"admission_cap_factor"`  // 准入上限系数，总车辆数不超过目标流量×该系数
	WaitWindowCapacity  int     `yaml:"wait_window_capacity"`  // 等待时间滚动窗口容量
	ReportPath          string  `yaml:"report_path"`           // 统计报告输出路径（为空则不输出）
}

// Config YAML配置文件的根结构
type Config struct {
	Control Control `yaml:"control"` // 模拟过程控制
	Signal  Signal  `yaml:"signal"`  // 信号灯配置
	Road    Road    `yaml:"road"`    // 道路配置
}
