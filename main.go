package main

import (
	"encoding/base64"
	"flag"
	"os"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"github.com/tsinghua-fib-lab/junction-sim-oss/output"
	"github.com/tsinghua-fib-lab/junction-sim-oss/task"
	"github.com/tsinghua-fib-lab/junction-sim-oss/utils/config"
	"gopkg.in/yaml.v2"
)

var (
	// 配置文件路径，为空则使用默认配置
	configPath = flag.String("config", "", "config file path (empty means default config)")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 统计报告输出路径，覆盖配置文件中的同名项
	reportPath = flag.String("report", "", "HTML report output path (overrides config)")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "sim")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	// 获取配置
	c := config.Default()
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	}
	if file != nil {
		if err := yaml.UnmarshalStrict(file, &c); err != nil {
			log.Panicf("config file load err: %v", err)
		}
	}
	if *reportPath != "" {
		c.Road.ReportPath = *reportPath
	}
	log.Infof("%+v", c)

	ctx := task.NewContext(c)

	// 仅在需要报告时逐tick收集快照
	var snapshots []*output.Snapshot
	var consume func(*output.Snapshot)
	if c.Road.ReportPath != "" {
		consume = func(s *output.Snapshot) {
			snapshots = append(snapshots, s)
		}
	}
	ctx.Run(consume)

	for _, d := range entity.Directions {
		s := ctx.StatsCollector().SummaryOf(d)
		log.Infof("%v: completed=%d waiting=%d avg_wait=%.1fs",
			d, s.CompletedCount, s.WaitingCount, s.AverageWaitTime)
	}

	if c.Road.ReportPath != "" {
		if err := output.WriteReport(snapshots, c.Road.ReportPath); err != nil {
			log.Errorf("report err: %v", err)
		} else {
			log.Infof("report written to %s", c.Road.ReportPath)
		}
	}
}
