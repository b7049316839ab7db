package output

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/junction-sim-oss/entity"
	"gonum.org/v1/gonum/stat"
)

// 报告图表的最大采样点数，超过时按步长抽稀
const maxReportPoints = 2000

// WriteReport 输出HTML统计报告
// 功能：根据逐tick快照生成各方向平均等待时间、等待车辆数的时间序列
// 折线图与完成车辆数柱状图，写入单个HTML文件
// 参数：snapshots-逐tick快照序列，path-输出文件路径
// 返回：写文件或渲染失败时返回错误
func WriteReport(snapshots []*Snapshot, path string) error {
	if len(snapshots) == 0 {
		return fmt.Errorf("no snapshots to report")
	}

	stride := 1
	if len(snapshots) > maxReportPoints {
		stride = len(snapshots)/maxReportPoints + 1
	}
	sampled := make([]*Snapshot, 0, len(snapshots)/stride+1)
	for i := 0; i < len(snapshots); i += stride {
		sampled = append(sampled, snapshots[i])
	}

	xs := lo.Map(sampled, func(s *Snapshot, _ int) string {
		return fmt.Sprintf("%.0f", s.T)
	})

	waitLine := charts.NewLine()
	waitLine.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "junction-sim report"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Average wait time by direction",
			Subtitle: waitSubtitle(sampled),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	waitLine.SetXAxis(xs)

	queueLine := charts.NewLine()
	queueLine.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Waiting vehicles by direction"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	queueLine.SetXAxis(xs)

	for _, d := range entity.Directions {
		waitLine.AddSeries(d.String(), lo.Map(sampled, func(s *Snapshot, _ int) opts.LineData {
			return opts.LineData{Value: s.Summaries[d].AverageWaitTime}
		}))
		queueLine.AddSeries(d.String(), lo.Map(sampled, func(s *Snapshot, _ int) opts.LineData {
			return opts.LineData{Value: s.Summaries[d].WaitingCount}
		}))
	}

	last := snapshots[len(snapshots)-1]
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Completed vehicles"}),
	)
	bar.SetXAxis(lo.Map(entity.Directions[:], func(d entity.Direction, _ int) string {
		return d.String()
	}))
	bar.AddSeries("completed", lo.Map(entity.Directions[:], func(d entity.Direction, _ int) opts.BarData {
		return opts.BarData{Value: last.Summaries[d].CompletedCount}
	}))

	page := components.NewPage()
	page.AddCharts(waitLine, queueLine, bar)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

// waitSubtitle 生成副标题，给出末期平均等待时间的分位数
func waitSubtitle(sampled []*Snapshot) string {
	var all []float64
	for _, s := range sampled {
		for _, d := range entity.Directions {
			if w := s.Summaries[d].AverageWaitTime; w > 0 {
				all = append(all, w)
			}
		}
	}
	if len(all) == 0 {
		return "no waits recorded"
	}
	sort.Float64s(all)
	return fmt.Sprintf("wait p50=%.1fs p95=%.1fs",
		stat.Quantile(0.5, stat.Empirical, all, nil),
		stat.Quantile(0.95, stat.Empirical, all, nil))
}
