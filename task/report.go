package task

import (
	"fmt"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// Report 评分结果的统计摘要
type Report struct {
	Completion float64 // 完成率
	MeanFinish float64 // 完成时刻均值
	StdFinish  float64 // 完成时刻标准差
	MeanPoints float64 // 完成车辆的平均得分
}

// NewReport 统计评分结果
// 说明：没有车辆完成时各项为0，只有一辆车完成时标准差为0
func NewReport(r Result) Report {
	done := lo.Filter(r.PerCar, func(c CarResult, _ int) bool { return c.Finished })
	var rep Report
	if r.Cars > 0 {
		rep.Completion = float64(len(done)) / float64(r.Cars)
	}
	if len(done) == 0 {
		return rep
	}
	ticks := lo.Map(done, func(c CarResult, _ int) float64 { return float64(c.FinishTick) })
	points := lo.Map(done, func(c CarResult, _ int) float64 { return float64(c.Points) })
	if len(done) == 1 {
		rep.MeanFinish = ticks[0]
	} else {
		rep.MeanFinish, rep.StdFinish = stat.MeanStdDev(ticks, nil)
	}
	rep.MeanPoints = stat.Mean(points, nil)
	return rep
}

func (r Report) String() string {
	return fmt.Sprintf("completion %.2f%%, finish tick %.2f±%.2f, points %.2f",
		r.Completion*100, r.MeanFinish, r.StdFinish, r.MeanPoints)
}
