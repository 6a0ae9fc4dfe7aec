package trafficlight

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
)

// Schedule 单条道路的周期性绿灯窗口
// 功能：道路在每个周期的[Offset, Offset+Duration)内为绿灯
// 说明：零值（Period为0）表示没有排程，永远红灯；使用int64保存，多个int32时长之和不会溢出
type Schedule struct {
	Offset   int64 // 周期内绿灯开始时刻
	Duration int64 // 绿灯时长
	Period   int64 // 周期，等于同一路口所有绿灯时长之和
}

// IsGreen 判断t时刻是否为绿灯
// 说明：只依赖时刻和排程本身，与模拟历史无关
func (s Schedule) IsGreen(t entity.Tick) bool {
	if s.Period <= 0 {
		return false
	}
	tmod := int64(t) % s.Period
	return s.Offset <= tmod && tmod < s.Offset+s.Duration
}

func (s Schedule) String() string {
	return fmt.Sprintf("Schedule{Offset:%d, Duration:%d, Period:%d}", s.Offset, s.Duration, s.Period)
}

// Compile 将一个路口按顺序排列的绿灯时长编译为各道路的绿灯窗口
// 功能：周期为所有时长之和，每条道路的偏移为排在它之前的时长之和
// 参数：durations-按循环顺序排列的绿灯时长（均不小于1）
// 返回：与durations一一对应的绿灯窗口，同一周期内首尾相接、互不重叠
func Compile(durations []int32) []Schedule {
	period := lo.SumBy(durations, func(d int32) int64 { return int64(d) })
	schedules := make([]Schedule, len(durations))
	offset := int64(0)
	for i, d := range durations {
		schedules[i] = Schedule{Offset: offset, Duration: int64(d), Period: period}
		offset += int64(d)
	}
	return schedules
}
