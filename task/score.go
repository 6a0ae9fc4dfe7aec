package task

import (
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
)

// CarResult 单辆车的评分结果
type CarResult struct {
	Car        entity.CarID
	FinishTick entity.Tick // 未完成时为-1
	Finished   bool
	Points     int64
}

// Result 一次评分的结果
type Result struct {
	Score    int64 // 总得分
	Finished int   // 完成的车辆数
	Cars     int   // 车辆总数
	Duration int32 // 模拟时长
	Bonus    int32 // 奖励分

	PerCar []CarResult // 下标为车辆ID
}

// Points 在t时刻完成的车辆的得分
// 功能：车辆在时刻t的步骤结束时完成，可观察时刻为t+1；在模拟结束前完成才得分
// 参数：t-完成时刻，duration-模拟时长，bonus-奖励分
// 返回：bonus + duration - (t+1)，超出模拟时长时为0
func Points(t entity.Tick, duration, bonus int32) int64 {
	observed := int64(t) + 1
	if observed > int64(duration) {
		return 0
	}
	return int64(bonus) + int64(duration) - observed
}

// Aggregate 根据各车辆的完成时刻重新计算总得分
// 说明：与模拟过程中的增量累计相互独立，两者结果应当一致
func Aggregate(results []CarResult, duration, bonus int32) int64 {
	return lo.SumBy(results, func(r CarResult) int64 {
		if !r.Finished {
			return 0
		}
		return Points(r.FinishTick, duration, bonus)
	})
}

// result 收集模拟结束时的评分结果
func (ctx *Context) result() Result {
	duration := ctx.clock.Duration()
	perCar := make([]CarResult, ctx.carManager.Len())
	for i := range perCar {
		id := entity.CarID(i)
		r := CarResult{Car: id, FinishTick: -1}
		if t, ok := ctx.carManager.FinishTick(id); ok {
			r.FinishTick = t
			r.Finished = true
			r.Points = Points(t, duration, ctx.bonus)
		}
		perCar[i] = r
	}
	if total := Aggregate(perCar, duration, ctx.bonus); total != ctx.score {
		log.Panicf("incremental score %d differs from aggregated score %d", ctx.score, total)
	}
	return Result{
		Score:    ctx.score,
		Finished: ctx.finished,
		Cars:     len(perCar),
		Duration: duration,
		Bonus:    ctx.bonus,
		PerCar:   perCar,
	}
}
