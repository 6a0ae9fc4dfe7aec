package task

import (
	"flag"

	"github.com/sirupsen/logrus"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// now 当前时刻
func (ctx *Context) now() entity.Tick {
	return entity.Tick(ctx.clock.InternalStep)
}

// onFinish 车辆完成时立即累计得分
func (ctx *Context) onFinish(id entity.CarID, t entity.Tick) {
	points := Points(t, ctx.clock.Duration(), ctx.bonus)
	ctx.score += points
	ctx.finished++
	log.Tracef("car %d finished at %d, +%d", id, t, points)
}

// prepare 准备阶段，每步执行一次
// 功能：在每个时间步开始时推进行驶中的车辆并清理空队列
// 算法说明：
// 1. 心跳日志：定期输出当前步数和得分
// 2. 行驶中的车辆前进一个单位
// 3. 移除已清空的排队
func (ctx *Context) prepare() {
	if interval := int32(*heartBeatInterval); interval > 0 && ctx.clock.InternalStep%interval == 0 {
		log.Debugf(
			"STEP: %v, driving: %d, finished: %d, score: %d",
			ctx.clock, ctx.carManager.Driving(), ctx.finished, ctx.score,
		)
		if log.Logger.IsLevelEnabled(logrus.TraceLevel) {
			log.Tracef("green streets: %v", ctx.junctionManager.Green(ctx.now()))
		}
	}
	ctx.carManager.Advance()
	ctx.streetManager.Cleanup()
}

// update 更新阶段，每步执行一次
// 功能：绿灯放行和车辆到达
// 算法说明：
// 1. 放行：按道路ID升序，每条绿灯道路的队首车辆进入下一条道路
// 2. 到达：按车辆ID升序处理行驶到道路末端的车辆，完成的车辆立即计分
// 说明：各路口之间互不影响，顺序只用于保证结果可复现
func (ctx *Context) update() {
	t := ctx.now()
	ctx.streetManager.Release(
		func(id entity.StreetID) bool { return ctx.junctionManager.IsGreen(id, t) },
		func(id entity.StreetID, car entity.CarID) {
			ctx.carManager.Release(car)
			ctx.tracer.Released(t, id, car)
		},
	)
	ctx.carManager.Arrive(t, ctx.onFinish)
}

// Run 运行
// 功能：初始化后逐步执行[0, duration)内的每个时间步，返回评分结果
// 返回：评分结果；初始化失败时返回错误
func (ctx *Context) Run() (Result, error) {
	// 初始化
	if err := ctx.Init(); err != nil {
		return Result{}, err
	}
	ctx.carManager.Start(ctx.onFinish)
	for ; ctx.clock.Running(); ctx.clock.Next() {
		ctx.prepare()
		ctx.update()
	}
	res := ctx.result()
	log.Infof("engine complete: score %d, finished %d/%d", res.Score, res.Finished, res.Cars)
	return res, nil
}
