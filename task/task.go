package task

import (
	"fmt"

	"github.com/tsinghua-fib-lab/trafficlight-scorer/clock"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity/car"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity/junction"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity/street"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
)

// Context 评分任务上下文
// 功能：包含一次(路网, 排程)评分的所有变量和状态
// 说明：管理时钟、配置和各实体管理器，每次评分使用独立的Context，互不共享状态
type Context struct {
	// 时钟
	clock *clock.Clock

	// Street管理器
	streetManager *street.StreetManager
	// Junction管理器
	junctionManager *junction.JunctionManager
	// Car管理器
	carManager *car.CarManager

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig

	// 排队事件观察者
	tracer Tracer

	// 用于初始化的输入
	network  *input.Network
	schedule *input.Schedule

	bonus int32 // 按时完成的奖励分

	// 增量累计的得分
	score    int64
	finished int
}

// NewContext 创建新的评分任务上下文
// 功能：根据路网、排程和运行时配置创建各实体管理器
// 参数：network-路网，schedule-信号灯排程，rc-运行时配置
// 返回：未初始化的Context实例
// 说明：control.horizon大于0时覆盖路网文件中的模拟时长
func NewContext(network *input.Network, schedule *input.Schedule, rc *config.RuntimeConfig) *Context {
	duration := network.Header.Duration
	if rc.C.Horizon > 0 {
		duration = rc.C.Horizon
	}
	ctx := &Context{
		clock:         clock.New(duration),
		runtimeConfig: rc,
		network:       network,
		schedule:      schedule,
		bonus:         network.Header.Bonus,
		tracer:        logTracer{},
	}

	// 新建各类模拟对象
	ctx.streetManager = street.NewManager(ctx)
	ctx.junctionManager = junction.NewManager(ctx)
	ctx.carManager = car.NewManager(ctx)
	return ctx
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) StreetManager() entity.IStreetManager {
	return ctx.streetManager
}

func (ctx *Context) JunctionManager() entity.IJunctionManager {
	return ctx.junctionManager
}

func (ctx *Context) CarManager() entity.ICarManager {
	return ctx.carManager
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// Init 初始化
// 功能：按依赖顺序初始化各实体管理器
// 算法说明：
// 1. 道路：建立道路名映射和路口图
// 2. 信号灯：依赖道路，编译排程
// 3. 车辆：依赖道路，编译路线计划
// 返回：引用不存在的道路或输入不一致时返回错误
func (ctx *Context) Init() error {
	ctx.clock.Init()
	ctx.score = 0
	ctx.finished = 0

	h := ctx.network.Header
	log.Debugf("Duration: %d, Intersection: %d, Street: %d, Car: %d, Bonus: %d",
		ctx.clock.Duration(), h.Intersections, h.Streets, h.Cars, h.Bonus)

	if err := ctx.streetManager.Init(ctx.network.Streets); err != nil {
		return fmt.Errorf("street init err: %w", err)
	}
	if n := ctx.streetManager.Components(); n > 1 {
		log.Debugf("street graph has %d strongly connected components", n)
	}
	if err := ctx.junctionManager.Init(ctx.schedule, ctx.streetManager); err != nil {
		return fmt.Errorf("schedule init err: %w", err)
	}
	if err := ctx.carManager.Init(ctx.network.CarPaths, tracedStreets{ctx.streetManager, ctx}); err != nil {
		return fmt.Errorf("car init err: %w", err)
	}
	return nil
}

// Evaluate 计算排程在路网上的得分
// 功能：创建上下文、初始化并运行到模拟结束
// 参数：network-路网，schedule-信号灯排程，rc-运行时配置
// 返回：评分结果，初始化失败时返回错误（不返回部分得分）
func Evaluate(network *input.Network, schedule *input.Schedule, rc *config.RuntimeConfig) (Result, error) {
	return NewContext(network, schedule, rc).Run()
}
