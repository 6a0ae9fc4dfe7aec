package task

import "github.com/tsinghua-fib-lab/trafficlight-scorer/entity"

// Tracer 排队事件观察者
// 功能：接收车辆加入排队与被绿灯放行的事件，用于调试与回放
type Tracer interface {
	Enqueued(t entity.Tick, street entity.StreetID, car entity.CarID)
	Released(t entity.Tick, street entity.StreetID, car entity.CarID)
}

// logTracer 默认观察者，以trace级别输出日志
type logTracer struct{}

func (logTracer) Enqueued(t entity.Tick, street entity.StreetID, car entity.CarID) {
	log.Tracef("t=%d car %d queued on street %d", t, car, street)
}

func (logTracer) Released(t entity.Tick, street entity.StreetID, car entity.CarID) {
	log.Tracef("t=%d car %d released from street %d", t, car, street)
}

// tracedStreets 包装道路管理器，在车辆加入排队时通知观察者
type tracedStreets struct {
	entity.IStreetManager
	ctx *Context
}

func (s tracedStreets) Enqueue(id entity.StreetID, car entity.CarID) {
	s.IStreetManager.Enqueue(id, car)
	s.ctx.tracer.Enqueued(s.ctx.now(), id, car)
}

// SetTracer 设置排队事件观察者，nil恢复默认的日志输出
func (ctx *Context) SetTracer(tracer Tracer) {
	if tracer == nil {
		tracer = logTracer{}
	}
	ctx.tracer = tracer
}
