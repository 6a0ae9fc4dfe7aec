package car

import (
	"fmt"

	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/container"
)

// Status 车辆状态
type Status int

const (
	StatusWaiting  Status = iota // 在道路末端排队
	StatusDriving                // 行驶中
	StatusFinished               // 已到达终点
	StatusStalled                // 单道路行程被放行后停滞，永远不会完成
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusDriving:
		return "driving"
	case StatusFinished:
		return "finished"
	case StatusStalled:
		return "stalled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Car 车辆
// 功能：保存车辆剩余的动作序列以及在当前道路上已行驶的距离
type Car struct {
	id entity.CarID

	program  *container.List[Action] // 剩余动作，队首为当前动作
	distance int32                   // 当前道路上已行驶的距离
	status   Status

	finishTick entity.Tick
}

// newCar 创建车辆，初始状态由动作序列的队首决定
func newCar(id entity.CarID, plan Plan) *Car {
	c := &Car{
		id:         id,
		program:    container.NewList[Action](fmt.Sprintf("car-%d", id)),
		finishTick: -1,
	}
	for _, a := range plan.Actions {
		c.program.PushBackValue(a)
	}
	return c
}

func (c *Car) ID() entity.CarID {
	return c.id
}

func (c *Car) Status() Status {
	return c.status
}

// Distance 当前道路上已行驶的距离
func (c *Car) Distance() int32 {
	return c.distance
}

// Program 剩余动作
func (c *Car) Program() []Action {
	return c.program.Values()
}

// FinishTick 完成时刻，未完成时返回false
func (c *Car) FinishTick() (entity.Tick, bool) {
	return c.finishTick, c.status == StatusFinished
}

// front 当前动作
func (c *Car) front() (Action, bool) {
	if n := c.program.First(); n != nil {
		return n.Value, true
	}
	return nil, false
}

// finish 标记车辆在t时刻完成
func (c *Car) finish(t entity.Tick) {
	c.status = StatusFinished
	c.finishTick = t
}

func (c *Car) String() string {
	return fmt.Sprintf("Car %d(%v, distance=%d, program=%v)", c.id, c.status, c.distance, c.program.Values())
}
