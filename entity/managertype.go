package entity

import (
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
)

// Manager依赖倒置

// entity/street/manager.go的依赖倒置
type IStreetManager interface {
	Init(pbs []input.Street) error // 初始化

	// 输入Street ID，查找Street，如果不存在则panic
	Get(id StreetID) IStreet
	// 输入道路名，查找Street ID，如果不存在则返回ErrUnknownStreet
	Lookup(name string) (StreetID, error)
	Len() int // 道路数量
	// from的终点路口是否为to的起点路口
	Connected(from, to StreetID) bool

	// 路口是否是某条道路的端点
	HasIntersection(id IntersectionID) bool
	// 驶入路口的所有道路，升序
	Incoming(id IntersectionID) []StreetID

	Enqueue(id StreetID, car CarID)                                       // 车辆到达道路末端，加入排队
	Cleanup()                                                             // 移除已清空的排队
	Release(green func(StreetID) bool, release func(StreetID, CarID)) int // 绿灯放行，每条道路至多放行一辆车
	Waiting(id StreetID) []CarID                                          // 道路末端的排队车辆，按到达顺序
}

// entity/junction/manager.go的依赖倒置
type IJunctionManager interface {
	Init(pb *input.Schedule, streetManager IStreetManager) error // 初始化

	IsGreen(id StreetID, t Tick) bool // 道路在t时刻是否为绿灯
	HasLight(id StreetID) bool        // 道路是否出现在排程中（否则永远红灯）
	Junctions() []IntersectionID      // 有排程的路口，升序
}

// entity/car/manager.go的依赖倒置
type ICarManager interface {
	Init(pbs []input.CarPath, streetManager IStreetManager) error // 初始化

	Len() int // 车辆数量

	Start(onFinish func(CarID, Tick))            // 第0步之前：处理无需行驶即完成的车辆
	Advance()                                    // 行驶中的车辆前进一个单位
	Release(id CarID)                            // 车辆通过路口进入下一条道路
	Arrive(t Tick, onFinish func(CarID, Tick))   // 处理到达道路末端的车辆
	FinishTick(id CarID) (t Tick, finished bool) // 车辆完成时刻
}
