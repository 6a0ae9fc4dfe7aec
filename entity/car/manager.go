package car

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
)

// CarManager Car管理器
// 功能：管理所有车辆的动作序列，执行每步的前进、放行和到达
type CarManager struct {
	ctx entity.ITaskContext

	streetManager entity.IStreetManager

	cars    []*Car         // 下标为车辆ID
	driving []entity.CarID // 行驶中的车辆，升序
}

// NewManager 创建Car管理器实例
// 参数：ctx-任务上下文
// 返回：新创建的Car管理器实例
func NewManager(ctx entity.ITaskContext) *CarManager {
	return &CarManager{
		ctx:     ctx,
		cars:    make([]*Car, 0),
		driving: make([]entity.CarID, 0),
	}
}

// control 当前生效的控制配置
func (m *CarManager) control() config.Control {
	if m.ctx == nil {
		return config.Default().Control
	}
	return m.ctx.RuntimeConfig().C
}

// Init 初始化所有Car
// 功能：按路网文件中的顺序为车辆分配ID并编译路线计划
// 参数：pbs-路网文件中的路线列表，streetManager-道路管理器
// 返回：任一路线编译失败时返回错误
func (m *CarManager) Init(pbs []input.CarPath, streetManager entity.IStreetManager) error {
	m.streetManager = streetManager
	c := m.control()
	m.cars = make([]*Car, len(pbs))
	for i, pb := range pbs {
		id := entity.CarID(i)
		plan, err := Build(id, pb, streetManager, c)
		if err != nil {
			return err
		}
		m.cars[i] = newCar(id, plan)
	}
	m.driving = make([]entity.CarID, 0, len(m.cars))
	log.Debugf("Car: %d", len(m.cars))
	return nil
}

// Get 根据ID获取Car实例，如果不存在则panic
func (m *CarManager) Get(id entity.CarID) *Car {
	if id < 0 || int(id) >= len(m.cars) {
		log.Panicf("no id %d in car data", id)
	}
	return m.cars[id]
}

// GetOrError 根据ID获取Car实例，如果不存在则返回错误
func (m *CarManager) GetOrError(id entity.CarID) (*Car, error) {
	if id < 0 || int(id) >= len(m.cars) {
		return nil, fmt.Errorf("no id %d in car data", id)
	}
	return m.cars[id], nil
}

func (m *CarManager) Len() int {
	return len(m.cars)
}

// Start 模拟开始前的处理
// 功能：按车辆ID升序将车辆加入第一条道路的排队；动作序列为空的车辆在第0步完成
// 参数：onFinish-车辆完成时的回调
func (m *CarManager) Start(onFinish func(entity.CarID, entity.Tick)) {
	for _, c := range m.cars {
		a, ok := c.front()
		if !ok {
			c.finish(0)
			onFinish(c.id, 0)
			continue
		}
		w, ok := a.(Wait)
		if !ok {
			log.Panicf("car %d starts with %v", c.id, a)
		}
		c.status = StatusWaiting
		m.streetManager.Enqueue(w.Street, c.id)
	}
}

// Advance 所有行驶中的车辆前进一个单位
func (m *CarManager) Advance() {
	for _, id := range m.driving {
		m.cars[id].distance++
	}
}

// Release 车辆被绿灯放行，通过路口进入下一条道路
// 功能：移除队首的Wait，已行驶距离置为1
// 说明：放行后动作序列为空的车辆（stall策略下的单道路行程）进入停滞状态
func (m *CarManager) Release(id entity.CarID) {
	c := m.Get(id)
	a, _ := c.program.PopFront()
	if _, ok := a.(Wait); !ok {
		log.Panicf("release %v which is not waiting", c)
	}
	c.distance = 1
	switch next, ok := c.front(); {
	case !ok:
		c.status = StatusStalled
		log.Debugf("car %d stalled after release", c.id)
	case isDrive(next):
		c.status = StatusDriving
		i, found := slices.BinarySearch(m.driving, id)
		if found {
			log.Panicf("car %d is already driving", id)
		}
		m.driving = slices.Insert(m.driving, i, id)
	default:
		log.Panicf("car %d released into %v", c.id, next)
	}
}

// Arrive 处理到达道路末端的车辆
// 功能：按车辆ID升序检查行驶中的车辆，已行驶距离不小于道路长度的车辆完成当前Drive
// 参数：t-当前时刻，onFinish-车辆完成时的回调
// 算法说明：
// 1. 已行驶距离置0，移除队首的Drive
// 2. 下一个动作为Wait(s)：加入道路s末端的排队
// 3. 动作序列为空：车辆在t时刻完成
func (m *CarManager) Arrive(t entity.Tick, onFinish func(entity.CarID, entity.Tick)) {
	m.driving = slices.DeleteFunc(m.driving, func(id entity.CarID) bool {
		c := m.cars[id]
		a, _ := c.front()
		d := a.(Drive)
		if c.distance < d.Length {
			return false
		}
		c.distance = 0
		c.program.PopFront()
		switch next, ok := c.front(); {
		case !ok:
			c.finish(t)
			onFinish(c.id, t)
		default:
			w, ok := next.(Wait)
			if !ok {
				log.Panicf("car %d arrives into %v", c.id, next)
			}
			c.status = StatusWaiting
			m.streetManager.Enqueue(w.Street, c.id)
		}
		return true
	})
}

// FinishTick 车辆完成时刻
func (m *CarManager) FinishTick(id entity.CarID) (entity.Tick, bool) {
	return m.Get(id).FinishTick()
}

// Driving 行驶中的车辆数
func (m *CarManager) Driving() int {
	return len(m.driving)
}

// Count 各状态的车辆数
func (m *CarManager) Count() map[Status]int {
	return lo.CountValuesBy(m.cars, func(c *Car) Status { return c.status })
}

func isDrive(a Action) bool {
	_, ok := a.(Drive)
	return ok
}
