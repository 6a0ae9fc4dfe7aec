package street

import (
	"fmt"
	"slices"

	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/container"
)

// queueSet 所有道路末端的排队
// 功能：每条道路一个FIFO队列，按需创建，清空后在cleanup时移除
// 说明：active始终按道路ID升序，保证每步的放行顺序可复现
type queueSet struct {
	queues []*container.List[entity.CarID] // 下标为道路ID，nil表示没有排队
	active []entity.StreetID               // 存在排队的道路，升序
}

func newQueueSet(n int) *queueSet {
	return &queueSet{
		queues: make([]*container.List[entity.CarID], n),
		active: make([]entity.StreetID, 0),
	}
}

// push 车辆加入道路id的队尾
func (s *queueSet) push(id entity.StreetID, car entity.CarID) {
	q := s.queues[id]
	if q == nil {
		q = container.NewList[entity.CarID](fmt.Sprintf("street-%d", id))
		s.queues[id] = q
		i, found := slices.BinarySearch(s.active, id)
		if found {
			log.Panicf("street %d is active without queue", id)
		}
		s.active = slices.Insert(s.active, i, id)
	}
	q.PushBackValue(car)
}

// cleanup 移除已清空的排队
func (s *queueSet) cleanup() {
	s.active = slices.DeleteFunc(s.active, func(id entity.StreetID) bool {
		if s.queues[id].Empty() {
			s.queues[id] = nil
			return true
		}
		return false
	})
}

// release 对绿灯道路弹出队首车辆
func (s *queueSet) release(green func(entity.StreetID) bool, release func(entity.StreetID, entity.CarID)) int {
	count := 0
	for _, id := range s.active {
		q := s.queues[id]
		if q.Empty() || !green(id) {
			continue
		}
		car, _ := q.PopFront()
		release(id, car)
		count++
	}
	return count
}

// waiting 道路id的排队车辆，按到达顺序
func (s *queueSet) waiting(id entity.StreetID) []entity.CarID {
	if q := s.queues[id]; q != nil {
		return q.Values()
	}
	return nil
}
