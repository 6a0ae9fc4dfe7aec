package street

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
)

// StreetManager Street管理器
// 功能：管理所有Street实体和道路末端的排队，提供道路名到ID的转换、查找、路网连通性查询等功能
type StreetManager struct {
	ctx entity.ITaskContext

	data    map[string]entity.StreetID // 道路名->道路ID映射表，只在初始化阶段使用
	streets []*Street                  // 下标为道路ID

	queues *queueSet // 道路末端排队

	graph *topology // 路口有向图
}

// NewManager 创建Street管理器实例
// 功能：初始化Street管理器，创建内部数据结构
// 参数：ctx-任务上下文
// 返回：新创建的Street管理器实例
func NewManager(ctx entity.ITaskContext) *StreetManager {
	return &StreetManager{
		ctx:     ctx,
		data:    make(map[string]entity.StreetID),
		streets: make([]*Street, 0),
		queues:  newQueueSet(0),
		graph:   buildGraph(nil),
	}
}

// Init 初始化所有Street
// 功能：按路网文件中的顺序为道路分配ID，建立道路名映射和路口有向图
// 参数：pbs-路网文件中的道路列表
// 返回：道路名重复时返回ErrDuplicateStreet
func (m *StreetManager) Init(pbs []input.Street) error {
	m.streets = lo.Map(pbs, func(pb input.Street, i int) *Street {
		return newStreet(entity.StreetID(i), pb)
	})
	m.data = make(map[string]entity.StreetID, len(m.streets))
	for _, s := range m.streets {
		if old, ok := m.data[s.name]; ok {
			return fmt.Errorf("%w: %q used by street %d and %d", entity.ErrDuplicateStreet, s.name, old, s.id)
		}
		m.data[s.name] = s.id
	}
	m.queues = newQueueSet(len(m.streets))
	m.graph = buildGraph(m.streets)
	log.Debugf("Street: %d, Intersection: %d", len(m.streets), m.graph.nodes())
	return nil
}

// Get 根据ID获取Street实例，如果不存在则panic
func (m *StreetManager) Get(id entity.StreetID) entity.IStreet {
	if id < 0 || int(id) >= len(m.streets) {
		log.Panicf("no id %d in street data", id)
	}
	return m.streets[id]
}

// Lookup 根据道路名获取Street ID
// 返回：道路ID，如果不存在则返回ErrUnknownStreet
func (m *StreetManager) Lookup(name string) (entity.StreetID, error) {
	if id, ok := m.data[name]; ok {
		return id, nil
	}
	return -1, entity.UnknownStreet(name)
}

func (m *StreetManager) Len() int {
	return len(m.streets)
}

// Connected 判断车辆能否从道路from直接驶入道路to
func (m *StreetManager) Connected(from, to entity.StreetID) bool {
	return m.streets[from].end == m.streets[to].start
}

// Components 路口有向图的强连通分量数量
func (m *StreetManager) Components() int {
	return m.graph.components()
}

// HasIntersection 路口是否是某条道路的起点或终点
func (m *StreetManager) HasIntersection(id entity.IntersectionID) bool {
	return m.graph.has(id)
}

// Incoming 驶入路口id的所有道路，按道路ID升序
func (m *StreetManager) Incoming(id entity.IntersectionID) []entity.StreetID {
	return m.graph.incoming(id)
}

// Enqueue 车辆到达道路末端，加入该道路的排队
func (m *StreetManager) Enqueue(id entity.StreetID, car entity.CarID) {
	m.queues.push(id, car)
}

// Cleanup 移除已清空的排队
func (m *StreetManager) Cleanup() {
	m.queues.cleanup()
}

// Release 绿灯放行
// 功能：按道路ID升序遍历非空排队，对绿灯道路弹出队首车辆并回调release
// 参数：green-道路当前是否为绿灯，release-被放行车辆的处理函数
// 返回：本步放行的车辆数
// 说明：每条道路每步至多放行一辆车，不同路口之间互不影响
func (m *StreetManager) Release(green func(entity.StreetID) bool, release func(entity.StreetID, entity.CarID)) int {
	return m.queues.release(green, release)
}

// Waiting 道路末端的排队车辆，按到达顺序
func (m *StreetManager) Waiting(id entity.StreetID) []entity.CarID {
	return m.queues.waiting(id)
}
