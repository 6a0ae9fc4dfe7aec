package junction

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
)

// JunctionManager Junction管理器
// 功能：编译信号灯排程，回答“某道路某时刻是否为绿灯”
type JunctionManager struct {
	ctx entity.ITaskContext

	data      map[entity.IntersectionID]*Junction
	junctions []*Junction // 按路口ID升序

	schedules []trafficlight.Schedule // 下标为道路ID，零值表示永远红灯
}

// NewManager 创建Junction管理器实例
// 参数：ctx-任务上下文
// 返回：新创建的Junction管理器实例
func NewManager(ctx entity.ITaskContext) *JunctionManager {
	return &JunctionManager{
		ctx:       ctx,
		data:      make(map[entity.IntersectionID]*Junction),
		junctions: make([]*Junction, 0),
		schedules: make([]trafficlight.Schedule, 0),
	}
}

// Init 初始化所有Junction及其信控
// 功能：逐路口编译排程，并展开为以道路ID为下标的绿灯窗口表
// 参数：pb-排程文件解析结果，streetManager-道路管理器
// 返回：道路名不存在（ErrUnknownStreet）、路口重复（ErrDuplicateJunction）或道路重复（ErrDuplicateLight）时返回错误
func (m *JunctionManager) Init(pb *input.Schedule, streetManager entity.IStreetManager) error {
	m.data = make(map[entity.IntersectionID]*Junction, len(pb.Intersections))
	m.junctions = make([]*Junction, 0, len(pb.Intersections))
	m.schedules = make([]trafficlight.Schedule, streetManager.Len())

	owner := make(map[entity.StreetID]entity.IntersectionID)
	for _, base := range pb.Intersections {
		j, err := newJunction(m.ctx, base, streetManager)
		if err != nil {
			return err
		}
		if _, ok := m.data[j.id]; ok {
			return fmt.Errorf("%w: %d", entity.ErrDuplicateJunction, j.id)
		}
		for _, l := range j.lights {
			if other, ok := owner[l.Street]; ok {
				return fmt.Errorf("%w: %q in intersection %d and %d",
					entity.ErrDuplicateLight, streetManager.Get(l.Street).Name(), other, j.id)
			}
			owner[l.Street] = j.id
			m.schedules[l.Street] = l.Schedule
		}
		m.data[j.id] = j
		m.junctions = append(m.junctions, j)
	}
	slices.SortFunc(m.junctions, func(a, b *Junction) int { return cmp.Compare(a.id, b.id) })
	log.Debugf("Junction: %d, Light: %d", len(m.junctions), len(owner))
	return nil
}

// Get 根据ID获取Junction实例，如果不存在则panic
func (m *JunctionManager) Get(id entity.IntersectionID) *Junction {
	if junction, ok := m.data[id]; !ok {
		log.Panicf("no id %d in junction data", id)
		return nil
	} else {
		return junction
	}
}

// GetOrError 根据ID获取Junction实例，如果不存在则返回错误
func (m *JunctionManager) GetOrError(id entity.IntersectionID) (*Junction, error) {
	if junction, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in junction data", id)
	} else {
		return junction, nil
	}
}

// IsGreen 道路id在t时刻是否为绿灯
func (m *JunctionManager) IsGreen(id entity.StreetID, t entity.Tick) bool {
	return m.schedules[id].IsGreen(t)
}

// HasLight 道路是否出现在排程中
func (m *JunctionManager) HasLight(id entity.StreetID) bool {
	return m.schedules[id].Period > 0
}

// Schedule 道路的绿灯窗口
func (m *JunctionManager) Schedule(id entity.StreetID) (trafficlight.Schedule, bool) {
	s := m.schedules[id]
	return s, s.Period > 0
}

// Green 每个有排程的路口在t时刻为绿灯的道路，按路口ID升序
// 说明：一个路口同一时刻至多一条道路为绿灯，没有绿灯的路口不出现在结果中
func (m *JunctionManager) Green(t entity.Tick) []entity.StreetID {
	res := make([]entity.StreetID, 0, len(m.junctions))
	for _, j := range m.junctions {
		if id, ok := j.Green(t); ok {
			res = append(res, id)
		}
	}
	return res
}

// Junctions 有排程的路口ID，升序
func (m *JunctionManager) Junctions() []entity.IntersectionID {
	return lo.Map(m.junctions, func(j *Junction, _ int) entity.IntersectionID { return j.id })
}
