package street

import (
	"fmt"

	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
)

// Street 道路实体
// 功能：表示路网中的一条有向道路，加载后不可变
type Street struct {
	id     entity.StreetID
	name   string
	start  entity.IntersectionID // 起点路口
	end    entity.IntersectionID // 终点路口
	length int32                 // 通行所需tick数
}

func newStreet(id entity.StreetID, base input.Street) *Street {
	return &Street{
		id:     id,
		name:   base.Name,
		start:  entity.IntersectionID(base.Start),
		end:    entity.IntersectionID(base.End),
		length: base.Length,
	}
}

// ID 获取Street的唯一标识符，如果Street为nil则返回-1
func (s *Street) ID() entity.StreetID {
	if s == nil {
		return -1
	}
	return s.id
}

func (s *Street) Name() string {
	return s.name
}

func (s *Street) Start() entity.IntersectionID {
	return s.start
}

func (s *Street) End() entity.IntersectionID {
	return s.end
}

func (s *Street) Length() int32 {
	return s.length
}

func (s *Street) String() string {
	return fmt.Sprintf("Street %d(%s: %d->%d, L=%d)", s.id, s.name, s.start, s.end, s.length)
}
