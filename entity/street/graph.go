package street

import (
	"slices"

	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// topology 路口有向图
// 说明：同一对路口之间的多条道路合并为一条边，道路列表保存在lines中；起终点相同的道路只添加节点
type topology struct {
	g     *simple.DirectedGraph
	lines map[[2]int64][]entity.StreetID // (起点, 终点)->道路ID，升序
}

// buildGraph 构建路口有向图
func buildGraph(streets []*Street) *topology {
	t := &topology{
		g:     simple.NewDirectedGraph(),
		lines: make(map[[2]int64][]entity.StreetID),
	}
	for _, s := range streets {
		from, to := simple.Node(s.start), simple.Node(s.end)
		if t.g.Node(from.ID()) == nil {
			t.g.AddNode(from)
		}
		if t.g.Node(to.ID()) == nil {
			t.g.AddNode(to)
		}
		key := [2]int64{from.ID(), to.ID()}
		t.lines[key] = append(t.lines[key], s.id)
		if from == to {
			continue
		}
		if !t.g.HasEdgeFromTo(from.ID(), to.ID()) {
			t.g.SetEdge(t.g.NewEdge(from, to))
		}
	}
	return t
}

// has 路口是否是某条道路的端点
func (t *topology) has(id entity.IntersectionID) bool {
	return t.g.Node(int64(id)) != nil
}

// incoming 驶入路口id的所有道路，升序
func (t *topology) incoming(id entity.IntersectionID) []entity.StreetID {
	if !t.has(id) {
		return nil
	}
	to := int64(id)
	res := slices.Clone(t.lines[[2]int64{to, to}])
	from := t.g.To(to)
	for from.Next() {
		res = append(res, t.lines[[2]int64{from.Node().ID(), to}]...)
	}
	slices.Sort(res)
	return res
}

// components 强连通分量数量
func (t *topology) components() int {
	return len(topo.TarjanSCC(t.g))
}

// nodes 路口数量
func (t *topology) nodes() int {
	return t.g.Nodes().Len()
}
