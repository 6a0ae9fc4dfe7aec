package randengine

import (
	"fmt"

	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
)

// Options 随机实例的规模参数
type Options struct {
	Intersections int32 // 路口数，不小于2
	ExtraStreets  int32 // 环路之外额外的道路数
	Cars          int32
	MaxLength     int32 // 道路最大长度
	MaxPath       int32 // 路线最多包含的道路数
	MaxGreen      int32 // 最大绿灯时长
	Duration      int32
	Bonus         int32

	PUnscheduled float64 // 道路不出现在排程中的概率
	PStall       float64 // 路线在路口停止延伸的概率
}

// DefaultOptions 小规模实例
func DefaultOptions() Options {
	return Options{
		Intersections: 6,
		ExtraStreets:  8,
		Cars:          20,
		MaxLength:     4,
		MaxPath:       6,
		MaxGreen:      3,
		Duration:      40,
		Bonus:         100,
		PUnscheduled:  0.1,
		PStall:        0.1,
	}
}

// lengthWeights 道路长度的分布，短路更常见：P(l) ∝ 1/l
func lengthWeights(n int32) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(i+1)
	}
	return w
}

// Network 生成随机路网
// 算法说明：
// 1. 先生成环路i->i+1，保证每个路口都有出路；道路长度偏向短路
// 2. 再随机添加道路（允许自环和平行道路）
// 3. 每条路线从随机道路出发，沿出路随机行驶
func (e *Engine) Network(o Options) *input.Network {
	n := &input.Network{}
	out := make([][]int32, o.Intersections) // 路口->从该路口出发的道路序号
	weights := lengthWeights(max(o.MaxLength, 1))
	add := func(start, end int32) {
		id := int32(len(n.Streets))
		n.Streets = append(n.Streets, input.Street{
			Start:  start,
			End:    end,
			Name:   fmt.Sprintf("street-%d", id),
			Length: e.DiscreteDistribution(weights) + 1,
		})
		out[start] = append(out[start], id)
	}
	for i := int32(0); i < o.Intersections; i++ {
		add(i, (i+1)%o.Intersections)
	}
	for i := int32(0); i < o.ExtraStreets; i++ {
		add(e.Int31n(o.Intersections), e.Int31n(o.Intersections))
	}

	n.CarPaths = make([]input.CarPath, o.Cars)
	for i := range n.CarPaths {
		cur := e.Int31n(int32(len(n.Streets)))
		path := []string{n.Streets[cur].Name}
		for int32(len(path)) < o.MaxPath && !e.PTrue(o.PStall) {
			next := out[n.Streets[cur].End]
			cur = next[e.Intn(len(next))]
			path = append(path, n.Streets[cur].Name)
		}
		n.CarPaths[i] = input.CarPath{Streets: path}
	}
	n.Header = input.Header{
		Duration:      o.Duration,
		Intersections: o.Intersections,
		Streets:       int32(len(n.Streets)),
		Cars:          o.Cars,
		Bonus:         o.Bonus,
	}
	return n
}

// Schedule 为路网生成随机排程
// 说明：每个路口的入口道路以随机顺序出现，部分道路不被排程（永远红灯）
func (e *Engine) Schedule(n *input.Network, o Options) *input.Schedule {
	incoming := make([][]string, n.Header.Intersections)
	for _, s := range n.Streets {
		incoming[s.End] = append(incoming[s.End], s.Name)
	}
	s := &input.Schedule{}
	for _, i := range e.Perm(len(incoming)) {
		names := incoming[i]
		if len(names) == 0 {
			continue
		}
		block := input.IntersectionSchedule{IntersectionID: int32(i)}
		for _, j := range e.Perm(len(names)) {
			if e.PTrue(o.PUnscheduled) {
				continue
			}
			block.Lights = append(block.Lights, input.Light{
				Street:   names[j],
				Duration: e.Between(1, o.MaxGreen),
			})
		}
		s.Intersections = append(s.Intersections, block)
	}
	return s
}
