package randengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/randengine"
)

func TestGeneratedDocumentsParse(t *testing.T) {
	o := randengine.DefaultOptions()
	for seed := uint64(0); seed < 20; seed++ {
		e := randengine.New(seed)
		n := e.Network(o)
		s := e.Schedule(n, o)

		assert.Len(t, n.Streets, int(o.Intersections+o.ExtraStreets))
		assert.Len(t, n.CarPaths, int(o.Cars))

		pn, err := input.ParseNetwork("gen.in", input.FormatNetwork(n))
		require.NoError(t, err)
		assert.Equal(t, n, pn)

		ps, err := input.ParseSchedule("gen.out", input.FormatSchedule(s))
		require.NoError(t, err)
		assert.Equal(t, len(s.Intersections), len(ps.Intersections))
	}
}

func TestGeneratedPathsAreConnected(t *testing.T) {
	o := randengine.DefaultOptions()
	n := randengine.New(3).Network(o)
	byName := make(map[string]input.Street, len(n.Streets))
	for _, s := range n.Streets {
		byName[s.Name] = s
	}
	for _, p := range n.CarPaths {
		require.NotEmpty(t, p.Streets)
		assert.LessOrEqual(t, len(p.Streets), int(o.MaxPath))
		for i := 1; i < len(p.Streets); i++ {
			assert.Equal(t, byName[p.Streets[i-1]].End, byName[p.Streets[i]].Start)
		}
	}
}

func TestSameSeedSameInstance(t *testing.T) {
	o := randengine.DefaultOptions()
	a, b := randengine.New(11), randengine.New(11)
	assert.Equal(t, a.Network(o), b.Network(o))
}

func TestEngineHelpers(t *testing.T) {
	e := randengine.New(1)
	for i := 0; i < 100; i++ {
		v := e.Between(2, 4)
		assert.GreaterOrEqual(t, v, int32(2))
		assert.LessOrEqual(t, v, int32(4))
		assert.Equal(t, int32(1), e.DiscreteDistribution([]float64{0, 1, 0}))
	}
	assert.False(t, e.PTrue(0))
	assert.Panics(t, func() { e.Between(3, 2) })
}

func TestGeneratedLengthsFavourShortStreets(t *testing.T) {
	o := randengine.DefaultOptions()
	o.ExtraStreets = 400
	n := randengine.New(7).Network(o)
	counts := make(map[int32]int)
	for _, s := range n.Streets {
		require.GreaterOrEqual(t, s.Length, int32(1))
		require.LessOrEqual(t, s.Length, o.MaxLength)
		counts[s.Length]++
	}
	assert.Greater(t, counts[1], counts[o.MaxLength])
}
