package car_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity/car"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity/street"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
)

// 道路ID：londres=0 amsterdam=1 athenes=2 rome=3 moscou=4
func newStreets(t *testing.T) *street.StreetManager {
	t.Helper()
	m := street.NewManager(nil)
	require.NoError(t, m.Init([]input.Street{
		{Start: 2, End: 0, Name: "rue-de-londres", Length: 1},
		{Start: 0, End: 1, Name: "rue-d-amsterdam", Length: 1},
		{Start: 3, End: 1, Name: "rue-d-athenes", Length: 1},
		{Start: 2, End: 3, Name: "rue-de-rome", Length: 2},
		{Start: 1, End: 2, Name: "rue-de-moscou", Length: 3},
	}))
	return m
}

func examplePaths() []input.CarPath {
	return []input.CarPath{
		{Streets: []string{"rue-de-londres", "rue-d-amsterdam", "rue-de-moscou", "rue-de-rome"}},
		{Streets: []string{"rue-d-athenes", "rue-de-moscou", "rue-de-londres"}},
	}
}

func TestBuildExample(t *testing.T) {
	streets := newStreets(t)
	c := config.Default().Control

	p, err := car.Build(0, examplePaths()[0], streets, c)
	require.NoError(t, err)
	assert.Equal(t, []entity.StreetID{0, 1, 4, 3}, p.Route)
	assert.Equal(t, []car.Action{
		car.Wait{Street: 0},
		car.Drive{Street: 1, Length: 1}, car.Wait{Street: 1},
		car.Drive{Street: 4, Length: 3}, car.Wait{Street: 4},
		car.Drive{Street: 3, Length: 2},
	}, p.Actions)

	p, err = car.Build(1, examplePaths()[1], streets, c)
	require.NoError(t, err)
	assert.Equal(t, []car.Action{
		car.Wait{Street: 2},
		car.Drive{Street: 4, Length: 3}, car.Wait{Street: 4},
		car.Drive{Street: 0, Length: 1},
	}, p.Actions)
}

func TestBuildSingleStreet(t *testing.T) {
	streets := newStreets(t)
	path := input.CarPath{Streets: []string{"rue-de-rome"}}

	p, err := car.Build(0, path, streets, config.Control{SingleStreetRoute: config.SingleStreetFinish})
	require.NoError(t, err)
	assert.Empty(t, p.Actions)

	p, err = car.Build(0, path, streets, config.Control{SingleStreetRoute: config.SingleStreetStall})
	require.NoError(t, err)
	assert.Equal(t, []car.Action{car.Wait{Street: 3}}, p.Actions)
}

func TestBuildUnknownStreet(t *testing.T) {
	_, err := car.Build(4, input.CarPath{Streets: []string{"rue-de-rome", "rue-de-paris"}},
		newStreets(t), config.Default().Control)
	assert.ErrorIs(t, err, entity.ErrUnknownStreet)
	assert.Contains(t, err.Error(), "car 4")
	assert.Contains(t, err.Error(), "rue-de-paris")
}

func TestBuildDisconnected(t *testing.T) {
	streets := newStreets(t)
	// rome终点为路口3，londres起点为路口2
	path := input.CarPath{Streets: []string{"rue-de-rome", "rue-de-londres"}}

	p, err := car.Build(0, path, streets, config.Control{})
	require.NoError(t, err)
	assert.Len(t, p.Actions, 2)

	_, err = car.Build(0, path, streets, config.Control{StrictRoutes: true})
	assert.ErrorIs(t, err, entity.ErrDisconnectedRoute)
}

func TestCarManagerLifecycle(t *testing.T) {
	streets := newStreets(t)
	m := car.NewManager(nil)
	require.NoError(t, m.Init(examplePaths(), streets))
	assert.Equal(t, 2, m.Len())

	finished := map[entity.CarID]entity.Tick{}
	onFinish := func(id entity.CarID, t entity.Tick) { finished[id] = t }

	m.Start(onFinish)
	assert.Empty(t, finished)
	assert.Equal(t, []entity.CarID{0}, streets.Waiting(0))
	assert.Equal(t, []entity.CarID{1}, streets.Waiting(2))

	// t=0 athenes放行
	m.Release(1)
	c := m.Get(1)
	assert.Equal(t, car.StatusDriving, c.Status())
	assert.Equal(t, int32(1), c.Distance())
	m.Arrive(0, onFinish)
	assert.Equal(t, 1, m.Driving())

	// t=1, t=2
	m.Advance()
	m.Arrive(1, onFinish)
	m.Advance()
	m.Arrive(2, onFinish)
	assert.Equal(t, car.StatusWaiting, c.Status())
	assert.Equal(t, int32(0), c.Distance())
	assert.Equal(t, []entity.CarID{1}, streets.Waiting(4))
	assert.Equal(t, 0, m.Driving())

	// t=3 moscou放行，londres长度为1，当步到达
	m.Advance()
	m.Release(1)
	m.Arrive(3, onFinish)
	assert.Equal(t, map[entity.CarID]entity.Tick{1: 3}, finished)
	tick, ok := m.FinishTick(1)
	assert.True(t, ok)
	assert.Equal(t, entity.Tick(3), tick)
	assert.Empty(t, c.Program())

	_, ok = m.FinishTick(0)
	assert.False(t, ok)
	assert.Equal(t, map[car.Status]int{car.StatusWaiting: 1, car.StatusFinished: 1}, m.Count())

	assert.Panics(t, func() { m.Release(1) })
	assert.Panics(t, func() { m.Get(2) })
	_, err := m.GetOrError(2)
	assert.Error(t, err)
}

func TestCarManagerSingleStreetFinish(t *testing.T) {
	streets := newStreets(t)
	m := car.NewManager(nil)
	require.NoError(t, m.Init([]input.CarPath{{Streets: []string{"rue-de-rome"}}}, streets))

	finished := map[entity.CarID]entity.Tick{}
	m.Start(func(id entity.CarID, t entity.Tick) { finished[id] = t })
	assert.Equal(t, map[entity.CarID]entity.Tick{0: 0}, finished)
	assert.Nil(t, streets.Waiting(3))
	assert.Equal(t, car.StatusFinished, m.Get(0).Status())
}

func TestCarManagerInitError(t *testing.T) {
	m := car.NewManager(nil)
	err := m.Init([]input.CarPath{{Streets: []string{"nowhere"}}}, newStreets(t))
	assert.ErrorIs(t, err, entity.ErrUnknownStreet)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "stalled", car.StatusStalled.String())
	assert.Equal(t, "Status(9)", car.Status(9).String())
	assert.Equal(t, "Drive(4, 3)", car.Drive{Street: 4, Length: 3}.String())
}
