package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/entity"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/task"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/input"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/randengine"
)

// queueRecorder 按道路记录加入排队与放行的车辆顺序
type queueRecorder struct {
	enqueued map[entity.StreetID][]entity.CarID
	released map[entity.StreetID][]entity.CarID
	last     map[entity.StreetID]entity.Tick
	double   int // 同一时刻同一道路放行多于一辆车的次数
}

func newQueueRecorder() *queueRecorder {
	return &queueRecorder{
		enqueued: make(map[entity.StreetID][]entity.CarID),
		released: make(map[entity.StreetID][]entity.CarID),
		last:     make(map[entity.StreetID]entity.Tick),
	}
}

func (r *queueRecorder) Enqueued(_ entity.Tick, street entity.StreetID, car entity.CarID) {
	r.enqueued[street] = append(r.enqueued[street], car)
}

func (r *queueRecorder) Released(t entity.Tick, street entity.StreetID, car entity.CarID) {
	if last, ok := r.last[street]; ok && last == t {
		r.double++
	}
	r.last[street] = t
	r.released[street] = append(r.released[street], car)
}

func TestRandomInstances(t *testing.T) {
	o := randengine.DefaultOptions()
	rc := runtimeConfig(t, nil)
	for seed := uint64(0); seed < 30; seed++ {
		e := randengine.New(seed)
		n := e.Network(o)
		s := e.Schedule(n, o)

		ctx := task.NewContext(n, s, rc)
		rec := newQueueRecorder()
		ctx.SetTracer(rec)
		first, err := ctx.Run()
		require.NoError(t, err)
		second, err := task.Evaluate(n, s, rc)
		require.NoError(t, err)

		// 相同输入得到相同结果
		assert.Equal(t, first, second, "seed %d", seed)
		// 增量累计与独立汇总一致
		assert.Equal(t, first.Score, task.Aggregate(first.PerCar, first.Duration, first.Bonus))

		finished := 0
		for _, c := range first.PerCar {
			if !c.Finished {
				assert.Equal(t, int64(0), c.Points)
				continue
			}
			finished++
			assert.Less(t, int32(c.FinishTick), first.Duration)
			assert.GreaterOrEqual(t, c.Points, int64(first.Bonus))
		}
		assert.Equal(t, first.Finished, finished)

		// 每条道路按加入排队的顺序放行，每步至多放行一辆
		assert.Zero(t, rec.double, "seed %d", seed)
		for id, released := range rec.released {
			enqueued := rec.enqueued[id]
			require.LessOrEqual(t, len(released), len(enqueued), "seed %d street %d", seed, id)
			assert.Equal(t, enqueued[:len(released)], released, "seed %d street %d", seed, id)
		}
	}
}

func TestRandomInstancesWithoutLights(t *testing.T) {
	o := randengine.DefaultOptions()
	rc := runtimeConfig(t, nil)
	for seed := uint64(0); seed < 10; seed++ {
		n := randengine.New(seed).Network(o)
		res, err := task.Evaluate(n, &input.Schedule{}, rc)
		require.NoError(t, err)

		// 永远红灯时只有单道路行程在第0步完成
		single := 0
		for _, p := range n.CarPaths {
			if len(p.Streets) == 1 {
				single++
			}
		}
		assert.Equal(t, single, res.Finished)
		assert.Equal(t, int64(single)*task.Points(0, n.Header.Duration, n.Header.Bonus), res.Score)
	}
}

func TestLongerGreenNeverHurtsSingleLight(t *testing.T) {
	// 单灯路口永远绿灯，与绿灯时长无关
	o := randengine.DefaultOptions()
	o.PUnscheduled = 0
	rc := runtimeConfig(t, nil)
	e := randengine.New(5)
	n := e.Network(o)
	s := e.Schedule(n, o)
	base, err := task.Evaluate(n, s, rc)
	require.NoError(t, err)

	for i := range s.Intersections {
		if len(s.Intersections[i].Lights) == 1 {
			s.Intersections[i].Lights[0].Duration += 7
		}
	}
	changed, err := task.Evaluate(n, s, rc)
	require.NoError(t, err)
	assert.Equal(t, base.Score, changed.Score)
}
