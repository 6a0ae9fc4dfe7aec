package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/clock"
)

func TestClockRun(t *testing.T) {
	c := clock.New(3)
	steps := make([]int32, 0)
	for ; c.Running(); c.Next() {
		steps = append(steps, c.InternalStep)
	}
	assert.Equal(t, []int32{0, 1, 2}, steps)
	assert.Equal(t, int32(3), c.Duration())
	assert.Equal(t, "3/3", c.String())

	c.Init()
	assert.Equal(t, int32(0), c.InternalStep)
	assert.True(t, c.Running())
}

func TestClockZeroDuration(t *testing.T) {
	c := clock.New(0)
	assert.False(t, c.Running())
}
