package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
)

func TestLoadDefault(t *testing.T) {
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.SingleStreetFinish, c.Control.SingleStreetRoute)
	assert.False(t, c.Control.StrictRoutes)
	assert.Equal(t, "scores", c.Output.Col)
}

func TestParseKeepsDefaults(t *testing.T) {
	c, err := config.Parse([]byte("control:\n  strict_routes: true\n  horizon: 12\n"))
	require.NoError(t, err)
	assert.True(t, c.Control.StrictRoutes)
	assert.Equal(t, int32(12), c.Control.Horizon)
	assert.Equal(t, config.SingleStreetFinish, c.Control.SingleStreetRoute)
	assert.Equal(t, "scorer", c.Output.DB)
}

func TestParseRejectsUnknownField(t *testing.T) {
	_, err := config.Parse([]byte("control:\n  strict_route: true\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("control:\n  single_street_route: stall\noutput:\n  uri: mongodb://localhost:27017\n"), 0o644))
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.SingleStreetStall, c.Control.SingleStreetRoute)
	assert.Equal(t, "mongodb://localhost:27017", c.Output.URI)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestNewRuntimeConfig(t *testing.T) {
	rc, err := config.NewRuntimeConfig(config.Config{})
	require.NoError(t, err)
	assert.Equal(t, config.SingleStreetFinish, rc.C.SingleStreetRoute)

	_, err = config.NewRuntimeConfig(config.Config{Control: config.Control{SingleStreetRoute: "skip"}})
	assert.Error(t, err)

	_, err = config.NewRuntimeConfig(config.Config{Control: config.Control{Horizon: -1}})
	assert.Error(t, err)
}
