package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/output"
)

func defaultRuntimeConfig(t *testing.T) *config.RuntimeConfig {
	t.Helper()
	rc, err := config.NewRuntimeConfig(config.Default())
	require.NoError(t, err)
	return rc
}

func TestBatchSinglePair(t *testing.T) {
	var buf bytes.Buffer
	failed := batch(context.Background(), &buf,
		[]string{filepath.Join("testdata", "example.in")},
		[]string{filepath.Join("testdata", "example.out")},
		defaultRuntimeConfig(t), output.NopRecorder{},
	)
	assert.Equal(t, 0, failed)
	assert.Equal(t, filepath.Join("testdata", "example.out")+" score: 1002\n", buf.String())
}

func TestBatchTotal(t *testing.T) {
	in := filepath.Join("testdata", "example.in")
	out := filepath.Join("testdata", "example.out")
	var buf bytes.Buffer
	failed := batch(context.Background(), &buf,
		[]string{in, in}, []string{out, out},
		defaultRuntimeConfig(t), output.NopRecorder{},
	)
	assert.Equal(t, 0, failed)
	assert.Equal(t, out+" score: 1002\n"+out+" score: 1002\ntotal score: 2,004\n", buf.String())
}

func TestBatchContinuesAfterFailure(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.out")
	require.NoError(t, os.WriteFile(bad, []byte("1\n1\n1\nrue-de-paris 1\n"), 0o644))
	in := filepath.Join("testdata", "example.in")
	out := filepath.Join("testdata", "example.out")

	var buf bytes.Buffer
	failed := batch(context.Background(), &buf,
		[]string{in, in}, []string{bad, out},
		defaultRuntimeConfig(t), output.NopRecorder{},
	)
	assert.Equal(t, 1, failed)
	assert.Equal(t, out+" score: 1002\ntotal score: 1,002\n", buf.String())
}

func TestFilesFlag(t *testing.T) {
	var f files
	require.NoError(t, f.Set("a.in"))
	require.NoError(t, f.Set("b.in"))
	assert.Equal(t, files{"a.in", "b.in"}, f)
	assert.Equal(t, "a.in,b.in", f.String())
}
