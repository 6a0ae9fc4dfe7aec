package output_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/config"
	"github.com/tsinghua-fib-lab/trafficlight-scorer/utils/output"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewWithoutURI(t *testing.T) {
	r, err := output.New(context.Background(), config.Default().Output)
	require.NoError(t, err)
	assert.IsType(t, output.NopRecorder{}, r)
	assert.NoError(t, r.Record(context.Background(), output.Record{RunID: "x"}))
	assert.NoError(t, r.Close(context.Background()))
}

func TestNewInvalidURI(t *testing.T) {
	_, err := output.New(context.Background(), config.Output{URI: "http://localhost:27017", DB: "scorer", Col: "scores"})
	assert.Error(t, err)
}

func TestRecordDocument(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	raw, err := bson.Marshal(output.Record{
		RunID:    "run",
		Network:  "a.in",
		Schedule: "a.out",
		Score:    1002,
		Finished: 1,
		Cars:     2,
		At:       at,
	})
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "run", doc["run_id"])
	assert.Equal(t, "a.out", doc["schedule"])
	assert.Equal(t, int64(1002), doc["score"])
	assert.Equal(t, int32(2), doc["cars"])
}
