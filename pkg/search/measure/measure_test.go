package measure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-almanac/pkg/search/measure"
	"github.com/askiada/go-almanac/pkg/search/model"
)

func TestDefaultMetric(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	mt := msr.AddMetric("worker 0")

	assert.Zero(t, mt.AVGDuration())
	assert.Zero(t, mt.AVGSeedDuration())

	mt.AddBatch(10, 10*time.Millisecond)
	mt.AddBatch(30, 30*time.Millisecond)

	assert.Equal(t, int64(2), mt.Batches())
	assert.Equal(t, int64(40), mt.Seeds())
	assert.Equal(t, 20*time.Millisecond, mt.AVGDuration())
	assert.Equal(t, time.Millisecond, mt.AVGSeedDuration())

	assert.Same(t, mt, msr.AddMetric("worker 0"))
	assert.Len(t, msr.AllMetrics(), 1)
}

func TestSearchMeasure(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	opt := measure.SearchMeasure(msr)
	info := &model.SearchInfo{StartTime: time.Now().Add(-time.Second), Workers: 2}

	require.NoError(t, opt.New(info))
	require.NoError(t, opt.OnDispatch(info, model.BatchInfo{Start: 0, End: 9}))
	require.NoError(t, opt.OnResult(info, model.ResultInfo{
		Batch:   model.BatchInfo{Start: 0, End: 9},
		Worker:  1,
		Elapsed: time.Second,
	}))
	require.NoError(t, opt.OnResult(info, model.ResultInfo{
		Batch:   model.BatchInfo{Start: 10, End: 14},
		Worker:  1,
		Elapsed: 3 * time.Second,
	}))
	require.NoError(t, opt.Finish(info, model.ResultInfo{}))

	metrics := msr.AllMetrics()
	assert.Len(t, metrics, 3)
	assert.Zero(t, metrics[measure.WorkerName(0)].Batches())
	assert.Equal(t, int64(2), metrics[measure.WorkerName(1)].Batches())
	assert.Equal(t, int64(15), metrics[measure.WorkerName(1)].Seeds())
	assert.Equal(t, 2*time.Second, metrics[measure.WorkerName(1)].AVGDuration())
	assert.Equal(t, int64(15), metrics[measure.SearchMetricName].Seeds())
	assert.Positive(t, metrics[measure.SearchMetricName].GetTotalDuration())
}
