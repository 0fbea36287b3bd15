package drawer_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/almanac/parser"
	"github.com/askiada/go-almanac/pkg/search"
	"github.com/askiada/go-almanac/pkg/search/drawer"
	"github.com/askiada/go-almanac/pkg/search/measure"
	"github.com/askiada/go-almanac/pkg/search/model"
)

func createAlmanac(t *testing.T) *almanac.Almanac {
	t.Helper()

	input, err := parser.ParseFile("../../almanac/parser/testdata/example.txt")
	require.NoError(t, err)

	return input.Almanac
}

func TestSearchDrawer(t *testing.T) {
	t.Parallel()

	alm := createAlmanac(t)
	buf := &bytes.Buffer{}
	msr := measure.NewDefaultMeasure()

	eng, err := search.New(alm,
		search.Workers(3),
		search.BatchSize(2),
		search.WithSearchOptions(
			measure.SearchMeasure(msr),
			drawer.SearchDrawer(drawer.NewDOTDrawerTo(buf), alm, msr),
		),
	)
	require.NoError(t, err)

	_, err = eng.LowestInRanges(t.Context(), search.SeedRange{Start: 79, End: 92}, search.SeedRange{Start: 55, End: 67})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "strict digraph")
	assert.Contains(t, out, `"seed" -> "soil"`)
	assert.Contains(t, out, `label="2 rules"`)
	assert.Contains(t, out, `"fertilizer" -> "water"`)
	assert.Contains(t, out, `label="4 rules"`)
	assert.Contains(t, out, `"dispatcher" -> "worker 0"`)
	assert.Contains(t, out, `"worker 2" -> "collector"`)
	assert.Contains(t, out, "total: ")
}

func TestSearchDrawerStagesFromSearch(t *testing.T) {
	t.Parallel()

	fileName := filepath.Join(t.TempDir(), "search.dot")
	opt := drawer.SearchDrawer(drawer.NewDOTDrawer(fileName), nil, nil)
	info := &model.SearchInfo{
		StartTime: time.Now(),
		Workers:   1,
		Stages:    []string{"seed", "soil", "location"},
	}

	require.NoError(t, opt.New(info))
	require.NoError(t, opt.Finish(info, model.ResultInfo{}))

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"seed" -> "soil"`)
	assert.Contains(t, string(content), `"soil" -> "location"`)
	assert.Contains(t, string(content), `"worker 0" -> "collector"`)
}

func TestAddMeasure(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	drw := drawer.NewDOTDrawerTo(buf)

	for _, name := range []string{drawer.CollectorStep, measure.WorkerName(0), measure.WorkerName(1), measure.WorkerName(2)} {
		require.NoError(t, drw.AddStep(name))
	}

	for _, name := range []string{measure.WorkerName(0), measure.WorkerName(1), measure.WorkerName(2)} {
		require.NoError(t, drw.AddLink(name, drawer.CollectorStep))
	}

	msr := measure.NewDefaultMeasure()
	msr.AddMetric(measure.SearchMetricName).AddBatch(30, 3*time.Second)
	msr.AddMetric(measure.WorkerName(0)).AddBatch(10, time.Second)
	msr.AddMetric(measure.WorkerName(1)).AddBatch(20, 2*time.Second)
	msr.AddMetric(measure.WorkerName(2))

	require.NoError(t, drw.AddMeasure(msr))
	require.NoError(t, drw.Draw())

	out := buf.String()
	assert.Contains(t, out, `label="1s"`)
	assert.Contains(t, out, `label="2s"`)
	assert.Contains(t, out, "idle")
	assert.Contains(t, out, "1 batches, 20 seeds")
}

func TestAddMeasureEmpty(t *testing.T) {
	t.Parallel()

	drw := drawer.NewDOTDrawerTo(&bytes.Buffer{})
	assert.NoError(t, drw.AddMeasure(measure.NewDefaultMeasure()))
}

func TestSetTotalTimeUnknownStep(t *testing.T) {
	t.Parallel()

	drw := drawer.NewDOTDrawerTo(&bytes.Buffer{})
	assert.Error(t, drw.SetTotalTime("unknown", time.Second))
}
