package measure

import (
	"strconv"
	"time"

	"github.com/askiada/go-almanac/pkg/search/model"
)

// SearchMetricName is the name of the metric holding totals of a whole search.
const SearchMetricName = "search"

// WorkerName returns the metric name of a worker.
func WorkerName(workerIdx int) string {
	return "worker " + strconv.Itoa(workerIdx)
}

type searchMeasure struct {
	Measure
}

func (sm *searchMeasure) New(search *model.SearchInfo) error {
	sm.AddMetric(SearchMetricName)

	for i := range search.Workers {
		sm.AddMetric(WorkerName(i))
	}

	return nil
}

func (sm *searchMeasure) OnDispatch(*model.SearchInfo, model.BatchInfo) error {
	return nil
}

func (sm *searchMeasure) OnResult(_ *model.SearchInfo, result model.ResultInfo) error {
	seeds := result.Batch.Seeds()
	sm.AddMetric(WorkerName(result.Worker)).AddBatch(seeds, result.Elapsed)
	sm.GetMetric(SearchMetricName).AddBatch(seeds, result.Elapsed)

	return nil
}

func (sm *searchMeasure) Finish(search *model.SearchInfo, _ model.ResultInfo) error {
	sm.GetMetric(SearchMetricName).SetTotalDuration(time.Since(search.StartTime))

	return nil
}

// SearchMeasure returns an option recording the batches evaluated by each worker into measure.
func SearchMeasure(measure Measure) model.SearchOption {
	return &searchMeasure{measure}
}
