package logging

import (
	"time"

	"github.com/askiada/go-almanac/pkg/search/model"
)

type searchLogger struct {
	logger Logger
}

// SearchLogger returns an option logging the progress of a search. Batches are logged at debug level.
func SearchLogger(logger Logger) model.SearchOption {
	if logger == nil {
		logger = NewNop()
	}

	return &searchLogger{logger: logger}
}

func (sl *searchLogger) New(search *model.SearchInfo) error {
	for _, seedRange := range search.Ranges {
		sl.logger.Info("queuing batches",
			"run_id", search.ID,
			"mode", search.Mode,
			"start", seedRange.Start,
			"end", seedRange.End,
			"batches", seedRange.Batches,
		)
	}

	sl.logger.Info("search started",
		"run_id", search.ID,
		"mode", search.Mode,
		"workers", search.Workers,
		"batches", search.TotalBatches,
		"seeds", search.TotalSeeds,
	)

	return nil
}

func (sl *searchLogger) OnDispatch(search *model.SearchInfo, batch model.BatchInfo) error {
	sl.logger.Debug("dispatching batch",
		"run_id", search.ID,
		"batch", batch.Index,
		"start", batch.Start,
		"end", batch.End,
	)

	return nil
}

func (sl *searchLogger) OnResult(search *model.SearchInfo, result model.ResultInfo) error {
	sl.logger.Debug("received batch result",
		"run_id", search.ID,
		"worker", result.Worker,
		"batch", result.Batch.Index,
		"seed", result.Seed,
		"location", result.Location,
		"elapsed", result.Elapsed,
		"done", result.Done,
		"total", search.TotalBatches,
	)

	return nil
}

func (sl *searchLogger) Finish(search *model.SearchInfo, best model.ResultInfo) error {
	sl.logger.Info("search finished",
		"run_id", search.ID,
		"seed", best.Seed,
		"location", best.Location,
		"elapsed", time.Since(search.StartTime),
	)

	return nil
}
