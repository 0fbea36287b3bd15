package search

import (
	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/search/model"
)

const (
	DefaultWorkers   = 20
	DefaultBatchSize = 100_000
)

type Option func(e *Engine)

// Workers sets the number of workers evaluating batches.
func Workers(workers int) Option {
	return func(e *Engine) {
		e.workers = workers
	}
}

// BatchSize sets the maximum number of seeds evaluated by a worker at once in ranges mode.
func BatchSize(batchSize int64) Option {
	return func(e *Engine) {
		e.batchSize = batchSize
	}
}

// StageOrder sets the stages a seed goes through. It defaults to the canonical order.
func StageOrder(stages ...almanac.Stage) Option {
	return func(e *Engine) {
		e.order = append([]almanac.Stage(nil), stages...)
	}
}

// WithSearchOptions adds options notified during every search.
func WithSearchOptions(opts ...model.SearchOption) Option {
	return func(e *Engine) {
		e.opts = append(e.opts, opts...)
	}
}
