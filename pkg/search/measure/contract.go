package measure

import "time"

type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

type Metric interface {
	AddBatch(seeds int64, elapsed time.Duration)
	Batches() int64
	Seeds() int64
	AVGDuration() time.Duration
	AVGSeedDuration() time.Duration
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
