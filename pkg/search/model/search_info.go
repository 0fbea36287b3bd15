package model

import "time"

type Mode string

const (
	// SeedsMode evaluates an explicit list of seeds. Batches then hold positions in that list.
	SeedsMode Mode = "seeds"
	// RangesMode evaluates every seed of one or more ranges.
	RangesMode Mode = "ranges"
)

// SearchInfo describes a search run.
type SearchInfo struct {
	StartTime    time.Time
	ID           string
	Mode         Mode
	Stages       []string
	Ranges       []RangeInfo
	Workers      int
	BatchSize    int64
	TotalBatches int64
	TotalSeeds   int64
}

// RangeInfo describes one input range and the number of batches needed to cover it.
type RangeInfo struct {
	Start   int64
	End     int64
	Batches int64
}

// BatchInfo is a contiguous slice of the search space dispatched to one worker.
type BatchInfo struct {
	Index int64
	Start int64
	End   int64
}

// Seeds returns the number of values in the batch.
func (b BatchInfo) Seeds() int64 {
	return b.End - b.Start + 1
}

// ResultInfo is the minimum found by a worker for a batch.
type ResultInfo struct {
	Batch    BatchInfo
	Worker   int
	Seed     int64
	Location int64
	Elapsed  time.Duration
	// Done is the number of results received so far, this one included.
	Done int64
}
