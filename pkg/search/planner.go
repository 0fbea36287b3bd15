package search

import (
	"sync"

	"github.com/pkg/errors"
)

// Planner splits ranges into batches of at most batchSize seeds.
// Batches are produced on demand, only the current position is kept in memory.
type Planner struct {
	mu        sync.Mutex
	ranges    []SeedRange
	counts    []int64
	batchSize int64
	total     int64
	seeds     int64

	currRange int
	currStart int64
	currIdx   int64
}

// Plan creates a planner over ranges.
func Plan(ranges []SeedRange, batchSize int64) (*Planner, error) {
	if batchSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidBatchSize, "got %d", batchSize)
	}

	planner := &Planner{
		ranges:    append([]SeedRange(nil), ranges...),
		counts:    make([]int64, len(ranges)),
		batchSize: batchSize,
	}

	for i, seedRange := range ranges {
		err := seedRange.validate()
		if err != nil {
			return nil, errors.Wrapf(err, "range %d", i)
		}

		planner.counts[i] = batchCount(seedRange.Len(), batchSize)
		planner.total += planner.counts[i]
		planner.seeds += seedRange.Len()
	}

	if len(planner.ranges) > 0 {
		planner.currStart = planner.ranges[0].Start
	}

	return planner, nil
}

func batchCount(length, batchSize int64) int64 {
	count := length / batchSize
	if length%batchSize != 0 {
		count++
	}

	return count
}

// Total returns the number of batches the planner produces.
func (p *Planner) Total() int64 {
	return p.total
}

// Seeds returns the number of seeds covered by the planner.
func (p *Planner) Seeds() int64 {
	return p.seeds
}

// RangeBatches returns the number of batches produced for each range.
func (p *Planner) RangeBatches() []int64 {
	return append([]int64(nil), p.counts...)
}

// Next returns the next batch. ok is false once every range is covered.
func (p *Planner) Next() (batch WorkBatch, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.currRange >= len(p.ranges) {
		return WorkBatch{}, false
	}

	seedRange := p.ranges[p.currRange]
	end := seedRange.End

	// compare remaining length to avoid overflowing near the int64 bounds
	if seedRange.End-p.currStart >= p.batchSize {
		end = p.currStart + p.batchSize - 1
	}

	batch = WorkBatch{Index: p.currIdx, Start: p.currStart, End: end}
	p.currIdx++

	if end == seedRange.End {
		p.currRange++
		if p.currRange < len(p.ranges) {
			p.currStart = p.ranges[p.currRange].Start
		}
	} else {
		p.currStart = end + 1
	}

	return batch, true
}

// Split partitions seedRange into consecutive batches of batchSize seeds, the last one being clipped to the end of
// the range.
func Split(seedRange SeedRange, batchSize int64) ([]WorkBatch, error) {
	planner, err := Plan([]SeedRange{seedRange}, batchSize)
	if err != nil {
		return nil, err
	}

	batches := make([]WorkBatch, 0, planner.Total())

	for {
		batch, ok := planner.Next()
		if !ok {
			break
		}

		batches = append(batches, batch)
	}

	return batches, nil
}

// CountBatches returns the number of batches needed to cover ranges.
func CountBatches(ranges []SeedRange, batchSize int64) (int64, error) {
	planner, err := Plan(ranges, batchSize)
	if err != nil {
		return 0, err
	}

	return planner.Total(), nil
}
