package measure

import (
	"sync"
	"time"
)

type DefaultMetric struct {
	mu           *sync.Mutex
	EndDuration  time.Duration
	batchElapsed time.Duration
	batches      int64
	seeds        int64
}

func (mt *DefaultMetric) AddBatch(seeds int64, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.batches++
	mt.seeds += seeds
	mt.batchElapsed += elapsed
}

func (mt *DefaultMetric) Batches() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.batches
}

func (mt *DefaultMetric) Seeds() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.seeds
}

func (mt *DefaultMetric) SetTotalDuration(endDuration time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.EndDuration = endDuration
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.EndDuration
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.batches == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.batchElapsed) / float64(mt.batches)))
}

// AVGSeedDuration returns the average time spent translating one seed. It is not rounded, a seed usually takes
// less than a microsecond.
func (mt *DefaultMetric) AVGSeedDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.seeds == 0 {
		return time.Duration(0)
	}

	return time.Duration(float64(mt.batchElapsed) / float64(mt.seeds))
}

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Hour)
	case d > time.Minute:
		d = d.Round(time.Minute)
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
