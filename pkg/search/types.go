package search

import (
	"fmt"

	"github.com/pkg/errors"
)

// SeedRange is an inclusive range of seeds.
type SeedRange struct {
	Start int64
	End   int64
}

// NewSeedRange creates the range of length seeds starting at start.
func NewSeedRange(start, length int64) (SeedRange, error) {
	if length <= 0 {
		return SeedRange{}, errors.Wrapf(ErrInvalidRange, "start %d length %d", start, length)
	}

	return SeedRange{Start: start, End: start + length - 1}, nil
}

// Len returns the number of seeds in the range.
func (r SeedRange) Len() int64 {
	return r.End - r.Start + 1
}

func (r SeedRange) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

func (r SeedRange) validate() error {
	if r.Start > r.End {
		return errors.Wrapf(ErrInvalidRange, "%s", r)
	}

	return nil
}

// WorkBatch is a bounded slice of a SeedRange.
type WorkBatch struct {
	Index int64
	Start int64
	End   int64
}

func (b WorkBatch) Len() int64 {
	return b.End - b.Start + 1
}

// Result is a seed and its location.
type Result struct {
	Seed     int64
	Location int64
}

// Less orders results by location, then by seed.
func (r Result) Less(other Result) bool {
	if r.Location != other.Location {
		return r.Location < other.Location
	}

	return r.Seed < other.Seed
}

// Reduce returns the smallest result. ok is false when results is empty.
func Reduce(results ...Result) (best Result, ok bool) {
	for i, res := range results {
		if i == 0 || res.Less(best) {
			best = res
		}
	}

	return best, len(results) > 0
}
