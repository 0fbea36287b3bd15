package almanac

import (
	"math"

	"github.com/pkg/errors"
)

// RangeRule maps [SourceStart, SourceEnd] onto [DestStart, DestStart+Length-1].
type RangeRule struct {
	sourceStart int64
	destStart   int64
	length      int64
}

// NewRangeRule creates a rule from the triple found in an almanac line. Both intervals must fit in int64.
func NewRangeRule(destStart, sourceStart, length int64) (RangeRule, error) {
	if length <= 0 {
		return RangeRule{}, errors.Wrapf(ErrInvalidRangeRule, "dest %d source %d length %d: length must be greater than 0",
			destStart, sourceStart, length)
	}

	if sourceStart > math.MaxInt64-(length-1) || destStart > math.MaxInt64-(length-1) {
		return RangeRule{}, errors.Wrapf(ErrInvalidRangeRule, "dest %d source %d length %d: interval end overflows int64",
			destStart, sourceStart, length)
	}

	return RangeRule{
		sourceStart: sourceStart,
		destStart:   destStart,
		length:      length,
	}, nil
}

func (r RangeRule) SourceStart() int64 { return r.sourceStart }
func (r RangeRule) SourceEnd() int64   { return r.sourceStart + (r.length - 1) }
func (r RangeRule) DestStart() int64   { return r.destStart }
func (r RangeRule) Length() int64      { return r.length }

// Offset returns DestStart - SourceStart. It wraps when the two starts are further apart than int64 allows.
func (r RangeRule) Offset() int64 { return r.destStart - r.sourceStart }

// Contains reports whether value belongs to the source interval.
func (r RangeRule) Contains(value int64) bool {
	return value >= r.sourceStart && value <= r.SourceEnd()
}

// Apply translates value. The caller must check Contains first.
func (r RangeRule) Apply(value int64) int64 {
	return r.destStart + (value - r.sourceStart)
}
