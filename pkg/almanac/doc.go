// Package almanac provides the staged translation tables used to map a seed to a location.
//
// A RangeRule remaps one contiguous interval onto another with a constant offset. A StageTable groups the rules
// translating values from one stage to the next; values not covered by any rule are passed through unchanged.
// An Almanac holds every StageTable of an input, keyed by the pair of stages they connect, and threads a value
// through a fixed order of stages.
//
// Everything in this package is immutable once built. An Almanac can be shared between any number of goroutines
// without synchronisation.
package almanac
