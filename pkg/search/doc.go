// Package search finds the seed with the lowest location.
//
// Ranges of seeds are split into fixed size batches by a Planner. An Engine feeds those batches through a channel
// to a fixed pool of workers. Every worker holds the same read-only chain of stage tables, evaluates each seed of a
// batch sequentially and reports the batch minimum to a single collector, which reduces the results into the
// global minimum.
//
// The reduction orders results by location first and by seed second. This order is total, so the answer does not
// depend on the order in which batches complete.
//
// Like the pipeline it is built on, the search stops on the first error: a failing worker or option cancels every
// other goroutine and no partial result is returned.
package search
