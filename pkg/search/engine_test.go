package search_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/almanac/parser"
	"github.com/askiada/go-almanac/pkg/search"
)

var errRecorder = errors.New("recorder failure")

func TestNewNilAlmanac(t *testing.T) {
	t.Parallel()

	_, err := search.New(nil)
	assert.ErrorIs(t, err, search.ErrAlmanacMustBeSet)
}

func TestNewInvalidOptions(t *testing.T) {
	t.Parallel()

	alm := createExampleInput(t).Almanac

	_, err := search.New(alm, search.Workers(0))
	assert.ErrorIs(t, err, search.ErrInvalidWorkers)

	_, err = search.New(alm, search.BatchSize(0))
	assert.ErrorIs(t, err, search.ErrInvalidBatchSize)

	_, err = search.New(alm, search.StageOrder())
	assert.ErrorIs(t, err, almanac.ErrEmptyStageOrder)
}

func TestLowestInSeeds(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		workers int
	}{
		"sequential":     {workers: 1},
		"concurrent 2":   {workers: 2},
		"more than seed": {workers: 20},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input := createExampleInput(t)

			eng, err := search.New(input.Almanac, search.Workers(tc.workers))
			require.NoError(t, err)

			got, err := eng.LowestInSeeds(t.Context(), input.Seeds...)
			require.NoError(t, err)
			assert.Equal(t, search.Result{Seed: 13, Location: 35}, got)
		})
	}
}

func TestLowestInSeedsNoSeeds(t *testing.T) {
	t.Parallel()

	eng, err := search.New(createExampleInput(t).Almanac)
	require.NoError(t, err)

	_, err = eng.LowestInSeeds(t.Context())
	assert.ErrorIs(t, err, search.ErrNoSeeds)

	_, err = eng.LowestInRanges(t.Context())
	assert.ErrorIs(t, err, search.ErrNoSeeds)
}

func TestLowestInSeedsTieBreak(t *testing.T) {
	t.Parallel()

	// without any table every seed is its own location, duplicates tie on both fields
	table, err := almanac.NewStageTable(almanac.Seed, almanac.Location)
	require.NoError(t, err)
	alm, err := almanac.New(table)
	require.NoError(t, err)

	eng, err := search.New(alm, search.StageOrder(almanac.Seed, almanac.Location), search.Workers(3))
	require.NoError(t, err)

	got, err := eng.LowestInSeeds(t.Context(), 9, 4, 7, 4, 12)
	require.NoError(t, err)
	assert.Equal(t, search.Result{Seed: 4, Location: 4}, got)
}

func TestLowestInRanges(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		workers   int
		batchSize int64
	}{
		"single batch":        {workers: 1, batchSize: 100_000},
		"one seed per batch":  {workers: 4, batchSize: 1},
		"clipped batches":     {workers: 3, batchSize: 5},
		"more workers":        {workers: 50, batchSize: 2},
		"default batch size":  {workers: search.DefaultWorkers, batchSize: search.DefaultBatchSize},
		"sequential, batched": {workers: 1, batchSize: 3},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input := createExampleInput(t)
			ranges, err := parser.SeedRanges(input.Seeds)
			require.NoError(t, err)

			rec := &recorder{}
			eng, err := search.New(input.Almanac,
				search.Workers(tc.workers),
				search.BatchSize(tc.batchSize),
				search.WithSearchOptions(rec),
			)
			require.NoError(t, err)

			got, err := eng.LowestInRanges(t.Context(), ranges...)
			require.NoError(t, err)
			assert.Equal(t, search.Result{Seed: 82, Location: 46}, got)

			count, err := search.CountBatches(ranges, tc.batchSize)
			require.NoError(t, err)

			assert.Equal(t, 1, rec.started)
			assert.Equal(t, 1, rec.finished)
			assert.Len(t, rec.dispatched, int(count))
			assert.Len(t, rec.results, int(count))
			assert.Equal(t, int64(82), rec.best.Seed)
			assert.Equal(t, int64(46), rec.best.Location)
		})
	}
}

func TestLowestInRangesMatchesSeeds(t *testing.T) {
	t.Parallel()

	input := createExampleInput(t)

	eng, err := search.New(input.Almanac, search.Workers(7), search.BatchSize(9))
	require.NoError(t, err)

	ranges := []search.SeedRange{{Start: 0, End: 40}, {Start: 95, End: 130}, {Start: 41, End: 41}, {Start: 60, End: 70}}

	for _, seedRange := range ranges {
		seeds := []int64{}
		for seed := seedRange.Start; seed <= seedRange.End; seed++ {
			seeds = append(seeds, seed)
		}

		expected, err := eng.LowestInSeeds(t.Context(), seeds...)
		require.NoError(t, err)

		got, err := eng.LowestInRanges(t.Context(), seedRange)
		require.NoError(t, err)
		assert.Equal(t, expected, got, "range %s", seedRange)
	}

	all := []int64{}
	for _, seedRange := range ranges {
		for seed := seedRange.Start; seed <= seedRange.End; seed++ {
			all = append(all, seed)
		}
	}

	expected, err := eng.LowestInSeeds(t.Context(), all...)
	require.NoError(t, err)

	got, err := eng.LowestInRanges(t.Context(), ranges...)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestLowestInRangesMissingStageTable(t *testing.T) {
	t.Parallel()

	alm := createAlmanacWithout(t, almanac.Water)

	rec := &recorder{}
	eng, err := search.New(alm, search.Workers(4), search.BatchSize(2), search.WithSearchOptions(rec))
	require.NoError(t, err)

	_, err = eng.LowestInRanges(t.Context(), search.SeedRange{Start: 79, End: 92})
	require.ErrorIs(t, err, almanac.ErrMissingStageTable)
	assert.Regexp(t, `^worker \d+: water-to-light: missing stage table$`, err.Error())
	assert.Equal(t, 0, rec.finished)

	_, err = eng.LowestInSeeds(t.Context(), 79, 14, 55, 13)
	require.ErrorIs(t, err, almanac.ErrMissingStageTable)
}

func TestLowestInRangesInvalidRange(t *testing.T) {
	t.Parallel()

	eng, err := search.New(createExampleInput(t).Almanac)
	require.NoError(t, err)

	_, err = eng.LowestInRanges(t.Context(), search.SeedRange{Start: 10, End: 1})
	assert.ErrorIs(t, err, search.ErrInvalidRange)
}

func TestLowestInRangesOptionError(t *testing.T) {
	t.Parallel()

	rec := &recorder{failOn: 3}
	eng, err := search.New(createExampleInput(t).Almanac,
		search.Workers(2),
		search.BatchSize(1),
		search.WithSearchOptions(rec),
	)
	require.NoError(t, err)

	_, err = eng.LowestInRanges(t.Context(), search.SeedRange{Start: 0, End: 99})
	require.ErrorIs(t, err, errRecorder)
	assert.Equal(t, 0, rec.finished)
}

func TestLowestInRangesCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	eng, err := search.New(createExampleInput(t).Almanac, search.Workers(2), search.BatchSize(10))
	require.NoError(t, err)

	_, err = eng.LowestInRanges(ctx, search.SeedRange{Start: 0, End: 1_000_000})
	assert.ErrorIs(t, err, context.Canceled)
}
