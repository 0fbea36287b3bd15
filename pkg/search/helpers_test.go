package search_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-almanac/pkg/almanac"
	"github.com/askiada/go-almanac/pkg/almanac/parser"
	"github.com/askiada/go-almanac/pkg/search/model"
)

const exampleInput = `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
`

func createExampleInput(t *testing.T) *parser.Input {
	t.Helper()

	input, err := parser.Parse(strings.NewReader(exampleInput))
	require.NoError(t, err)

	return input
}

func createAlmanacWithout(t *testing.T, from almanac.Stage) *almanac.Almanac {
	t.Helper()

	input := createExampleInput(t)
	tables := []*almanac.StageTable{}

	for _, table := range input.Almanac.Tables() {
		if table.From() == from {
			continue
		}

		tables = append(tables, table)
	}

	alm, err := almanac.New(tables...)
	require.NoError(t, err)

	return alm
}

// recorder is a search option keeping track of every hook call.
type recorder struct {
	mu         sync.Mutex
	started    int
	finished   int
	dispatched []model.BatchInfo
	results    []model.ResultInfo
	best       model.ResultInfo
	failOn     int64
}

func (r *recorder) New(*model.SearchInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++

	return nil
}

func (r *recorder) OnDispatch(_ *model.SearchInfo, batch model.BatchInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatched = append(r.dispatched, batch)

	return nil
}

func (r *recorder) OnResult(_ *model.SearchInfo, result model.ResultInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)

	if r.failOn > 0 && result.Done == r.failOn {
		return errRecorder
	}

	return nil
}

func (r *recorder) Finish(_ *model.SearchInfo, best model.ResultInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished++
	r.best = best

	return nil
}
