package almanac_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-almanac/pkg/almanac"
)

var exampleTables = []struct {
	from, to almanac.Stage
	rules    [][3]int64
}{
	{almanac.Seed, almanac.Soil, [][3]int64{{50, 98, 2}, {52, 50, 48}}},
	{almanac.Soil, almanac.Fertilizer, [][3]int64{{0, 15, 37}, {37, 52, 2}, {39, 0, 15}}},
	{almanac.Fertilizer, almanac.Water, [][3]int64{{49, 53, 8}, {0, 11, 42}, {42, 0, 7}, {57, 7, 4}}},
	{almanac.Water, almanac.Light, [][3]int64{{88, 18, 7}, {18, 25, 70}}},
	{almanac.Light, almanac.Temperature, [][3]int64{{45, 77, 23}, {81, 45, 19}, {68, 64, 13}}},
	{almanac.Temperature, almanac.Humidity, [][3]int64{{0, 69, 1}, {1, 0, 69}}},
	{almanac.Humidity, almanac.Location, [][3]int64{{60, 56, 37}, {56, 93, 4}}},
}

func createTable(t *testing.T, from, to almanac.Stage, triples ...[3]int64) *almanac.StageTable {
	t.Helper()

	rules := make([]almanac.RangeRule, 0, len(triples))

	for _, triple := range triples {
		rule, err := almanac.NewRangeRule(triple[0], triple[1], triple[2])
		require.NoError(t, err)

		rules = append(rules, rule)
	}

	table, err := almanac.NewStageTable(from, to, rules...)
	require.NoError(t, err)

	return table
}

func createExampleTables(t *testing.T, skip ...almanac.Stage) []*almanac.StageTable {
	t.Helper()

	skipped := make(map[almanac.Stage]struct{}, len(skip))
	for _, stage := range skip {
		skipped[stage] = struct{}{}
	}

	tables := []*almanac.StageTable{}

	for _, def := range exampleTables {
		if _, ok := skipped[def.from]; ok {
			continue
		}

		tables = append(tables, createTable(t, def.from, def.to, def.rules...))
	}

	return tables
}

func createExampleAlmanac(t *testing.T) *almanac.Almanac {
	t.Helper()

	alm, err := almanac.New(createExampleTables(t)...)
	require.NoError(t, err)

	return alm
}
