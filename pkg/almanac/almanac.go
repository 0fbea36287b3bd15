package almanac

import (
	"strconv"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

// Almanac holds every stage table, indexed by the pair of stages it connects.
//
// The stages and tables also form a directed graph, stages being the vertices and each table the edge between
// its two stages. The graph is used to derive stage orders and to draw the almanac.
type Almanac struct {
	tables map[stagePair]*StageTable
	graph  graph.Graph[string, string]
}

// New builds an almanac. Two tables connecting the same pair of stages are rejected.
func New(tables ...*StageTable) (*Almanac, error) {
	alm := &Almanac{
		tables: make(map[stagePair]*StageTable, len(tables)),
		graph:  graph.New(graph.StringHash, graph.Directed()),
	}

	for _, table := range tables {
		if table == nil {
			continue
		}

		key := stagePair{from: table.from, to: table.to}
		if _, ok := alm.tables[key]; ok {
			return nil, errors.Wrapf(ErrDuplicateStageTable, "%s-to-%s", table.from, table.to)
		}

		alm.tables[key] = table

		err := alm.addTable(table)
		if err != nil {
			return nil, err
		}
	}

	return alm, nil
}

func (a *Almanac) addStage(stage Stage) error {
	err := a.graph.AddVertex(stage.String())
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrapf(err, "unable to add stage %s", stage)
	}

	return nil
}

func (a *Almanac) addTable(table *StageTable) error {
	err := a.addStage(table.from)
	if err != nil {
		return err
	}

	err = a.addStage(table.to)
	if err != nil {
		return err
	}

	err = a.graph.AddEdge(table.from.String(), table.to.String(),
		graph.EdgeData(table),
		graph.EdgeWeight(len(table.rules)),
		graph.EdgeAttribute("label", strconv.Itoa(len(table.rules))+" rules"),
	)
	if err != nil {
		return errors.Wrapf(err, "unable to link %s to %s", table.from, table.to)
	}

	return nil
}

// Table returns the table translating from into to.
func (a *Almanac) Table(from, to Stage) (*StageTable, error) {
	table, ok := a.tables[stagePair{from: from, to: to}]
	if !ok {
		return nil, errors.Wrapf(ErrMissingStageTable, "%s-to-%s", from, to)
	}

	return table, nil
}

// Tables returns every table in stage order when the almanac is a chain, in arbitrary order otherwise.
func (a *Almanac) Tables() []*StageTable {
	res := make([]*StageTable, 0, len(a.tables))

	order, err := a.Order()
	if err == nil {
		for i := 1; i < len(order); i++ {
			if table, ok := a.tables[stagePair{from: order[i-1], to: order[i]}]; ok {
				res = append(res, table)
			}
		}

		if len(res) == len(a.tables) {
			return res
		}

		res = res[:0]
	}

	for _, table := range a.tables {
		res = append(res, table)
	}

	return res
}

// Chain resolves the table of every adjacent pair of stages in order.
func (a *Almanac) Chain(order []Stage) (Chain, error) {
	if len(order) == 0 {
		return nil, ErrEmptyStageOrder
	}

	chain := make(Chain, 0, len(order)-1)

	for i := 1; i < len(order); i++ {
		table, err := a.Table(order[i-1], order[i])
		if err != nil {
			return nil, err
		}

		chain = append(chain, table)
	}

	return chain, nil
}

// Translate threads seed through every table of order. It fails when a pair of adjacent stages has no table.
func (a *Almanac) Translate(order []Stage, seed int64) (int64, error) {
	chain, err := a.Chain(order)
	if err != nil {
		return 0, err
	}

	return chain.Translate(seed), nil
}

// SeedLocation translates a seed into its location using the canonical order.
func (a *Almanac) SeedLocation(seed int64) (int64, error) {
	return a.Translate(CanonicalOrder(), seed)
}

// Path returns the stages visited from one stage to another following the tables of the almanac.
func (a *Almanac) Path(from, to Stage) ([]Stage, error) {
	hashes, err := graph.ShortestPath(a.graph, from.String(), to.String())
	if err != nil {
		return nil, errors.Wrapf(ErrMissingStageTable, "no path from %s to %s: %s", from, to, err)
	}

	return toStages(hashes), nil
}

// Order returns every stage of the almanac sorted so that each table goes from an earlier stage to a later one.
func (a *Almanac) Order() ([]Stage, error) {
	hashes, err := graph.StableTopologicalSort(a.graph, func(left, right string) bool {
		return left < right
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to sort stages")
	}

	return toStages(hashes), nil
}

// Graph returns a copy of the stage graph. Each edge holds its *StageTable as data.
func (a *Almanac) Graph() (graph.Graph[string, string], error) {
	clone, err := a.graph.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "unable to clone stage graph")
	}

	return clone, nil
}

func toStages(hashes []string) []Stage {
	stages := make([]Stage, len(hashes))
	for i, hash := range hashes {
		stages[i] = Stage(hash)
	}

	return stages
}

// Chain is a resolved sequence of tables, each one translating the output of the previous one.
type Chain []*StageTable

// Translate applies every table of the chain in order.
func (c Chain) Translate(value int64) int64 {
	for _, table := range c {
		value = table.Translate(value)
	}

	return value
}
