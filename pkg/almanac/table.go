package almanac

import (
	"sort"

	"github.com/pkg/errors"
)

// StageTable translates values of one stage into the next one.
type StageTable struct {
	from  Stage
	to    Stage
	rules []RangeRule
	// sorted holds the rules ordered by source start, ties keep the input order.
	sorted []RangeRule
	// overlapping tables fall back to a linear scan so the first matching rule still wins.
	overlapping bool
}

// NewStageTable creates a table. The rules are kept in the given order, the first matching rule wins.
func NewStageTable(from, to Stage, rules ...RangeRule) (*StageTable, error) {
	if from == to {
		return nil, errors.Wrapf(ErrSameStage, "%s-to-%s", from, to)
	}

	for i, rule := range rules {
		if rule.length <= 0 {
			return nil, errors.Wrapf(ErrInvalidRangeRule, "%s-to-%s rule %d", from, to, i)
		}
	}

	table := &StageTable{
		from:   from,
		to:     to,
		rules:  append([]RangeRule(nil), rules...),
		sorted: append([]RangeRule(nil), rules...),
	}

	sort.SliceStable(table.sorted, func(i, j int) bool {
		return table.sorted[i].sourceStart < table.sorted[j].sourceStart
	})

	for i := 1; i < len(table.sorted); i++ {
		if table.sorted[i].sourceStart <= table.sorted[i-1].SourceEnd() {
			table.overlapping = true

			break
		}
	}

	return table, nil
}

func (t *StageTable) From() Stage { return t.from }
func (t *StageTable) To() Stage   { return t.to }

// Rules returns a copy of the rules in input order.
func (t *StageTable) Rules() []RangeRule {
	return append([]RangeRule(nil), t.rules...)
}

// Translate returns the value mapped by the first rule containing it, or the value itself when no rule does.
func (t *StageTable) Translate(value int64) int64 {
	if t.overlapping {
		for _, rule := range t.rules {
			if rule.Contains(value) {
				return rule.Apply(value)
			}
		}

		return value
	}

	// disjoint intervals: the last rule starting at or before value is the only candidate
	idx := sort.Search(len(t.sorted), func(i int) bool {
		return t.sorted[i].sourceStart > value
	})
	if idx == 0 {
		return value
	}

	rule := t.sorted[idx-1]
	if rule.Contains(value) {
		return rule.Apply(value)
	}

	return value
}
