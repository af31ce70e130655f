package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"settlement-report/internal/types"
)

// accumulator sums the values of one direction on one settlement date.
// order keeps entities in first-seen order so that equal totals rank
// deterministically.
type accumulator struct {
	operation types.Operation
	total     decimal.Decimal
	totals    map[string]decimal.Decimal
	order     []string
}

func newAccumulator(op types.Operation) *accumulator {
	return &accumulator{
		operation: op,
		total:     decimal.Zero,
		totals:    map[string]decimal.Decimal{},
	}
}

func (a *accumulator) add(entity string, value decimal.Decimal) {
	a.total = a.total.Add(value)
	cur, seen := a.totals[entity]
	if !seen {
		a.order = append(a.order, entity)
		cur = decimal.Zero
	}
	a.totals[entity] = cur.Add(value)
}

func (a *accumulator) summary() types.DirectionSummary {
	rankings := make([]types.Ranking, 0, len(a.order))
	for _, entity := range a.order {
		rankings = append(rankings, types.Ranking{Entity: entity, Total: a.totals[entity]})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Total.GreaterThan(rankings[j].Total)
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}
	return types.DirectionSummary{
		Operation: a.operation,
		Total:     a.total,
		Rankings:  rankings,
	}
}
