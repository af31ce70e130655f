package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ranking is one entity's cumulative value for a settlement date and
// direction. Rank is 1-based, 1 being the highest total.
type Ranking struct {
	Entity string
	Total  decimal.Decimal
	Rank   int
}

// DirectionSummary aggregates the instructions of one operation on one
// settlement date.
type DirectionSummary struct {
	Operation Operation
	Total     decimal.Decimal
	Rankings  []Ranking
}

// DailyReport is the aggregated activity of a single settlement date.
type DailyReport struct {
	Date     time.Time
	Incoming DirectionSummary // buys
	Outgoing DirectionSummary // sells
}
