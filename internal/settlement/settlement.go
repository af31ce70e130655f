// Package settlement computes settlement dates and USD values of trade
// instructions.
package settlement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"settlement-report/internal/types"
)

// offsets holds, per weekend class, the number of days to add to a trade date
// to reach the next working day. Working days are absent (offset 0).
var offsets = map[types.WeekendClass]map[time.Weekday]int{
	types.FridaySaturday: {
		time.Friday:   2,
		time.Saturday: 1,
	},
	types.SaturdaySunday: {
		time.Saturday: 2,
		time.Sunday:   1,
	},
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWorkingDay reports whether day is a working day for ccy.
func IsWorkingDay(day time.Time, ccy types.Currency) (bool, error) {
	off, err := offset(day.Weekday(), ccy)
	if err != nil {
		return false, err
	}
	return off == 0, nil
}

// Date returns the settlement date of an instruction traded on tradeDate in
// ccy: the trade date itself when it is a working day, otherwise the first
// working day after it.
func Date(tradeDate time.Time, ccy types.Currency) (time.Time, error) {
	day := Day(tradeDate)
	off, err := offset(day.Weekday(), ccy)
	if err != nil {
		return time.Time{}, err
	}
	return day.AddDate(0, 0, off), nil
}

func offset(wd time.Weekday, ccy types.Currency) (int, error) {
	class, err := ccy.WeekendClass()
	if err != nil {
		return 0, err
	}
	table, ok := offsets[class]
	if !ok {
		return 0, fmt.Errorf("no offset table for weekend class %s", class)
	}
	return table[wd], nil
}

// ValueUSD returns fxRate * units * price.
func ValueUSD(fxRate decimal.Decimal, units int64, price decimal.Decimal) decimal.Decimal {
	return fxRate.Mul(decimal.NewFromInt(units)).Mul(price)
}
