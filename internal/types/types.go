package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCurrency  = errors.New("unknown currency")
	ErrUnknownOperation = errors.New("unknown operation")
)

// Currency is the settlement currency of an instruction.
type Currency string

const (
	AED Currency = "AED"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	SAR Currency = "SAR"
	SGP Currency = "SGP"
	USD Currency = "USD"
)

// Currencies lists every supported currency.
var Currencies = []Currency{AED, EUR, GBP, SAR, SGP, USD}

// WeekendClass identifies the pair of non-working weekdays of a currency.
type WeekendClass int

const (
	// SaturdaySunday is the standard Monday to Friday working week.
	SaturdaySunday WeekendClass = iota + 1
	// FridaySaturday is the Sunday to Thursday working week.
	FridaySaturday
)

func (w WeekendClass) String() string {
	switch w {
	case SaturdaySunday:
		return "SAT_SUN"
	case FridaySaturday:
		return "FRI_SAT"
	default:
		return fmt.Sprintf("WeekendClass(%d)", int(w))
	}
}

// weekendClasses is the currency classification table.
var weekendClasses = map[Currency]WeekendClass{
	AED: FridaySaturday,
	SAR: FridaySaturday,
	EUR: SaturdaySunday,
	GBP: SaturdaySunday,
	SGP: SaturdaySunday,
	USD: SaturdaySunday,
}

// WeekendClass returns the weekend class of c. Unknown currencies are an
// error; there is no default class.
func (c Currency) WeekendClass() (WeekendClass, error) {
	w, ok := weekendClasses[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, string(c))
	}
	return w, nil
}

func (c Currency) Valid() bool {
	_, ok := weekendClasses[c]
	return ok
}

func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
	return c, nil
}

// Operation is the direction of an instruction. The zero value is invalid.
type Operation string

const (
	Buy  Operation = "B"
	Sell Operation = "S"
)

func (o Operation) Valid() bool {
	return o == Buy || o == Sell
}

func (o Operation) String() string {
	switch o {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return fmt.Sprintf("Operation(%q)", string(o))
	}
}

// ParseOperation accepts "B", "BUY", "S" or "SELL" in any case.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B", "BUY":
		return Buy, nil
	case "S", "SELL":
		return Sell, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}
