// Package instruction holds the immutable trade instruction value object.
package instruction

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"settlement-report/internal/settlement"
	"settlement-report/internal/types"
)

// Params are the caller supplied fields of an instruction.
type Params struct {
	Entity    string
	Operation types.Operation
	Currency  types.Currency
	TradeDate time.Time
	Units     int64
	FxRate    decimal.Decimal
	Price     decimal.Decimal
}

// Instruction is a validated trade instruction. The settlement date and USD
// value are derived once by New and never change.
type Instruction struct {
	entity         string
	operation      types.Operation
	currency       types.Currency
	tradeDate      time.Time
	units          int64
	fxRate         decimal.Decimal
	price          decimal.Decimal
	settlementDate time.Time
	valueUSD       decimal.Decimal
}

// New validates p and derives the settlement date and USD value.
func New(p Params) (Instruction, error) {
	if !p.Operation.Valid() {
		return Instruction{}, fmt.Errorf("instruction for entity %q: %w: %q", p.Entity, types.ErrUnknownOperation, string(p.Operation))
	}
	settles, err := settlement.Date(p.TradeDate, p.Currency)
	if err != nil {
		return Instruction{}, fmt.Errorf("instruction for entity %q: %w", p.Entity, err)
	}

	return Instruction{
		entity:         p.Entity,
		operation:      p.Operation,
		currency:       p.Currency,
		tradeDate:      settlement.Day(p.TradeDate),
		units:          p.Units,
		fxRate:         p.FxRate,
		price:          p.Price,
		settlementDate: settles,
		valueUSD:       settlement.ValueUSD(p.FxRate, p.Units, p.Price),
	}, nil
}

// MustNew is like New but panics on invalid params. Intended for fixtures.
func MustNew(p Params) Instruction {
	ins, err := New(p)
	if err != nil {
		panic(err)
	}
	return ins
}

func (i Instruction) Entity() string { return i.entity }
func (i Instruction) Operation() types.Operation { return i.operation }
func (i Instruction) Currency() types.Currency { return i.currency }
func (i Instruction) TradeDate() time.Time { return i.tradeDate }
func (i Instruction) Units() int64 { return i.units }
func (i Instruction) FxRate() decimal.Decimal { return i.fxRate }
func (i Instruction) Price() decimal.Decimal { return i.price }
func (i Instruction) SettlementDate() time.Time { return i.settlementDate }
func (i Instruction) ValueUSD() decimal.Decimal { return i.valueUSD }
