package instruction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settlement-report/internal/types"
)

func params(ccy types.Currency, tradeDate string) Params {
	d, _ := time.Parse("2006-01-02", tradeDate)
	return Params{
		Entity:    "foo",
		Operation: types.Buy,
		Currency:  ccy,
		TradeDate: d,
		Units:     100,
		FxRate:    decimal.NewFromInt(1),
		Price:     decimal.NewFromInt(1),
	}
}

func TestNewAEDSettlementDate(t *testing.T) {
	for _, day := range []string{"2018-06-22", "2018-06-23", "2018-06-24"} {
		ins, err := New(params(types.AED, day))
		require.NoError(t, err)
		assert.Equal(t, "2018-06-24", ins.SettlementDate().Format("2006-01-02"), "traded %s", day)
	}
}

func TestNewUSDSettlementDate(t *testing.T) {
	for _, day := range []string{"2018-06-23", "2018-06-24", "2018-06-25"} {
		ins, err := New(params(types.USD, day))
		require.NoError(t, err)
		assert.Equal(t, "2018-06-25", ins.SettlementDate().Format("2006-01-02"), "traded %s", day)
	}
}

func TestNewValueUSD(t *testing.T) {
	p := params(types.EUR, "2018-06-20")
	p.FxRate = decimal.RequireFromString("1.5")
	p.Price = decimal.RequireFromString("50")
	p.Units = 100

	ins, err := New(p)
	require.NoError(t, err)
	assert.True(t, ins.ValueUSD().Equal(decimal.NewFromInt(7500)), "got %s", ins.ValueUSD())
}

func TestNewKeepsInputs(t *testing.T) {
	p := params(types.SGP, "2016-01-02")
	p.Entity = ""
	p.Operation = types.Sell
	p.Units = -5

	ins, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, "", ins.Entity())
	assert.Equal(t, types.Sell, ins.Operation())
	assert.Equal(t, types.SGP, ins.Currency())
	assert.Equal(t, int64(-5), ins.Units())
	assert.Equal(t, "2016-01-02", ins.TradeDate().Format("2006-01-02"))
	assert.Equal(t, "2016-01-04", ins.SettlementDate().Format("2006-01-02"))
	assert.Equal(t, "-5", ins.ValueUSD().String())
}

func TestNewRejectsInvalidEnums(t *testing.T) {
	p := params(types.Currency("CHF"), "2018-06-20")
	_, err := New(p)
	assert.ErrorIs(t, err, types.ErrUnknownCurrency)

	p = params(types.USD, "2018-06-20")
	p.Operation = ""
	_, err = New(p)
	assert.ErrorIs(t, err, types.ErrUnknownOperation)

	assert.Panics(t, func() { MustNew(p) })
}
