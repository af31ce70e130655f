// Package report aggregates instructions into the daily settlement report.
package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"settlement-report/internal/instruction"
	"settlement-report/internal/interfaces"
	"settlement-report/internal/types"
)

var ErrInvalidInstruction = errors.New("invalid instruction")

type generator struct {
	precision int32
	parallel  bool
}

var _ interfaces.ReportGenerator = (*generator)(nil)

// Generate builds the report and renders it as text lines. An empty batch
// yields no lines.
func (g *generator) Generate(ctx context.Context, instructions []instruction.Instruction) ([]string, error) {
	days, err := g.Build(ctx, instructions)
	if err != nil {
		return nil, err
	}
	return Lines(days, g.precision), nil
}

// Build groups instructions by settlement date and aggregates each date,
// oldest first. Any invalid instruction fails the whole batch.
func (g *generator) Build(ctx context.Context, instructions []instruction.Instruction) ([]types.DailyReport, error) {
	groups := map[time.Time][]instruction.Instruction{}
	for _, ins := range instructions {
		d := ins.SettlementDate()
		groups[d] = append(groups[d], ins)
	}

	dates := make([]time.Time, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	days := make([]types.DailyReport, len(dates))
	if !g.parallel || len(dates) < 2 {
		for i, d := range dates {
			day, err := aggregateDay(d, groups[d])
			if err != nil {
				return nil, err
			}
			days[i] = day
		}
		return days, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	for i, d := range dates {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			day, err := aggregateDay(d, groups[d])
			if err != nil {
				return err
			}
			days[i] = day
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return days, nil
}

func aggregateDay(date time.Time, instructions []instruction.Instruction) (types.DailyReport, error) {
	incoming := newAccumulator(types.Buy)
	outgoing := newAccumulator(types.Sell)

	for _, ins := range instructions {
		switch ins.Operation() {
		case types.Buy:
			incoming.add(ins.Entity(), ins.ValueUSD())
		case types.Sell:
			outgoing.add(ins.Entity(), ins.ValueUSD())
		default:
			return types.DailyReport{}, fmt.Errorf("%w: entity %q settling %s has operation %s",
				ErrInvalidInstruction, ins.Entity(), date.Format(dateLayout), ins.Operation())
		}
	}

	return types.DailyReport{
		Date:     date,
		Incoming: incoming.summary(),
		Outgoing: outgoing.summary(),
	}, nil
}
