package reportobs

import (
	"context"
	"time"

	"settlement-report/internal/instruction"
	"settlement-report/internal/interfaces"
	"settlement-report/internal/logger"
	"settlement-report/internal/trace"
	"settlement-report/internal/types"
)

type observableGenerator struct {
	generator interfaces.ReportGenerator
}

var _ interfaces.ReportGenerator = (*observableGenerator)(nil)

func Wrap(generator interfaces.ReportGenerator) interfaces.ReportGenerator {
	return &observableGenerator{
		generator: generator,
	}
}

func (og *observableGenerator) Build(ctx context.Context, instructions []instruction.Instruction) ([]types.DailyReport, error) {
	ctx, span := trace.StartSpan(ctx, "report.Build")
	defer span.End()

	start := time.Now()

	days, err := og.generator.Build(ctx, instructions)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Settlement report aggregation failed", err,
			"instructions", len(instructions),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	logger.DebugSkip(ctx, 1, "Settlement report aggregated",
		"instructions", len(instructions),
		"settlement_dates", len(days),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return days, nil
}

func (og *observableGenerator) Generate(ctx context.Context, instructions []instruction.Instruction) ([]string, error) {
	ctx, span := trace.StartSpan(ctx, "report.Generate")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting settlement report generation",
		"instructions", len(instructions),
	)

	lines, err := og.generator.Generate(ctx, instructions)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Settlement report generation failed", err,
			"instructions", len(instructions),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	if len(lines) == 0 {
		logger.InfoSkip(ctx, 1, "No instructions to report")
		return lines, nil
	}

	logger.InfoSkip(ctx, 1, "Settlement report generated",
		"instructions", len(instructions),
		"lines", len(lines),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return lines, nil
}
