package interfaces

import (
	"context"

	"settlement-report/internal/instruction"
	"settlement-report/internal/types"
)

type ReportGenerator interface {
	Build(ctx context.Context, instructions []instruction.Instruction) ([]types.DailyReport, error)
	Generate(ctx context.Context, instructions []instruction.Instruction) ([]string, error)
}
