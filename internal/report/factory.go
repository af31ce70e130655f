package report

import (
	"context"

	"settlement-report/internal/instruction"
	"settlement-report/internal/interfaces"
)

// Option configures a generator.
type Option func(*generator)

// WithPrecision sets the number of fractional digits rendered for values.
// Negative values are ignored.
func WithPrecision(digits int32) Option {
	return func(g *generator) {
		if digits >= 0 {
			g.precision = digits
		}
	}
}

// WithParallel aggregates each settlement date in its own goroutine.
func WithParallel(enabled bool) Option {
	return func(g *generator) {
		g.parallel = enabled
	}
}

func NewGenerator(opts ...Option) interfaces.ReportGenerator {
	g := &generator{precision: DefaultPrecision}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator interfaces.ReportGenerator = NewGenerator()

// SetDefaultGenerator replaces the generator used by the package-level
// helpers, e.g. with one wrapped for observability.
func SetDefaultGenerator(g interfaces.ReportGenerator) {
	defaultGenerator = g
}

// Generate renders the report of instructions with the default generator.
func Generate(ctx context.Context, instructions []instruction.Instruction) ([]string, error) {
	return defaultGenerator.Generate(ctx, instructions)
}
