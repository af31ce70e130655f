package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"settlement-report/internal/instruction"
	"settlement-report/internal/interfaces"
	"settlement-report/internal/loader"
	"settlement-report/internal/logger"
	"settlement-report/internal/report"
	"settlement-report/internal/report/reportobs"
	"settlement-report/internal/runlog"
	"settlement-report/internal/store"
	"settlement-report/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem loads the environment and initializes logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig reads path, falling back to defaults when the default config
// file is absent
func loadConfig(ctx context.Context, path string, explicit bool) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		logger.Debug(ctx, "No config file, using defaults", "path", path)
		cfg = store.Default()
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
	return nil, err
}

// loadInstructions reads the batch at input, or the demo batch when sample
// is set
func loadInstructions(ctx context.Context, input string, sample bool) ([]instruction.Instruction, error) {
	if sample {
		logger.Info(ctx, "Using sample instruction batch")
		return loader.Sample(), nil
	}
	if input == "" {
		return nil, errors.New("no input batch: pass -input or set 'input' in the config, or use -sample")
	}

	batch, err := loader.Load(input)
	if err != nil {
		var rowErr *loader.RowError
		if errors.As(err, &rowErr) {
			logger.Instruction(ctx, rowErr.Source, rowErr.Row, rowErr.Err)
		}
		return nil, err
	}
	logger.Info(ctx, "Instruction batch loaded", "input", input, "instructions", len(batch))
	return batch, nil
}

// initializeGenerator builds the report generator with observability and
// installs it as the package default
func initializeGenerator(cfg *store.Config) interfaces.ReportGenerator {
	gen := report.NewGenerator(
		report.WithPrecision(cfg.Report.Precision),
		report.WithParallel(cfg.Report.Parallel),
	)
	observable := reportobs.Wrap(gen)
	report.SetDefaultGenerator(observable)
	return observable
}

// compressOldRuns compresses old run logs if retention is configured
func compressOldRuns(ctx context.Context, runs *runlog.Log, retentionDays int) {
	if err := runs.CompressOlder(retentionDays); err != nil {
		logger.Warn(ctx, "Failed to compress old run logs", "error", err)
	}
}
