package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"settlement-report/internal/logger"
	"settlement-report/internal/report"
	"settlement-report/internal/runlog"
	"settlement-report/internal/trace"
)

type options struct {
	configPath string
	input      string
	format     string
	output     string
	sample     bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "config.yaml", "path to config file")
	flag.StringVar(&opts.input, "input", "", "instruction batch (.yaml, .yml or .csv)")
	flag.StringVar(&opts.format, "format", "", "output format: text, json or csv (default from config)")
	flag.StringVar(&opts.output, "output", "", "save report to file (optional)")
	flag.BoolVar(&opts.sample, "sample", false, "report on the built-in sample batch")
	flag.Parse()

	explicitConfig := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicitConfig = true
		}
	})

	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(context.Background(), opts, explicitConfig, os.Stdout))
}

func run(ctx context.Context, opts options, explicitConfig bool, stdout io.Writer) int {
	defer func() {
		if err := trace.Shutdown(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to shutdown tracer: %v\n", err)
		}
	}()

	cfg, err := loadConfig(ctx, opts.configPath, explicitConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if opts.input == "" {
		opts.input = cfg.Input
	}
	if opts.format == "" {
		opts.format = cfg.Report.Format
	}
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	runs := runlog.New(cfg.Log.Dir)
	compressOldRuns(ctx, runs, cfg.Log.RetentionDays)

	entry := runlog.Entry{Input: opts.input, Format: string(format)}
	if opts.sample {
		entry.Input = "sample"
	}
	fail := func(msg string, err error) int {
		entry.Error = err.Error()
		if _, lerr := runs.Append(entry); lerr != nil {
			logger.Warn(ctx, "Failed to append run log", "error", lerr)
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		return 1
	}

	timer := logger.StartOperation(ctx, "report.run", "input", entry.Input, "format", string(format))
	ctx = timer.Context()

	batch, err := loadInstructions(ctx, opts.input, opts.sample)
	if err != nil {
		timer.EndWithError(err)
		return fail("Error loading instructions", err)
	}
	entry.Instructions = len(batch)

	gen := initializeGenerator(cfg)
	days, err := gen.Build(ctx, batch)
	if err != nil {
		timer.EndWithError(err)
		return fail("Error generating report", err)
	}
	lines := report.Lines(days, cfg.Report.Precision)
	entry.SettlementDates = len(days)
	entry.Lines = len(lines)

	renderer := report.NewRenderer(cfg.Report.OutputDir, cfg.Report.Precision)
	content, err := renderer.Render(days, format)
	if err != nil {
		timer.EndWithError(err)
		return fail("Error rendering report", err)
	}
	fmt.Fprint(stdout, content)

	switch {
	case opts.output != "":
		if err := os.WriteFile(opts.output, []byte(content), 0644); err != nil {
			timer.EndWithError(err)
			return fail("Error saving report", err)
		}
		entry.Output = opts.output
	case cfg.Report.Save:
		path, err := renderer.Save(days, format, time.Now())
		if err != nil {
			timer.EndWithError(err)
			return fail("Error saving report", err)
		}
		entry.Output = path
	}

	logger.Report(ctx, len(batch), len(days), len(lines), "format", string(format), "output", entry.Output)
	timer.End("settlement_dates", len(days), "lines", len(lines))

	if _, err := runs.Append(entry); err != nil {
		logger.Warn(ctx, "Failed to append run log", "error", err)
	}
	return 0
}
