package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settlement-report/internal/logger"
)

func setup(t *testing.T, config string) (dir, configPath string) {
	t.Helper()
	require.NoError(t, logger.InitWithConfig(logger.LogConfig{Level: "ERROR", Format: "json", Output: &bytes.Buffer{}}))

	dir = t.TempDir()
	configPath = filepath.Join(dir, "config.yaml")
	config = strings.ReplaceAll(config, "$DIR", dir)
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))
	return dir, configPath
}

func TestRunSample(t *testing.T) {
	dir, configPath := setup(t, "log:\n  dir: $DIR/logs\n")

	var out bytes.Buffer
	code := run(context.Background(), options{configPath: configPath, sample: true}, true, &out)
	require.Equal(t, 0, code)

	assert.Equal(t, strings.Join([]string{
		"Processing date: 2016-01-04",
		"Total incoming value: 15789.375000",
		"foo is rank 1 (total 15037.500000)",
		"boo is rank 2 (total 751.875000)",
		"Total outgoing value: 0.000000",
		"Processing date: 2016-01-05",
		"Total incoming value: 0.000000",
		"Total outgoing value: 14899.500000",
		"bar is rank 1 (total 14899.500000)",
	}, "\n")+"\n", out.String())

	runs, err := filepath.Glob(filepath.Join(dir, "logs", "runs", "*.txt"))
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunInputCSVWithSave(t *testing.T) {
	dir, configPath := setup(t, `
input: $DIR/batch.csv
report:
  format: csv
  save: true
  output_dir: $DIR/reports
log:
  dir: $DIR/logs
`)
	batch := "entity,operation,currency,trade_date,units,fx_rate,price\n" +
		"buy_entity,B,AED,2018-06-23,100,1.5,50\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "batch.csv"), []byte(batch), 0o644))

	var out bytes.Buffer
	code := run(context.Background(), options{configPath: configPath}, true, &out)
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "2018-06-24,incoming,1,buy_entity,7500.000000")

	saved, err := filepath.Glob(filepath.Join(dir, "reports", "settlement_report_*.csv"))
	require.NoError(t, err)
	require.Len(t, saved, 1)
	data, err := os.ReadFile(saved[0])
	require.NoError(t, err)
	assert.Equal(t, out.String(), string(data))
}

func TestRunExplicitOutput(t *testing.T) {
	dir, configPath := setup(t, "log:\n  dir: $DIR/logs\n")
	output := filepath.Join(dir, "report.json")

	var out bytes.Buffer
	code := run(context.Background(), options{configPath: configPath, sample: true, format: "json", output: output}, true, &out)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"settlement_date": "2016-01-04"`)
}

func TestRunFailures(t *testing.T) {
	dir, configPath := setup(t, "log:\n  dir: $DIR/logs\n")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("instructions:\n  - entity: x\n    operation: B\n    currency: JPY\n    trade_date: 2018-06-20\n    units: 1\n    fx_rate: 1\n    price: 1\n"), 0o644))

	tests := map[string]options{
		"no input":       {configPath: configPath},
		"invalid row":    {configPath: configPath, input: bad},
		"unknown format": {configPath: configPath, sample: true, format: "xml"},
		"missing config": {configPath: filepath.Join(dir, "missing.yaml"), sample: true},
	}
	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, 1, run(context.Background(), opts, true, &out))
			assert.Empty(t, out.String(), "no partial report on failure")
		})
	}
}

func TestRunDefaultConfigFallback(t *testing.T) {
	dir, _ := setup(t, "")
	t.Setenv("REPORT_LOG_DIR", filepath.Join(dir, "logs"))

	var out bytes.Buffer
	code := run(context.Background(), options{configPath: filepath.Join(dir, "absent.yaml"), sample: true}, false, &out)
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out.String(), "Processing date: 2016-01-04\n"))
}
