package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settlement-report/internal/instruction"
	"settlement-report/internal/types"
)

func sampleDays(t *testing.T) []types.DailyReport {
	t.Helper()
	batch := []instruction.Instruction{
		newInstruction("BUY_E", types.Buy, types.AED, "2018-06-22", "1.5", "50", 100),
		newInstruction("SEL_E", types.Sell, types.USD, "2018-06-22", "1.5", "50", 200),
	}
	days, err := NewGenerator().Build(context.Background(), batch)
	require.NoError(t, err)
	return days
}

func TestRenderText(t *testing.T) {
	out, err := NewRenderer(t.TempDir(), DefaultPrecision).Render(sampleDays(t), FormatText)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Processing date: 2018-06-22\nTotal incoming value: 0.000000\n"))
	assert.Equal(t, 8, strings.Count(out, "\n"))
}

func TestRenderTextEmpty(t *testing.T) {
	out, err := NewRenderer(t.TempDir(), DefaultPrecision).Render(nil, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestRenderJSON(t *testing.T) {
	out, err := NewRenderer(t.TempDir(), 2).Render(sampleDays(t), FormatJSON)
	require.NoError(t, err)

	var decoded []jsonDay
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "2018-06-22", decoded[0].Date)
	assert.Equal(t, "0.00", decoded[0].Incoming.Total)
	assert.Equal(t, "15000.00", decoded[0].Outgoing.Total)
	assert.Equal(t, []jsonRanking{{Rank: 1, Entity: "SEL_E", Total: "15000.00"}}, decoded[0].Outgoing.Rankings)
	assert.Equal(t, "2018-06-24", decoded[1].Date)
}

func TestRenderCSV(t *testing.T) {
	out, err := NewRenderer(t.TempDir(), DefaultPrecision).Render(sampleDays(t), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"settlement_date,direction,rank,entity,total",
		"2018-06-22,incoming,,TOTAL,0.000000",
		"2018-06-22,outgoing,,TOTAL,15000.000000",
		"2018-06-22,outgoing,1,SEL_E,15000.000000",
		"2018-06-24,incoming,,TOTAL,7500.000000",
		"2018-06-24,incoming,1,BUY_E,7500.000000",
		"2018-06-24,outgoing,,TOTAL,0.000000",
	}, "\n")+"\n", out)
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := NewRenderer(t.TempDir(), DefaultPrecision).Render(nil, Format("xml"))
	assert.Error(t, err)

	_, err = ParseFormat("xml")
	assert.Error(t, err)

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	at := time.Date(2018, 6, 25, 9, 30, 0, 0, time.UTC)

	path, err := NewRenderer(dir, DefaultPrecision).Save(sampleDays(t), FormatText, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settlement_report_2018-06-25_09-30-00.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SEL_E is rank 1 (total 15000.000000)")
}
