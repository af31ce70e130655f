package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"settlement-report/internal/types"
)

// DefaultPrecision is the number of fractional digits rendered for values.
const DefaultPrecision int32 = 6

const (
	dateLayout = "2006-01-02"

	processingDate = "Processing date: %s"
	totalIncoming  = "Total incoming value: %s"
	totalOutgoing  = "Total outgoing value: %s"
	dailyRank      = "%s is rank %d (total %s)"
)

// Lines renders days as report lines. Each day contributes its header, the
// incoming total and rankings, then the outgoing total and rankings.
func Lines(days []types.DailyReport, precision int32) []string {
	lines := make([]string, 0, len(days)*3)
	for _, day := range days {
		lines = append(lines, fmt.Sprintf(processingDate, day.Date.Format(dateLayout)))
		lines = appendDirection(lines, totalIncoming, day.Incoming, precision)
		lines = appendDirection(lines, totalOutgoing, day.Outgoing, precision)
	}
	return lines
}

func appendDirection(lines []string, header string, s types.DirectionSummary, precision int32) []string {
	lines = append(lines, fmt.Sprintf(header, FormatValue(s.Total, precision)))
	for _, r := range s.Rankings {
		lines = append(lines, fmt.Sprintf(dailyRank, r.Entity, r.Rank, FormatValue(r.Total, precision)))
	}
	return lines
}

// FormatValue renders v with exactly precision fractional digits.
func FormatValue(v decimal.Decimal, precision int32) string {
	return v.StringFixed(precision)
}
