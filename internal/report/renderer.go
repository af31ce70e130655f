package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"settlement-report/internal/types"
)

// Format specifies the output format of a rendered report
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat returns the format named s, defaulting to text for "".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

func (f Format) extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Renderer renders daily reports and stores them on disk
type Renderer struct {
	outputDir string
	precision int32
}

func NewRenderer(outputDir string, precision int32) *Renderer {
	return &Renderer{
		outputDir: outputDir,
		precision: precision,
	}
}

// Render renders days in the given format.
func (r *Renderer) Render(days []types.DailyReport, format Format) (string, error) {
	switch format {
	case FormatText:
		return r.renderText(days), nil
	case FormatJSON:
		return r.renderJSON(days)
	case FormatCSV:
		return r.renderCSV(days)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Save renders days and writes them to the output directory, returning the
// path of the written file.
func (r *Renderer) Save(days []types.DailyReport, format Format, at time.Time) (string, error) {
	content, err := r.Render(days, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("settlement_report_%s.%s", at.Format("2006-01-02_15-04-05"), format.extension())
	path := filepath.Join(r.outputDir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (r *Renderer) renderText(days []types.DailyReport) string {
	lines := Lines(days, r.precision)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

type jsonRanking struct {
	Rank   int    `json:"rank"`
	Entity string `json:"entity"`
	Total  string `json:"total"`
}

type jsonDirection struct {
	Total    string        `json:"total"`
	Rankings []jsonRanking `json:"rankings"`
}

type jsonDay struct {
	Date     string        `json:"settlement_date"`
	Incoming jsonDirection `json:"incoming"`
	Outgoing jsonDirection `json:"outgoing"`
}

func (r *Renderer) renderJSON(days []types.DailyReport) (string, error) {
	out := make([]jsonDay, 0, len(days))
	for _, day := range days {
		out = append(out, jsonDay{
			Date:     day.Date.Format(dateLayout),
			Incoming: r.jsonDirection(day.Incoming),
			Outgoing: r.jsonDirection(day.Outgoing),
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Renderer) jsonDirection(s types.DirectionSummary) jsonDirection {
	d := jsonDirection{
		Total:    FormatValue(s.Total, r.precision),
		Rankings: make([]jsonRanking, 0, len(s.Rankings)),
	}
	for _, rk := range s.Rankings {
		d.Rankings = append(d.Rankings, jsonRanking{Rank: rk.Rank, Entity: rk.Entity, Total: FormatValue(rk.Total, r.precision)})
	}
	return d
}

// renderCSV writes one TOTAL row per direction followed by its rankings.
func (r *Renderer) renderCSV(days []types.DailyReport) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"settlement_date", "direction", "rank", "entity", "total"}); err != nil {
		return "", err
	}
	for _, day := range days {
		date := day.Date.Format(dateLayout)
		for _, s := range []types.DirectionSummary{day.Incoming, day.Outgoing} {
			direction := "incoming"
			if s.Operation == types.Sell {
				direction = "outgoing"
			}
			if err := w.Write([]string{date, direction, "", "TOTAL", FormatValue(s.Total, r.precision)}); err != nil {
				return "", err
			}
			for _, rk := range s.Rankings {
				rec := []string{date, direction, strconv.Itoa(rk.Rank), rk.Entity, FormatValue(rk.Total, r.precision)}
				if err := w.Write(rec); err != nil {
					return "", err
				}
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
