// Package loader reads instruction batches from YAML or CSV files.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"settlement-report/internal/instruction"
	"settlement-report/internal/types"
)

const dateLayout = "2006-01-02"

// record is one raw instruction row. Decimal fields stay strings until
// parsed so no value passes through a float.
type record struct {
	Entity    string `yaml:"entity" csv:"entity"`
	Operation string `yaml:"operation" csv:"operation"`
	Currency  string `yaml:"currency" csv:"currency"`
	TradeDate string `yaml:"trade_date" csv:"trade_date"`
	Units     int64  `yaml:"units" csv:"units"`
	FxRate    string `yaml:"fx_rate" csv:"fx_rate"`
	Price     string `yaml:"price" csv:"price"`
}

type batchFile struct {
	Instructions []record `yaml:"instructions"`
}

// RowError reports an invalid record. Row is 1-based and counts data rows
// only.
type RowError struct {
	Source string
	Row    int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Source, e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Load reads the batch at path, choosing the decoder from its extension.
func Load(path string) ([]instruction.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	source := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(source, f)
	case ".csv":
		return ReadCSV(source, f)
	default:
		return nil, fmt.Errorf("unsupported batch file %s: expected .yaml, .yml or .csv", path)
	}
}

// ReadYAML decodes a document of the form `instructions: [...]`.
func ReadYAML(source string, r io.Reader) ([]instruction.Instruction, error) {
	var batch batchFile
	if err := yaml.NewDecoder(r).Decode(&batch); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return build(source, batch.Instructions)
}

// ReadCSV decodes a CSV with a header row naming the record columns.
func ReadCSV(source string, r io.Reader) ([]instruction.Instruction, error) {
	var rows []*record
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	recs := make([]record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, *row)
	}
	return build(source, recs)
}

func build(source string, recs []record) ([]instruction.Instruction, error) {
	out := make([]instruction.Instruction, 0, len(recs))
	for i, rec := range recs {
		ins, err := rec.instruction()
		if err != nil {
			return nil, &RowError{Source: source, Row: i + 1, Err: err}
		}
		out = append(out, ins)
	}
	return out, nil
}

func (r record) instruction() (instruction.Instruction, error) {
	p, err := r.params()
	if err != nil {
		return instruction.Instruction{}, err
	}
	return instruction.New(p)
}

func (r record) params() (instruction.Params, error) {
	op, err := types.ParseOperation(r.Operation)
	if err != nil {
		return instruction.Params{}, err
	}
	ccy, err := types.ParseCurrency(r.Currency)
	if err != nil {
		return instruction.Params{}, err
	}
	tradeDate, err := time.Parse(dateLayout, strings.TrimSpace(r.TradeDate))
	if err != nil {
		return instruction.Params{}, fmt.Errorf("trade_date: %w", err)
	}
	fx, err := decimal.NewFromString(strings.TrimSpace(r.FxRate))
	if err != nil {
		return instruction.Params{}, fmt.Errorf("fx_rate: %w", err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return instruction.Params{}, fmt.Errorf("price: %w", err)
	}

	return instruction.Params{
		Entity:    r.Entity,
		Operation: op,
		Currency:  ccy,
		TradeDate: tradeDate,
		Units:     r.Units,
		FxRate:    fx,
		Price:     price,
	}, nil
}

// Sample returns a small demonstration batch spanning two settlement dates.
func Sample() []instruction.Instruction {
	recs := []record{
		{Entity: "foo", Operation: "B", Currency: "SGP", TradeDate: "2016-01-02", Units: 200, FxRate: "0.5", Price: "100.25"},
		{Entity: "bar", Operation: "S", Currency: "AED", TradeDate: "2016-01-05", Units: 450, FxRate: "0.22", Price: "150.5"},
		{Entity: "foo", Operation: "B", Currency: "SGP", TradeDate: "2016-01-02", Units: 100, FxRate: "0.5", Price: "100.25"},
		{Entity: "boo", Operation: "B", Currency: "SGP", TradeDate: "2016-01-03", Units: 15, FxRate: "0.5", Price: "100.25"},
	}
	out, err := build("sample", recs)
	if err != nil {
		panic(err)
	}
	return out
}
