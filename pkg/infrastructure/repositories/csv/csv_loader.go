package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
)

// RawItemHeader is the column layout of a planning batch file
var RawItemHeader = []string{"item_id", "abcd_classification", "planning_type", "safety_stock", "rop", "max", "order_quantity"}

// Loader handles loading planning batches from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRawItems loads a planning batch from a CSV file
func (l *Loader) LoadRawItems(filename string) ([]entities.RawItem, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open items file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadRawItems(file)
}

// ReadRawItems parses a planning batch from r
func (l *Loader) ReadRawItems(r io.Reader) ([]entities.RawItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read items CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("items CSV must have header and at least one data row")
	}

	header := records[0]
	if !ValidateHeader(header, RawItemHeader) {
		return nil, fmt.Errorf("items CSV header mismatch. Expected: %v, Got: %v", RawItemHeader, header)
	}

	items := make([]entities.RawItem, 0, len(records)-1)
	for i, record := range records[1:] {
		item, err := ParseRawItemRecord(record)
		if err != nil {
			return nil, fmt.Errorf("items CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// ValidateHeader compares a header row case-insensitively
func ValidateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(strings.TrimPrefix(actual[i], "\ufeff"))) != col {
			return false
		}
	}

	return true
}

// ParseRawItemRecord converts one row laid out as RawItemHeader. Empty cells
// are left absent; trailing cells may be omitted.
func ParseRawItemRecord(record []string) (entities.RawItem, error) {
	if len(record) > len(RawItemHeader) {
		return entities.RawItem{}, fmt.Errorf("expected at most %d columns, got %d", len(RawItemHeader), len(record))
	}
	cell := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	item := entities.RawItem{
		ItemCode:       entities.ItemCode(cell(0)),
		Classification: optionalString(cell(1)),
		PlanType:       optionalString(cell(2)),
	}

	quantities := []struct {
		column string
		target **decimal.Decimal
	}{
		{"safety_stock", &item.SafetyStock},
		{"rop", &item.ReorderPoint},
		{"max", &item.Max},
		{"order_quantity", &item.OrderQuantity},
	}
	for i, q := range quantities {
		value, err := optionalDecimal(cell(3 + i))
		if err != nil {
			return entities.RawItem{}, fmt.Errorf("invalid %s: %w", q.column, err)
		}
		*q.target = value
	}

	if err := item.Validate(); err != nil {
		return entities.RawItem{}, err
	}
	return item, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	// accept a decimal comma as exported by Turkish-locale spreadsheets
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
