// Package xlsx loads planning batches from Excel workbooks.
package xlsx

import (
	"fmt"
	"io"

	"github.com/vsinha/ropfeed/pkg/domain/entities"
	csvloader "github.com/vsinha/ropfeed/pkg/infrastructure/repositories/csv"
	"github.com/xuri/excelize/v2"
)

// Loader reads the first sheet (or the named one) of a workbook laid out
// like the CSV batch format
type Loader struct {
	Sheet string
}

func NewLoader() *Loader {
	return &Loader{}
}

// LoadRawItems loads a planning batch from an .xlsx file
func (l *Loader) LoadRawItems(filename string) ([]entities.RawItem, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filename, err)
	}
	defer f.Close()
	return l.readRows(f)
}

// ReadRawItems loads a planning batch from workbook bytes
func (l *Loader) ReadRawItems(r io.Reader) ([]entities.RawItem, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return l.readRows(f)
}

func (l *Loader) readRows(f *excelize.File) ([]entities.RawItem, error) {
	sheet := l.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s must have header and at least one data row", sheet)
	}
	if !csvloader.ValidateHeader(padRow(rows[0], len(csvloader.RawItemHeader)), csvloader.RawItemHeader) {
		return nil, fmt.Errorf("sheet %s header mismatch. Expected: %v, Got: %v", sheet, csvloader.RawItemHeader, rows[0])
	}

	items := make([]entities.RawItem, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		item, err := csvloader.ParseRawItemRecord(row)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", sheet, i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// GetRows drops trailing empty cells
func padRow(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// WriteTemplate writes an empty batch workbook with the header row
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, col := range csvloader.RawItemHeader {
		cellName, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cellName, col); err != nil {
			return err
		}
	}
	return f.Write(w)
}
