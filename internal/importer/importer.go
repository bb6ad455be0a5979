// Package importer reads personal word lists from spreadsheets.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/vokabel-trainer/internal/domain/entities"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Config describes where the word columns are.
type Config struct {
	SourceColumn   string // column with the word being learned
	TargetColumn   string // column with the translation
	CategoryColumn string // optional, empty to skip
	SheetName      string // xlsx only, empty for the first sheet
	StartRow       int    // first data row, 1-based
}

// DefaultConfig expects "word, translation, category" with a header row.
func DefaultConfig() Config {
	return Config{
		SourceColumn:   "A",
		TargetColumn:   "B",
		CategoryColumn: "C",
		StartRow:       2,
	}
}

// Result holds the parsed rows and the rows that were rejected.
type Result struct {
	Words   []entities.ItemEdit
	Skipped int
	Errors  []string
}

// ReadFile parses an .xlsx or .csv file.
func ReadFile(path string, cfg Config) (*Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open Excel file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return readExcel(f, cfg)

	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer func() { _ = file.Close() }()
		return ReadCSV(file, cfg)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadExcel parses an xlsx document from r.
func ReadExcel(r io.Reader, cfg Config) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return readExcel(f, cfg)
}

func readExcel(f *excelize.File, cfg Config) (*Result, error) {
	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	return collect(rows, cfg)
}

// ReadCSV parses CSV data from r.
func ReadCSV(r io.Reader, cfg Config) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	return collect(rows, cfg)
}

func collect(rows [][]string, cfg Config) (*Result, error) {
	source, err := columnIndex(cfg.SourceColumn)
	if err != nil {
		return nil, err
	}
	target, err := columnIndex(cfg.TargetColumn)
	if err != nil {
		return nil, err
	}
	category := -1
	if cfg.CategoryColumn != "" {
		if category, err = columnIndex(cfg.CategoryColumn); err != nil {
			return nil, err
		}
	}

	res := &Result{}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < cfg.StartRow {
			continue
		}

		edit := entities.ItemEdit{
			SourceText: cell(row, source),
			TargetText: cell(row, target),
			Category:   cell(row, category),
		}

		if edit.SourceText == "" && edit.TargetText == "" {
			res.Skipped++
			continue
		}
		if edit.SourceText == "" || edit.TargetText == "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", rowNum, entities.ErrEmptyText))
			continue
		}

		res.Words = append(res.Words, edit)
	}

	return res, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// columnIndex converts a column letter such as "A" or "AB" into a 0-based index.
func columnIndex(col string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(col))
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", col, err)
	}
	return n - 1, nil
}
