package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Human-readable column headers of the spreadsheet exchange format.
const (
	colType     = "Тип"
	colDate     = "Дата"
	colCategory = "Категория"
	colAmount   = "Сумма"
	colDesc     = "Описание"
	colID       = "ID (Не трогать)"
)

// parseXLSX reads the first sheet of a workbook and maps rows to raw
// records by header name, so column order does not matter. Cells that
// excelize hands back as bare numbers (raw date serials) are forwarded
// untouched; Coerce sorts them out.
func parseXLSX(r io.Reader) ([]RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}

	var raws []RawRecord

	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		raws = append(raws, RawRecord{
			ID:          cell(row, cols, colID),
			Date:        cell(row, cols, colDate),
			Amount:      cell(row, cols, colAmount),
			Category:    cell(row, cols, colCategory),
			Description: cell(row, cols, colDesc),
			Type:        cell(row, cols, colType),
		})
	}

	return raws, nil
}

// cell returns the trimmed value of a named column, or "" when the column
// or the cell is absent.
func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
