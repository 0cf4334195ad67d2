package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/ykarpov/budgetd/internal/encoding"
)

// csvProfile describes one known CSV column layout. Detection walks the
// rows until a header matching a profile is found, so files with preamble
// lines above the header still parse.
type csvProfile struct {
	Name     string
	Required []string
	// Signed marks layouts with one signed amount column where the sign,
	// not a type column, separates income from expense.
	Signed bool
}

// csvProfiles is ordered most-specific first.
var csvProfiles = []csvProfile{
	{
		// The app's own spreadsheet exchange columns, saved as CSV.
		Name:     "native",
		Required: []string{colType, colDate, colAmount},
	},
	{
		// Generic bank statement: a date, a signed amount, a description.
		Name:     "statement",
		Required: []string{colDate, colAmount},
		Signed:   true,
	},
}

// parseCSV decodes a budget or bank CSV of unknown encoding and layout.
func parseCSV(r io.Reader) ([]RawRecord, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectCSVProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no recognizable header row: need at least %q and %q columns", colDate, colAmount)
	}

	var raws []RawRecord

	for _, row := range rows[headerIdx+1:] {
		if isEmptyRow(row) {
			continue
		}

		raw := RawRecord{
			ID:          cell(row, cols, colID),
			Date:        cell(row, cols, colDate),
			Category:    cell(row, cols, colCategory),
			Description: cell(row, cols, colDesc),
			Type:        cell(row, cols, colType),
		}

		amount := cell(row, cols, colAmount)

		if profile.Signed {
			value, negative, ok := splitSignedAmount(amount)
			if !ok {
				// Footer or summary line.
				continue
			}

			raw.Amount = value
			if negative {
				raw.Type = "expense"
			} else {
				raw.Type = "income"
			}
		} else {
			raw.Amount = amount
		}

		raws = append(raws, raw)
	}

	return raws, nil
}

// detectCSVProfile scans rows for a header matching a known profile and
// returns the profile, the column index map, and the header row index.
func detectCSVProfile(rows [][]string) (*csvProfile, map[string]int, int) {
	for rowIdx, row := range rows {
		cols := make(map[string]int, len(row))

		for i, name := range row {
			if name = strings.TrimSpace(name); name != "" {
				cols[name] = i
			}
		}

		for i := range csvProfiles {
			if hasColumns(cols, csvProfiles[i].Required) {
				return &csvProfiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func hasColumns(cols map[string]int, required []string) bool {
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// splitSignedAmount parses a signed, possibly locale-formatted amount and
// returns its absolute value as a plain decimal string.
func splitSignedAmount(s string) (value string, negative, ok bool) {
	clean := strings.NewReplacer(" ", "", " ", "", "₽", "", ",", ".").Replace(strings.TrimSpace(s))
	if clean == "" {
		return "", false, false
	}

	d, err := decimal.NewFromString(clean)
	if err != nil || d.IsZero() {
		return "", false, false
	}

	return d.Abs().String(), d.IsNegative(), true
}

// sniffDelimiter picks between the two delimiters seen in real exports by
// counting occurrences in the first line.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)

	line := string(peek)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	if strings.Count(line, ";") >= strings.Count(line, ",") {
		return ';'
	}

	return ','
}
