// Package importer turns external files (JSON backups, spreadsheets, CSV
// exports) into validated transactions. Its policy is leniency: a single
// bad row is never a reason to fail an import; bad fields degrade to safe
// defaults and are counted in the summary instead.
package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/ykarpov/budgetd/internal/transaction"
)

// Format identifies a supported import file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatXLSX, FormatCSV:
		return Format(s), nil
	}

	return "", fmt.Errorf("unknown import format: %q", s)
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Import parses the file in the given format and coerces every row,
// using now for the today-fallback and minted timestamps.
func (s *Service) Import(format Format, r io.Reader, now time.Time) ([]transaction.Transaction, Summary, error) {
	var (
		raws []RawRecord
		err  error
	)

	switch format {
	case FormatJSON:
		raws, err = parseJSON(r)
	case FormatXLSX:
		raws, err = parseXLSX(r)
	case FormatCSV:
		raws, err = parseCSV(r)
	default:
		err = fmt.Errorf("unknown import format: %q", format)
	}

	if err != nil {
		return nil, Summary{}, err
	}

	txs, sum := CoerceAll(raws, now)

	return txs, sum, nil
}
