// Package export serializes the transaction list into the two backup
// formats: a versioned JSON envelope and a spreadsheet workbook.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ykarpov/budgetd/internal/dateutil"
	"github.com/ykarpov/budgetd/internal/transaction"
)

const (
	sheetName = "Бюджет"

	labelExpense = "Расход"
	labelIncome  = "Доход"
)

// headers is the fixed column order of the spreadsheet format. Import maps
// by header name, so renumbering columns here stays backward compatible.
var headers = []string{"Тип", "Дата", "Категория", "Сумма", "Описание", "ID (Не трогать)"}

// columnWidths matches the headers slice index-for-index.
var columnWidths = []float64{10, 12, 20, 10, 30, 25}

// Envelope is the wrapped JSON backup form: the raw list plus format
// version and creation timestamp metadata.
type Envelope struct {
	Version      string                    `json:"version"`
	CreatedAt    string                    `json:"createdAt"`
	Transactions []transaction.Transaction `json:"transactions"`
}

type Service struct {
	transactions *transaction.Service
	version      string
}

func NewService(txService *transaction.Service, version string) *Service {
	return &Service{transactions: txService, version: version}
}

// JSONFilename returns the canonical backup filename for now's date.
func (s *Service) JSONFilename(now time.Time) string {
	return fmt.Sprintf("budget_backup_v%s_%s.json", s.version, dateutil.Today(now))
}

// ExcelFilename returns the canonical workbook filename for now's date.
func (s *Service) ExcelFilename(now time.Time) string {
	return fmt.Sprintf("budget_excel_%s.xlsx", dateutil.Today(now))
}

// WriteJSON writes the enveloped backup. The exporter always writes the
// envelope form; the importer accepts both it and a bare array.
func (s *Service) WriteJSON(ctx context.Context, w io.Writer, now time.Time) error {
	env := Envelope{
		Version:      s.version,
		CreatedAt:    now.Format(time.RFC3339),
		Transactions: s.transactions.List(ctx),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(env); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}

	return nil
}

// WriteExcel writes a single-sheet workbook, one row per transaction, in
// the fixed column order.
func (s *Service) WriteExcel(ctx context.Context, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("resolving column %d: %w", i+1, err)
		}

		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", col, err)
		}
	}

	for i, tx := range s.transactions.List(ctx) {
		label := labelExpense
		if tx.Type == transaction.TypeIncome {
			label = labelIncome
		}

		row := []any{label, tx.Date, tx.Category, tx.Amount, tx.Description, tx.ID}

		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolving row %d: %w", i+2, err)
		}

		if err := f.SetSheetRow(sheetName, cellRef, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}
