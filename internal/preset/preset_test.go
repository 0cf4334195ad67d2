package preset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ykarpov/budgetd/internal/transaction"
)

var presetRef = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.Local)

func TestYearIsDeterministic(t *testing.T) {
	first := Year(presetRef)
	second := Year(presetRef)

	assert.Equal(t, first, second)
}

func TestYearShape(t *testing.T) {
	txs := Year(presetRef)

	// 12 months, 4 expense parts and 3 income parts each.
	require.Len(t, txs, 12*7)

	ids := make(map[string]struct{}, len(txs))
	for _, tx := range txs {
		ids[tx.ID] = struct{}{}
	}
	assert.Len(t, ids, len(txs))

	for i := 1; i < len(txs); i++ {
		assert.LessOrEqual(t, txs[i].Date, txs[i-1].Date)
	}

	// Window spans exactly the eleven months before the reference month
	// through the reference month itself.
	assert.Equal(t, "2025-03", txs[0].Date[:7])
	assert.Equal(t, "2024-04", txs[len(txs)-1].Date[:7])
}

func TestYearPartsSumToMonthTotals(t *testing.T) {
	txs := Year(presetRef)

	byMonth := make(map[string]map[transaction.Type]float64)

	for _, tx := range txs {
		month := tx.Date[:7]
		if byMonth[month] == nil {
			byMonth[month] = make(map[transaction.Type]float64)
		}

		byMonth[month][tx.Type] += tx.Amount
	}

	require.Len(t, byMonth, 12)

	// Index 11 is the reference month.
	assert.Equal(t, monthlyExpenses[11], byMonth["2025-03"][transaction.TypeExpense])
	assert.Equal(t, monthlyIncomes[11], byMonth["2025-03"][transaction.TypeIncome])
	assert.Equal(t, monthlyExpenses[0], byMonth["2024-04"][transaction.TypeExpense])
	assert.Equal(t, monthlyIncomes[0], byMonth["2024-04"][transaction.TypeIncome])
}

func TestYearAmountsArePositive(t *testing.T) {
	for _, tx := range Year(presetRef) {
		assert.Positive(t, tx.Amount, "id %s", tx.ID)
	}
}

func TestDemoShape(t *testing.T) {
	txs := Demo(presetRef)

	require.NotEmpty(t, txs)

	months := make(map[string]struct{})
	hasIncome, hasExpense := false, false

	for _, tx := range txs {
		months[tx.Date[:7]] = struct{}{}

		switch tx.Type {
		case transaction.TypeIncome:
			hasIncome = true
		case transaction.TypeExpense:
			hasExpense = true
		}
	}

	assert.Contains(t, months, "2025-03")
	assert.Contains(t, months, "2025-02")
	assert.True(t, hasIncome)
	assert.True(t, hasExpense)

	for i := 1; i < len(txs); i++ {
		assert.LessOrEqual(t, txs[i].Date, txs[i-1].Date)
	}
}

func TestParseShape(t *testing.T) {
	got, err := ParseShape("year")
	require.NoError(t, err)
	assert.Equal(t, ShapeYear, got)

	got, err = ParseShape("demo")
	require.NoError(t, err)
	assert.Equal(t, ShapeDemo, got)

	_, err = ParseShape("random")
	assert.Error(t, err)
}
