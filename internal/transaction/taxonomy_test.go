package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ykarpov/budgetd/internal/transaction"
)

func TestGroupOf(t *testing.T) {
	assert.Equal(t, transaction.GroupFood, transaction.GroupOf("Продукты"))
	assert.Equal(t, transaction.GroupFixed, transaction.GroupOf("Коммуналка"))
	assert.Equal(t, transaction.GroupActive, transaction.GroupOf("Зарплата"))
	assert.Equal(t, transaction.GroupPassive, transaction.GroupOf("Кэшбэк"))

	// Free-form tags outside the taxonomy still aggregate.
	assert.Equal(t, transaction.GroupMisc, transaction.GroupOf("Неизвестное"))
}

func TestCategoryNames(t *testing.T) {
	expenses := transaction.CategoryNames(transaction.TypeExpense)
	incomes := transaction.CategoryNames(transaction.TypeIncome)

	assert.Contains(t, expenses, transaction.DefaultCategory)
	assert.Contains(t, incomes, "Зарплата")
	assert.NotContains(t, incomes, "Продукты")
	assert.Len(t, expenses, 11)
	assert.Len(t, incomes, 6)
}
