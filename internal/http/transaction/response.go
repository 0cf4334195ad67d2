package transaction

import (
	"github.com/ykarpov/budgetd/internal/query"
	"github.com/ykarpov/budgetd/internal/transaction"
)

type transactionResponse struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Amount      float64          `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description,omitempty"`
	Type        transaction.Type `json:"type"`
	CreatedAt   int64            `json:"createdAt"`
}

type listResponse struct {
	Items       []transactionResponse `json:"items"`
	TotalCount  int                   `json:"totalCount"`
	TotalAmount float64               `json:"totalAmount"`
	Page        int                   `json:"page"`
	PageCount   int                   `json:"pageCount"`
}

type clearResponse struct {
	Removed int `json:"removed"`
}

type seedResponse struct {
	Seeded int `json:"seeded"`
}

type categoriesResponse struct {
	Categories []transaction.Category `json:"categories"`
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		Type:        tx.Type,
		CreatedAt:   tx.CreatedAt,
	}
}

func toListResponse(result query.Result) listResponse {
	items := make([]transactionResponse, 0, len(result.Items))
	for _, tx := range result.Items {
		items = append(items, toResponse(tx))
	}

	return listResponse{
		Items:       items,
		TotalCount:  result.TotalCount,
		TotalAmount: result.TotalAmount,
		Page:        result.Page,
		PageCount:   result.PageCount,
	}
}
