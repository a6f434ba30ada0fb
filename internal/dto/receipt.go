package dto

import (
	"time"

	"github.com/GregMSThompson/receipts-backend/internal/models"
)

const (
	OrderBySum         = "sum"
	OrderByDate        = "date"
	OrderByExpenseType = "expensetype"
)

// ReceiptFilter holds optional predicates. A nil field imposes no constraint.
type ReceiptFilter struct {
	MinSum      *float64
	MaxSum      *float64
	StartDate   *time.Time
	EndDate     *time.Time
	ExpenseType *models.ExpenseType
}

type ListReceiptsArgs struct {
	Page     int
	PageSize int
	OrderBy  string
	Filter   ReceiptFilter
}

type PagedResult struct {
	TotalCount  int              `json:"totalCount"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	PageSize    int              `json:"pageSize"`
	Receipts    []models.Receipt `json:"receipts"`
}

// ReceiptInput is a receipt without an id, used for create and full replacement.
type ReceiptInput struct {
	Sum         float64
	Date        time.Time
	Description string
	ExpenseType models.ExpenseType
	Location    string
}

func (in ReceiptInput) Receipt() models.Receipt {
	return models.Receipt{
		Sum:         in.Sum,
		Date:        in.Date,
		Description: in.Description,
		ExpenseType: in.ExpenseType,
		Location:    in.Location,
	}
}

type ExportReceiptsArgs struct {
	OrderBy string
	Filter  ReceiptFilter
}
