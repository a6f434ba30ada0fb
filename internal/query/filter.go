// Package query holds the pure receipt pipeline: filter, order, paginate and
// the aggregation views. Nothing here does I/O or returns errors.
package query

import (
	"time"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/models"
)

// Predicate reports whether a receipt is kept.
type Predicate func(models.Receipt) bool

func MinSum(floor float64) Predicate {
	return func(r models.Receipt) bool { return r.Sum >= floor }
}

func MaxSum(ceiling float64) Predicate {
	return func(r models.Receipt) bool { return r.Sum <= ceiling }
}

func StartDate(start time.Time) Predicate {
	return func(r models.Receipt) bool { return !r.Date.Before(start) }
}

func EndDate(end time.Time) Predicate {
	return func(r models.Receipt) bool { return !r.Date.After(end) }
}

func OfType(t models.ExpenseType) Predicate {
	return func(r models.Receipt) bool { return r.ExpenseType == t }
}

// Predicates expands a filter into independent predicates, one per set field.
func Predicates(f dto.ReceiptFilter) []Predicate {
	var preds []Predicate
	if f.MinSum != nil {
		preds = append(preds, MinSum(*f.MinSum))
	}
	if f.MaxSum != nil {
		preds = append(preds, MaxSum(*f.MaxSum))
	}
	if f.StartDate != nil {
		preds = append(preds, StartDate(*f.StartDate))
	}
	if f.EndDate != nil {
		preds = append(preds, EndDate(*f.EndDate))
	}
	if f.ExpenseType != nil {
		preds = append(preds, OfType(*f.ExpenseType))
	}
	return preds
}

// Apply narrows receipts by each predicate in turn. The input is not modified
// and the relative order of kept receipts is preserved.
func Apply(receipts []models.Receipt, preds ...Predicate) []models.Receipt {
	out := make([]models.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if keep(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

// Filter is Apply over the predicates of f.
func Filter(receipts []models.Receipt, f dto.ReceiptFilter) []models.Receipt {
	return Apply(receipts, Predicates(f)...)
}

func keep(r models.Receipt, preds []Predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}
