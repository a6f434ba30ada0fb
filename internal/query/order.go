package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/models"
)

// ParseOrderKey normalizes an orderBy value. ok is false for empty or
// unrecognized keys.
func ParseOrderKey(key string) (string, bool) {
	switch k := strings.ToLower(key); k {
	case dto.OrderBySum, dto.OrderByDate, dto.OrderByExpenseType:
		return k, true
	default:
		return "", false
	}
}

// Order returns receipts sorted ascending by key. The sort is stable. An empty
// or unrecognized key returns a copy in the original order.
func Order(receipts []models.Receipt, key string) []models.Receipt {
	out := slices.Clone(receipts)
	k, ok := ParseOrderKey(key)
	if !ok {
		return out
	}

	var compare func(a, b models.Receipt) int
	switch k {
	case dto.OrderBySum:
		compare = func(a, b models.Receipt) int { return cmp.Compare(a.Sum, b.Sum) }
	case dto.OrderByDate:
		compare = func(a, b models.Receipt) int { return a.Date.Compare(b.Date) }
	case dto.OrderByExpenseType:
		compare = func(a, b models.Receipt) int { return cmp.Compare(a.ExpenseType, b.ExpenseType) }
	}
	slices.SortStableFunc(out, compare)
	return out
}
