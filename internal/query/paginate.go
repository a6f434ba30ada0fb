package query

import (
	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/models"
)

// TotalPages is ceil(totalCount/pageSize), zero for an empty result.
func TotalPages(totalCount, pageSize int) int {
	if totalCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalCount-1)/pageSize + 1
}

// Paginate cuts one 1-based page out of receipts. Pages past the end are
// empty; the counts still describe the whole input.
func Paginate(receipts []models.Receipt, page, pageSize int) dto.PagedResult {
	result := dto.PagedResult{
		TotalCount:  len(receipts),
		TotalPages:  TotalPages(len(receipts), pageSize),
		CurrentPage: page,
		PageSize:    pageSize,
		Receipts:    []models.Receipt{},
	}
	if page < 1 || page > result.TotalPages {
		return result
	}

	start := (page - 1) * pageSize
	end := start + min(pageSize, len(receipts)-start)
	result.Receipts = append(result.Receipts, receipts[start:end]...)
	return result
}

// Run is the fixed list pipeline: filter, then order, then paginate.
func Run(receipts []models.Receipt, args dto.ListReceiptsArgs) dto.PagedResult {
	filtered := Filter(receipts, args.Filter)
	ordered := Order(filtered, args.OrderBy)
	return Paginate(ordered, args.Page, args.PageSize)
}
