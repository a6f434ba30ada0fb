package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/errs"
	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/internal/query"
	"github.com/GregMSThompson/receipts-backend/pkg/helpers"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

func parseListArgs(r *http.Request) (dto.ListReceiptsArgs, error) {
	filter, err := parseFilter(r)
	if err != nil {
		return dto.ListReceiptsArgs{}, err
	}
	page, err := intParam(r, "page", defaultPage)
	if err != nil {
		return dto.ListReceiptsArgs{}, err
	}
	pageSize, err := intParam(r, "pageSize", defaultPageSize)
	if err != nil {
		return dto.ListReceiptsArgs{}, err
	}
	return dto.ListReceiptsArgs{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orderParam(r),
		Filter:   filter,
	}, nil
}

// parseFilter reads the optional filter params shared by list, stats and export.
func parseFilter(r *http.Request) (dto.ReceiptFilter, error) {
	var (
		f   dto.ReceiptFilter
		err error
	)
	q := r.URL.Query()

	if f.MinSum, err = floatParam(q.Get("minSum"), "minSum"); err != nil {
		return f, err
	}
	if f.MaxSum, err = floatParam(q.Get("maxSum"), "maxSum"); err != nil {
		return f, err
	}
	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, errs.NewValidationError(fmt.Sprintf("startDate: %v", err))
		}
		f.StartDate = helpers.Ptr(t)
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, errs.NewValidationError(fmt.Sprintf("endDate: %v", err))
		}
		f.EndDate = helpers.Ptr(t)
	}
	if v := q.Get("expenseType"); v != "" {
		t, err := models.ParseExpenseType(v)
		if err != nil {
			return f, errs.NewValidationError(err.Error())
		}
		f.ExpenseType = helpers.Ptr(t)
	}
	return f, nil
}

// orderParam normalizes orderBy. Unknown keys leave the order unchanged.
func orderParam(r *http.Request) string {
	key, _ := query.ParseOrderKey(r.URL.Query().Get("orderBy"))
	return key
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.NewValidationError(fmt.Sprintf("%s must be an integer", name))
	}
	return n, nil
}

func floatParam(v, name string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, errs.NewValidationError(fmt.Sprintf("%s must be a number", name))
	}
	return helpers.Ptr(f), nil
}

func idParam(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewValidationError(fmt.Sprintf("%q is not a valid receipt id", raw))
	}
	return id, nil
}
