package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/response"
)

type statsService interface {
	CountByExpenseType(ctx context.Context, f dto.ReceiptFilter) ([]dto.ExpenseTypeCount, error)
	TotalSumByMonth(ctx context.Context, f dto.ReceiptFilter) ([]dto.MonthlyTotal, error)
	AverageSumByExpenseType(ctx context.Context, f dto.ReceiptFilter) ([]dto.ExpenseTypeAverage, error)
	ReceiptsPerDayOfWeek(ctx context.Context, f dto.ReceiptFilter) ([]dto.DayOfWeekCount, error)
	TopLocations(ctx context.Context, f dto.ReceiptFilter) ([]dto.LocationCount, error)
	Summary(ctx context.Context, f dto.ReceiptFilter) (dto.StatsSummary, error)
}

type statsHandlers struct {
	ResponseHandler response.ResponseHandler
	StatsSvc        statsService
}

func NewStatsHandlers(deps *Deps) *statsHandlers {
	return &statsHandlers{
		ResponseHandler: deps.ResponseHandler,
		StatsSvc:        deps.StatsSvc,
	}
}

func (h *statsHandlers) StatsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/count-by-expense-type", serveView(h, h.StatsSvc.CountByExpenseType))
	r.Get("/total-sum-by-month", serveView(h, h.StatsSvc.TotalSumByMonth))
	r.Get("/average-sum-by-expense-type", serveView(h, h.StatsSvc.AverageSumByExpenseType))
	r.Get("/receipts-per-day-of-week", serveView(h, h.StatsSvc.ReceiptsPerDayOfWeek))
	r.Get("/top-locations", serveView(h, h.StatsSvc.TopLocations))
	r.Get("/summary", serveView(h, h.StatsSvc.Summary))
	return r
}

// serveView adapts one filtered aggregation to an http.HandlerFunc.
func serveView[T any](h *statsHandlers, view func(context.Context, dto.ReceiptFilter) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		data, err := view(r.Context(), filter)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, data)
	}
}
