package services

import (
	"context"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/internal/query"
)

type receiptLoader interface {
	LoadAll(ctx context.Context) ([]models.Receipt, error)
}

// statsService computes the aggregation views over one snapshot per call.
// An empty filter means the whole store.
type statsService struct {
	store receiptLoader
}

func NewStatsService(store receiptLoader) *statsService {
	return &statsService{store: store}
}

func (s *statsService) CountByExpenseType(ctx context.Context, f dto.ReceiptFilter) ([]dto.ExpenseTypeCount, error) {
	receipts, err := s.snapshot(ctx, f)
	if err != nil {
		return nil, err
	}
	return query.CountByExpenseType(receipts), nil
}

func (s *statsService) TotalSumByMonth(ctx context.Context, f dto.ReceiptFilter) ([]dto.MonthlyTotal, error) {
	receipts, err := s.snapshot(ctx, f)
	if err != nil {
		return nil, err
	}
	return query.TotalSumByMonth(receipts), nil
}

func (s *statsService) AverageSumByExpenseType(ctx context.Context, f dto.ReceiptFilter) ([]dto.ExpenseTypeAverage, error) {
	receipts, err := s.snapshot(ctx, f)
	if err != nil {
		return nil, err
	}
	return query.AverageSumByExpenseType(receipts), nil
}

func (s *statsService) ReceiptsPerDayOfWeek(ctx context.Context, f dto.ReceiptFilter) ([]dto.DayOfWeekCount, error) {
	receipts, err := s.snapshot(ctx, f)
	if err != nil {
		return nil, err
	}
	return query.ReceiptsPerDayOfWeek(receipts), nil
}

func (s *statsService) TopLocations(ctx context.Context, f dto.ReceiptFilter) ([]dto.LocationCount, error) {
	receipts, err := s.snapshot(ctx, f)
	if err != nil {
		return nil, err
	}
	return query.TopLocations(receipts), nil
}

func (s *statsService) Summary(ctx context.Context, f dto.ReceiptFilter) (dto.StatsSummary, error) {
	receipts, err := s.snapshot(ctx, f)
	if err != nil {
		return dto.StatsSummary{}, err
	}
	return query.Summary(receipts), nil
}

func (s *statsService) snapshot(ctx context.Context, f dto.ReceiptFilter) ([]models.Receipt, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	receipts, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(receipts, f), nil
}
