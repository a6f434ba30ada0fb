package services

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/errs"
	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/internal/query"
	"github.com/GregMSThompson/receipts-backend/pkg/logger"
)

const MaxPageSize = 1000

// receiptStore is the whole-document contract both store backends satisfy.
type receiptStore interface {
	LoadAll(ctx context.Context) ([]models.Receipt, error)
	Update(ctx context.Context, fn func([]models.Receipt) ([]models.Receipt, error)) error
}

type receiptService struct {
	store receiptStore
	newID func() uuid.UUID
}

func NewReceiptService(store receiptStore) *receiptService {
	return &receiptService{store: store, newID: uuid.New}
}

func (s *receiptService) ListReceipts(ctx context.Context, args dto.ListReceiptsArgs) (dto.PagedResult, error) {
	if err := validateListArgs(args); err != nil {
		return dto.PagedResult{}, err
	}

	receipts, err := s.store.LoadAll(ctx)
	if err != nil {
		return dto.PagedResult{}, err
	}
	result := query.Run(receipts, args)

	logger.FromContext(ctx).Debug("listed receipts",
		"page", args.Page,
		"page_size", args.PageSize,
		"total_count", result.TotalCount)
	return result, nil
}

func (s *receiptService) GetReceipt(ctx context.Context, id uuid.UUID) (models.Receipt, error) {
	receipts, err := s.store.LoadAll(ctx)
	if err != nil {
		return models.Receipt{}, err
	}
	i := indexOf(receipts, id)
	if i < 0 {
		return models.Receipt{}, notFound(id)
	}
	return receipts[i], nil
}

// CreateReceipt stores in under a fresh id and returns the stored receipt.
func (s *receiptService) CreateReceipt(ctx context.Context, in dto.ReceiptInput) (models.Receipt, error) {
	log := logger.FromContext(ctx)
	if err := validateInput(in); err != nil {
		return models.Receipt{}, err
	}

	var created models.Receipt
	err := s.store.Update(ctx, func(receipts []models.Receipt) ([]models.Receipt, error) {
		id := s.newID()
		for indexOf(receipts, id) >= 0 {
			id = s.newID()
		}
		created = in.Receipt().WithID(id)
		return append(receipts, created), nil
	})
	if err != nil {
		log.Error("failed to create receipt", "error", err)
		return models.Receipt{}, err
	}

	log.Info("receipt created", "receipt_id", created.ID)
	return created, nil
}

// UpdateReceipt replaces every field of the receipt with the given id.
func (s *receiptService) UpdateReceipt(ctx context.Context, id uuid.UUID, in dto.ReceiptInput) (models.Receipt, error) {
	log, ctx := logger.With(ctx, "receipt_id", id)
	if err := validateInput(in); err != nil {
		return models.Receipt{}, err
	}

	updated := in.Receipt().WithID(id)
	err := s.store.Update(ctx, func(receipts []models.Receipt) ([]models.Receipt, error) {
		i := indexOf(receipts, id)
		if i < 0 {
			return nil, notFound(id)
		}
		receipts[i] = updated
		return receipts, nil
	})
	if err != nil {
		return models.Receipt{}, err
	}

	log.Info("receipt updated")
	return updated, nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	log, ctx := logger.With(ctx, "receipt_id", id)
	err := s.store.Update(ctx, func(receipts []models.Receipt) ([]models.Receipt, error) {
		i := indexOf(receipts, id)
		if i < 0 {
			return nil, notFound(id)
		}
		return slices.Delete(receipts, i, i+1), nil
	})
	if err != nil {
		return err
	}

	log.Info("receipt deleted")
	return nil
}

func indexOf(receipts []models.Receipt, id uuid.UUID) int {
	return slices.IndexFunc(receipts, func(r models.Receipt) bool { return r.ID == id })
}

func notFound(id uuid.UUID) error {
	return errs.NewNotFoundError(fmt.Sprintf("receipt %s not found", id))
}

func validateListArgs(args dto.ListReceiptsArgs) error {
	if args.Page < 1 {
		return errs.NewValidationError("page must be at least 1")
	}
	if args.PageSize < 1 || args.PageSize > MaxPageSize {
		return errs.NewValidationError(fmt.Sprintf("pageSize must be between 1 and %d", MaxPageSize))
	}
	return validateFilter(args.Filter)
}

func validateFilter(f dto.ReceiptFilter) error {
	if f.MinSum != nil && !finite(*f.MinSum) {
		return errs.NewValidationError("minSum must be a finite number")
	}
	if f.MaxSum != nil && !finite(*f.MaxSum) {
		return errs.NewValidationError("maxSum must be a finite number")
	}
	if f.ExpenseType != nil && !f.ExpenseType.Valid() {
		return errs.NewValidationError("unknown expense type")
	}
	return nil
}

func validateInput(in dto.ReceiptInput) error {
	if !finite(in.Sum) {
		return errs.NewValidationError("sum must be a finite number")
	}
	if !in.ExpenseType.Valid() {
		return errs.NewValidationError("unknown expense type")
	}
	if in.Date.IsZero() {
		return errs.NewValidationError("date is required")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
