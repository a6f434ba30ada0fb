package services

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/receipts-backend/internal/models"
)

// fakeReceiptStore is an in-memory whole-document store.
type fakeReceiptStore struct {
	receipts    []models.Receipt
	loadErr     error
	updateErr   error
	loadCalls   int
	updateCalls int
}

func (f *fakeReceiptStore) LoadAll(_ context.Context) ([]models.Receipt, error) {
	f.loadCalls++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return slices.Clone(f.receipts), nil
}

func (f *fakeReceiptStore) Update(_ context.Context, fn func([]models.Receipt) ([]models.Receipt, error)) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	next, err := fn(slices.Clone(f.receipts))
	if err != nil {
		return err
	}
	f.receipts = next
	return nil
}

func testDate(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 10, 0, 0, 0, time.UTC)
}

func scenarioReceipts() []models.Receipt {
	return []models.Receipt{
		{ID: uuid.New(), Sum: 10, Date: testDate(time.January, 5), ExpenseType: models.Food, Location: "Cafe"},
		{ID: uuid.New(), Sum: 20, Date: testDate(time.February, 10), ExpenseType: models.Food, Location: "Market"},
		{ID: uuid.New(), Sum: 5, Date: testDate(time.January, 20), ExpenseType: models.Other, Location: "Cafe"},
	}
}
