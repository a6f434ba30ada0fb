package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/pkg/logger"
)

const DefaultSeedCount = 100

// seedTarget creates the document only if it is absent, atomically with
// respect to other writers of the same backend.
type seedTarget interface {
	CreateAll(ctx context.Context, receipts []models.Receipt) (bool, error)
}

// Seed writes count sample receipts when no document exists yet. It reports
// whether it wrote anything and never touches an existing document, even when
// several instances seed at once.
func Seed(ctx context.Context, st seedTarget, count int, rng *rand.Rand, now time.Time) (bool, error) {
	log := logger.FromContext(ctx)

	receipts := SampleReceipts(count, rng, now)
	created, err := st.CreateAll(ctx, receipts)
	if err != nil {
		return false, err
	}
	if !created {
		log.Debug("receipts document present, skipping seed")
		return false, nil
	}
	log.Info("seeded receipts document", "count", len(receipts))
	return true, nil
}

// SampleReceipts builds count receipts with sums in [0, 1000] rounded to
// cents and dates within the 365 days before now.
func SampleReceipts(count int, rng *rand.Rand, now time.Time) []models.Receipt {
	receipts := make([]models.Receipt, 0, count)
	for i := 0; i < count; i++ {
		sum := decimal.NewFromFloat(rng.Float64() * 1000).Round(2)
		receipts = append(receipts, models.Receipt{
			ID:          uuid.New(),
			Sum:         sum.InexactFloat64(),
			Date:        now.AddDate(0, 0, -rng.IntN(365)),
			Description: fmt.Sprintf("Mock receipt %d", rng.IntN(1000)),
			ExpenseType: models.ExpenseTypes[rng.IntN(len(models.ExpenseTypes))],
			Location:    fmt.Sprintf("Location %d", rng.IntN(10)),
		})
	}
	return receipts
}
