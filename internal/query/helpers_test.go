package query

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/receipts-backend/internal/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func receipt(sum float64, t models.ExpenseType, date time.Time, location string) models.Receipt {
	return models.Receipt{
		ID:          uuid.New(),
		Sum:         sum,
		Date:        date,
		ExpenseType: t,
		Location:    location,
	}
}

// generate builds a reproducible pseudo-random collection.
func generate(seed uint64, n int) []models.Receipt {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	base := day(2024, time.January, 1)
	out := make([]models.Receipt, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Receipt{
			ID:          uuid.New(),
			Sum:         float64(rng.IntN(100000)) / 100,
			Date:        base.AddDate(0, 0, rng.IntN(365)),
			Description: fmt.Sprintf("receipt %d", i),
			ExpenseType: models.ExpenseTypes[rng.IntN(len(models.ExpenseTypes))],
			Location:    fmt.Sprintf("Location %d", rng.IntN(10)),
		})
	}
	return out
}

func ids(receipts []models.Receipt) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, r.ID)
	}
	return out
}
