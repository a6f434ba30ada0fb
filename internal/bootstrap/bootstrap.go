package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/receipts-backend/internal/config"
	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/internal/store"
	"github.com/GregMSThompson/receipts-backend/pkg/logger"
)

// ReceiptStore is the contract shared by the file and Firestore backends.
type ReceiptStore interface {
	Exists(ctx context.Context) (bool, error)
	LoadAll(ctx context.Context) ([]models.Receipt, error)
	SaveAll(ctx context.Context, receipts []models.Receipt) error
	CreateAll(ctx context.Context, receipts []models.Receipt) (bool, error)
	Update(ctx context.Context, fn func([]models.Receipt) ([]models.Receipt, error)) error
}

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Store     ReceiptStore
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.HandlerFor(cfg.LogFormat))
	if err = cfg.Validate(); err != nil {
		return bs, fmt.Errorf("invalid config: %w", err)
	}

	ctx := logger.ToContext(applicationCtx, bs.Log)
	bs.Store, bs.Firestore, err = openStore(ctx, cfg)
	if err != nil {
		return bs, err
	}

	if cfg.SeedDisabled {
		return bs, nil
	}
	now := time.Now()
	rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0))
	if _, err = store.Seed(ctx, bs.Store, cfg.SeedCount, rng, now); err != nil {
		return bs, fmt.Errorf("seed receipts: %w", err)
	}
	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		if err := bs.Firestore.Close(); err != nil {
			bs.Log.Warn("firestore close failed", "error", err)
		}
	}
}
