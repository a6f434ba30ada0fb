package bootstrap

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/receipts-backend/internal/config"
	"github.com/GregMSThompson/receipts-backend/internal/store"
	"github.com/GregMSThompson/receipts-backend/pkg/logger"
)

// openStore builds the backend named by cfg. The Firestore client is returned
// so it can be closed on shutdown; it is nil for the file backend.
func openStore(ctx context.Context, cfg *config.Config) (ReceiptStore, *firestore.Client, error) {
	log := logger.FromContext(ctx)

	if cfg.StoreBackend != config.BackendFirestore {
		log.Info("using file store", "path", cfg.StorePath)
		return store.NewFileStore(cfg.StorePath), nil, nil
	}

	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("firestore client for project %q: %w", cfg.ProjectID, err)
	}
	log.Info("using firestore store",
		"project_id", cfg.ProjectID,
		"document", cfg.StoreDocument,
		"emulator", os.Getenv("FIRESTORE_EMULATOR_HOST"))
	return store.NewFirestoreStore(client, cfg.StoreDocument), client, nil
}
