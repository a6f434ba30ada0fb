package helpers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/receipts-backend/pkg/logger"
)

// TestCtx returns a context whose logger discards output but has debug
// enabled, so debug-only code paths still run under test.
func TestCtx() context.Context {
	return logger.ToContext(context.Background(), slog.New(logger.NewTestHandler(slog.LevelDebug)))
}
