package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/GregMSThompson/receipts-backend/internal/bootstrap"
	"github.com/GregMSThompson/receipts-backend/internal/config"
	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/internal/services"
	"github.com/GregMSThompson/receipts-backend/pkg/logger"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	out := flag.String("out", "receipts.xlsx", "path of the workbook to write")
	orderBy := flag.String("order-by", "date", "sum, date or expensetype")
	expenseType := flag.String("expense-type", "", "only export this expense type")
	flag.Parse()

	// the export never seeds; an absent store exports an empty sheet
	cfg := config.New()
	cfg.SeedDisabled = true
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	args := dto.ExportReceiptsArgs{OrderBy: *orderBy}
	if *expenseType != "" {
		t, err := models.ParseExpenseType(*expenseType)
		exitOnError("invalid -expense-type", err, bs.Log)
		args.Filter.ExpenseType = &t
	}

	ctx := logger.ToContext(context.Background(), bs.Log)
	b, err := services.NewExportService(bs.Store).ExportReceiptsXLSX(ctx, args)
	exitOnError("export failed", err, bs.Log)

	err = os.WriteFile(*out, b, 0o644)
	exitOnError("write workbook failed", err, bs.Log)
	bs.Log.Info("workbook written", "path", *out, "bytes", len(b))
}
