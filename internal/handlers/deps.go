package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/receipts-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ReceiptSvc      receiptService
	StatsSvc        statsService
	ExportSvc       exportService
}
