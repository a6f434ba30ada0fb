package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/response"
	"github.com/GregMSThompson/receipts-backend/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportService interface {
	ExportReceiptsXLSX(ctx context.Context, args dto.ExportReceiptsArgs) ([]byte, error)
}

type exportHandlers struct {
	ResponseHandler response.ResponseHandler
	ExportSvc       exportService
	now             func() time.Time
}

func NewExportHandlers(deps *Deps) *exportHandlers {
	return &exportHandlers{
		ResponseHandler: deps.ResponseHandler,
		ExportSvc:       deps.ExportSvc,
		now:             time.Now,
	}
}

func (h *exportHandlers) ExportRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/receipts.xlsx", h.ExportReceipts)
	return r
}

func (h *exportHandlers) ExportReceipts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	b, err := h.ExportSvc.ExportReceiptsXLSX(r.Context(), dto.ExportReceiptsArgs{
		OrderBy: orderParam(r),
		Filter:  filter,
	})
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"receipts_%s.xlsx\"", h.now().Format("20060102")))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		logger.FromContext(r.Context()).Warn("export write interrupted", "error", err)
	}
}
