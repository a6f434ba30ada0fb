package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/errs"
	"github.com/GregMSThompson/receipts-backend/internal/models"
	"github.com/GregMSThompson/receipts-backend/internal/response"
)

const maxBodyBytes = 1 << 20

type receiptService interface {
	ListReceipts(ctx context.Context, args dto.ListReceiptsArgs) (dto.PagedResult, error)
	GetReceipt(ctx context.Context, id uuid.UUID) (models.Receipt, error)
	CreateReceipt(ctx context.Context, in dto.ReceiptInput) (models.Receipt, error)
	UpdateReceipt(ctx context.Context, id uuid.UUID, in dto.ReceiptInput) (models.Receipt, error)
	DeleteReceipt(ctx context.Context, id uuid.UUID) error
}

type receiptHandlers struct {
	ResponseHandler response.ResponseHandler
	ReceiptSvc      receiptService
}

func NewReceiptHandlers(deps *Deps) *receiptHandlers {
	return &receiptHandlers{
		ResponseHandler: deps.ResponseHandler,
		ReceiptSvc:      deps.ReceiptSvc,
	}
}

func (h *receiptHandlers) ReceiptRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListReceipts)
	r.Post("/", h.CreateReceipt)
	r.Get("/{id}", h.GetReceipt)
	r.Put("/{id}", h.UpdateReceipt)
	r.Delete("/{id}", h.DeleteReceipt)
	return r
}

func (h *receiptHandlers) ListReceipts(w http.ResponseWriter, r *http.Request) {
	args, err := parseListArgs(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	result, err := h.ReceiptSvc.ListReceipts(r.Context(), args)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *receiptHandlers) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	receipt, err := h.ReceiptSvc.GetReceipt(r.Context(), id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, receipt)
}

func (h *receiptHandlers) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	in, err := readReceiptInput(w, r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	receipt, err := h.ReceiptSvc.CreateReceipt(r.Context(), in)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, receipt)
}

func (h *receiptHandlers) UpdateReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	in, err := readReceiptInput(w, r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	receipt, err := h.ReceiptSvc.UpdateReceipt(r.Context(), id, in)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, receipt)
}

func (h *receiptHandlers) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(chi.URLParam(r, "id"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	if err := h.ReceiptSvc.DeleteReceipt(r.Context(), id); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func readReceiptInput(w http.ResponseWriter, r *http.Request) (dto.ReceiptInput, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return dto.ReceiptInput{}, errs.NewValidationError("request body too large")
		}
		return dto.ReceiptInput{}, errs.NewValidationError("could not read request body")
	}
	return decodeReceiptInput(raw)
}
