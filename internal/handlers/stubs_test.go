package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/models"
)

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error

	errorWriteCalled bool
	errorWriteStatus int
	errorWriteCode   string
	errorWriteMsg    string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, message string) {
	s.errorWriteCalled = true
	s.errorWriteStatus = status
	s.errorWriteCode = code
	s.errorWriteMsg = message
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

// --- Stub services ---

type stubReceiptService struct {
	listResult dto.PagedResult
	listErr    error
	lastList   dto.ListReceiptsArgs
	listCalled bool

	receipt   models.Receipt
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	lastID    uuid.UUID
	lastInput dto.ReceiptInput
	called    bool
}

func (s *stubReceiptService) ListReceipts(_ context.Context, args dto.ListReceiptsArgs) (dto.PagedResult, error) {
	s.listCalled = true
	s.lastList = args
	return s.listResult, s.listErr
}

func (s *stubReceiptService) GetReceipt(_ context.Context, id uuid.UUID) (models.Receipt, error) {
	s.called = true
	s.lastID = id
	return s.receipt, s.getErr
}

func (s *stubReceiptService) CreateReceipt(_ context.Context, in dto.ReceiptInput) (models.Receipt, error) {
	s.called = true
	s.lastInput = in
	return in.Receipt().WithID(uuid.New()), s.createErr
}

func (s *stubReceiptService) UpdateReceipt(_ context.Context, id uuid.UUID, in dto.ReceiptInput) (models.Receipt, error) {
	s.called = true
	s.lastID = id
	s.lastInput = in
	return in.Receipt().WithID(id), s.updateErr
}

func (s *stubReceiptService) DeleteReceipt(_ context.Context, id uuid.UUID) error {
	s.called = true
	s.lastID = id
	return s.deleteErr
}

type stubStatsService struct {
	err        error
	lastFilter dto.ReceiptFilter
	calls      []string
}

func (s *stubStatsService) record(name string, f dto.ReceiptFilter) {
	s.calls = append(s.calls, name)
	s.lastFilter = f
}

func (s *stubStatsService) CountByExpenseType(_ context.Context, f dto.ReceiptFilter) ([]dto.ExpenseTypeCount, error) {
	s.record("count", f)
	return []dto.ExpenseTypeCount{{ExpenseType: models.Food, Count: 2}}, s.err
}

func (s *stubStatsService) TotalSumByMonth(_ context.Context, f dto.ReceiptFilter) ([]dto.MonthlyTotal, error) {
	s.record("months", f)
	return nil, s.err
}

func (s *stubStatsService) AverageSumByExpenseType(_ context.Context, f dto.ReceiptFilter) ([]dto.ExpenseTypeAverage, error) {
	s.record("average", f)
	return nil, s.err
}

func (s *stubStatsService) ReceiptsPerDayOfWeek(_ context.Context, f dto.ReceiptFilter) ([]dto.DayOfWeekCount, error) {
	s.record("weekday", f)
	return nil, s.err
}

func (s *stubStatsService) TopLocations(_ context.Context, f dto.ReceiptFilter) ([]dto.LocationCount, error) {
	s.record("locations", f)
	return nil, s.err
}

func (s *stubStatsService) Summary(_ context.Context, f dto.ReceiptFilter) (dto.StatsSummary, error) {
	s.record("summary", f)
	return dto.StatsSummary{}, s.err
}

type stubExportService struct {
	body     []byte
	err      error
	lastArgs dto.ExportReceiptsArgs
}

func (s *stubExportService) ExportReceiptsXLSX(_ context.Context, args dto.ExportReceiptsArgs) ([]byte, error) {
	s.lastArgs = args
	return s.body, s.err
}

// withChiParam injects a chi URL parameter into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}
