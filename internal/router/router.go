package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/receipts-backend/internal/handlers"
	"github.com/GregMSThompson/receipts-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	rh := handlers.NewReceiptHandlers(deps)
	sh := handlers.NewStatsHandlers(deps)
	eh := handlers.NewExportHandlers(deps)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		deps.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Mount("/receipts", rh.ReceiptRoutes())
	r.Mount("/stats", sh.StatsRoutes())
	r.Mount("/export", eh.ExportRoutes())
	return r
}
