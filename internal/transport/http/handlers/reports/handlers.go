package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"compeval/internal/domain/reports"
	"compeval/internal/transport/http/api"
	"compeval/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireReviewer)
		r.Get("/summary", h.handleSummary)
		r.Get("/summary/pdf", h.handleSummaryPDF)
		r.Get("/review-sheet", h.handleReviewSheet)
	})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Summary(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build summary report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Summary(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build summary report", middleware.GetRequestID(r.Context()))
		return
	}
	document, err := reports.SummaryPDF(rows)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_export_failed", "failed to render summary pdf", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resumen_evaluaciones.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}

func (h *Handler) handleReviewSheet(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ReviewSheet(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build review sheet", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}
