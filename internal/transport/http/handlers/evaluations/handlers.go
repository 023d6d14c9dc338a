package evaluationshandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"compeval/internal/domain/evaluation"
	"compeval/internal/domain/reports"
	"compeval/internal/transport/http/api"
	"compeval/internal/transport/http/middleware"
	"compeval/internal/transport/http/shared"
)

type Handler struct {
	Service *evaluation.Service
	Idem    *middleware.IdempotencyStore
}

func NewHandler(service *evaluation.Service, idem *middleware.IdempotencyStore) *Handler {
	return &Handler{Service: service, Idem: idem}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleListAll)
		r.Get("/employee/{employeeID}", h.handleListByEmployee)
		r.Get("/manager/{managerName}", h.handleListByManager)
		r.Get("/{evaluationID}", h.handleGetComplete)
		r.Get("/{evaluationID}/history", h.handleHistory)
		r.Get("/{evaluationID}/percentages", h.handlePercentages)
		r.Post("/{evaluationID}/finalize", h.handleFinalize)
		r.With(middleware.RequireReviewer).Get("/{evaluationID}/export", h.handleExport)
		r.With(middleware.RequireReviewer).Patch("/{evaluationID}", h.handleSetStatus)
		r.With(middleware.RequireReviewer).Patch("/{evaluationID}/answers", h.handleAmend)
		r.With(middleware.RequireReviewer).Delete("/{evaluationID}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	var payload evaluation.CreateRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee code is required")
	v.Positive("categoryId", payload.CategoryID, "category id is required")
	if len(payload.Answers) == 0 {
		v.Add("answers", "at least one answer is required")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	idemKey := r.Header.Get("Idempotency-Key")
	requestHash := middleware.RequestHash(body)
	if idemKey != "" {
		stored, found, err := h.Idem.Check(r.Context(), payload.EmployeeID, "evaluations.create", idemKey, requestHash)
		if err != nil {
			if errors.Is(err, middleware.ErrIdempotencyConflict) {
				api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key already used with a different payload", middleware.GetRequestID(r.Context()))
				return
			}
			api.Fail(w, http.StatusInternalServerError, "idempotency_check_failed", "failed to check idempotency key", middleware.GetRequestID(r.Context()))
			return
		}
		if found {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write(stored)
			return
		}
	}

	id, err := h.Service.CreateWithAnswers(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err, "evaluation_create_failed", "failed to create evaluation")
		return
	}

	if idemKey != "" {
		response, _ := json.Marshal(api.Envelope{Success: true, Data: map[string]int{"id": id}})
		if err := h.Idem.Save(r.Context(), payload.EmployeeID, "evaluations.create", idemKey, requestHash, response); err != nil && !errors.Is(err, middleware.ErrIdempotencyConflict) {
			api.Fail(w, http.StatusInternalServerError, "idempotency_save_failed", "failed to record idempotency key", middleware.GetRequestID(r.Context()))
			return
		}
	}

	api.Created(w, map[string]int{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	rows, err := h.Service.ListAll(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_list_failed", "failed to list evaluations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListByEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_list_failed", "failed to list evaluations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListByManager(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListByManager(r.Context(), chi.URLParam(r, "managerName"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_list_failed", "failed to list evaluations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.evaluationID(w, r)
	if !ok {
		return
	}
	complete, err := h.Service.GetComplete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "evaluation_get_failed", "failed to load evaluation")
		return
	}
	api.Success(w, complete, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.evaluationID(w, r)
	if !ok {
		return
	}
	entries, err := h.Service.History(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "history_failed", "failed to load history")
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePercentages(w http.ResponseWriter, r *http.Request) {
	id, ok := h.evaluationID(w, r)
	if !ok {
		return
	}
	summary, err := h.Service.PercentageSummary(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "percentages_failed", "failed to load percentages")
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

type finalizeRequest struct {
	Answers []evaluation.FinalizeAnswer `json:"answers"`
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	id, ok := h.evaluationID(w, r)
	if !ok {
		return
	}
	var payload finalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.Finalize(r.Context(), id, payload.Answers)
	if err != nil {
		h.fail(w, r, err, "evaluation_finalize_failed", "failed to finalize evaluation")
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

type statusRequest struct {
	Status    string `json:"status"`
	Evaluator string `json:"evaluatorName"`
}

func (h *Handler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.evaluationID(w, r)
	if !ok {
		return
	}
	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Evaluator == "" {
		if user, ok := middleware.GetUser(r.Context()); ok {
			payload.Evaluator = user.Name
		}
	}

	if err := h.Service.SetStatus(r.Context(), id, payload.Status, payload.Evaluator); err != nil {
		h.fail(w, r, err, "status_update_failed", "failed to update status")
		return
	}
	api.Success(w, map[string]string{"status": payload.Status}, middleware.GetRequestID(r.Context()))
}

type amendRequest struct {
	Answers   []evaluation.AnswerChange `json:"answers"`
	Evaluator string                    `json:"evaluatorName"`
}

func (h *Handler) handleAmend(w http.ResponseWriter, r *http.Request) {
	id, ok := h.evaluationID(w, r)
	if !ok {
		return
	}
	var payload amendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Evaluator == "" {
		if user, ok := middleware.GetUser(r.Context()); ok {
			payload.Evaluator = user.Name
		}
	}

	result, err := h.Service.ApplyEvaluatorChanges(r.Context(), id, payload.Answers, payload.Evaluator)
	if err != nil {
		h.fail(w, r, err, "evaluation_amend_failed", "failed to apply changes")
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.evaluationID(w, r)
	if !ok {
		return
	}
	complete, err := h.Service.GetComplete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "evaluation_get_failed", "failed to load evaluation")
		return
	}
	document, err := reports.EvaluationPDF(complete)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "evaluation_export_failed", "failed to render evaluation pdf", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="evaluacion_%d.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.evaluationID(w, r)
	if !ok {
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "evaluation_delete_failed", "failed to delete evaluation")
		return
	}
	api.Success(w, map[string]int{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) evaluationID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "evaluationID"))
	if err != nil || id <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_param", "evaluation id must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, evaluation.ErrEvaluationNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "evaluation not found", requestID)
	case errors.Is(err, evaluation.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, evaluation.ErrCategoryNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "category not found", requestID)
	case errors.Is(err, evaluation.ErrInvalidStatus),
		errors.Is(err, evaluation.ErrNoAnswers),
		errors.Is(err, evaluation.ErrEvaluatorRequired):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), requestID)
	case errors.Is(err, evaluation.ErrDuplicateAnswer),
		errors.Is(err, evaluation.ErrAlreadyFinalized):
		api.Fail(w, http.StatusConflict, "conflict", err.Error(), requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, requestID)
	}
}
