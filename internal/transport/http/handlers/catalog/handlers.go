package cataloghandler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"compeval/internal/domain/catalog"
	"compeval/internal/transport/http/api"
	"compeval/internal/transport/http/middleware"
)

type Handler struct {
	Store *catalog.Store
}

func NewHandler(store *catalog.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/categories", h.handleListCategories)
		r.Get("/categories/{categoryID}", h.handleGetCategory)
		r.Get("/categories/{categoryID}/processes", h.handleProcessesByCategory)
		r.Get("/categories/{categoryID}/questions", h.handleQuestionsUnderCategory)
		r.Get("/processes/{processID}", h.handleGetProcess)
		r.Get("/processes/{processID}/questions", h.handleQuestionsByProcess)
		r.Get("/employees/{employeeID}", h.handleGetEmployee)
	})
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Store.ListCategories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "category_list_failed", "failed to list categories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, categories, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "categoryID")
	if !ok {
		return
	}
	category, err := h.Store.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "category not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "category_get_failed", "failed to load category", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, category, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProcessesByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "categoryID")
	if !ok {
		return
	}
	processes, err := h.Store.ProcessesByCategory(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "process_list_failed", "failed to list processes", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, processes, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleQuestionsUnderCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "categoryID")
	if !ok {
		return
	}
	questions, err := h.Store.QuestionsDirectlyUnderCategory(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "question_list_failed", "failed to list questions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, questions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProcess(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "processID")
	if !ok {
		return
	}
	process, err := h.Store.GetProcess(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProcessNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "process not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "process_get_failed", "failed to load process", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, process, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleQuestionsByProcess(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "processID")
	if !ok {
		return
	}
	questions, err := h.Store.QuestionsByProcess(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "question_list_failed", "failed to list questions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, questions, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	employee, err := h.Store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, catalog.ErrEmployeeNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_param", name+" must be a positive integer", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return value, true
}
