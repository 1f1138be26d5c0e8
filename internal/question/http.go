package question

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the question bank over REST.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a question HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// Register mounts the question routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.HandleCategories)
	mux.HandleFunc("/categories/{id}/questions", h.HandleCategoryQuestions)
	mux.HandleFunc("/questions", h.HandleQuestions)
	mux.HandleFunc("/questions/add", h.HandleCreate)
	mux.HandleFunc("/questions/search", h.HandleSearch)
	mux.HandleFunc("/questions/{id}/delete", h.HandleDelete)
	mux.HandleFunc("/quizzes", h.HandleQuiz)
}

type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// HandleCategories responds with every category.
// Route: GET /categories
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	list, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"categories":       list.Categories,
		"total_categories": list.Total,
	})
}

// HandleQuestions responds with a page of all questions.
// Route: GET /questions?page=1
func (h *HTTPHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	page, err := h.svc.ListQuestions(r.Context(), ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"current_category": page.CurrentCategory,
		"categories":       page.Categories,
	})
}

// HandleCategoryQuestions responds with a page of one category's questions.
// Route: GET /categories/{id}/questions?page=1
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}

	categoryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	page, err := h.svc.QuestionsForCategory(r.Context(), categoryID, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"current_category": page.CurrentCategory,
		"questions":        page.Questions,
		"total_questions":  page.Total,
	})
}

// HandleSearch responds with a page of questions matching searchTerm.
// Route: POST /questions/search?page=1
func (h *HTTPHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req searchRequest
	if err := decodeBody(r, &req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	page, err := h.svc.SearchQuestions(r.Context(), req.SearchTerm, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        page.Questions,
		"total_questions":  page.Total,
		"current_category": nil,
	})
}

// HandleCreate stores a new question.
// Route: POST /questions/add
func (h *HTTPHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var in CreateQuestionInput
	if err := decodeBody(r, &in); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	res, err := h.svc.CreateQuestion(r.Context(), in, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"created":         res.ID,
		"questions":       res.Questions,
		"total_questions": res.Total,
	})
}

// HandleDelete removes a question.
// Route: DELETE /questions/{id}/delete
func (h *HTTPHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodDelete) {
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httperrors.RespondNotFound(w)
		return
	}

	deleted, err := h.svc.DeleteQuestion(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": deleted,
	})
}

// HandleQuiz draws the next quiz question, or null once the pool is exhausted.
// Route: POST /quizzes
func (h *HTTPHandler) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}

	var req QuizRequest
	if err := decodeBody(r, &req); err != nil {
		httperrors.RespondUnprocessable(w)
		return
	}

	next, err := h.svc.DrawQuiz(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": next,
	})
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *FieldError
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w)
	case errors.As(err, &fieldErr):
		httperrors.RespondValidationError(w, fieldErr.Field)
	case errors.Is(err, ErrValidation):
		httperrors.RespondUnprocessable(w)
	default:
		l := logging.FromContextOr(r.Context(), h.logger)
		l.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		httperrors.RespondInternalError(w)
	}
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	httperrors.RespondMethodNotAllowed(w, method)
	return false
}

// decodeBody decodes a JSON body; an empty body leaves dst untouched.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
