package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"agrisurvey/internal/question"
	"agrisurvey/pkg/platform/httputil"
)

// QuestionHandler wires question bank endpoints to the question service.
type QuestionHandler struct {
	service *question.Service
	logger  *slog.Logger
}

func NewQuestionHandler(service *question.Service, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{service: service, logger: logger}
}

// Register mounts question bank endpoints on the router.
func (h *QuestionHandler) Register(r chi.Router) {
	r.Route("/questions", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.Delete("/{id}", h.handleDelete)
		r.Post("/{id}/check", h.handleCheckResponse)
	})
}

func (h *QuestionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := httputil.Decode[question.API](w, r, h.logger)
	if !ok {
		return
	}
	q, err := h.service.Create(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, q.ToAPI())
}

func (h *QuestionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if code := r.URL.Query().Get("code"); code != "" {
		q, err := h.service.GetByCode(r.Context(), code)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, []question.API{q.ToAPI()})
		return
	}
	items, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]question.API, 0, len(items))
	for _, q := range items {
		out = append(out, q.ToAPI())
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *QuestionHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
}

func (h *QuestionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuestionHandler) handleCheckResponse(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Response any `json:"response"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	nextCode, err := h.service.CheckResponse(r.Context(), chi.URLParam(r, "id"), req.Response)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"next_question_code": nextCode})
}
