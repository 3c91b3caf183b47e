package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"agrisurvey/internal/interview"
	"agrisurvey/pkg/platform/httputil"
)

// InterviewHandler wires interview endpoints to the interview service.
type InterviewHandler struct {
	service *interview.Service
	logger  *slog.Logger
}

func NewInterviewHandler(service *interview.Service, logger *slog.Logger) *InterviewHandler {
	return &InterviewHandler{service: service, logger: logger}
}

// Register mounts interview endpoints on the router.
func (h *InterviewHandler) Register(r chi.Router) {
	r.Route("/interviews", func(r chi.Router) {
		r.Post("/", h.handleSchedule)
		r.Get("/", h.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
			r.Post("/start", h.transition(h.service.Start))
			r.Post("/complete", h.handleComplete)
			r.Post("/cancel", h.transition(h.service.Cancel))
			r.Post("/postpone", h.transition(h.service.Postpone))
			r.Post("/reschedule", h.handleReschedule)
			r.Post("/questions", h.handleAddQuestion)
			r.Put("/questions/{questionID}", h.handleAnswerQuestion)
		})
	})
}

func (h *InterviewHandler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	in, ok := httputil.Decode[interview.API](w, r, h.logger)
	if !ok {
		return
	}
	iv, err := h.service.Schedule(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, iv.ToAPI())
}

func (h *InterviewHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		items []*interview.Interview
		err   error
	)
	if interviewer := r.URL.Query().Get("interviewer"); interviewer != "" {
		items, err = h.service.ListByInterviewer(r.Context(), interviewer)
	} else {
		items, err = h.service.List(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]interview.API, 0, len(items))
	for _, iv := range items {
		out = append(out, iv.ToAPI())
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *InterviewHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	iv, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, iv.ToAPI())
}

func (h *InterviewHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InterviewHandler) transition(fn func(ctx context.Context, id string) (*interview.Interview, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		iv, err := fn(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, iv.ToAPI())
	}
}

func (h *InterviewHandler) handleComplete(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		OverallRating  int    `json:"overallRating"`
		Recommendation string `json:"recommendation"`
		Notes          string `json:"notes"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	rec, err := interview.ParseRecommendation(req.Recommendation)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	iv, err := h.service.Complete(r.Context(), chi.URLParam(r, "id"), req.OverallRating, rec, req.Notes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, iv.ToAPI())
}

func (h *InterviewHandler) handleReschedule(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		ScheduledDate time.Time `json:"scheduledDate"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	iv, err := h.service.Reschedule(r.Context(), chi.URLParam(r, "id"), req.ScheduledDate)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, iv.ToAPI())
}

func (h *InterviewHandler) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Question string `json:"question"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	iv, err := h.service.AddQuestion(r.Context(), chi.URLParam(r, "id"), req.Question)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, iv.ToAPI())
}

func (h *InterviewHandler) handleAnswerQuestion(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Answer string `json:"answer"`
		Rating int    `json:"rating"`
		Notes  string `json:"notes"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	iv, err := h.service.AnswerQuestion(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "questionID"), req.Answer, req.Rating, req.Notes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, iv.ToAPI())
}
