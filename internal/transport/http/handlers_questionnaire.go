package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"agrisurvey/internal/audit"
	"agrisurvey/internal/questionnaire"
	dErrors "agrisurvey/pkg/domain-errors"
	"agrisurvey/pkg/platform/httputil"
)

// QuestionnaireHandler wires questionnaire endpoints to the questionnaire
// service.
type QuestionnaireHandler struct {
	service *questionnaire.Service
	auditor *audit.Publisher
	logger  *slog.Logger
}

func NewQuestionnaireHandler(service *questionnaire.Service, auditor *audit.Publisher, logger *slog.Logger) *QuestionnaireHandler {
	return &QuestionnaireHandler{service: service, auditor: auditor, logger: logger}
}

// Register mounts questionnaire endpoints on the router.
func (h *QuestionnaireHandler) Register(r chi.Router) {
	r.Route("/questionnaires", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
			r.Get("/published", h.handleGetPublished)
			r.Get("/audit", h.handleAuditTrail)
			r.Post("/submit", h.transition(h.service.SubmitForReview))
			r.Post("/validate", h.handleValidate)
			r.Post("/publish", h.transition(h.service.Publish))
			r.Post("/archive", h.transition(h.service.Archive))
			r.Post("/suspend", h.transition(h.service.Suspend))
			r.Post("/usage", h.transition(h.service.RecordUsage))
			r.Post("/feedback", h.handleFeedback)
			r.Post("/duplicate", h.handleDuplicate)
			r.Post("/sections", h.handleAddSection)
			r.Put("/sections/{sectionID}", h.handleUpdateSection)
			r.Delete("/sections/{sectionID}", h.handleRemoveSection)
			r.Post("/questions", h.handleAddQuestion)
			r.Post("/questions/reorder", h.handleReorderQuestions)
			r.Put("/questions/{questionID}", h.handleUpdateQuestion)
			r.Delete("/questions/{questionID}", h.handleRemoveQuestion)
		})
	})
}

func (h *QuestionnaireHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := httputil.Decode[questionnaire.API](w, r, h.logger)
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

func (h *QuestionnaireHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		items []*questionnaire.Questionnaire
		err   error
	)
	if statut := r.URL.Query().Get("statut"); statut != "" {
		items, err = h.service.ListByStatus(r.Context(), questionnaire.Status(statut))
	} else {
		items, err = h.service.List(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]questionnaire.API, 0, len(items))
	for _, q := range items {
		out = append(out, q.ToAPI())
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *QuestionnaireHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
}

func (h *QuestionnaireHandler) handleGetPublished(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.GetPublished(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
}

func (h *QuestionnaireHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QuestionnaireHandler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	if h.auditor == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "audit trail not available"))
		return
	}
	trail, err := h.auditor.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, trail)
}

// transition adapts the service's single-argument lifecycle methods into a
// handler.
func (h *QuestionnaireHandler) transition(fn func(ctx context.Context, id string) (*questionnaire.Questionnaire, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := fn(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
	}
}

func (h *QuestionnaireHandler) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Validateur string `json:"validateur"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	q, err := h.service.Validate(r.Context(), chi.URLParam(r, "id"), req.Validateur)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
}

func (h *QuestionnaireHandler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Note        int    `json:"note"`
		Commentaire string `json:"commentaire"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	q, err := h.service.AddFeedback(r.Context(), chi.URLParam(r, "id"), req.Note, req.Commentaire)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
}

func (h *QuestionnaireHandler) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Titre string `json:"titre"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	dup, err := h.service.Duplicate(r.Context(), chi.URLParam(r, "id"), req.Titre)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, dup.ToAPI())
}

func (h *QuestionnaireHandler) handleAddSection(w http.ResponseWriter, r *http.Request) {
	section, ok := httputil.Decode[questionnaire.Section](w, r, h.logger)
	if !ok {
		return
	}
	q, err := h.service.AddSection(r.Context(), chi.URLParam(r, "id"), section)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, q.ToAPI())
}

func (h *QuestionnaireHandler) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	section, ok := httputil.Decode[questionnaire.Section](w, r, h.logger)
	if !ok {
		return
	}
	q, err := h.service.UpdateSection(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "sectionID"), section)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
}

func (h *QuestionnaireHandler) handleRemoveSection(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.RemoveSection(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "sectionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
}

func (h *QuestionnaireHandler) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	qq, ok := httputil.Decode[questionnaire.Question](w, r, h.logger)
	if !ok {
		return
	}
	q, err := h.service.AddQuestion(r.Context(), chi.URLParam(r, "id"), qq)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, q.ToAPI())
}

func (h *QuestionnaireHandler) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	qq, ok := httputil.Decode[questionnaire.Question](w, r, h.logger)
	if !ok {
		return
	}
	q, err := h.service.UpdateQuestion(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "questionID"), qq)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
}

func (h *QuestionnaireHandler) handleRemoveQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.RemoveQuestion(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "questionID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
}

func (h *QuestionnaireHandler) handleReorderQuestions(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		QuestionIDs []string `json:"question_ids"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	q, err := h.service.ReorderQuestions(r.Context(), chi.URLParam(r, "id"), req.QuestionIDs)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, q.ToAPI())
}
