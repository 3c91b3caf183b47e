package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"agrisurvey/internal/domain"
	"agrisurvey/internal/producteur"
	"agrisurvey/pkg/platform/httputil"
)

// ProducteurHandler wires producer profile endpoints to the producteur
// service.
type ProducteurHandler struct {
	service *producteur.Service
	logger  *slog.Logger
}

func NewProducteurHandler(service *producteur.Service, logger *slog.Logger) *ProducteurHandler {
	return &ProducteurHandler{service: service, logger: logger}
}

// Register mounts producer endpoints on the router.
func (h *ProducteurHandler) Register(r chi.Router) {
	r.Route("/producteurs", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
			r.Put("/personal", h.handleUpdatePersonal)
			r.Put("/contact", h.handleUpdateContact)
			r.Put("/agriculture", h.handleUpdateAgriculture)
			r.Put("/gps", h.handleSetGPS)
			r.Post("/cultures", h.handleAddCulture)
			r.Delete("/cultures/{culture}", h.handleRemoveCulture)
			r.Post("/materiel", h.handleAddMateriel)
			r.Post("/certifications", h.handleAddCertification)
			r.Post("/cooperatives", h.handleAddCooperative)
			r.Post("/formations", h.handleAddFormation)
			r.Post("/documents", h.handleAttachDocuments)
			r.Post("/verify", h.handleVerify)
			r.Post("/reject", h.handleReject)
			r.Post("/incomplete", h.handleMarkIncomplete)
		})
	})
}

func (h *ProducteurHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := httputil.Decode[producteur.API](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.Create(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p.ToAPI())
}

func (h *ProducteurHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		items []*producteur.Producteur
		err   error
	)
	switch {
	case r.URL.Query().Get("status") != "":
		items, err = h.service.ListByStatus(r.Context(), producteur.VerificationStatus(r.URL.Query().Get("status")))
	case r.URL.Query().Get("region") != "":
		items, err = h.service.ListByRegion(r.Context(), r.URL.Query().Get("region"))
	default:
		items, err = h.service.List(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out := make([]producteur.API, 0, len(items))
	for _, p := range items {
		out = append(out, p.ToAPI())
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

func (h *ProducteurHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToAPI())
}

func (h *ProducteurHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProducteurHandler) handleUpdatePersonal(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Nom           string `json:"nom"`
		Prenom        string `json:"prenom"`
		Genre         string `json:"genre"`
		DateNaissance string `json:"dateNaissance"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	var birth time.Time
	if req.DateNaissance != "" {
		parsed, err := domain.ParseDate(req.DateNaissance)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		birth = parsed
	}
	p, err := h.service.UpdatePersonalInfo(r.Context(), chi.URLParam(r, "id"), req.Nom, req.Prenom, req.Genre, birth)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToAPI())
}

func (h *ProducteurHandler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Telephone   string `json:"telephone"`
		Email       string `json:"email"`
		Village     string `json:"village"`
		Souspref    string `json:"souspref"`
		Departement string `json:"departement"`
		Region      string `json:"region"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.UpdateContactInfo(r.Context(), chi.URLParam(r, "id"),
		req.Telephone, req.Email, req.Village, req.Souspref, req.Departement, req.Region)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToAPI())
}

func (h *ProducteurHandler) handleUpdateAgriculture(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		SuperficieTotale float64 `json:"superficieTotale"`
		NombreParcelles  int     `json:"nombreParcelles"`
		AnneesExperience int     `json:"anneesExperience"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.UpdateAgricultureInfo(r.Context(), chi.URLParam(r, "id"),
		req.SuperficieTotale, req.NombreParcelles, req.AnneesExperience)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToAPI())
}

func (h *ProducteurHandler) handleSetGPS(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[producteur.GPSCoordinates](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.SetGPSCoordinates(r.Context(), chi.URLParam(r, "id"), req.Latitude, req.Longitude)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToAPI())
}

func (h *ProducteurHandler) handleAddCulture(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Culture string `json:"culture"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.AddCulture(r.Context(), chi.URLParam(r, "id"), req.Culture)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p.ToAPI())
}

func (h *ProducteurHandler) handleRemoveCulture(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.RemoveCulture(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "culture"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToAPI())
}

func (h *ProducteurHandler) handleAddMateriel(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Materiel string `json:"materiel"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.AddMateriel(r.Context(), chi.URLParam(r, "id"), req.Materiel)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p.ToAPI())
}

func (h *ProducteurHandler) handleAddCertification(w http.ResponseWriter, r *http.Request) {
	cert, ok := httputil.Decode[producteur.Certification](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.AddCertification(r.Context(), chi.URLParam(r, "id"), cert)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p.ToAPI())
}

func (h *ProducteurHandler) handleAddCooperative(w http.ResponseWriter, r *http.Request) {
	coop, ok := httputil.Decode[producteur.Cooperative](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.AddCooperative(r.Context(), chi.URLParam(r, "id"), coop)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p.ToAPI())
}

func (h *ProducteurHandler) handleAddFormation(w http.ResponseWriter, r *http.Request) {
	formation, ok := httputil.Decode[producteur.Formation](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.AddFormation(r.Context(), chi.URLParam(r, "id"), formation)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p.ToAPI())
}

func (h *ProducteurHandler) handleAttachDocuments(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		PhotoProfil   string `json:"photoProfil"`
		PieceIdentite string `json:"pieceIdentite"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.AttachDocuments(r.Context(), chi.URLParam(r, "id"), req.PhotoProfil, req.PieceIdentite)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToAPI())
}

func (h *ProducteurHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Verify(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToAPI())
}

func (h *ProducteurHandler) handleReject(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[struct {
		Motif string `json:"motif"`
	}](w, r, h.logger)
	if !ok {
		return
	}
	p, err := h.service.Reject(r.Context(), chi.URLParam(r, "id"), req.Motif)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToAPI())
}

func (h *ProducteurHandler) handleMarkIncomplete(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.MarkAsIncomplete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p.ToAPI())
}
