package i18n

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/twalumbu/martpos/internal/apperr"
	"github.com/twalumbu/martpos/internal/httpx"
	"github.com/twalumbu/martpos/internal/state"
)

// Handler exposes the translation tables and the language preference.
type Handler struct {
	translator *Translator
	appState   *state.Store
}

func NewHandler(translator *Translator, appState *state.Store) *Handler {
	return &Handler{translator: translator, appState: appState}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/i18n", func(r chi.Router) {
		r.Get("/language", h.getLanguage)           // GET /api/v1/i18n/language
		r.Put("/language", h.setLanguage)           // PUT /api/v1/i18n/language
		r.Get("/translations/{locale}", h.messages) // GET /api/v1/i18n/translations/{locale}
	})
}

func (h *Handler) getLanguage(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, http.StatusOK, "language", h.appState.Language())
}

func (h *Handler) setLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.Validation("invalid request body"))
		return
	}
	if !h.translator.Has(req.Language) {
		httpx.Fail(w, apperr.Validation("unsupported language: %s", req.Language))
		return
	}
	h.appState.SetLanguage(req.Language)
	httpx.OK(w, http.StatusOK, "language", req.Language)
}

func (h *Handler) messages(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	if !h.translator.Has(locale) {
		locale = h.translator.Match(locale)
	}
	httpx.OK(w, http.StatusOK, "translations", h.translator.Messages(locale))
}
