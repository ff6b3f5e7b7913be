package receipt

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/twalumbu/martpos/internal/httpx"
)

// Handler exposes receipt HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders/{id}/receipt", func(r chi.Router) {
		r.Get("/", h.render)      // GET  /api/v1/orders/{id}/receipt?locale=es
		r.Post("/print", h.print) // POST /api/v1/orders/{id}/receipt/print
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request) {
	text, err := h.service.Render(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("locale"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "receipt", text)
}

func (h *Handler) print(w http.ResponseWriter, r *http.Request) {
	text, printed, err := h.service.Print(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("locale"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	// printed=false means the client should copy the text to the clipboard.
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"printed": printed,
		"receipt": text,
	})
}
