package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/twalumbu/martpos/internal/apperr"
	"github.com/twalumbu/martpos/internal/httpx"
)

// Handler exposes auth HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.login)   // POST /api/v1/auth/login
		r.Post("/logout", h.logout) // POST /api/v1/auth/logout
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.Validation("invalid request body"))
		return
	}
	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "token", token)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(r.Context())
	httpx.OK(w, http.StatusOK, "", nil)
}
