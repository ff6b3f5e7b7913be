package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/twalumbu/martpos/internal/apperr"
	"github.com/twalumbu/martpos/internal/httpx"
)

// Handler exposes product HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", h.create)                       // POST   /api/v1/products
		r.Get("/", h.list)                          // GET    /api/v1/products?category=&active=&q=
		r.Get("/low-stock", h.lowStock)             // GET    /api/v1/products/low-stock?threshold=5
		r.Get("/barcode/{barcode}", h.getByBarcode) // GET    /api/v1/products/barcode/{barcode}
		r.Get("/{id}", h.get)                       // GET    /api/v1/products/{id}
		r.Patch("/{id}", h.update)                  // PATCH  /api/v1/products/{id}
		r.Delete("/{id}", h.delete)                 // DELETE /api/v1/products/{id}
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.Validation("invalid request body"))
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "product", p)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Category:   r.URL.Query().Get("category"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
		Search:     r.URL.Query().Get("q"),
	}
	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "products", products)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	threshold := 5
	if v := r.URL.Query().Get("threshold"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			threshold = n
		}
	}
	products, err := h.service.ListLowStock(r.Context(), threshold)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "products", products)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "product", p)
}

func (h *Handler) getByBarcode(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProductByBarcode(r.Context(), chi.URLParam(r, "barcode"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "product", p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.Validation("invalid request body"))
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "product", p)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", nil)
}
