package order

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/twalumbu/martpos/internal/apperr"
	"github.com/twalumbu/martpos/internal/httpx"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", h.create)                        // POST   /api/v1/orders
		r.Get("/", h.list)                           // GET    /api/v1/orders?status=&from=&to=
		r.Get("/stats/total-sales", h.totalSales)    // GET    /api/v1/orders/stats/total-sales
		r.Get("/stats/top-products", h.topProducts)  // GET    /api/v1/orders/stats/top-products?limit=10
		r.Get("/{id}", h.get)                        // GET    /api/v1/orders/{id}
		r.Put("/{id}", h.update)                     // PUT    /api/v1/orders/{id}
		r.Patch("/{id}/status", h.updateStatus)      // PATCH  /api/v1/orders/{id}/status
		r.Delete("/{id}", h.delete)                  // DELETE /api/v1/orders/{id}
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.Validation("invalid request body"))
		return
	}
	o, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "order", o)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		orders []*Order
		err    error
	)
	switch {
	case q.Get("status") != "":
		orders, err = h.service.ListOrdersByStatus(r.Context(), q.Get("status"))
	case q.Get("from") != "" && q.Get("to") != "":
		var from, to time.Time
		if from, err = time.Parse(time.RFC3339, q.Get("from")); err != nil {
			httpx.Fail(w, apperr.Validation("invalid from date, expected RFC3339"))
			return
		}
		if to, err = time.Parse(time.RFC3339, q.Get("to")); err != nil {
			httpx.Fail(w, apperr.Validation("invalid to date, expected RFC3339"))
			return
		}
		orders, err = h.service.ListOrdersByDateRange(r.Context(), from, to)
	default:
		orders, err = h.service.ListOrders(r.Context())
	}
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "orders", orders)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "order", o)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.Validation("invalid request body"))
		return
	}
	o, err := h.service.UpdateOrder(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "order", o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.Validation("invalid request body"))
		return
	}
	o, err := h.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "order", o)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", nil)
}

func (h *Handler) totalSales(w http.ResponseWriter, r *http.Request) {
	total, err := h.service.TotalSales(r.Context())
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "total_sales", total)
}

func (h *Handler) topProducts(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	top, err := h.service.TopProducts(r.Context(), limit)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "top_products", top)
}
