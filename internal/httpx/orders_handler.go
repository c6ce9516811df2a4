package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/order-service/internal/orders"
	"github.com/ariefcatur/order-service/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type OrdersHandler struct {
	Svc   *orders.Service
	Redis *redis.Client // optional read cache for getOrder
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{id}", h.getOrder)
}

type errorResp struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	OrderID string `json:"order_id,omitempty"`
}

var statusForKind = map[orders.FailureKind]int{
	orders.FailInvalidInput:                http.StatusBadRequest,
	orders.FailProductNotFound:             http.StatusBadRequest,
	orders.FailInsufficientStock:           http.StatusBadRequest,
	orders.FailDependencyUnavailable:       http.StatusBadGateway,
	orders.FailDependencyContractViolation: http.StatusBadGateway,
	orders.FailPersistenceError:            http.StatusInternalServerError,
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var in orders.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{
			Error:   string(orders.FailInvalidInput),
			Message: "invalid json body",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	o, err := h.Svc.Create(ctx, in)
	if err != nil {
		writeFailure(w, err)
		return
	}

	h.cacheOrder(r, o)
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrder, id)
		if s, err := h.Redis.Get(r.Context(), key).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	o, err := h.Svc.Get(r.Context(), id)
	if errors.Is(err, orders.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp{Error: "NotFound", Message: "order not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp{
			Error:   string(orders.FailPersistenceError),
			Message: "could not read order",
		})
		return
	}

	h.cacheOrder(r, o)
	writeJSON(w, http.StatusOK, o)
}

// cacheOrder is best-effort; rows are immutable once written so a short TTL
// copy can never serve a stale status.
func (h *OrdersHandler) cacheOrder(r *http.Request, o orders.Order) {
	if h.Redis == nil {
		return
	}
	b, err := json.Marshal(o)
	if err != nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrder, o.ID)
	_ = h.Redis.Set(r.Context(), key, b, redisx.TTLOrderCache).Err()
}

func writeFailure(w http.ResponseWriter, err error) {
	var f *orders.Failure
	if !errors.As(err, &f) {
		writeJSON(w, http.StatusInternalServerError, errorResp{
			Error:   string(orders.FailPersistenceError),
			Message: "internal error",
		})
		return
	}
	code, ok := statusForKind[f.Kind]
	if !ok {
		code = http.StatusInternalServerError
	}
	writeJSON(w, code, errorResp{Error: string(f.Kind), Message: f.Message, OrderID: f.OrderID})
}
