package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ariefcatur/order-service/internal/metrics"
	"github.com/ariefcatur/order-service/internal/product"
	"github.com/google/uuid"
)

// Service sequences order creation: structural validation, remote product
// lookup, stock decision, then one transactional write. Every failure is
// converted to a *Failure before it leaves this package. Stateless per call.
type Service struct {
	Log     *slog.Logger
	Store   Store
	Fetcher ProductFetcher
	Events  EventPublisher // optional
	Metrics *metrics.Registry
	Name    string // producer name on event envelopes
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Order, error) {
	start := time.Now()
	o, err := s.create(ctx, in)

	if s.Metrics != nil {
		s.Metrics.CreateLatency.Observe(time.Since(start).Seconds())
		outcome := string(StatusConfirmed)
		var f *Failure
		if errors.As(err, &f) {
			outcome = string(f.Kind)
		}
		s.Metrics.OrderOutcomes.WithLabelValues(outcome).Inc()
	}
	return o, err
}

func (s *Service) create(ctx context.Context, in CreateInput) (Order, error) {
	if in.ProductID == "" {
		return Order{}, &Failure{Kind: FailInvalidInput, Message: "product_id is required"}
	}
	if in.Quantity <= 0 {
		return Order{}, &Failure{Kind: FailInvalidInput, Message: "quantity must be positive"}
	}

	snap, err := s.Fetcher.Fetch(ctx, in.ProductID)
	if err != nil {
		return Order{}, s.classifyLookup(ctx, in, err)
	}

	if snap.Stock < in.Quantity {
		msg := fmt.Sprintf("requested %d, available %d", in.Quantity, snap.Stock)
		return Order{}, s.rejected(ctx, in, FailInsufficientStock, msg)
	}

	o := Order{
		ID:        uuid.NewString(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Status:    StatusConfirmed,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.CreateOrder(ctx, o); err != nil {
		return Order{}, &Failure{Kind: FailPersistenceError, Message: "could not persist order", Err: err}
	}

	s.publish(EventOrderConfirmed, o.ID, OrderConfirmedPayload{
		OrderID:   o.ID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		UnitPrice: snap.Price,
		StockSeen: snap.Stock,
	})
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	return s.Store.GetOrder(ctx, id)
}

func (s *Service) classifyLookup(ctx context.Context, in CreateInput, err error) error {
	switch {
	case errors.Is(err, product.ErrNotFound):
		s.countLookup("not_found")
		return s.rejected(ctx, in, FailProductNotFound, "product does not exist")
	case errors.Is(err, product.ErrMalformed):
		s.countLookup("malformed")
		return &Failure{Kind: FailDependencyContractViolation, Message: "product service returned an unexpected payload", Err: err}
	case errors.Is(err, product.ErrRemoteStatus):
		s.countLookup("remote_status")
	default:
		s.countLookup("unreachable")
	}
	return &Failure{Kind: FailDependencyUnavailable, Message: "product service unavailable, retry later", Err: err}
}

// rejected records an audit row with status rejected so the caller gets an
// identifier. The write is best-effort: a failed audit write is logged and
// the rejection is returned without an id, never upgraded to a 500.
func (s *Service) rejected(ctx context.Context, in CreateInput, kind FailureKind, msg string) error {
	o := Order{
		ID:        uuid.NewString(),
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Status:    StatusRejected,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.CreateOrder(ctx, o); err != nil {
		s.Log.Warn("audit write for rejected order failed",
			"product_id", in.ProductID, "kind", string(kind), "err", err)
		o.ID = ""
	} else {
		s.publish(EventOrderRejected, o.ID, OrderRejectedPayload{
			OrderID:   o.ID,
			ProductID: o.ProductID,
			Quantity:  o.Quantity,
			Reason:    string(kind),
		})
	}
	return &Failure{Kind: kind, Message: msg, OrderID: o.ID}
}

func (s *Service) countLookup(reason string) {
	if s.Metrics != nil {
		s.Metrics.LookupFailures.WithLabelValues(reason).Inc()
	}
}

func (s *Service) publish(eventType, orderID string, payload any) {
	if s.Events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.Log.Error("marshal event payload", "event_type", eventType, "err", err)
		return
	}
	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.Name,
		CorrelationID: orderID,
		Payload:       body,
	}
	value, err := json.Marshal(env)
	if err != nil {
		s.Log.Error("marshal event envelope", "event_type", eventType, "err", err)
		return
	}
	s.Events.Publish(PartitionKey(orderID), value)
}
