package hisab

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mbms-project/mbms-gateway/internal/logger"
	"github.com/mbms-project/mbms-gateway/internal/order"
	"github.com/mbms-project/mbms-gateway/internal/payment"
)

// Common errors
var (
	ErrHisabNotFound = errors.New("hisab not found")
	ErrAlreadyPaid   = errors.New("settlement already paid; cannot change it")
	ErrNotActive     = errors.New("settlement is no longer active")

	// ErrPartialSequence marks a multi-call action that failed after one or
	// more sub-calls had already committed. Nothing is rolled back; the
	// caller must re-fetch both ledgers to observe the true state.
	ErrPartialSequence = errors.New("settlement action applied partially")
)

// OrderLedger is the slice of the order feature the engine drives.
type OrderLedger interface {
	List(ctx context.Context) ([]*order.Order, error)
	UpdateDelivery(ctx context.Context, id string, req *order.UpdateDeliveryRequest) (*order.Order, error)
}

// PaymentLedger supplies the most recent payment for due calculation.
type PaymentLedger interface {
	Last(ctx context.Context) (*payment.Payment, error)
}

// Ledger is the persistence contract for settlement batches.
type Ledger interface {
	List(ctx context.Context) ([]*Hisab, error)
	Create(ctx context.Context, req *CreateHisabRequest) (*Hisab, error)
	Update(ctx context.Context, id string, req *UpdateHisabRequest) (*Hisab, error)
}

// Service runs the settlement lifecycle. A batch's member orders are never
// stored on the batch; each action re-derives them from current delivery
// statuses. Two admins submitting concurrently can therefore both succeed
// and double-capture orders. The store's schema cannot record membership,
// so that limitation is surfaced here rather than papered over.
type Service struct {
	repo     Ledger
	orders   OrderLedger
	payments PaymentLedger
	now      func() time.Time
}

// NewService creates a new hisab service with its ledgers injected
func NewService(repo Ledger, orders OrderLedger, payments PaymentLedger) *Service {
	return &Service{
		repo:     repo,
		orders:   orders,
		payments: payments,
		now:      time.Now,
	}
}

// List returns all settlement batches.
func (s *Service) List(ctx context.Context) ([]*Hisab, error) {
	return s.repo.List(ctx)
}

// GetByID returns a single settlement batch.
func (s *Service) GetByID(ctx context.Context, id string) (*Hisab, error) {
	hisabs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, h := range hisabs {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, ErrHisabNotFound
}

// PreviousDue computes the due carried from the last settlement. Negative
// when the last payment overshot; the overpayment rolls into the next
// batch.
func (s *Service) PreviousDue(ctx context.Context) (float64, error) {
	hisabs, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	last, err := s.payments.Last(ctx)
	if err != nil {
		return 0, err
	}
	return PreviousDue(hisabs, last), nil
}

// Prepare sizes a settlement batch from the current delivered set. It has
// no side effects and may be called any number of times before a submit.
func (s *Service) Prepare(ctx context.Context) (*Prepared, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	previousDue, err := s.PreviousDue(ctx)
	if err != nil {
		return nil, err
	}

	return Prepare(deliveredSet(orders), previousDue), nil
}

// Submit creates a settlement batch and moves its captured orders to
// Payment Pending. The delivered set and the total are re-derived at call
// time, not taken from an earlier Prepare, so the persisted total always
// equals previousDue + sum of captured return amounts as of this instant.
// A sub-call failure after the batch exists surfaces as ErrPartialSequence.
func (s *Service) Submit(ctx context.Context) (*Hisab, error) {
	prep, err := s.Prepare(ctx)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &CreateHisabRequest{
		Title:       Title(s.now(), prep.TotalAmount, len(prep.Orders)),
		Details:     prep.Details,
		TotalAmount: prep.TotalAmount,
	})
	if err != nil {
		return nil, err
	}

	if err := s.moveOrders(ctx, prep.Orders, order.DeliveryPaymentPending); err != nil {
		logger.LogError("hisab", "Submit", err, logrus.Fields{"hisabId": created.ID})
		return nil, fmt.Errorf("%w: hisab %s was created: %v", ErrPartialSequence, created.ID, err)
	}

	return created, nil
}

// Revert deactivates a submitted batch and puts its orders back into
// Delivered. Only valid while payment has not been received; a paid batch
// is immutable. Membership is re-derived from current Payment Pending
// statuses, so this is a best-effort inverse of Submit, not a transactional
// rollback.
func (s *Service) Revert(ctx context.Context, id string) (*Hisab, error) {
	h, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.PaymentReceived {
		return nil, ErrAlreadyPaid
	}
	if !h.IsActive {
		return nil, ErrNotActive
	}

	updated, err := s.repo.Update(ctx, id, &UpdateHisabRequest{IsActive: boolPtr(false)})
	if err != nil {
		return nil, err
	}

	if err := s.moveCaptured(ctx, order.DeliveryDelivered); err != nil {
		logger.LogError("hisab", "Revert", err, logrus.Fields{"hisabId": id})
		return nil, fmt.Errorf("%w: hisab %s was deactivated: %v", ErrPartialSequence, id, err)
	}

	return updated, nil
}

// MarkPaid records payment on a submitted batch and moves its orders to
// Money Received. A second call on the same batch is rejected.
func (s *Service) MarkPaid(ctx context.Context, id string) (*Hisab, error) {
	h, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.PaymentReceived {
		return nil, ErrAlreadyPaid
	}
	if !h.IsActive {
		return nil, ErrNotActive
	}

	updated, err := s.repo.Update(ctx, id, &UpdateHisabRequest{PaymentReceived: boolPtr(true)})
	if err != nil {
		return nil, err
	}

	if err := s.moveCaptured(ctx, order.DeliveryMoneyReceived); err != nil {
		logger.LogError("hisab", "MarkPaid", err, logrus.Fields{"hisabId": id})
		return nil, fmt.Errorf("%w: hisab %s was marked paid: %v", ErrPartialSequence, id, err)
	}

	return updated, nil
}

// moveCaptured re-derives the captured set (orders in Payment Pending) and
// moves each to the target status.
func (s *Service) moveCaptured(ctx context.Context, to order.DeliveryStatus) error {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return err
	}

	var captured []*order.Order
	for _, o := range orders {
		if o.Delivery == order.DeliveryPaymentPending {
			captured = append(captured, o)
		}
	}
	return s.moveOrders(ctx, captured, to)
}

// moveOrders walks the given orders sequentially. The first failure stops
// the walk; earlier updates stay committed.
func (s *Service) moveOrders(ctx context.Context, orders []*order.Order, to order.DeliveryStatus) error {
	for _, o := range orders {
		if !order.CanTransition(o.Delivery, to) {
			return fmt.Errorf("order %s cannot move from %s to %s", o.ID, o.Delivery, to)
		}
		if _, err := s.orders.UpdateDelivery(ctx, o.ID, &order.UpdateDeliveryRequest{Delivery: to}); err != nil {
			return fmt.Errorf("order %s: %w", o.ID, err)
		}
	}
	return nil
}

func deliveredSet(orders []*order.Order) []*order.Order {
	var delivered []*order.Order
	for _, o := range orders {
		if o.Delivery == order.DeliveryDelivered {
			delivered = append(delivered, o)
		}
	}
	return delivered
}

func boolPtr(b bool) *bool {
	return &b
}
