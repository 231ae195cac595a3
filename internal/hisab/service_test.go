package hisab

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/mbms-project/mbms-gateway/internal/order"
	"github.com/mbms-project/mbms-gateway/internal/payment"
)

type fakeOrderLedger struct {
	orders      []*order.Order
	updateCalls int
	failAfter   int // fail the nth update call (1-based); 0 never fails
}

func (f *fakeOrderLedger) List(ctx context.Context) ([]*order.Order, error) {
	out := make([]*order.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeOrderLedger) UpdateDelivery(ctx context.Context, id string, req *order.UpdateDeliveryRequest) (*order.Order, error) {
	f.updateCalls++
	if f.failAfter > 0 && f.updateCalls >= f.failAfter {
		return nil, errors.New("store unavailable")
	}
	for _, o := range f.orders {
		if o.ID == id {
			o.Delivery = req.Delivery
			return o, nil
		}
	}
	return nil, errors.New("order not found")
}

type fakePaymentLedger struct {
	last *payment.Payment
}

func (f *fakePaymentLedger) Last(ctx context.Context) (*payment.Payment, error) {
	return f.last, nil
}

type fakeHisabLedger struct {
	hisabs  []*Hisab
	creates int
}

func (f *fakeHisabLedger) List(ctx context.Context) ([]*Hisab, error) {
	out := make([]*Hisab, len(f.hisabs))
	copy(out, f.hisabs)
	return out, nil
}

func (f *fakeHisabLedger) Create(ctx context.Context, req *CreateHisabRequest) (*Hisab, error) {
	f.creates++
	h := &Hisab{
		ID:          "h" + strconv.Itoa(len(f.hisabs)+1),
		Title:       req.Title,
		Details:     req.Details,
		TotalAmount: req.TotalAmount,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	f.hisabs = append(f.hisabs, h)
	return h, nil
}

func (f *fakeHisabLedger) Update(ctx context.Context, id string, req *UpdateHisabRequest) (*Hisab, error) {
	for _, h := range f.hisabs {
		if h.ID == id {
			if req.IsActive != nil {
				h.IsActive = *req.IsActive
			}
			if req.PaymentReceived != nil {
				h.PaymentReceived = *req.PaymentReceived
			}
			return h, nil
		}
	}
	return nil, errors.New("hisab not found")
}

func newTestService(orders *fakeOrderLedger, payments *fakePaymentLedger, repo *fakeHisabLedger) *Service {
	s := NewService(repo, orders, payments)
	s.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return s
}

func deliveredOrder(id, device, extID string, returnAmount float64) *order.Order {
	return &order.Order{
		ID:           id,
		DeviceName:   device,
		OrderID:      extID,
		ReturnAmount: returnAmount,
		Delivery:     order.DeliveryDelivered,
	}
}

// TestSubmitLifecycle runs the negative-due example end to end: prepare,
// submit, pay.
func TestSubmitLifecycle(t *testing.T) {
	orders := &fakeOrderLedger{orders: []*order.Order{
		deliveredOrder("o1", "Pixel 8", "ORD-1", 500),
		deliveredOrder("o2", "iPhone 13", "ORD-2", 300),
	}}
	repo := &fakeHisabLedger{hisabs: []*Hisab{
		{ID: "h0", TotalAmount: 800, IsActive: true, PaymentReceived: true, CreatedAt: time.Now().Add(-time.Hour)},
	}}
	payments := &fakePaymentLedger{last: &payment.Payment{ID: "p1", Amount: 1000}}
	s := newTestService(orders, payments, repo)
	ctx := context.Background()

	// Previous due: 800 - 1000 = -200, preserved as negative.
	due, err := s.PreviousDue(ctx)
	if err != nil {
		t.Fatalf("PreviousDue: %v", err)
	}
	if due != -200 {
		t.Errorf("previous due: got %v, want -200", due)
	}

	prep, err := s.Prepare(ctx)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if prep.TotalAmount != 600 {
		t.Errorf("prepared total: got %v, want 600", prep.TotalAmount)
	}
	if len(prep.Orders) != 2 {
		t.Fatalf("prepared orders: got %d, want 2", len(prep.Orders))
	}

	created, err := s.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created.Title != "2026-08-31_600.00_2" {
		t.Errorf("title: got %q, want %q", created.Title, "2026-08-31_600.00_2")
	}
	if created.TotalAmount != 600 {
		t.Errorf("total: got %v, want 600", created.TotalAmount)
	}
	for _, o := range orders.orders {
		if o.Delivery != order.DeliveryPaymentPending {
			t.Errorf("order %s: got %s, want %s", o.ID, o.Delivery, order.DeliveryPaymentPending)
		}
	}

	// Pay: orders move to Money Received, flag flips.
	paid, err := s.MarkPaid(ctx, created.ID)
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if !paid.PaymentReceived {
		t.Error("paymentReceived not set")
	}
	for _, o := range orders.orders {
		if o.Delivery != order.DeliveryMoneyReceived {
			t.Errorf("order %s: got %s, want %s", o.ID, o.Delivery, order.DeliveryMoneyReceived)
		}
	}

	// A second MarkPaid must be rejected, not silently no-op.
	if _, err := s.MarkPaid(ctx, created.ID); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("second MarkPaid: got %v, want ErrAlreadyPaid", err)
	}
}

// TestPrepareIdempotent verifies that preparing twice yields identical
// results and persists nothing.
func TestPrepareIdempotent(t *testing.T) {
	orders := &fakeOrderLedger{orders: []*order.Order{
		deliveredOrder("o1", "Pixel 8", "ORD-1", 500),
		{ID: "o2", DeviceName: "iPhone 13", ReturnAmount: 300, Delivery: order.DeliveryPending},
	}}
	repo := &fakeHisabLedger{}
	s := newTestService(orders, &fakePaymentLedger{}, repo)
	ctx := context.Background()

	first, err := s.Prepare(ctx)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	second, err := s.Prepare(ctx)
	if err != nil {
		t.Fatalf("Prepare (second): %v", err)
	}

	if first.TotalAmount != second.TotalAmount {
		t.Errorf("totals differ: %v vs %v", first.TotalAmount, second.TotalAmount)
	}
	if first.Details != second.Details {
		t.Errorf("details differ:\n%s\nvs\n%s", first.Details, second.Details)
	}
	if repo.creates != 0 {
		t.Errorf("prepare persisted %d hisabs, want 0", repo.creates)
	}
	if orders.updateCalls != 0 {
		t.Errorf("prepare touched %d orders, want 0", orders.updateCalls)
	}

	// Only the delivered order is captured.
	if len(first.Orders) != 1 || first.Orders[0].ID != "o1" {
		t.Errorf("captured set: got %+v, want just o1", first.Orders)
	}
}

// TestPrepareEmptyDeliveredSet: no delivered orders means the total is
// exactly the carried due, negative included.
func TestPrepareEmptyDeliveredSet(t *testing.T) {
	repo := &fakeHisabLedger{hisabs: []*Hisab{
		{ID: "h0", TotalAmount: 100, CreatedAt: time.Now()},
	}}
	payments := &fakePaymentLedger{last: &payment.Payment{ID: "p1", Amount: 400}}
	s := newTestService(&fakeOrderLedger{}, payments, repo)

	prep, err := s.Prepare(context.Background())
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if prep.TotalAmount != -300 {
		t.Errorf("total: got %v, want -300", prep.TotalAmount)
	}
	if len(prep.Orders) != 0 {
		t.Errorf("captured set: got %d orders, want 0", len(prep.Orders))
	}
}

// TestRevert verifies the revert path and its guard against paid batches.
func TestRevert(t *testing.T) {
	orders := &fakeOrderLedger{orders: []*order.Order{
		deliveredOrder("o1", "Pixel 8", "ORD-1", 500),
	}}
	repo := &fakeHisabLedger{}
	s := newTestService(orders, &fakePaymentLedger{}, repo)
	ctx := context.Background()

	created, err := s.Submit(ctx)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	reverted, err := s.Revert(ctx, created.ID)
	if err != nil {
		t.Fatalf("Revert: %v", err)
	}
	if reverted.IsActive {
		t.Error("reverted hisab still active")
	}
	if orders.orders[0].Delivery != order.DeliveryDelivered {
		t.Errorf("order status: got %s, want %s", orders.orders[0].Delivery, order.DeliveryDelivered)
	}

	// A reverted batch cannot be reverted again.
	if _, err := s.Revert(ctx, created.ID); !errors.Is(err, ErrNotActive) {
		t.Errorf("revert of inactive hisab: got %v, want ErrNotActive", err)
	}
}

func TestRevertRejectedWhenPaid(t *testing.T) {
	repo := &fakeHisabLedger{hisabs: []*Hisab{
		{ID: "h1", IsActive: true, PaymentReceived: true, CreatedAt: time.Now()},
	}}
	s := newTestService(&fakeOrderLedger{}, &fakePaymentLedger{}, repo)

	if _, err := s.Revert(context.Background(), "h1"); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("revert of paid hisab: got %v, want ErrAlreadyPaid", err)
	}
	if repo.hisabs[0].PaymentReceived != true || repo.hisabs[0].IsActive != true {
		t.Error("guard mutated the hisab")
	}
}

func TestRevertUnknownHisab(t *testing.T) {
	s := newTestService(&fakeOrderLedger{}, &fakePaymentLedger{}, &fakeHisabLedger{})

	if _, err := s.Revert(context.Background(), "missing"); !errors.Is(err, ErrHisabNotFound) {
		t.Errorf("got %v, want ErrHisabNotFound", err)
	}
}

// TestSubmitPartialFailure: when an order update fails after the hisab was
// created, the error carries ErrPartialSequence and nothing is rolled
// back; earlier updates stay committed.
func TestSubmitPartialFailure(t *testing.T) {
	orders := &fakeOrderLedger{
		orders: []*order.Order{
			deliveredOrder("o1", "Pixel 8", "ORD-1", 500),
			deliveredOrder("o2", "iPhone 13", "ORD-2", 300),
		},
		failAfter: 2,
	}
	repo := &fakeHisabLedger{}
	s := newTestService(orders, &fakePaymentLedger{}, repo)

	_, err := s.Submit(context.Background())
	if !errors.Is(err, ErrPartialSequence) {
		t.Fatalf("got %v, want ErrPartialSequence", err)
	}

	// The hisab exists; the first order moved, the second did not.
	if repo.creates != 1 {
		t.Errorf("creates: got %d, want 1", repo.creates)
	}
	if orders.orders[0].Delivery != order.DeliveryPaymentPending {
		t.Errorf("o1: got %s, want %s", orders.orders[0].Delivery, order.DeliveryPaymentPending)
	}
	if orders.orders[1].Delivery != order.DeliveryDelivered {
		t.Errorf("o2: got %s, want %s", orders.orders[1].Delivery, order.DeliveryDelivered)
	}
}

// TestSubmitTotalFrozen: editing a captured order after submit must not
// change the persisted settlement total.
func TestSubmitTotalFrozen(t *testing.T) {
	orders := &fakeOrderLedger{orders: []*order.Order{
		deliveredOrder("o1", "Pixel 8", "ORD-1", 500),
	}}
	repo := &fakeHisabLedger{}
	s := newTestService(orders, &fakePaymentLedger{}, repo)

	created, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	orders.orders[0].ReturnAmount = 9999

	got, err := s.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.TotalAmount != 500 {
		t.Errorf("total after order edit: got %v, want 500", got.TotalAmount)
	}
}

// TestSubmitTotalInvariant checks the creation-time identity over a few
// fixture shapes.
func TestSubmitTotalInvariant(t *testing.T) {
	cases := []struct {
		name           string
		amounts        []float64
		lastHisabTotal float64
		lastPayment    float64
		want           float64
	}{
		{"no history", []float64{500, 300}, 0, 0, 800},
		{"carried due", []float64{100}, 700, 500, 300},
		{"overpayment", []float64{500, 300}, 800, 1000, 600},
		{"empty set", nil, 800, 300, 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			orders := &fakeOrderLedger{}
			for i, amt := range tc.amounts {
				orders.orders = append(orders.orders, deliveredOrder(
					fmt.Sprintf("o%d", i+1), "Device", fmt.Sprintf("ORD-%d", i+1), amt))
			}
			repo := &fakeHisabLedger{}
			payments := &fakePaymentLedger{}
			if tc.lastHisabTotal != 0 {
				repo.hisabs = append(repo.hisabs, &Hisab{
					ID: "h0", TotalAmount: tc.lastHisabTotal, CreatedAt: time.Now().Add(-time.Hour),
				})
				payments.last = &payment.Payment{ID: "p0", Amount: tc.lastPayment}
			}
			s := newTestService(orders, payments, repo)

			created, err := s.Submit(context.Background())
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if created.TotalAmount != tc.want {
				t.Errorf("total: got %v, want %v", created.TotalAmount, tc.want)
			}
		})
	}
}
