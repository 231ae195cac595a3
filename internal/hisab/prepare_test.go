package hisab

import (
	"strings"
	"testing"
	"time"

	"github.com/mbms-project/mbms-gateway/internal/order"
	"github.com/mbms-project/mbms-gateway/internal/payment"
)

func TestPrepareDetails(t *testing.T) {
	delivered := []*order.Order{
		{ID: "o1", DeviceName: "Pixel 8", OrderID: "ORD-1", ReturnAmount: 500, Delivery: order.DeliveryDelivered},
		{ID: "o2", DeviceName: "iPhone 13", OrderID: "ORD-2", ReturnAmount: 300, Delivery: order.DeliveryDelivered},
	}

	prep := Prepare(delivered, -200)

	if prep.TotalAmount != 600 {
		t.Errorf("total: got %v, want 600", prep.TotalAmount)
	}
	if len(prep.Lines) != 2 {
		t.Fatalf("lines: got %d, want 2", len(prep.Lines))
	}
	if prep.Lines[0] != "• Pixel 8 = 500(ORD-1)" {
		t.Errorf("line 0: got %q", prep.Lines[0])
	}
	if prep.Lines[1] != "• iPhone 13 = 300(ORD-2)" {
		t.Errorf("line 1: got %q", prep.Lines[1])
	}
	if prep.Expression != "-200 + 500 + 300 = 600" {
		t.Errorf("expression: got %q", prep.Expression)
	}
	if !strings.Contains(prep.Details, "Previous Due = -200") {
		t.Errorf("details missing due line:\n%s", prep.Details)
	}
	if !strings.Contains(prep.Details, "Total Balance: -200 + 500 + 300 = 600") {
		t.Errorf("details missing total line:\n%s", prep.Details)
	}
}

func TestPrepareNoOrders(t *testing.T) {
	prep := Prepare(nil, 250)

	if prep.TotalAmount != 250 {
		t.Errorf("total: got %v, want 250", prep.TotalAmount)
	}
	if prep.Expression != "250 = 250" {
		t.Errorf("expression: got %q", prep.Expression)
	}
}

func TestTitle(t *testing.T) {
	at := time.Date(2026, 8, 31, 18, 30, 0, 0, time.UTC)

	cases := []struct {
		total float64
		count int
		want  string
	}{
		{600, 2, "2026-08-31_600.00_2"},
		{-200, 0, "2026-08-31_-200.00_0"},
		{1234.5, 3, "2026-08-31_1234.50_3"},
	}
	for _, tc := range cases {
		if got := Title(at, tc.total, tc.count); got != tc.want {
			t.Errorf("Title(%v, %d): got %q, want %q", tc.total, tc.count, got, tc.want)
		}
	}
}

func TestPreviousDue(t *testing.T) {
	older := &Hisab{ID: "h1", TotalAmount: 400, CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	newer := &Hisab{ID: "h2", TotalAmount: 900, CreatedAt: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)}

	// No settlements: due is zero regardless of payments.
	if due := PreviousDue(nil, &payment.Payment{Amount: 100}); due != 0 {
		t.Errorf("empty history: got %v, want 0", due)
	}

	// Most recent hisab wins, not list order.
	if due := PreviousDue([]*Hisab{newer, older}, &payment.Payment{Amount: 200}); due != 700 {
		t.Errorf("got %v, want 700", due)
	}
	if due := PreviousDue([]*Hisab{older, newer}, &payment.Payment{Amount: 200}); due != 700 {
		t.Errorf("reversed order: got %v, want 700", due)
	}

	// No payment yet: the full total is due.
	if due := PreviousDue([]*Hisab{older}, nil); due != 400 {
		t.Errorf("no payment: got %v, want 400", due)
	}

	// Overpayment goes negative, not clamped.
	if due := PreviousDue([]*Hisab{older}, &payment.Payment{Amount: 600}); due != -200 {
		t.Errorf("overpayment: got %v, want -200", due)
	}
}
