package metrics

import (
	"context"

	"github.com/mbms-project/mbms-gateway/internal/card"
	"github.com/mbms-project/mbms-gateway/internal/hisab"
	"github.com/mbms-project/mbms-gateway/internal/order"
	"github.com/mbms-project/mbms-gateway/internal/payment"
	"github.com/mbms-project/mbms-gateway/pkg/middleware"
)

// Snapshot is one full dashboard computation for one viewer.
type Snapshot struct {
	Admin             bool
	CurrentBalance    float64
	TotalCreditUsed   float64
	PreviousDue       float64
	MoneyYetToReceive float64
	TotalTurnover     float64
	TotalProfit       float64
	RealisedProfit    float64
}

// Service assembles dashboard snapshots from the four ledgers.
type Service struct {
	orders         *order.Repository
	payments       *payment.Repository
	cards          *card.Repository
	hisabs         *hisab.Repository
	initialBalance float64
	savingsKeyword string
}

// NewService creates a new metrics service with its ledgers injected
func NewService(orders *order.Repository, payments *payment.Repository, cards *card.Repository, hisabs *hisab.Repository, initialBalance float64, savingsKeyword string) *Service {
	return &Service{
		orders:         orders,
		payments:       payments,
		cards:          cards,
		hisabs:         hisabs,
		initialBalance: initialBalance,
		savingsKeyword: savingsKeyword,
	}
}

// Snapshot fetches all four ledgers fresh and derives every dashboard
// figure for the viewer. Sequential fetches, like every other workflow in
// the gateway; any failure aborts the whole read.
func (s *Service) Snapshot(ctx context.Context, viewer middleware.Principal) (*Snapshot, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, err
	}
	hisabs, err := s.hisabs.List(ctx)
	if err != nil {
		return nil, err
	}
	lastPayment, err := s.payments.Last(ctx)
	if err != nil {
		return nil, err
	}

	previousDue := hisab.PreviousDue(hisabs, lastPayment)

	return &Snapshot{
		Admin:             viewer.IsAdmin,
		CurrentBalance:    CurrentBalance(payments, s.initialBalance, s.savingsKeyword),
		TotalCreditUsed:   TotalCreditUsed(cards),
		PreviousDue:       previousDue,
		MoneyYetToReceive: MoneyYetToReceive(previousDue, orders),
		TotalTurnover:     TotalTurnover(orders),
		TotalProfit:       TotalProfit(orders, viewer),
		RealisedProfit:    RealisedProfit(orders, viewer),
	}, nil
}
