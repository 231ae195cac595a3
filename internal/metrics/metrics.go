// Package metrics derives the dashboard figures from ledger snapshots.
// Every value is recomputed from freshly fetched collections on each read;
// nothing here caches or updates incrementally.
package metrics

import (
	"strings"

	"github.com/mbms-project/mbms-gateway/internal/card"
	"github.com/mbms-project/mbms-gateway/internal/order"
	"github.com/mbms-project/mbms-gateway/internal/payment"
	"github.com/mbms-project/mbms-gateway/pkg/middleware"
)

// CurrentBalance nets the credit side of the payment ledger against the
// configured opening balance: credits into the savings account add,
// credits from anywhere else subtract. Note the subtraction covers ALL
// non-savings credits, not just card-bill payments; that is the books'
// standing definition and changing it needs a product decision first.
func CurrentBalance(payments []*payment.Payment, initialBalance float64, savingsKeyword string) float64 {
	balance := initialBalance
	for _, p := range payments {
		if p.Type != payment.TypeCredit {
			continue
		}
		if strings.Contains(p.Source, savingsKeyword) {
			balance += p.Amount
		} else {
			balance -= p.Amount
		}
	}
	return balance
}

// TotalCreditUsed sums the drawn-down limit over every card product.
func TotalCreditUsed(cards []*card.Card) float64 {
	var used float64
	for _, c := range cards {
		if !strings.Contains(strings.ToLower(c.Type), "card") {
			continue
		}
		used += c.TotalLimit - c.CurrentLimit
	}
	return used
}

// MoneyYetToReceive is the carried due plus the return amounts still
// outstanding on orders that have not reached Money Received.
func MoneyYetToReceive(previousDue float64, orders []*order.Order) float64 {
	total := previousDue
	for _, o := range orders {
		if o.Delivery != order.DeliveryMoneyReceived {
			total += o.ReturnAmount
		}
	}
	return total
}

// TotalTurnover sums amount paid over every order. Admin view only; this
// is gross outlay, not profit.
func TotalTurnover(orders []*order.Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.AmountPaid
	}
	return total
}

// TotalProfit sums profit over the viewer's own orders; admins see the
// whole book.
func TotalProfit(orders []*order.Order, viewer middleware.Principal) float64 {
	var total float64
	for _, o := range orders {
		if !visibleTo(o, viewer) {
			continue
		}
		total += o.Profit
	}
	return total
}

// RealisedProfit sums profit over orders whose money has come in but whose
// profit has not yet been transferred out, with the same viewer scoping as
// TotalProfit.
func RealisedProfit(orders []*order.Order, viewer middleware.Principal) float64 {
	var total float64
	for _, o := range orders {
		if !visibleTo(o, viewer) {
			continue
		}
		if o.Delivery == order.DeliveryMoneyReceived && !o.Transfer {
			total += o.Profit
		}
	}
	return total
}

// visibleTo is the single authorization rule of the projector: admins see
// every order, everyone else only their own.
func visibleTo(o *order.Order, viewer middleware.Principal) bool {
	return viewer.IsAdmin || o.DoneByUser == viewer.Name
}
