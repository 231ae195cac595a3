package hisab

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mbms-project/mbms-gateway/internal/order"
	"github.com/mbms-project/mbms-gateway/internal/payment"
)

// Prepared is the result of sizing a settlement batch. It is a plain value:
// preparing persists nothing and can be repeated freely until a submit.
type Prepared struct {
	PreviousDue float64
	Orders      []*order.Order // the delivered set at preparation time
	Lines       []string
	Expression  string
	Details     string
	TotalAmount float64
}

// PreviousDue is the outstanding balance carried from the last settlement:
// the most recent hisab's total minus the most recent payment's amount.
// Zero when no hisab exists yet. Never clamped: an overpayment carries
// forward as a negative due.
func PreviousDue(hisabs []*Hisab, lastPayment *payment.Payment) float64 {
	latest := MostRecent(hisabs)
	if latest == nil {
		return 0
	}

	due := latest.TotalAmount
	if lastPayment != nil {
		due -= lastPayment.Amount
	}
	return due
}

// Prepare sizes a settlement batch from the delivered set and the carried
// due. Grand total = previousDue + sum of return amounts; the details text
// is the human-readable breakdown sent to the buyer for manual audit.
func Prepare(delivered []*order.Order, previousDue float64) *Prepared {
	lines := make([]string, 0, len(delivered))
	terms := make([]string, 0, len(delivered)+1)
	terms = append(terms, formatAmount(previousDue))

	total := previousDue
	for _, o := range delivered {
		lines = append(lines, fmt.Sprintf("• %s = %s(%s)", o.DeviceName, formatAmount(o.ReturnAmount), o.OrderID))
		terms = append(terms, formatAmount(o.ReturnAmount))
		total += o.ReturnAmount
	}

	expression := fmt.Sprintf("%s = %s", strings.Join(terms, " + "), formatAmount(total))

	var b strings.Builder
	fmt.Fprintf(&b, "Previous Due = %s\n", formatAmount(previousDue))
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nTotal Balance: %s\n", expression)

	return &Prepared{
		PreviousDue: previousDue,
		Orders:      delivered,
		Lines:       lines,
		Expression:  expression,
		Details:     b.String(),
		TotalAmount: total,
	}
}

// Title derives the settlement title: ISO date, total to two decimals and
// the captured item count, underscore-joined.
func Title(at time.Time, total float64, itemCount int) string {
	return fmt.Sprintf("%s_%.2f_%d", at.Format("2006-01-02"), total, itemCount)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
