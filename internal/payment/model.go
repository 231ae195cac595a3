package payment

import "time"

// Type distinguishes money coming in from money going out.
type Type string

const (
	TypeCredit Type = "Credit"
	TypeDebit  Type = "Debit"
)

// Status is the settlement state of a single payment entry.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
)

// Payment is a ledger entry of money moving to or from a named source: a
// bank account, a card or a person. The link to a card is by name match
// (source equals one of the card's display names), not a foreign key.
type Payment struct {
	ID     string    `json:"_id"`
	Source string    `json:"source"`
	Type   Type      `json:"type"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Status Status    `json:"status"`
}
