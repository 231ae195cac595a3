package card

import "time"

// Card is a credit instrument. A card carries several display names; a
// payment belongs to a card when payment.source equals one of them. That
// name match is the only link between the two ledgers, so renaming a card
// silently orphans its payment history.
type Card struct {
	ID           string    `json:"_id"`
	Name         []string  `json:"name"`
	Type         string    `json:"type"`
	TotalLimit   float64   `json:"totalLimit"`
	CurrentLimit float64   `json:"currentLimit"` // decreases as debit payments reference the card
	Payments     []string  `json:"payments"`
	BillDate     time.Time `json:"billDate"`
	IsActive     bool      `json:"isActive"`
}

// HasName reports whether source matches one of the card's display names.
func (c *Card) HasName(source string) bool {
	for _, n := range c.Name {
		if n == source {
			return true
		}
	}
	return false
}
