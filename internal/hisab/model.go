package hisab

import "time"

// Hisab is a settlement batch: every order that was delivered but unpaid at
// creation time, rolled into one billable total. The captured orders are
// not referenced explicitly; membership is implied by the delivery-status
// flips the engine performs around it.
type Hisab struct {
	ID              string    `json:"_id"`
	Title           string    `json:"title"`
	Details         string    `json:"details"`
	TotalAmount     float64   `json:"totalAmount"`
	IsActive        bool      `json:"isActive"`
	PaymentReceived bool      `json:"paymentReceived"`
	CreatedAt       time.Time `json:"createdAt"`
}

// MostRecent returns the newest hisab by creation time, or nil for an
// empty list.
func MostRecent(hisabs []*Hisab) *Hisab {
	var latest *Hisab
	for _, h := range hisabs {
		if latest == nil || h.CreatedAt.After(latest.CreatedAt) {
			latest = h
		}
	}
	return latest
}
