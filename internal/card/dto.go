package card

// CreateCardRequest represents the request body for registering a card.
// The store seeds currentLimit from totalLimit and starts the payment list
// empty.
type CreateCardRequest struct {
	Name       []string `json:"name" validate:"required,min=1,dive,required"`
	Type       string   `json:"type" validate:"required"`
	TotalLimit float64  `json:"totalLimit" validate:"required,gt=0"`
	BillDate   string   `json:"billDate" validate:"required"`
	IsActive   bool     `json:"isActive"`
}

// CardResponse represents the response for a single card
type CardResponse struct {
	ID           string   `json:"id"`
	Name         []string `json:"name"`
	Type         string   `json:"type"`
	TotalLimit   float64  `json:"total_limit"`
	CurrentLimit float64  `json:"current_limit"`
	Payments     []string `json:"payments,omitempty"`
	BillDate     string   `json:"bill_date"`
	IsActive     bool     `json:"is_active"`
}

// ToResponse converts a Card model to a CardResponse DTO
func (c *Card) ToResponse() *CardResponse {
	return &CardResponse{
		ID:           c.ID,
		Name:         c.Name,
		Type:         c.Type,
		TotalLimit:   c.TotalLimit,
		CurrentLimit: c.CurrentLimit,
		Payments:     c.Payments,
		BillDate:     c.BillDate.Format("2006-01-02"),
		IsActive:     c.IsActive,
	}
}
