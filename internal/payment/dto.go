package payment

// CreatePaymentRequest represents the request body for recording a payment.
// The store assigns the id, date and initial status.
type CreatePaymentRequest struct {
	Source string  `json:"source" validate:"required"`
	Type   Type    `json:"type" validate:"required,oneof=Credit Debit"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// UpdatePaymentRequest represents a partial edit of a payment entry.
type UpdatePaymentRequest struct {
	Source *string  `json:"source,omitempty"`
	Type   *Type    `json:"type,omitempty" validate:"omitempty,oneof=Credit Debit"`
	Amount *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Status *Status  `json:"status,omitempty" validate:"omitempty,oneof=Pending Completed Failed"`
}

// PaymentResponse represents the response for a single payment
type PaymentResponse struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Status string  `json:"status"`
}

// ToResponse converts a Payment model to a PaymentResponse DTO
func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:     p.ID,
		Source: p.Source,
		Type:   string(p.Type),
		Amount: p.Amount,
		Date:   p.Date.Format("2006-01-02T15:04:05Z"),
		Status: string(p.Status),
	}
}
