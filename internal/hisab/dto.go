package hisab

// CreateHisabRequest is the payload persisted to the store on submit.
type CreateHisabRequest struct {
	Title       string  `json:"title"`
	Details     string  `json:"details"`
	TotalAmount float64 `json:"totalAmount"`
}

// UpdateHisabRequest is a partial update; only the lifecycle flags are
// ever touched after creation, the total is frozen at submit time.
type UpdateHisabRequest struct {
	IsActive        *bool `json:"isActive,omitempty"`
	PaymentReceived *bool `json:"paymentReceived,omitempty"`
}

// PrepareResponse previews a settlement batch without persisting anything.
type PrepareResponse struct {
	PreviousDue float64  `json:"previous_due"`
	Lines       []string `json:"lines"`
	Expression  string   `json:"expression"`
	Details     string   `json:"details"`
	TotalAmount float64  `json:"total_amount"`
	ItemCount   int      `json:"item_count"`
	OrderIDs    []string `json:"order_ids"`
}

// HisabResponse represents the response for a single hisab
type HisabResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Details         string  `json:"details"`
	TotalAmount     float64 `json:"total_amount"`
	IsActive        bool    `json:"is_active"`
	PaymentReceived bool    `json:"payment_received"`
	CreatedAt       string  `json:"created_at"`
}

// ToResponse converts a Prepared batch to a PrepareResponse DTO
func (p *Prepared) ToResponse() *PrepareResponse {
	orderIDs := make([]string, len(p.Orders))
	for i, o := range p.Orders {
		orderIDs[i] = o.ID
	}
	return &PrepareResponse{
		PreviousDue: p.PreviousDue,
		Lines:       p.Lines,
		Expression:  p.Expression,
		Details:     p.Details,
		TotalAmount: p.TotalAmount,
		ItemCount:   len(p.Orders),
		OrderIDs:    orderIDs,
	}
}

// ToResponse converts a Hisab model to a HisabResponse DTO
func (h *Hisab) ToResponse() *HisabResponse {
	return &HisabResponse{
		ID:              h.ID,
		Title:           h.Title,
		Details:         h.Details,
		TotalAmount:     h.TotalAmount,
		IsActive:        h.IsActive,
		PaymentReceived: h.PaymentReceived,
		CreatedAt:       h.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
