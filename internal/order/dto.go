package order

// CreateOrderRequest represents the request body for recording an order.
// The store assigns the id, order date and the computed money fields.
type CreateOrderRequest struct {
	DeviceName   string  `json:"deviceName" validate:"required"`
	Platform     string  `json:"platform" validate:"required"`
	OrderID      string  `json:"orderId"`
	Card         string  `json:"card" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,min=1"`
	Pincode      string  `json:"pincode" validate:"required"`
	AmountPaid   float64 `json:"amountPaid" validate:"required,gt=0"`
	ReturnAmount float64 `json:"returnAmount" validate:"required,gt=0"`
}

// UpdateDeliveryRequest represents the request body for a delivery status
// change. The external order id only travels when the order is moving into
// Delivered and the storefront has assigned one.
type UpdateDeliveryRequest struct {
	Delivery DeliveryStatus `json:"delivery" validate:"required"`
	OrderID  string         `json:"orderId,omitempty"`
}

// UpdateTransferRequest represents the request body for flipping the
// transfer flag.
type UpdateTransferRequest struct {
	Transfer *bool `json:"transfer" validate:"required"`
}

// OrderResponse represents the response for a single order
type OrderResponse struct {
	ID           string  `json:"id"`
	DeviceName   string  `json:"device_name"`
	Platform     string  `json:"platform"`
	OrderID      string  `json:"order_id"`
	Card         string  `json:"card"`
	CardName     string  `json:"card_name,omitempty"`
	Quantity     int     `json:"quantity"`
	Pincode      string  `json:"pincode"`
	AmountPaid   float64 `json:"amount_paid"`
	ReturnAmount float64 `json:"return_amount"`
	Profit       float64 `json:"profit"`
	CashBack     float64 `json:"cash_back"`
	Commission   float64 `json:"commission"`
	DoneByUser   string  `json:"done_by_user"`
	OrderDate    string  `json:"order_date"`
	DeliveryDate string  `json:"delivery_date,omitempty"`
	Delivery     string  `json:"delivery"`
	Transfer     bool    `json:"transfer"`
}

// ToResponse converts an Order model to an OrderResponse DTO
func (o *Order) ToResponse() *OrderResponse {
	resp := &OrderResponse{
		ID:           o.ID,
		DeviceName:   o.DeviceName,
		Platform:     o.Platform,
		OrderID:      o.OrderID,
		Card:         o.Card,
		CardName:     o.CardName,
		Quantity:     o.Quantity,
		Pincode:      o.Pincode,
		AmountPaid:   o.AmountPaid,
		ReturnAmount: o.ReturnAmount,
		Profit:       o.Profit,
		CashBack:     o.CashBack,
		Commission:   o.Commission,
		DoneByUser:   o.DoneByUser,
		OrderDate:    o.OrderDate.Format("2006-01-02T15:04:05Z"),
		Delivery:     string(o.Delivery),
		Transfer:     o.Transfer,
	}
	if o.DeliveryDate != nil {
		resp.DeliveryDate = o.DeliveryDate.Format("2006-01-02T15:04:05Z")
	}
	return resp
}
