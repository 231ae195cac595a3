package order

import "time"

// DeliveryStatus is the lifecycle stage of an order.
type DeliveryStatus string

const (
	DeliveryPending        DeliveryStatus = "Pending"
	DeliveryShipped        DeliveryStatus = "Shipped"
	DeliveryDelivered      DeliveryStatus = "Delivered"
	DeliveryPaymentPending DeliveryStatus = "Payment Pending"
	DeliveryMoneyReceived  DeliveryStatus = "Money Received"
)

// Order identifies a single purchased device tracked by the store.
type Order struct {
	ID           string         `json:"_id"`
	DeviceName   string         `json:"deviceName"`
	Platform     string         `json:"platform"`
	OrderID      string         `json:"orderId"` // external id assigned by the storefront
	Card         string         `json:"card"`
	CardName     string         `json:"cardName"`
	Quantity     int            `json:"quantity"`
	Pincode      string         `json:"pincode"`
	AmountPaid   float64        `json:"amountPaid"`
	ReturnAmount float64        `json:"returnAmount"`
	Profit       float64        `json:"profit"`
	CashBack     float64        `json:"cashBack"`
	Commission   float64        `json:"commission"`
	DoneBy       string         `json:"doneBy"`
	DoneByUser   string         `json:"doneByUser"`
	OrderDate    time.Time      `json:"orderDate"`
	DeliveryDate *time.Time     `json:"deliveryDate,omitempty"`
	Delivery     DeliveryStatus `json:"delivery"`
	Transfer     bool           `json:"transfer"` // realized profit moved out
}

// ValidStatus reports whether s is a delivery status the store accepts.
func ValidStatus(s DeliveryStatus) bool {
	switch s {
	case DeliveryPending, DeliveryShipped, DeliveryDelivered, DeliveryPaymentPending, DeliveryMoneyReceived:
		return true
	}
	return false
}

// engineTransitions are the only edges the settlement engine itself drives.
// Payment Pending -> Delivered is the revert edge. User-driven updates go
// straight to the store and are not constrained by this table.
var engineTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryPending:        {DeliveryDelivered},
	DeliveryDelivered:      {DeliveryPaymentPending},
	DeliveryPaymentPending: {DeliveryMoneyReceived, DeliveryDelivered},
}

// CanTransition reports whether the settlement engine may move an order
// from one delivery status to another.
func CanTransition(from, to DeliveryStatus) bool {
	for _, next := range engineTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
