package metrics

// SnapshotResponse is the dashboard payload. Balance, due and turnover are
// admin-level figures and are omitted for other viewers.
type SnapshotResponse struct {
	CurrentBalance    *float64 `json:"current_balance,omitempty"`
	TotalCreditUsed   float64  `json:"total_credit_used"`
	PreviousDue       *float64 `json:"previous_due,omitempty"`
	MoneyYetToReceive float64  `json:"money_yet_to_receive"`
	TotalTurnover     *float64 `json:"total_turnover,omitempty"`
	TotalProfit       float64  `json:"total_profit"`
	RealisedProfit    float64  `json:"realised_profit"`
}

// ToResponse converts a Snapshot to its viewer-scoped DTO
func (s *Snapshot) ToResponse() *SnapshotResponse {
	resp := &SnapshotResponse{
		TotalCreditUsed:   s.TotalCreditUsed,
		MoneyYetToReceive: s.MoneyYetToReceive,
		TotalProfit:       s.TotalProfit,
		RealisedProfit:    s.RealisedProfit,
	}
	if s.Admin {
		resp.CurrentBalance = &s.CurrentBalance
		resp.PreviousDue = &s.PreviousDue
		resp.TotalTurnover = &s.TotalTurnover
	}
	return resp
}
