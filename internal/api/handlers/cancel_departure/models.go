package cancel_departure

// CancelDepartureRequest HTTP request model
type CancelDepartureRequest struct {
	Reason string `json:"reason"`
}
