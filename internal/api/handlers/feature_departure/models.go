package feature_departure

// FeatureDepartureRequest HTTP request model
// feature = true закрепляет выезд на маршруте, false снимает закрепление
type FeatureDepartureRequest struct {
	Feature *bool `json:"feature"`
}
