package models

// Requests for prediction HTTP endpoints. Defined in domain for consistency and reuse.

type PredictStockRequest struct {
	Ticker string `json:"ticker" validate:"required,max=10,ticker"`
}

type ForecastRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"omitempty,max=10,ticker"`
}
