package models

import "time"

// PredictionRun is the record of one completed pipeline invocation, emitted
// to the configured history backend. Derived telemetry, not authoritative
// state: a sink failure never fails the request.
type PredictionRun struct {
	Flow           string    `json:"flow"` // backtest or forecast
	Ticker         string    `json:"ticker"`
	PredictedPrice float64   `json:"predicted_price,omitempty"`
	MSE            float64   `json:"mse,omitempty"`
	RMSE           float64   `json:"rmse,omitempty"`
	R2             float64   `json:"r2,omitempty"`
	Observations   int       `json:"observations"`
	StartedAt      time.Time `json:"started_at"`
	DurationMs     int64     `json:"duration_ms"`
	Status         string    `json:"status"` // ok or the error kind
}
