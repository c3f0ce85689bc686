package models

import "time"

// MetricsSummary holds regression-quality statistics between aligned
// actual/predicted price sequences, rounded to 4 decimal places.
type MetricsSummary struct {
	MSE  float64 `json:"mse"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
	MAE  float64 `json:"mae"`
	MAPE float64 `json:"mape"`
}

// Artifacts holds media-root-relative paths of rendered diagnostic plots.
type Artifacts struct {
	PredictionPlot        string `json:"prediction_plot_path"`
	ResidualsPlot         string `json:"residuals_plot_path"`
	ResidualsDistribution string `json:"residuals_distribution_path"`
}

// BacktestResult is the outcome of evaluating the model against held-out
// history for one ticker.
type BacktestResult struct {
	Ticker  string         `json:"ticker"`
	Metrics MetricsSummary `json:"metrics"`
	Plots   Artifacts      `json:"plots"`
}

// ForecastResult is the outcome of a next-day forecast.
type ForecastResult struct {
	Ticker         string    `json:"ticker"`
	CompanyName    string    `json:"company_name"`
	PredictedPrice float64   `json:"predicted_price"`
	PredictionDate time.Time `json:"prediction_date"`
	LastClosePrice float64   `json:"last_close_price"`
	LastCloseDate  time.Time `json:"last_close_date"`
}
