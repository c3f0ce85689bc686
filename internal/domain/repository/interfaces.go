package repository

import (
	"context"
	"time"

	"StockCast/internal/domain/models"
)

// MarketData fetches historical daily price series from an external provider.
type MarketData interface {
	// Fetch returns daily bars for ticker in [start, end], ascending by date.
	// Returns *models.NoDataError when the range yields zero observations.
	Fetch(ctx context.Context, ticker string, start, end time.Time) (models.PriceSeries, error)
	// CompanyName resolves a best-effort display name for ticker.
	CompanyName(ctx context.Context, ticker string) (string, error)
}

// RunPublisher emits prediction-run records to a message broker.
type RunPublisher interface {
	Publish(ctx context.Context, run *models.PredictionRun) error
	Close() error
}

// RunStorage persists prediction-run records to a database.
type RunStorage interface {
	Init(ctx context.Context) error // ensure tables
	Store(ctx context.Context, run *models.PredictionRun) error
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational telemetry for pipeline invocations.
type Metrics interface {
	RecordRun(flow, result string)
	RecordError(kind string)
	RecordPredictedPrice(ticker string, price float64)
	RecordStageLatency(stage string, seconds float64)
}
