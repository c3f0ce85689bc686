package usecase

import (
	"context"
	"time"

	"StockCast/internal/domain/models"
	drepo "StockCast/internal/domain/repository"
	applogger "StockCast/pkg/logger"
)

const recordTimeout = 5 * time.Second

// RunRecorder routes completed prediction runs to the configured history
// backend. Recording is best effort: failures are logged and counted, never
// returned to the caller.
type RunRecorder struct {
	pub     drepo.RunPublisher
	store   drepo.RunStorage
	metrics drepo.Metrics
	backend string
	logger  *applogger.Logger
}

// NewRunRecorder creates a new RunRecorder instance.
func NewRunRecorder(
	pub drepo.RunPublisher,
	store drepo.RunStorage,
	metrics drepo.Metrics,
	backend string,
	logger *applogger.Logger,
) *RunRecorder {
	return &RunRecorder{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
		logger:  logger,
	}
}

// Record emits one run record to the configured backend.
func (r *RunRecorder) Record(ctx context.Context, run *models.PredictionRun) {
	if run == nil || r.backend == "" || r.backend == "none" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	var err error
	switch r.backend {
	case "kafka":
		err = r.pub.Publish(ctx, run)
	case "clickhouse":
		err = r.store.Store(ctx, run)
	}

	if err != nil {
		r.metrics.RecordError("history_sink")
		r.logger.Warn("history sink write failed",
			applogger.String("backend", r.backend),
			applogger.String("ticker", run.Ticker),
			applogger.Error(err))
	}
}

// Health probes the storage backend when one is configured.
func (r *RunRecorder) Health(ctx context.Context) error {
	if r.store != nil {
		return r.store.Health(ctx)
	}
	return nil
}

// Close releases the backend clients.
func (r *RunRecorder) Close() error {
	if r.pub != nil {
		if err := r.pub.Close(); err != nil {
			return err
		}
	}
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
