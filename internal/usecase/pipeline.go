package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"StockCast/internal/domain/models"
	drepo "StockCast/internal/domain/repository"
	"StockCast/internal/service/evaluation"
	"StockCast/internal/service/marketdata"
	"StockCast/internal/service/model"
	"StockCast/internal/service/plot"
	"StockCast/internal/service/scaling"
	"StockCast/internal/service/window"
	applogger "StockCast/pkg/logger"
	"StockCast/pkg/util"
)

// PipelineConfig holds tunables of the forecast pipeline.
type PipelineConfig struct {
	ModelPath     string
	DefaultTicker string
	BacktestYears int
	ForecastYears int
}

// Pipeline runs the end-to-end forecast flow: fetch history, scale, window,
// run the model, and assemble results.
type Pipeline struct {
	market   drepo.MarketData
	models   *model.Cache
	renderer *plot.Renderer
	recorder *RunRecorder
	metrics  drepo.Metrics
	logger   *applogger.Logger
	cfg      PipelineConfig
}

// NewPipeline creates a new Pipeline instance.
func NewPipeline(
	market drepo.MarketData,
	models *model.Cache,
	renderer *plot.Renderer,
	recorder *RunRecorder,
	metrics drepo.Metrics,
	logger *applogger.Logger,
	cfg PipelineConfig,
) *Pipeline {
	return &Pipeline{
		market:   market,
		models:   models,
		renderer: renderer,
		recorder: recorder,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

// Backtest evaluates the model against historical prices for ticker and
// renders diagnostic plots. Predictions cover every full window in the
// fetched range.
func (p *Pipeline) Backtest(ctx context.Context, ticker string) (*models.BacktestResult, error) {
	ticker = normalizeTicker(ticker)
	started := time.Now()

	res, obs, err := p.backtest(ctx, ticker)
	p.finishRun(ctx, "backtest", ticker, started, obs, res, nil, err)
	return res, err
}

func (p *Pipeline) backtest(ctx context.Context, ticker string) (*models.BacktestResult, int, error) {
	now := time.Now()
	series, err := p.fetchStage(ctx, ticker, util.YearsAgo(now, p.cfg.BacktestYears), now)
	if err != nil {
		return nil, 0, err
	}

	m, err := p.loadModel()
	if err != nil {
		return nil, len(series), err
	}

	closes := series.Closes()
	w := m.Window()
	if len(closes) <= w {
		return nil, len(closes), &models.InsufficientDataError{Ticker: ticker, Have: len(closes), Need: w + 1}
	}

	t0 := time.Now()
	tf := scaling.Fit(closes)
	windows := window.Training(tf.Apply(closes), w)
	predicted := tf.Invert(m.Predict(windows))
	actual := closes[w:]
	p.metrics.RecordStageLatency("predict", time.Since(t0).Seconds())

	summary, err := evaluation.Compute(actual, predicted)
	if err != nil {
		return nil, len(closes), &models.PipelineError{Stage: "evaluate", Err: err}
	}

	t0 = time.Now()
	plots, err := p.renderer.Render(ticker, series.Dates()[w:], actual, predicted)
	if err != nil {
		return nil, len(closes), &models.PipelineError{Stage: "render", Err: err}
	}
	p.metrics.RecordStageLatency("render", time.Since(t0).Seconds())

	p.logger.Info("backtest complete",
		applogger.String("ticker", ticker),
		applogger.Int("observations", len(actual)),
		applogger.Float64("rmse", summary.RMSE),
		applogger.Float64("r2", summary.R2))

	return &models.BacktestResult{Ticker: ticker, Metrics: summary, Plots: plots}, len(closes), nil
}

// Forecast produces the next-business-day closing price forecast for ticker.
// An empty ticker falls back to the configured default.
func (p *Pipeline) Forecast(ctx context.Context, ticker string) (*models.ForecastResult, error) {
	ticker = normalizeTicker(ticker)
	if ticker == "" {
		ticker = p.cfg.DefaultTicker
	}
	started := time.Now()

	res, obs, err := p.forecast(ctx, ticker)
	p.finishRun(ctx, "forecast", ticker, started, obs, nil, res, err)
	return res, err
}

func (p *Pipeline) forecast(ctx context.Context, ticker string) (*models.ForecastResult, int, error) {
	now := time.Now()
	series, err := p.fetchStage(ctx, ticker, util.YearsAgo(now, p.cfg.ForecastYears), now)
	if err != nil {
		return nil, 0, err
	}

	m, err := p.loadModel()
	if err != nil {
		return nil, len(series), err
	}

	closes := series.Closes()
	tf := scaling.Fit(closes)
	win, err := window.Inference(tf.Apply(closes), m.Window(), ticker)
	if err != nil {
		return nil, len(closes), err
	}

	t0 := time.Now()
	price := util.Round2(tf.InvertOne(m.Predict([]window.Window{win})[0]))
	p.metrics.RecordStageLatency("predict", time.Since(t0).Seconds())
	p.metrics.RecordPredictedPrice(ticker, price)

	name, err := p.market.CompanyName(ctx, ticker)
	if err != nil {
		p.logger.Warn("company name lookup failed",
			applogger.String("ticker", ticker), applogger.Error(err))
		name = marketdata.UnknownCompany
	}

	last := series.Last()
	res := &models.ForecastResult{
		Ticker:         ticker,
		CompanyName:    name,
		PredictedPrice: price,
		PredictionDate: util.NextBusinessDay(last.Date),
		LastClosePrice: util.Round2(last.Close),
		LastCloseDate:  last.Date,
	}

	p.logger.Info("forecast complete",
		applogger.String("ticker", ticker),
		applogger.Float64("predicted_price", price),
		applogger.String("prediction_date", util.FormatDate(res.PredictionDate)))

	return res, len(closes), nil
}

func (p *Pipeline) fetchStage(ctx context.Context, ticker string, start, end time.Time) (models.PriceSeries, error) {
	t0 := time.Now()
	series, err := p.market.Fetch(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}
	p.metrics.RecordStageLatency("fetch", time.Since(t0).Seconds())
	return series, nil
}

func (p *Pipeline) loadModel() (*model.Model, error) {
	m, err := p.models.Load(p.cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Pipeline) finishRun(ctx context.Context, flow, ticker string, started time.Time, observations int, bt *models.BacktestResult, fc *models.ForecastResult, err error) {
	status := "ok"
	if err != nil {
		status = errKind(err)
		p.metrics.RecordError(status)
	}
	p.metrics.RecordRun(flow, status)

	run := &models.PredictionRun{
		Flow:         flow,
		Ticker:       ticker,
		Observations: observations,
		StartedAt:    started,
		DurationMs:   time.Since(started).Milliseconds(),
		Status:       status,
	}
	if bt != nil {
		run.MSE = bt.Metrics.MSE
		run.RMSE = bt.Metrics.RMSE
		run.R2 = bt.Metrics.R2
	}
	if fc != nil {
		run.PredictedPrice = fc.PredictedPrice
	}
	p.recorder.Record(ctx, run)
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

func errKind(err error) string {
	var (
		noData       *models.NoDataError
		insufficient *models.InsufficientDataError
		notFound     *models.ModelNotFoundError
		mismatch     *models.DimensionMismatchError
		pipeline     *models.PipelineError
	)
	switch {
	case errors.As(err, &noData):
		return "no_data"
	case errors.As(err, &insufficient):
		return "insufficient_data"
	case errors.As(err, &notFound):
		return "model_not_found"
	case errors.As(err, &mismatch):
		return "dimension_mismatch"
	case errors.As(err, &pipeline):
		return pipeline.Stage
	default:
		return "internal"
	}
}
