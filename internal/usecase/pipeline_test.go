package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockCast/internal/domain/models"
	"StockCast/internal/service/model"
	"StockCast/internal/service/plot"
	applogger "StockCast/pkg/logger"
)

const tinyModel = `{
  "window": 3,
  "lstm": {"input": 1, "hidden": 1, "wx": [0, 0, 0, 0], "wh": [0, 0, 0, 0], "b": [0, 0, 0, 0]},
  "dense": {"w": [0], "b": 0.5}
}`

type fakeMarket struct {
	series   models.PriceSeries
	fetchErr error
	name     string
	nameErr  error

	gotTicker string
	gotStart  time.Time
	gotEnd    time.Time
}

func (f *fakeMarket) Fetch(ctx context.Context, ticker string, start, end time.Time) (models.PriceSeries, error) {
	f.gotTicker, f.gotStart, f.gotEnd = ticker, start, end
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.series, nil
}

func (f *fakeMarket) CompanyName(ctx context.Context, ticker string) (string, error) {
	if f.nameErr != nil {
		return "", f.nameErr
	}
	return f.name, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordRun(flow, result string)                {}
func (noopMetrics) RecordError(kind string)                      {}
func (noopMetrics) RecordPredictedPrice(t string, price float64) {}
func (noopMetrics) RecordStageLatency(stage string, s float64)   {}

func weekdaySeries(closes ...float64) models.PriceSeries {
	// Wednesday, then consecutive weekdays.
	day := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC)
	var s models.PriceSeries
	for _, c := range closes {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		s = append(s, models.PricePoint{Date: day, Close: c})
		day = day.AddDate(0, 0, 1)
	}
	return s
}

func newTestPipeline(t *testing.T, market *fakeMarket) (*Pipeline, string) {
	t.Helper()
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(modelPath, []byte(tinyModel), 0o644))

	logger, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	recorder := NewRunRecorder(nil, nil, noopMetrics{}, "none", logger)
	p := NewPipeline(market, model.NewCache(), plot.NewRenderer(dir), recorder, noopMetrics{}, logger, PipelineConfig{
		ModelPath:     modelPath,
		DefaultTicker: "MSFT",
		BacktestYears: 10,
		ForecastYears: 2,
	})
	return p, dir
}

func TestBacktest(t *testing.T) {
	market := &fakeMarket{series: weekdaySeries(10, 20, 30, 40, 50)}
	p, dir := newTestPipeline(t, market)

	res, err := p.Backtest(context.Background(), " aapl ")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", res.Ticker)
	assert.Equal(t, "AAPL", market.gotTicker)
	assert.InDelta(t, 10, market.gotEnd.Sub(market.gotStart).Hours()/24/365, 0.1)

	// The fixture model always emits 0.5 in scaled space, which inverts to
	// the series midpoint of 30. Actuals past the first window are 40, 50.
	assert.InDelta(t, 250.0, res.Metrics.MSE, 1e-9)
	assert.Greater(t, res.Metrics.RMSE, 0.0)

	for _, rel := range []string{res.Plots.PredictionPlot, res.Plots.ResidualsPlot, res.Plots.ResidualsDistribution} {
		require.NotEmpty(t, rel)
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		require.NoError(t, err)
	}
}

func TestBacktestInsufficientData(t *testing.T) {
	market := &fakeMarket{series: weekdaySeries(10, 20, 30)}
	p, _ := newTestPipeline(t, market)

	_, err := p.Backtest(context.Background(), "AAPL")
	var insufficient *models.InsufficientDataError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Have)
	assert.Equal(t, 4, insufficient.Need)
}

func TestForecastDefaultTicker(t *testing.T) {
	market := &fakeMarket{series: weekdaySeries(10, 20, 30, 40, 50), name: "Microsoft Corporation"}
	p, _ := newTestPipeline(t, market)

	res, err := p.Forecast(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "MSFT", res.Ticker)
	assert.Equal(t, "Microsoft Corporation", res.CompanyName)
	assert.InDelta(t, 30.0, res.PredictedPrice, 1e-9)
	assert.InDelta(t, 50.0, res.LastClosePrice, 1e-9)
	assert.Equal(t, market.series.Last().Date, res.LastCloseDate)
}

func TestForecastCompanyNameFallback(t *testing.T) {
	market := &fakeMarket{series: weekdaySeries(10, 20, 30, 40), nameErr: errors.New("quote unavailable")}
	p, _ := newTestPipeline(t, market)

	res, err := p.Forecast(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Unknown Company", res.CompanyName)
}

func TestForecastPredictionDateSkipsWeekend(t *testing.T) {
	friday := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	series := models.PriceSeries{
		{Date: friday.AddDate(0, 0, -4), Close: 10},
		{Date: friday.AddDate(0, 0, -3), Close: 20},
		{Date: friday.AddDate(0, 0, -1), Close: 30},
		{Date: friday, Close: 40},
	}
	p, _ := newTestPipeline(t, &fakeMarket{series: series, name: "Apple Inc."})

	res, err := p.Forecast(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, res.PredictionDate.Weekday())
	assert.Equal(t, friday.AddDate(0, 0, 3), res.PredictionDate)
}

func TestForecastInsufficientData(t *testing.T) {
	p, _ := newTestPipeline(t, &fakeMarket{series: weekdaySeries(10, 20)})

	_, err := p.Forecast(context.Background(), "AAPL")
	var insufficient *models.InsufficientDataError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Need)
}

func TestForecastMissingModel(t *testing.T) {
	market := &fakeMarket{series: weekdaySeries(10, 20, 30, 40)}
	p, _ := newTestPipeline(t, market)
	p.cfg.ModelPath = filepath.Join(t.TempDir(), "absent.json")

	_, err := p.Forecast(context.Background(), "AAPL")
	var notFound *models.ModelNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestBacktestPropagatesNoData(t *testing.T) {
	market := &fakeMarket{fetchErr: &models.NoDataError{Ticker: "NOPE"}}
	p, _ := newTestPipeline(t, market)

	_, err := p.Backtest(context.Background(), "NOPE")
	var noData *models.NoDataError
	require.True(t, errors.As(err, &noData))
}
