package marketdata

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"

	"StockCast/internal/domain/models"
	"StockCast/internal/domain/repository"
	icache "StockCast/internal/service/cache"
	applogger "StockCast/pkg/logger"
)

// UnknownCompany is the sentinel display name when resolution fails.
const UnknownCompany = "Unknown Company"

const companyNameTTL = 24 * time.Hour

// YahooSource fetches daily price history from Yahoo Finance. The primary
// path goes through the finance-go client; a raw chart-API fallback covers
// transient client failures.
type YahooSource struct {
	fallback *fallbackClient
	names    icache.BytesCache
	logger   *applogger.Logger
}

func NewYahooSource(fallback *fallbackClient, names icache.BytesCache, logger *applogger.Logger) *YahooSource {
	return &YahooSource{fallback: fallback, names: names, logger: logger}
}

// Fetch returns daily closing bars for ticker in [start, end], ascending by
// date. A range with zero observations yields *models.NoDataError.
func (s *YahooSource) Fetch(ctx context.Context, ticker string, start, end time.Time) (models.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	series, err := s.fetchChart(ticker, start, end)
	if err != nil && s.fallback != nil {
		s.logger.Warn("primary market data fetch failed, using fallback",
			applogger.String("ticker", ticker), applogger.Error(err))
		series, err = s.fallback.fetch(ctx, ticker, start, end)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	if len(series) == 0 {
		return nil, &models.NoDataError{Ticker: ticker}
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

func (s *YahooSource) fetchChart(ticker string, start, end time.Time) (models.PriceSeries, error) {
	params := &chart.Params{
		Symbol:   ticker,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)
	var series models.PriceSeries
	for iter.Next() {
		bar := iter.Bar()
		close, _ := bar.Close.Float64()
		if close == 0 {
			continue // null bars on market holidays
		}
		series = append(series, models.PricePoint{
			Date:  time.Unix(int64(bar.Timestamp), 0).UTC(),
			Close: close,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("chart %s: %w", ticker, err)
	}
	return series, nil
}

// CompanyName resolves a best-effort display name for ticker, cached for a
// day. Callers degrade to UnknownCompany on error.
func (s *YahooSource) CompanyName(ctx context.Context, ticker string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := "company:" + ticker
	if s.names != nil {
		if b, ok, err := s.names.GetBytes(key); err == nil && ok {
			return string(b), nil
		}
	}

	q, err := quote.Get(ticker)
	if err != nil {
		return "", fmt.Errorf("quote %s: %w", ticker, err)
	}
	if q == nil || q.ShortName == "" {
		return "", fmt.Errorf("quote %s: no company name", ticker)
	}

	if s.names != nil {
		if err := s.names.SetBytes(key, []byte(q.ShortName), companyNameTTL); err != nil {
			s.logger.Warn("company name cache set failed", applogger.Error(err))
		}
	}
	return q.ShortName, nil
}

var _ repository.MarketData = (*YahooSource)(nil)
