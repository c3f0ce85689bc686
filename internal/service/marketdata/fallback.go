package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"StockCast/internal/domain/models"
	apphttp "StockCast/pkg/http"
)

const defaultChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// fallbackClient talks to the Yahoo chart API directly.
type fallbackClient struct {
	client    *apphttp.Client
	baseURL   string
	userAgent string
}

func NewFallbackClient(client *apphttp.Client, baseURL, userAgent string) *fallbackClient {
	if baseURL == "" {
		baseURL = defaultChartURL
	}
	return &fallbackClient{client: client, baseURL: baseURL, userAgent: userAgent}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *fallbackClient) fetch(ctx context.Context, ticker string, start, end time.Time) (models.PriceSeries, error) {
	var out chartResponse
	err := c.client.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: apphttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", c.baseURL, ticker),
		Headers: map[string]string{
			"User-Agent": c.userAgent,
		},
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(start.Unix(), 10)},
			"period2":  {strconv.FormatInt(end.Unix(), 10)},
			"interval": {"1d"},
			"events":   {"history"},
		},
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("chart api: %w", err)
	}

	if out.Chart.Error != nil {
		return nil, fmt.Errorf("chart api: %s: %s", out.Chart.Error.Code, out.Chart.Error.Description)
	}
	if len(out.Chart.Result) == 0 || len(out.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := out.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	var series models.PriceSeries
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		series = append(series, models.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	return series, nil
}
