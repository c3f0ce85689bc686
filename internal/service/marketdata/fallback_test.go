package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockCast/internal/service/cache"
	apphttp "StockCast/pkg/http"
	applogger "StockCast/pkg/logger"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "timestamp": [1700006400, 1700092800, 1700179200],
      "indicators": {
        "quote": [{"close": [182.41, null, 184.37]}]
      }
    }],
    "error": null
  }
}`

func TestFallbackFetchSkipsNullBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.NotEmpty(t, r.URL.Query().Get("period1"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartFixture))
	}))
	defer srv.Close()

	fb := NewFallbackClient(apphttp.NewClient(), srv.URL, "stockcast-test")
	series, err := fb.fetch(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, 182.41, series[0].Close)
	assert.Equal(t, 184.37, series[1].Close)
	assert.True(t, series[0].Date.Before(series[1].Date))
}

func TestFallbackFetchChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	fb := NewFallbackClient(apphttp.NewClient(), srv.URL, "stockcast-test")
	_, err := fb.fetch(context.Background(), "NOPE", time.Now().AddDate(0, -1, 0), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestFallbackFetchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	fb := NewFallbackClient(apphttp.NewClient(), srv.URL, "stockcast-test")
	series, err := fb.fetch(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestCompanyNameCacheHit(t *testing.T) {
	names := cache.NewTTLCache()
	require.NoError(t, names.SetBytes("company:MSFT", []byte("Microsoft Corporation"), time.Minute))

	logger, err := applogger.New(&applogger.Config{Level: "debug", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	src := NewYahooSource(nil, names, logger)
	name, err := src.CompanyName(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, "Microsoft Corporation", name)
}
