package di

import (
	"context"
	"fmt"
	"time"

	"StockCast/internal/domain/repository"
	"StockCast/internal/handler/api"
	internalrepo "StockCast/internal/repository"
	icache "StockCast/internal/service/cache"
	"StockCast/internal/service/marketdata"
	"StockCast/internal/service/model"
	"StockCast/internal/service/plot"
	"StockCast/internal/usecase"
	pkgch "StockCast/pkg/clickhouse"
	"StockCast/pkg/config"
	xhttp "StockCast/pkg/http"
	pkgkafka "StockCast/pkg/kafka"
	applogger "StockCast/pkg/logger"
	"StockCast/pkg/metrics"
	"StockCast/pkg/server"
)

// ProvideLogger creates the structured application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideBytesCache creates the response/name cache: Redis when enabled,
// otherwise in-process TTL cache.
func ProvideBytesCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideMarketData creates the Yahoo Finance price source with its raw
// chart-API fallback.
func ProvideMarketData(cfg *config.Config, cache icache.BytesCache, logger *applogger.Logger) repository.MarketData {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Provider.Timeout))
	fallback := marketdata.NewFallbackClient(client, cfg.Provider.FallbackURL, cfg.Provider.UserAgent)
	return marketdata.NewYahooSource(fallback, cache, logger)
}

// ProvideModelCache creates the load-once model artifact cache.
func ProvideModelCache() *model.Cache {
	return model.NewCache()
}

// ProvideRenderer creates the plot renderer rooted at the media directory.
func ProvideRenderer(cfg *config.Config) *plot.Renderer {
	return plot.NewRenderer(cfg.Media.Root)
}

// ProvideRunRecorder builds the history sink for the configured backend.
func ProvideRunRecorder(cfg *config.Config, m repository.Metrics, logger *applogger.Logger) (*usecase.RunRecorder, error) {
	var (
		pub   repository.RunPublisher
		store repository.RunStorage
	)

	switch cfg.History.Backend {
	case "kafka":
		kc := cfg.History.Kafka
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(kc.Brokers),
			pkgkafka.WithCompression(kc.Compression),
			pkgkafka.WithRequiredAcks(kc.RequiredAcks),
			pkgkafka.WithMaxAttempts(kc.MaxAttempts),
			pkgkafka.WithTimeouts(kc.WriteTimeout, kc.ReadTimeout),
			pkgkafka.WithAsync(kc.Async),
			pkgkafka.WithHashByKey(true),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		pub = internalrepo.NewKafkaRunPublisher(producer, kc.Topic)

	case "clickhouse":
		cc := cfg.History.ClickHouse
		client, err := pkgch.NewClient(
			pkgch.WithHost(cc.Host),
			pkgch.WithPort(cc.Port),
			pkgch.WithDatabase(cc.Database),
			pkgch.WithCredentials(cc.User, cc.Password),
			pkgch.WithHTTP(cc.UseHTTP),
			pkgch.WithAsyncInsert(cc.AsyncInsert, cc.WaitForAsync),
			pkgch.WithTimeouts(cc.DialTimeout, cc.ReadTimeout, cc.WriteTimeout),
			pkgch.WithMaxExecutionTime(cc.MaxExecutionTime),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}
		store = internalrepo.NewClickHouseRunStorage(client, cc.Database+"."+cc.Table)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Init(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
	}

	return usecase.NewRunRecorder(pub, store, m, cfg.History.Backend, logger), nil
}

// ProvidePipeline creates the forecast pipeline use case.
func ProvidePipeline(
	market repository.MarketData,
	models *model.Cache,
	renderer *plot.Renderer,
	recorder *usecase.RunRecorder,
	m repository.Metrics,
	logger *applogger.Logger,
	cfg *config.Config,
) *usecase.Pipeline {
	return usecase.NewPipeline(market, models, renderer, recorder, m, logger, usecase.PipelineConfig{
		ModelPath:     cfg.Model.Path,
		DefaultTicker: cfg.Forecast.DefaultTicker,
		BacktestYears: cfg.Forecast.BacktestYears,
		ForecastYears: cfg.Forecast.ForecastYears,
	})
}

// ProvidePredictHandler creates the prediction API handler.
func ProvidePredictHandler(
	pipeline *usecase.Pipeline,
	cache icache.BytesCache,
	logger *applogger.Logger,
	cfg *config.Config,
) *api.PredictHandler {
	return api.NewPredictHandler(pipeline, cache, logger, cfg.Media.Root, cfg.Media.BaseURL, cfg.Forecast.CacheTTL)
}

// ProvideHealthHandler wires health probes for the configured backends.
func ProvideHealthHandler(cache icache.BytesCache, recorder *usecase.RunRecorder, cfg *config.Config) *api.HealthHandler {
	checks := map[string]api.HealthChecker{}
	if hc, ok := cache.(interface{ Health(context.Context) error }); ok {
		checks["cache"] = hc.Health
	}
	if cfg.History.Backend == "clickhouse" {
		checks["history"] = recorder.Health
	}
	return api.NewHealthHandler(checks)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *applogger.Logger,
	predict *api.PredictHandler,
	health *api.HealthHandler,
	recorder *usecase.RunRecorder,
) *server.App {
	return server.New(cfg, logger, xhttp.Handlers{predict, health}, recorder)
}
