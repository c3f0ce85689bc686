package repository

import (
	"context"
	"fmt"

	"StockCast/internal/domain/models"
	"StockCast/internal/domain/repository"
	pkgch "StockCast/pkg/clickhouse"
	pkgkafka "StockCast/pkg/kafka"
)

// ClickHouseRunStorage implements RunStorage for ClickHouse.
type ClickHouseRunStorage struct {
	client *pkgch.Client
	table  string
}

// NewClickHouseRunStorage creates ClickHouse run storage.
func NewClickHouseRunStorage(client *pkgch.Client, table string) repository.RunStorage {
	return &ClickHouseRunStorage{client: client, table: table}
}

func (s *ClickHouseRunStorage) Init(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		started_at      DateTime64(3),
		flow            LowCardinality(String),
		ticker          LowCardinality(String),
		predicted_price Float64,
		mse             Float64,
		rmse            Float64,
		r2              Float64,
		observations    UInt32,
		duration_ms     UInt32,
		status          LowCardinality(String)
	) ENGINE = MergeTree
	PARTITION BY toYYYYMM(started_at)
	ORDER BY (ticker, started_at)`, s.table)
	_, err := s.client.DB().ExecContext(ctx, q)
	return err
}

func (s *ClickHouseRunStorage) Store(ctx context.Context, run *models.PredictionRun) error {
	q := fmt.Sprintf("INSERT INTO %s (started_at, flow, ticker, predicted_price, mse, rmse, r2, observations, duration_ms, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.client.DB().ExecContext(ctx, q,
		run.StartedAt,
		run.Flow,
		run.Ticker,
		run.PredictedPrice,
		run.MSE,
		run.RMSE,
		run.R2,
		uint32(run.Observations),
		uint32(run.DurationMs),
		run.Status,
	)
	return err
}

func (s *ClickHouseRunStorage) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *ClickHouseRunStorage) Close() error {
	return s.client.Close()
}

// KafkaRunPublisher implements RunPublisher for Kafka.
type KafkaRunPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaRunPublisher creates a Kafka run publisher.
func NewKafkaRunPublisher(producer *pkgkafka.Producer, topic string) repository.RunPublisher {
	return &KafkaRunPublisher{producer: producer, topic: topic}
}

func (p *KafkaRunPublisher) Publish(ctx context.Context, run *models.PredictionRun) error {
	return p.producer.Publish(ctx, p.topic, []byte(run.Ticker), run)
}

func (p *KafkaRunPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
