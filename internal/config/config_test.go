package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearPostgresEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"POSTGRES_DSN", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_HOST", "POSTGRES_PORT"} {
		t.Setenv(k, "")
	}
}

func TestPostgresDSN_ExplicitWins(t *testing.T) {
	clearPostgresEnv(t)
	t.Setenv("POSTGRES_DSN", "postgres://a:b@c:5432/d")
	t.Setenv("POSTGRES_USER", "ignored")

	assert.Equal(t, "postgres://a:b@c:5432/d", Load().PostgresDSN)
}

func TestPostgresDSN_AssembledFromParts(t *testing.T) {
	clearPostgresEnv(t)
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "orders")
	t.Setenv("POSTGRES_HOST", "db")

	assert.Equal(t, "postgres://app:secret@db:5432/orders?sslmode=disable", Load().PostgresDSN)
}

func TestPostgresDSN_EmptyMeansEmbeddedStore(t *testing.T) {
	clearPostgresEnv(t)
	t.Setenv("POSTGRES_USER", "app") // partial config is not enough

	assert.Empty(t, Load().PostgresDSN)
}

func TestDefaults(t *testing.T) {
	clearPostgresEnv(t)
	for _, k := range []string{"HTTP_ADDR", "PRODUCT_SERVICE_URL", "PRODUCT_TIMEOUT", "KAFKA_BROKERS", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:8001", cfg.ProductServiceURL)
	assert.Equal(t, 3*time.Second, cfg.ProductTimeout)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.RedisAddr)
}

func TestKafkaBrokersCSV(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, Load().KafkaBrokers)
}
