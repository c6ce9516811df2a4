package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr          string
	ServiceName       string
	ProductServiceURL string
	ProductTimeout    time.Duration
	PostgresDSN       string // empty -> embedded pebble store
	DataDir           string
	RedisAddr         string // empty -> status cache disabled
	KafkaBrokers      []string
	KafkaTopic        string
	DBConnectAttempts int
	DBConnectDelay    time.Duration
}

func Load() Config {
	return Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8000"),
		ServiceName:       getenv("SERVICE_NAME", "order-service"),
		ProductServiceURL: getenv("PRODUCT_SERVICE_URL", "http://localhost:8001"),
		ProductTimeout:    getdur("PRODUCT_TIMEOUT", 3*time.Second),
		PostgresDSN:       postgresDSN(),
		DataDir:           getenv("DATA_DIR", "./data/orders"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		KafkaBrokers:      splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getenv("KAFKA_TOPIC", "order.events"),
		DBConnectAttempts: getint("DB_CONNECT_ATTEMPTS", 5),
		DBConnectDelay:    getdur("DB_CONNECT_DELAY", 2*time.Second),
	}
}

// postgresDSN prefers a full POSTGRES_DSN, then assembles one from the
// discrete POSTGRES_* parts. Empty result means run on the embedded store.
func postgresDSN() string {
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	user := os.Getenv("POSTGRES_USER")
	pass := os.Getenv("POSTGRES_PASSWORD")
	db := os.Getenv("POSTGRES_DB")
	host := os.Getenv("POSTGRES_HOST")
	if user == "" || pass == "" || db == "" || host == "" {
		return ""
	}
	port := getenv("POSTGRES_PORT", "5432")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, db)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func getdur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
