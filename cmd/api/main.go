package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/order-service/internal/config"
	"github.com/ariefcatur/order-service/internal/httpx"
	kafkax "github.com/ariefcatur/order-service/internal/kafka"
	"github.com/ariefcatur/order-service/internal/metrics"
	"github.com/ariefcatur/order-service/internal/orders"
	"github.com/ariefcatur/order-service/internal/pebblestore"
	"github.com/ariefcatur/order-service/internal/postgres"
	"github.com/ariefcatur/order-service/internal/product"
	"github.com/ariefcatur/order-service/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store: Postgres when configured, embedded pebble otherwise (local/CI).
	var store orders.Store
	if cfg.PostgresDSN != "" {
		pool, err := postgres.ConnectWithRetry(ctx, log, cfg.PostgresDSN, cfg.DBConnectAttempts, cfg.DBConnectDelay)
		if err != nil {
			log.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()
		pg := &postgres.Store{DB: pool}
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("ensure schema", "err", err)
			os.Exit(1)
		}
		store = pg
		log.Info("using postgres store")
	} else {
		ps, err := pebblestore.Open(cfg.DataDir)
		if err != nil {
			log.Error("pebble open", "err", err)
			os.Exit(1)
		}
		defer ps.Close()
		store = ps
		log.Info("using embedded store", "dir", cfg.DataDir)
	}

	// Optional collaborators.
	h := &httpx.OrdersHandler{}
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		h.Redis = rdb
	}
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, 1024)
		prod.Start(ctx)
	}

	reg := metrics.NewRegistry()
	svc := &orders.Service{
		Log:     log,
		Store:   store,
		Fetcher: product.NewClient(cfg.ProductServiceURL, cfg.ProductTimeout),
		Metrics: reg,
		Name:    cfg.ServiceName,
	}
	if prod != nil {
		svc.Events = prod
	}
	h.Svc = svc

	router := httpx.NewRouter()
	router.Method(http.MethodGet, "/metrics", reg.Handler())
	h.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("http listening", "addr", cfg.HTTPAddr, "product_service", cfg.ProductServiceURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if prod != nil {
		prod.Close()
		prod.WaitClosed()
	}
}
