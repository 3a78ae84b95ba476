package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/brewsterlabs/brewtrack/internal/api"
	"github.com/brewsterlabs/brewtrack/internal/gate"
	"github.com/brewsterlabs/brewtrack/internal/leaderboard"
	"github.com/brewsterlabs/brewtrack/internal/messaging"
	"github.com/brewsterlabs/brewtrack/internal/orders"
	"github.com/brewsterlabs/brewtrack/internal/ratings"
	"github.com/brewsterlabs/brewtrack/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "brewtrack-api", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("brewtrack-api", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := runtime.Start(); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
		os.Exit(1)
	}

	postgresURL := os.Getenv("POSTGRES_URL")
	if postgresURL == "" {
		logger.Error("POSTGRES_URL environment variable is required")
		os.Exit(1)
	}

	db, err := telemetry.OpenDB("postgres", postgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var producer *messaging.Producer
	kafkaBrokers := os.Getenv("KAFKA_BROKERS")
	if kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		producer = messaging.NewProducer(brokers, "order.placed")
		defer func() { _ = producer.Close() }()
	}

	var cache *leaderboard.Cache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cache = leaderboard.NewCache(redisAddr)
		defer func() { _ = cache.Close() }()
	}

	orderRepo := orders.NewOrderRepository(db)
	orderHandler, err := orders.NewHandler(orderRepo, producerOrNil(producer), logger)
	if err != nil {
		logger.Error("failed to create orders handler", "error", err)
		os.Exit(1)
	}

	userRepo := leaderboard.NewUserRepository(db)
	leaderboardHandler := leaderboard.NewHandler(userRepo, cache, logger)

	ratingRepo := ratings.NewRatingRepository(db)
	ratingHandler := ratings.NewHandler(ratingRepo, logger)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	registry := gate.NewRegistry(gate.NewPGFlagStore(db), rng)
	gateHandler := gate.NewHandler(registry, logger)

	healthHandler := api.NewHealthHandler(db, logger)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", metricsHandler)
	mux.HandleFunc("GET /health", telemetry.WithHTTPRoute(healthHandler.HandleHealth))
	mux.HandleFunc("POST /orders", telemetry.WithHTTPRoute(orderHandler.HandlePlace))
	mux.HandleFunc("GET /orders/{username}", telemetry.WithHTTPRoute(orderHandler.HandleListByUsername))
	mux.HandleFunc("GET /leaderboard", telemetry.WithHTTPRoute(leaderboardHandler.HandleTop))
	mux.HandleFunc("POST /ratings", telemetry.WithHTTPRoute(ratingHandler.HandleSubmit))
	mux.HandleFunc("GET /ratings/{username}", telemetry.WithHTTPRoute(ratingHandler.HandleListByUsername))
	mux.HandleFunc("POST /gate/sessions", telemetry.WithHTTPRoute(gateHandler.HandleStart))
	mux.HandleFunc("GET /gate/sessions/{sessionKey}", telemetry.WithHTTPRoute(gateHandler.HandleGet))
	mux.HandleFunc("POST /gate/sessions/{sessionKey}/answer", telemetry.WithHTTPRoute(gateHandler.HandleAnswer))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "brewtrack-api",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting api service", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// producerOrNil keeps a typed-nil *messaging.Producer from sneaking into
// the handler's interface field.
func producerOrNil(p *messaging.Producer) orders.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}
