package main

import (
	"context"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/randevubot/randevubot/libs/config"
	"github.com/randevubot/randevubot/libs/db"
	"github.com/randevubot/randevubot/libs/grpcx"
	"github.com/randevubot/randevubot/libs/httpx"
	"github.com/randevubot/randevubot/libs/kafkax"
	otelx "github.com/randevubot/randevubot/libs/otel"
	"github.com/randevubot/randevubot/libs/runtime"
	"github.com/randevubot/randevubot/services/portal-service/internal/content"
	"github.com/randevubot/randevubot/services/portal-service/internal/events"
	"github.com/randevubot/randevubot/services/portal-service/internal/handlers"
	"github.com/randevubot/randevubot/services/portal-service/internal/metrics"
	"github.com/randevubot/randevubot/services/portal-service/internal/session"
	"github.com/randevubot/randevubot/services/portal-service/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	service := config.String("SERVICE_NAME", "portal-service")
	port, err := config.Port("PORT", "8080")
	if err != nil {
		panic(err)
	}
	grpcPort, err := config.Port("GRPC_PORT", "9090")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service, config.String("LOG_LEVEL", "info"))

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer runtime.Shutdown(logger, "otel", 5*time.Second, otelShutdown)
	}

	loc, err := time.LoadLocation(config.String("BUSINESS_TIMEZONE", "Europe/Istanbul"))
	if err != nil {
		panic(err)
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	maxConns, err := config.Int("DB_MAX_CONNS", 10)
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL, db.Options{MaxConns: int32(maxConns)})
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	checks := []runtime.ReadyCheck{{Name: "db", Check: db.ReadyCheck(pool)}}

	var rdb *redis.Client
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		redisDB, err := config.Int("REDIS_DB", 0)
		if err != nil {
			panic(err)
		}
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       redisDB,
		})
		defer func() { _ = rdb.Close() }()
		checks = append(checks, runtime.ReadyCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	sessionTTL, err := config.Duration("SESSION_TTL", 30*24*time.Hour)
	if err != nil {
		panic(err)
	}
	backend, closeBackend, check := openSessionBackend(rdb, sessionTTL, logger)
	defer closeBackend()
	if check.Check != nil {
		checks = append(checks, check)
	}
	secureCookie, err := config.Bool("SESSION_COOKIE_SECURE", false)
	if err != nil {
		panic(err)
	}
	sessions := session.NewManager(backend, session.CookieConfig{
		Name:   config.String("SESSION_COOKIE", "randevubot_session"),
		TTL:    sessionTTL,
		Secure: secureCookie,
	})

	var publisher events.Publisher = events.NewLogPublisher(logger)
	if brokers := config.String("KAFKA_BROKERS", ""); brokers != "" {
		kp := events.NewKafkaPublisher(kafkax.SplitBrokers(brokers), logger)
		defer func() { _ = kp.Close() }()
		publisher = kp
		checks = append(checks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	catalog, err := content.Load()
	if err != nil {
		panic(err)
	}
	logger.Info("page catalog loaded", "pages", catalog.Names())
	publishTimeout, err := config.Duration("PUBLISH_TIMEOUT", events.DefaultPublishTimeout)
	if err != nil {
		panic(err)
	}
	h := handlers.New(handlers.Config{
		Remote:    storage.NewRepository(pool),
		Publisher: publisher,
		Catalog:   catalog,
		Metrics:   metrics.NewPortal(reg),
		Logger:    logger,
		Location:  loc,
		Currency:  config.String("SERVICE_CURRENCY", "GBP"),

		PublishTimeout: publishTimeout,
	})

	healthServer := grpcx.NewHealthServer(service, logger, 10*time.Second, checks...)
	if err := healthServer.Start(ctx, grpcPort); err != nil {
		logger.Error("grpc health server failed", "err", err)
		panic(err)
	}

	mux := runtime.NewBaseMuxWithReady(checks...)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", handlers.Router(h, sessions))

	bodyLimit, err := config.Int("REQUEST_BODY_LIMIT_BYTES", 1<<20)
	if err != nil {
		panic(err)
	}
	requestTimeout, err := config.Duration("REQUEST_TIMEOUT_SECONDS", 10*time.Second)
	if err != nil {
		panic(err)
	}

	httpHandler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   config.List("CORS_ALLOWED_ORIGINS"),
			AllowCredentials: true,
			MaxAge:           10 * time.Minute,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithRecover(logger),
		httpx.WithBodyLimit(int64(bodyLimit)),
		httpx.WithTimeout(requestTimeout),
		rateLimit(rdb, logger),
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "portal")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	runtime.Shutdown(logger, "http server", 10*time.Second, srv.Shutdown)
}
