package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mwilczek/shortener/internal/config"
	"github.com/mwilczek/shortener/internal/db"
	"github.com/mwilczek/shortener/internal/models"
	"github.com/mwilczek/shortener/internal/producer"
	"github.com/mwilczek/shortener/internal/repository"
	"github.com/mwilczek/shortener/internal/service"
	"github.com/mwilczek/shortener/internal/tracing"
	handler "github.com/mwilczek/shortener/internal/transport/http"
	"github.com/mwilczek/shortener/internal/warm"
	"github.com/segmentio/kafka-go"
	"github.com/valkey-io/valkey-go"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const publishTimeout = 2 * time.Second

type API struct {
	cfg          *config.APIConfig
	l            *slog.Logger
	tp           *sdktrace.TracerProvider
	pool         *pgxpool.Pool
	valkeyClient valkey.Client
	kafkaWriter  *kafka.Writer
	warmReader   *kafka.Reader
	warmConsumer *warm.Consumer
	e            *echo.Echo
}

func NewAPI(ctx context.Context, cfg *config.APIConfig, l *slog.Logger) (*API, error) {
	a := &API{
		cfg: cfg,
		l:   l,
	}

	tp, err := tracing.NewTracerProvider(ctx, cfg.Tracing.CollectorAddr, "shortener-api")
	if err != nil {
		return nil, err
	}
	a.tp = tp
	tracer := otel.Tracer("shortener-api")

	// Init db connection
	pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, err
	}
	a.pool = pool

	// Migrate db
	if err := db.Migrate(sql.OpenDB(stdlib.GetConnector(*pool.Config().ConnConfig))); err != nil {
		return nil, err
	}

	a.valkeyClient, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{cfg.Valkey.Addr},
		Password:    cfg.Valkey.Password,
	})
	if err != nil {
		return nil, err
	}

	// Durable click publish: the broker acks only after the write is
	// replicated
	a.kafkaWriter = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Kafka.Addr),
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}

	a.warmReader = kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Kafka.Addr},
		GroupID: "api-cache-warm",
		Topic:   models.TopicTopClicked,
	})

	pgRepo := repository.NewPostgresRepo(pool)
	cacheRepo := repository.NewValkeyRepo(a.valkeyClient)
	clickProducer := producer.New(l, a.kafkaWriter, tracer, publishTimeout)

	svc := service.New(
		pgRepo,
		cacheRepo,
		clickProducer,
		l,
		tracer,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
	)
	auth := service.NewAuth(pgRepo, l, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLSeconds)*time.Second)

	a.warmConsumer = warm.NewConsumer(l, a.warmReader, cacheRepo)

	h := handler.NewHandler(svc, auth, cfg.Server.PublicHost)

	a.e = echo.New()
	a.e.Use(middleware.Logger())
	a.e.Use(middleware.Recover())
	a.e.Use(middleware.CORS())

	a.e.GET("/healthz", h.Health)
	a.e.GET("/:code", h.Redirect)

	api := a.e.Group("/api/v1")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authed := api.Group("", handler.JWTAuth(auth))
	authed.POST("/url", h.Shorten)
	authed.GET("/my-urls", h.MyURLs)
	authed.GET("/url/:code/stats", h.CodeStats)

	return a, nil
}

func (a *API) Start(ctx context.Context, errChan chan<- error) {
	a.l.Info("starting server", slog.String("addr", a.cfg.Server.Addr))

	go a.warmConsumer.ReadMessages(ctx)

	if err := a.e.Start(a.cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChan <- err
	}
}

func (a *API) Stop(ctx context.Context) error {
	a.l.Info("[!] Shutting down...")

	var stopErr error

	if err := a.e.Shutdown(ctx); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	if err := a.kafkaWriter.Close(); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	if err := a.warmReader.Close(); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	a.valkeyClient.Close()
	a.pool.Close()

	if err := a.tp.Shutdown(ctx); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	if stopErr != nil {
		return stopErr
	}

	a.l.Info("Stopped gracefully")
	return nil
}
