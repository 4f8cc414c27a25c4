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
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mwilczek/shortener/internal/config"
	"github.com/mwilczek/shortener/internal/consumer"
	"github.com/mwilczek/shortener/internal/db"
	"github.com/mwilczek/shortener/internal/metrics"
	"github.com/mwilczek/shortener/internal/models"
	"github.com/mwilczek/shortener/internal/repository"
	"github.com/mwilczek/shortener/internal/tracing"
	"github.com/mwilczek/shortener/internal/warm"
	"github.com/mwilczek/shortener/pkg/scheduler"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Worker struct {
	cfg          *config.WorkerConfig
	l            *slog.Logger
	tp           *sdktrace.TracerProvider
	pool         *pgxpool.Pool
	kafkaReader  *kafka.Reader
	kafkaWriter  *kafka.Writer
	consumer     *consumer.Consumer
	warmProducer *warm.Producer
	sched        *scheduler.Scheduler
	e            *echo.Echo
}

func NewWorker(ctx context.Context, cfg *config.WorkerConfig, l *slog.Logger) (*Worker, error) {
	w := &Worker{
		cfg: cfg,
		l:   l,
	}

	tp, err := tracing.NewTracerProvider(ctx, cfg.Tracing.CollectorAddr, "shortener-worker")
	if err != nil {
		return nil, err
	}
	w.tp = tp
	tracer := otel.Tracer("shortener-worker")

	pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, err
	}
	w.pool = pool

	// Migrations are idempotent, so both binaries may run them
	if err := db.Migrate(sql.OpenDB(stdlib.GetConnector(*pool.Config().ConnConfig))); err != nil {
		return nil, err
	}

	// One consumer group member, offsets committed manually after each
	// processed message
	w.kafkaReader = kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Kafka.Addr},
		GroupID: "click-ingestor",
		Topic:   models.TopicClicks,
	})

	// Shared writer for the dead-letter and warm topics
	w.kafkaWriter = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Kafka.Addr),
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}

	m := metrics.New()
	pgRepo := repository.NewPostgresRepo(pool)

	w.consumer = consumer.New(l, w.kafkaReader, pgRepo, w.kafkaWriter, m, tracer)

	w.sched, err = scheduler.New(cfg.Warm.Crontab)
	if err != nil {
		return nil, err
	}

	w.warmProducer = warm.NewProducer(
		l,
		pgRepo,
		w.kafkaWriter,
		cfg.Warm.Amount,
		time.Duration(cfg.Warm.Window)*time.Second,
		tracer,
	)

	// Metrics listener
	w.e = echo.New()
	w.e.Use(middleware.Logger())
	w.e.GET("/metrics", echoprometheus.NewHandler())

	return w, nil
}

func (w *Worker) Start(ctx context.Context, errChan chan<- error) {
	w.l.Info("starting click ingestor and metrics server")

	w.sched.Start()
	go w.consumer.Run(ctx)
	go w.warmProducer.Run(ctx, w.sched.Tick)

	if err := w.e.Start(w.cfg.HttpSrv.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChan <- err
	}
}

func (w *Worker) Stop(ctx context.Context) error {
	w.l.Info("[!] Shutting down...")

	var stopErr error

	if err := w.sched.Shutdown(); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	if err := w.kafkaReader.Close(); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	if err := w.kafkaWriter.Close(); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	if err := w.e.Shutdown(ctx); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	w.pool.Close()

	if err := w.tp.Shutdown(ctx); err != nil {
		stopErr = errors.Join(stopErr, err)
	}

	if stopErr != nil {
		return stopErr
	}

	w.l.Info("Stopped gracefully")
	return nil
}
