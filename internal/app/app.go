package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
	"github.com/gokatarajesh/trivia-api/internal/server"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool   *pgxpool.Pool
	sqlite *sqlite.Store
	redis  *redis.Client
	hub    *ws.Hub
	http   *http.Server
	svc    *question.Service
}

// New bootstraps the logger, the configured store, the optional Redis cache
// and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting application bootstrap")

	a := &Application{cfg: cfg, logger: logger}

	var (
		store      question.Store
		categories question.CategoryStore
		deps       []server.Pinger
	)

	switch cfg.Store.Driver {
	case config.DriverSQLite:
		st, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.sqlite = st
		store, categories = st, st
	default:
		pgCfg, err := pgxpool.ParseConfig(cfg.Postgres.ConnString())
		if err != nil {
			return nil, fmt.Errorf("parse postgres config: %w", err)
		}
		pgCfg.MaxConns = int32(cfg.Postgres.MaxConns)
		pool, err := pgxpool.NewWithConfig(ctx, pgCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		store = repository.NewQuestionRepository(pool)
		categories = repository.NewCategoryRepository(pool)
	}

	var cache question.CategoryCache
	if cfg.Redis.Enabled() {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		c := question.NewCache(a.redis, cfg.Cache.CategoryTTL)
		cache = c
		deps = append(deps, c)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; category cache disabled")
	}

	questionSvc := question.NewService(store, categories, cache, question.ServiceOptions{}, logger)
	deps = append([]server.Pinger{questionSvc}, deps...)
	a.svc = questionSvc
	a.hub = ws.NewHub(logger)

	quizSocket := question.NewQuizSocket(questionSvc, a.hub, ws.NewUpgrader(cfg.CORS.AllowedOrigins), logger)
	a.http = server.NewHTTPServer(cfg, logger, server.Handlers{
		Questions: question.NewHTTPHandler(questionSvc, logger),
		QuizWS:    quizSocket.HandleWebSocket,
	}, deps...)

	return a, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	a.hub.CloseAll()
	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

// Seed imports amount questions from the Open Trivia DB into the configured
// store and releases its connections.
func (a *Application) Seed(ctx context.Context, amount int, difficulty string) (int, error) {
	defer a.close()
	im := external.NewImporter(external.NewOpenTDBClient("", nil), a.svc, a.logger)
	return im.Import(ctx, amount, difficulty)
}

func (a *Application) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			a.logger.Error().Err(err).Msg("sqlite close error")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}
