package server

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Pinger is a dependency that can report its health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers bundles the domain handlers mounted by the server.
type Handlers struct {
	Questions *question.HTTPHandler
	QuizWS    http.HandlerFunc
}

// NewHTTPServer wires health, metrics and the trivia routes, wrapped in
// request logging and CORS.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, handlers Handlers, deps ...Pinger) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewHandler(cfg, logger, handlers, deps...),
	}
}

// NewHandler builds the root handler without binding it to a listener.
func NewHandler(cfg *config.App, logger zerolog.Logger, handlers Handlers, deps ...Pinger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), deps); err != nil {
			l := logging.FromContextOr(r.Context(), logger)
			l.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, httperrors.MsgUpstreamError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if handlers.Questions != nil {
		handlers.Questions.Register(mux)
	}
	if handlers.QuizWS != nil {
		mux.HandleFunc("/ws/quizzes", handlers.QuizWS)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	})

	return logging.Middleware(logger)(c.Handler(mux))
}

func pingDependencies(ctx context.Context, deps []Pinger) error {
	for _, dep := range deps {
		if err := dep.Ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
