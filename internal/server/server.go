// Package server exposes the consultation engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/livewell-ai/livewell/config"
	"github.com/livewell-ai/livewell/internal/agent/core"
	"github.com/livewell-ai/livewell/internal/telemetry"
	"github.com/livewell-ai/livewell/session"
	"github.com/livewell-ai/livewell/session/inmemory"
	"github.com/livewell-ai/livewell/session/postgres"
	sessionredis "github.com/livewell-ai/livewell/session/redis"
)

// Engine runs one consultation over a seeded state.
type Engine interface {
	Run(ctx context.Context, seed core.Update) (core.Snapshot, error)
}

// Server wires the consultation engine, result store and telemetry behind an
// HTTP API.
type Server struct {
	cfg    *config.Config
	engine Engine
	store  session.Store
	tele   *telemetry.Telemetry
	logger *log.Logger
}

// New assembles a server from already built dependencies.
func New(cfg *config.Config, engine Engine, store session.Store, tele *telemetry.Telemetry, logger *log.Logger) *Server {
	return &Server{cfg: cfg, engine: engine, store: store, tele: tele, logger: logger}
}

// Run builds the full dependency graph from config and serves until the
// listener fails.
func Run(cfg *config.Config) error {
	logger := log.New(log.Writer(), "[SERVER] ", log.LstdFlags)
	tele := telemetry.NewTelemetry(cfg.Telemetry)

	engine, err := core.NewEngine(cfg, log.New(log.Writer(), "[ADVISOR] ", log.LstdFlags), tele)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	store := NewStore(context.Background(), cfg, logger)
	srv := New(cfg, engine, store, tele, logger)

	logger.Printf("listening on %s", cfg.Server.Address)
	return srv.Echo().Start(cfg.Server.Address)
}

// NewStore picks the consultation store from config: Postgres when a DSN is
// configured, then Redis, then in-process memory.
func NewStore(ctx context.Context, cfg *config.Config, logger *log.Logger) session.Store {
	if dsn := cfg.Storage.Postgres.DSN(); dsn != "" {
		st, err := postgres.NewStore(ctx, dsn)
		if err == nil {
			logger.Printf("using postgres consultation store")
			return st
		}
		logger.Printf("postgres unavailable, falling back: %v", err)
	}
	if cfg.Storage.Redis.Host != "" {
		port := cfg.Storage.Redis.Port
		if port == "" {
			port = "6379"
		}
		addr := fmt.Sprintf("%s:%s", cfg.Storage.Redis.Host, port)
		st, err := sessionredis.NewStore(ctx, addr, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB, cfg.Storage.ResultTTL)
		if err == nil {
			logger.Printf("using redis consultation store at %s", addr)
			return st
		}
		logger.Printf("redis unavailable, falling back: %v", err)
	}
	logger.Printf("using in-memory consultation store")
	return inmemory.NewStore(cfg.Storage.ResultTTL)
}

// Echo builds the routed HTTP handler.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	httpLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		httpLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(s.tele.Handler()))

	api := e.Group("/api")
	api.POST("/consultations", s.createConsultation)
	api.GET("/consultations/:id", s.getConsultation)

	return e
}

type consultationRequest struct {
	Goal string `json:"goal"`
}

func (s *Server) createConsultation(c echo.Context) error {
	var req consultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Goal) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "goal is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.cfg.General.DefaultTimeout)
	defer cancel()

	result, err := s.engine.Run(ctx, core.Update{core.KeyUserGoal: req.Goal})
	if err != nil {
		return fmt.Errorf("consultation failed: %w", err)
	}

	consultation := session.Consultation{
		ID:            uuid.NewString(),
		Goal:          req.Goal,
		FitnessPlan:   result.Get(core.KeyFitnessPlan),
		NutritionPlan: result.Get(core.KeyNutritionPlan),
		HydrationPlan: result.Get(core.KeyHydrationPlan),
		Summary:       result.Get(core.KeySummary),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Save(ctx, consultation); err != nil {
		// The advisory result is already in hand; losing the record is not
		// worth failing the request over.
		s.logger.Printf("save consultation %s failed: %v", consultation.ID, err)
	}

	return c.JSON(http.StatusCreated, consultation)
}

func (s *Server) getConsultation(c echo.Context) error {
	id := c.Param("id")
	consultation, err := s.store.Get(c.Request().Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "consultation not found")
	}
	if err != nil {
		return fmt.Errorf("load consultation %s: %w", id, err)
	}
	return c.JSON(http.StatusOK, consultation)
}
