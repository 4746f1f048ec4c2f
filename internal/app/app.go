package app

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	internalhttp "github.com/yungbote/studyscout-backend/internal/http"
	httpH "github.com/yungbote/studyscout-backend/internal/http/handlers"
	"github.com/yungbote/studyscout-backend/internal/observability"
	"github.com/yungbote/studyscout-backend/internal/platform/atlas"
	"github.com/yungbote/studyscout-backend/internal/platform/logger"
	"github.com/yungbote/studyscout-backend/internal/platform/openai"
	"github.com/yungbote/studyscout-backend/internal/retrieval"
	"github.com/yungbote/studyscout-backend/internal/taxonomy"
)

type App struct {
	Log    *logger.Logger
	Cfg    Config
	Router *gin.Engine
	Engine *retrieval.Engine
	Store  atlas.Store

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Version:     cfg.ServiceVersion,
	})

	table, err := taxonomy.LoadFile(cfg.CategoryMappingPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	log.Info("Taxonomy loaded",
		"path", cfg.CategoryMappingPath,
		"subjects", table.Subjects(),
	)

	embedder, err := openai.NewClient(log, cfg.OpenAI)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init openai client: %w", err)
	}

	store, err := atlas.NewStore(ctx, log, cfg.Atlas)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init atlas store: %w", err)
	}

	var opts []retrieval.Option
	if cfg.NumCandidates > 0 {
		opts = append(opts, retrieval.WithNumCandidates(cfg.NumCandidates))
	}
	engine, err := retrieval.NewEngine(log, table, embedder, store, opts...)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init retrieval engine: %w", err)
	}

	router := internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:             log,
		ResourceHandler: httpH.NewResourceHandler(log, engine),
		HealthHandler:   httpH.NewHealthHandler(log, store),
		ServiceName:     serviceName,
		AllowOrigins:    cfg.AllowOrigins,
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Router:       router,
		Engine:       engine,
		Store:        store,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &nethttp.Server{
		Addr:    ":" + a.Cfg.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Log.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) Close() {
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.Store != nil {
		if err := a.Store.Disconnect(ctx); err != nil {
			a.Log.Warn("Atlas disconnect failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
