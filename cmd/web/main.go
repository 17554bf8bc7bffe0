package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"hongshengyuan.tech/web/internal/catalog"
	"hongshengyuan.tech/web/internal/config"
	"hongshengyuan.tech/web/internal/contact"
	"hongshengyuan.tech/web/internal/handlers"
	mw "hongshengyuan.tech/web/internal/middleware"
	"hongshengyuan.tech/web/internal/observability"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	var (
		addr     string
		tmplPath string
		pubPath  string
	)
	flag.StringVar(&addr, "addr", cfg.Server.Addr(), "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", cfg.Paths.TemplatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", cfg.Paths.PublicDir, "public assets directory")
	flag.Parse()
	cfg.Paths.TemplatesDir = tmplPath
	cfg.Paths.PublicDir = pubPath

	baseLogger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("web")

	handler, err := newRouter(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", addr),
			zap.Bool("dev_mode", cfg.DevMode),
			zap.String("base_url", cfg.Site.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("listen", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

// newRouter assembles middleware, health check, static assets and pages.
func newRouter(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	renderer, err := handlers.NewRenderer(cfg.Paths.TemplatesDir, cfg.DevMode)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	site, err := handlers.New(handlers.Deps{
		Site:     cfg.Site,
		Catalog:  cat,
		Contact:  contact.NewService(contact.ServiceDeps{Notifier: contact.LogNotifier{Logger: logger.Named("contact")}}),
		Renderer: renderer,
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that sets it.
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.Server.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assetsDir := filepath.Join(cfg.Paths.PublicDir, "assets")
	r.Handle("/assets/*", mw.Assets("/assets", os.DirFS(assetsDir)))

	site.Routes(r)
	return r, nil
}
