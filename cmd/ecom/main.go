package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Johnpittz/ecom/api"
	"github.com/Johnpittz/ecom/config"
	"github.com/Johnpittz/ecom/detail"
	"github.com/Johnpittz/ecom/extract"
	"github.com/Johnpittz/ecom/fetch"
	"github.com/Johnpittz/ecom/proxy"
	"github.com/Johnpittz/ecom/retrieval"
	"github.com/Johnpittz/ecom/seo"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("ecom starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"use_proxy", cfg.Proxy.Enabled(),
		"seo_enabled", cfg.SEO.APIKey != "",
	)

	// ── 3. Wire components ──────────────────────────────────────────
	builder := proxy.NewBuilder(cfg.Proxy)
	fetcher := fetch.NewFetcher(cfg.Fetch)

	// Local rendering substitutes for the proxy's js_render mode when no
	// proxy is configured. Off by default.
	var renderer retrieval.Renderer
	if cfg.Fetch.LocalRender && !cfg.Proxy.Enabled() {
		lr := fetch.NewLocalRenderer()
		defer lr.Close()
		renderer = lr
		slog.Info("local render engine enabled")
	}

	apiStrategy := retrieval.NewAPIStrategy(fetcher, builder, cfg.Upstream)
	htmlStrategy := retrieval.NewHTMLStrategy(fetcher, renderer, builder, cfg.Upstream)
	pipeline := extract.NewPipeline()
	seoClient := seo.NewClient(nil, cfg.SEO)
	details := detail.NewService(fetcher, builder)

	// ── 4. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(apiStrategy, htmlStrategy, pipeline, seoClient, details, cfg)

	// ── 5. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 6. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("ecom stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
