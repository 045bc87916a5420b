// cmd/fill-function/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"canara-formfill/internal/common/config"
	"canara-formfill/internal/common/logger"
	"canara-formfill/internal/common/observability"
	fillword "canara-formfill/internal/workers/form/fill-word"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting fill function...",
		zap.String("environment", cfg.App.Environment),
		zap.String("templatePath", cfg.Template.Path),
		zap.Bool("translatorEnabled", cfg.Translator.Enabled()),
	)

	if _, err := os.Stat(cfg.Template.Path); err != nil {
		// Requests will answer 500 until the template appears.
		zapLog.Warn("template not found at startup", zap.String("templatePath", cfg.Template.Path), zap.Error(err))
	}

	obs := observability.New("fill-function")
	defer obs.Shutdown()

	handler := fillword.Build(cfg, log, obs)

	mux := http.NewServeMux()
	mux.Handle("POST "+cfg.Server.Route, handler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(cfg.Template.Path); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "template missing")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLog.Info("Fill function listening",
			zap.String("addr", srv.Addr),
			zap.String("route", cfg.Server.Route),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during HTTP server shutdown", zap.Error(err))
	}

	zapLog.Info("Fill function stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
