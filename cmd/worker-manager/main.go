// cmd/worker-manager/main.go
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

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"marketplace-workers/internal/common/camunda"
	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/common/database"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/observability"
	"marketplace-workers/internal/matching"
	"marketplace-workers/internal/providers"
	"marketplace-workers/pkg/registry"

	mp "marketplace-workers/internal/workers/matching/match-providers"
	sp "marketplace-workers/internal/workers/matching/score-provider"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: cfg.App.Name,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	log.Info("Starting worker manager...", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"source":      cfg.Matching.Source,
	})

	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Scoring engine ---
	engine, err := matching.NewEngine(cfg.Scoring.ToScoringConfig())
	if err != nil {
		zapLog.Fatal("scoring config rejected", zap.Error(err))
	}

	// --- Zeebe ---
	zeebeClient, err := camunda.Connect(ctx, cfg.Camunda, camunda.DefaultRetryConfig, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	log.Info("Zeebe client connected successfully", map[string]interface{}{
		"broker": cfg.Camunda.BrokerAddress,
	})

	// --- Provider stores ---
	var conns *database.Connections
	storeRetry := camunda.RetryConfig{MaxRetries: 15, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}
	err = camunda.RetryWithBackoff(ctx, storeRetry, log, "provider store connection", func(ctx context.Context) error {
		var err error
		conns, err = database.Open(ctx, cfg)
		return err
	})
	if err != nil {
		zapLog.Fatal("provider store failed after retries", zap.Error(err))
	}
	defer conns.Close()

	source, err := providers.New(cfg.Matching, conns, log)
	if err != nil {
		zapLog.Fatal("provider source init failed", zap.Error(err))
	}
	if source == nil {
		log.Warn("No provider source configured, jobs must carry their own providers", nil)
	}

	// --- Workers ---
	var workers []*camunda.Worker
	register := func(taskType string, handler camunda.JobHandler) {
		if w := camunda.Start(zeebeClient, taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, log); w != nil {
			workers = append(workers, w)
		}
	}

	mpCfg, spCfg := mp.LoadConfig(cfg), sp.LoadConfig(cfg)
	register(mp.TaskType, mp.NewHandler(mpCfg, engine, source, obs, log))
	register(sp.TaskType, sp.NewHandler(spCfg, engine, log))

	activities := registry.New(cfg.App.Version, mp.Activity(mpCfg), sp.Activity(spCfg))
	if err := activities.Validate(); err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}

	log.Info("Workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           newMux(zeebeClient, conns, activities),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err})
	}
	if err := zeebeClient.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down observability", map[string]interface{}{"error": err})
	}

	log.Info("Worker manager stopped gracefully", nil)
}

func newMux(zeebeClient zbc.Client, conns *database.Connections, activities *registry.ActivityRegistry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", "")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := conns.Ping(ctx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not_ready", err.Error())
			return
		}
		if err := camunda.HealthCheck(ctx, zeebeClient); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not_ready", err.Error())
			return
		}
		writeStatus(w, http.StatusOK, "ready", "")
	})
	mux.HandleFunc("/activities", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(activities)
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status, reason string) {
	body := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}
	if reason != "" {
		body["reason"] = reason
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
