package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/internal/config"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	redisClient *redis.Client
}

// startServices checks Redis and exposes the worker health endpoints
func startServices(cfg *config.Config) error {
	log.Info().
		Str("redis", cfg.Queue.RedisAddr).
		Int("concurrency", cfg.Queue.Concurrency).
		Msg("Fashion magazine worker starting")

	checker := &HealthChecker{
		redisClient: redis.NewClient(&redis.Options{Addr: cfg.Queue.RedisAddr}),
	}
	defer checker.redisClient.Close()

	if err := checker.checkAll(); err != nil {
		return err
	}

	go startHealthCheckServer(cfg.Queue.HealthPort)
	return nil
}

func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Redis Connection", h.checkRedis},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("Health check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("Health check passed")
	}
	return nil
}

func (h *HealthChecker) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return h.redisClient.Ping(ctx).Err()
}

func startHealthCheckServer(port string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthCheckHandler)
	mux.HandleFunc("/ready", readyCheckHandler)

	log.Info().Str("port", port).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}

func healthCheckHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"UP","service":"fashionmag-worker"}`))
}

func readyCheckHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"READY"}`))
}
