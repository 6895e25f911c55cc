package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/pkg/container"
	"fashionmag-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}
	defer c.Cleanup()

	cfg := c.Config
	handlers := initializeHandlers(c)
	srv := setupAsynqServer(cfg, handlers)
	scheduler := setupScheduler(cfg)

	if err := startServices(cfg); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("[Shutdown] Gracefully stopping")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("[Shutdown] Stopped")
}
