package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"fashionmag-backend/pkg/logger"
)

func main() {
	// Load .env in development; production uses real environment variables
	envErr := godotenv.Load()

	env := getEnv("APP_ENV", "development")
	logger.Init(env, getEnv("LOG_LEVEL", "info"))

	if envErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
