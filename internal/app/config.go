package app

import (
	"github.com/agoralabs/agora-backend/internal/platform/envutil"
	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	Environment string
	Version     string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:        envutil.GetEnv("PORT", "8080", log),
		Environment: envutil.GetEnv("APP_ENV", "development", log),
		Version:     envutil.GetEnv("APP_VERSION", "dev", log),
	}
}
