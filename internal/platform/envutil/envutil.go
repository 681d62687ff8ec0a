package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/agoralabs/agora-backend/internal/platform/logger"
)

func GetEnv(key, fallback string, log *logger.Logger) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		if log != nil {
			log.Debug("env var not set, using fallback", "key", key, "fallback", fallback)
		}
		return fallback
	}
	return val
}

func GetEnvAsInt(key string, fallback int, log *logger.Logger) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		if log != nil {
			log.Warn("env var not an int, using fallback", "key", key, "value", val, "fallback", fallback)
		}
		return fallback
	}
	return n
}

// GetEnvAsInts parses a comma-separated integer list, e.g. "10,50,100,500".
func GetEnvAsInts(key string, fallback []int, log *logger.Logger) []int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			if log != nil {
				log.Warn("env var not an int list, using fallback", "key", key, "value", val)
			}
			return fallback
		}
		out = append(out, n)
	}
	return out
}
