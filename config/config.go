package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerPort         string
	DataBaseURL        string
	DataRefreshMinutes string
	FetchTimeoutSecs   string
	LogLevel           string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		logrus.Warn("Error loading .env file, using system environment variables")
	}

	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DataBaseURL:        getEnv("DATA_BASE_URL", "http://localhost:9000"),
		DataRefreshMinutes: getEnv("DATA_REFRESH_MINUTES", "60"),
		FetchTimeoutSecs:   getEnv("FETCH_TIMEOUT_SECONDS", "15"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

// GetRefreshInterval returns the dataset refresh interval from environment or default.
func (c *Config) GetRefreshInterval() time.Duration {
	minutes, err := strconv.Atoi(c.DataRefreshMinutes)
	if err != nil || minutes <= 0 {
		logrus.Warnf("Invalid DATA_REFRESH_MINUTES value: %s, using default 60 minutes", c.DataRefreshMinutes)
		return 60 * time.Minute
	}
	return time.Duration(minutes) * time.Minute
}

// GetFetchTimeout returns the per-request fetch timeout from environment or default.
func (c *Config) GetFetchTimeout() time.Duration {
	secs, err := strconv.Atoi(c.FetchTimeoutSecs)
	if err != nil || secs <= 0 {
		logrus.Warnf("Invalid FETCH_TIMEOUT_SECONDS value: %s, using default 15 seconds", c.FetchTimeoutSecs)
		return 15 * time.Second
	}
	return time.Duration(secs) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
