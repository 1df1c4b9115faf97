// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting for the service. Values come from
// environment variables with the defaults below; API keys default to
// empty, which marks the corresponding upstream as unavailable.
type Config struct {
	Addr string

	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModel   string

	RasterScanURL    string
	RasterScanAPIKey string

	ThorDataURL    string
	ThorDataAPIKey string

	ImgBBURL    string
	ImgBBAPIKey string

	OverlayAlpha    int
	MaxUploadBytes  int64
	UpstreamTimeout time.Duration
	LogLevel        string
}

// Load reads the environment and returns the resulting Config.
func Load() *Config {
	return &Config{
		Addr: ":" + getEnv("PORT", "8000"),

		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		RasterScanURL:    getEnv("RASTERSCAN_URL", "https://backend.rasterscan.com/raster-to-vector-base64"),
		RasterScanAPIKey: getEnv("RASTERSCAN_API_KEY", ""),

		ThorDataURL:    getEnv("THORDATA_URL", "https://scraperapi.thordata.com/request"),
		ThorDataAPIKey: getEnv("THORDATA_API_KEY", ""),

		ImgBBURL:    getEnv("IMGBB_URL", "https://api.imgbb.com/1/upload"),
		ImgBBAPIKey: getEnv("IMGBB_API_KEY", ""),

		OverlayAlpha:    getEnvInt("OVERLAY_ALPHA", 140),
		MaxUploadBytes:  getEnvInt64("MAX_UPLOAD_BYTES", 20*1024*1024),
		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 120)) * time.Second,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}
