package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr       string
	CORSOrigin string
	LogLevel   string

	// Repository-hosting API
	GitHubToken   string
	GitHubBaseURL string

	// Commit-analysis bridge
	AnalyzerCommand string
	AnalyzerScript  string
	AnalyzerTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:       getenv("API_ADDR", ":8788"),
		CORSOrigin: getenv("PULSEBOARD_CORS_ORIGIN", "*"),
		LogLevel:   getenv("PULSEBOARD_LOG_LEVEL", "info"),

		GitHubToken:   getenv("GITHUB_TOKEN", ""),
		GitHubBaseURL: getenv("GITHUB_BASE_URL", ""),

		AnalyzerCommand: getenv("ANALYZER_COMMAND", "python3"),
		AnalyzerScript:  getenv("ANALYZER_SCRIPT", "./scripts/commit_analyzer.py"),
		AnalyzerTimeout: time.Duration(getenvInt("ANALYZER_TIMEOUT_SECONDS", 120)) * time.Second,
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
