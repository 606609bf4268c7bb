// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Twitter     TwitterConfig
	Cloud       CloudConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
	CSRFSecret      string
}

// TwitterConfig holds Twitter API credentials
type TwitterConfig struct {
	BearerToken  string
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// CloudConfig holds word-cloud rendering configuration
type CloudConfig struct {
	CanvasWidth   int
	CanvasHeight  int
	MinFontSize   float64
	MaxFontSize   float64
	Padding       float64
	MaxSteps      int
	TrendLimit    int
	StoreTTL      time.Duration
	SweepInterval time.Duration
	PopupTimeout  time.Duration
}

// RateLimitConfig holds per-IP request limits
type RateLimitConfig struct {
	GlobalPerMinute int
	TweetsPerMinute int
}

// LogConfig holds rotating-file log configuration
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// DefaultLocation is rendered when no search has been submitted yet.
const DefaultLocation = "USA"

// supportedLanguages maps language codes to display names for the selector.
var supportedLanguages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ja": "Japanese",
	"ko": "Korean",
	"ar": "Arabic",
	"hi": "Hindi",
	"zh": "Chinese",
	"ru": "Russian",
}

// languageOrder keeps the selector stable.
var languageOrder = []string{"en", "es", "fr", "de", "it", "pt", "ja", "ko", "ar", "hi", "zh", "ru"}

// Language is one selectable language.
type Language struct {
	Code string
	Name string
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, 0, len(languageOrder))
	for _, code := range languageOrder {
		out = append(out, Language{Code: code, Name: supportedLanguages[code]})
	}
	return out
}

// NormalizeLanguage returns lang when supported, otherwise "en".
func NormalizeLanguage(lang string) string {
	if _, ok := supportedLanguages[lang]; ok {
		return lang
	}
	return "en"
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
			CSRFSecret:      getEnv("SECRET_KEY", "development-secret-key-32-bytes!"),
		},
		Twitter: TwitterConfig{
			BearerToken:  getEnv("TWITTER_BEARER_TOKEN", ""),
			APIKey:       getEnv("TWITTER_API_KEY", ""),
			APISecret:    getEnv("TWITTER_API_SECRET", ""),
			AccessToken:  getEnv("TWITTER_ACCESS_TOKEN", ""),
			AccessSecret: getEnv("TWITTER_ACCESS_TOKEN_SECRET", ""),
		},
		Cloud: CloudConfig{
			CanvasWidth:   getEnvAsInt("CLOUD_CANVAS_WIDTH", 800),
			CanvasHeight:  getEnvAsInt("CLOUD_CANVAS_HEIGHT", 600),
			MinFontSize:   getEnvAsFloat("CLOUD_MIN_FONT_SIZE", 12),
			MaxFontSize:   getEnvAsFloat("CLOUD_MAX_FONT_SIZE", 64),
			Padding:       getEnvAsFloat("CLOUD_PADDING", 2),
			MaxSteps:      getEnvAsInt("CLOUD_MAX_STEPS", 600),
			TrendLimit:    getEnvAsInt("CLOUD_TREND_LIMIT", 20),
			StoreTTL:      getEnvAsDuration("CLOUD_STORE_TTL", 1*time.Hour),
			SweepInterval: getEnvAsDuration("CLOUD_SWEEP_INTERVAL", 10*time.Minute),
			PopupTimeout:  getEnvAsDuration("CLOUD_POPUP_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			GlobalPerMinute: getEnvAsInt("RATE_LIMIT_GLOBAL_PER_MINUTE", 60),
			TweetsPerMinute: getEnvAsInt("RATE_LIMIT_TWEETS_PER_MINUTE", 30),
		},
		Log: LogConfig{
			File:       getEnv("LOG_FILE", "app.log"),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 5),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Server.CSRFSecret == "development-secret-key-32-bytes!" && config.Environment != "development" {
		return fmt.Errorf("SECRET_KEY must be set in non-development environments")
	}
	if config.Cloud.CanvasWidth <= 0 || config.Cloud.CanvasHeight <= 0 {
		return fmt.Errorf("canvas dimensions must be positive")
	}
	if config.Cloud.MaxFontSize < config.Cloud.MinFontSize {
		return fmt.Errorf("CLOUD_MAX_FONT_SIZE must be >= CLOUD_MIN_FONT_SIZE")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
