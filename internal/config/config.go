package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"id-photo-studio/internal/gemini"
	"id-photo-studio/internal/i18n"
)

const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

type Config struct {
	GeminiAPIKey          string
	GeminiBaseURL         string
	GeminiAPIVersion      string
	GeminiImageModel      string
	GeminiBackend         string
	GeminiSendAspectRatio bool

	TelegramToken string
	WebAddr       string
	DefaultLang   i18n.Lang

	LogLevel string
	Debug    bool

	PreferIPv4 bool

	MediaGroupDebounce time.Duration
	MaxConcurrent      int
	MaxUploadBytes     int64
	RequestTimeout     time.Duration
	HTTPTimeout        time.Duration
	SessionTTL         time.Duration
}

// ConfigError reports a missing or invalid setting. It is fatal at startup.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// Load reads the environment. GEMINI_API_KEY is always required.
func Load() (Config, error) {
	cfg := Config{
		GeminiBaseURL:         getEnv("GEMINI_BASE_URL", gemini.DefaultBaseURL),
		GeminiAPIVersion:      getEnv("GEMINI_API_VERSION", gemini.DefaultAPIVersion),
		GeminiImageModel:      getEnv("GEMINI_IMAGE_MODEL", gemini.DefaultImageModel),
		GeminiBackend:         strings.ToLower(getEnv("GEMINI_BACKEND", BackendREST)),
		GeminiSendAspectRatio: getEnvBool("GEMINI_SEND_ASPECT_RATIO", false),
		WebAddr:               getEnv("WEB_ADDR", ":8080"),
		DefaultLang:           i18n.Parse(getEnv("DEFAULT_LOCALE", "vi")),
		LogLevel:              strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Debug:                 getEnvBool("DEBUG", false),
		PreferIPv4:            getEnvBool("PREFER_IPV4", true),
		MediaGroupDebounce:    time.Duration(getEnvInt("MEDIA_GROUP_DEBOUNCE_MS", 1200)) * time.Millisecond,
		MaxConcurrent:         getEnvInt("MAX_CONCURRENT", 4),
		MaxUploadBytes:        int64(getEnvInt("MAX_UPLOAD_MB", 25)) << 20,
		RequestTimeout:        time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 180)) * time.Second,
		HTTPTimeout:           time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 180)) * time.Second,
		SessionTTL:            time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
	}

	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	cfg.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))

	if cfg.GeminiAPIKey == "" {
		return Config{}, &ConfigError{Key: "GEMINI_API_KEY", Reason: "is required"}
	}
	switch cfg.GeminiBackend {
	case BackendREST, BackendSDK:
	default:
		return Config{}, &ConfigError{Key: "GEMINI_BACKEND", Reason: fmt.Sprintf("unsupported value %q", cfg.GeminiBackend)}
	}

	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 25 << 20
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 180 * time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 180 * time.Second
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}

	return cfg, nil
}

// RequireTelegram is checked by the bot binary only.
func (c Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return &ConfigError{Key: "TELEGRAM_BOT_TOKEN", Reason: "is required"}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
