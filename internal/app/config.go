package app

import (
	"errors"
	"strings"
	"time"

	"github.com/yungbote/studyplanner-backend/internal/platform/envutil"
	"github.com/yungbote/studyplanner-backend/internal/platform/gemini"
)

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY (or API_KEY) is not set")

type Config struct {
	LogMode string
	Port    string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	AllowedOrigins    []string
	GenerationTimeout time.Duration
	MaxRequestBytes   int64
	ShutdownTimeout   time.Duration

	MetricsAddr  string
	QuizBankPath string
}

func LoadConfig() Config {
	return Config{
		LogMode:           envutil.String("LOG_MODE", "development"),
		Port:              envutil.String("PORT", "5001"),
		GeminiAPIKey:      envutil.First("GEMINI_API_KEY", "API_KEY"),
		GeminiModel:       envutil.String("GEMINI_MODEL", gemini.DefaultModel),
		GeminiBaseURL:     envutil.String("GEMINI_BASE_URL", ""),
		AllowedOrigins:    envutil.List("CORS_ALLOWED_ORIGINS", nil),
		GenerationTimeout: envutil.Seconds("GENERATION_TIMEOUT_SECONDS", 90*time.Second),
		MaxRequestBytes:   envutil.Int64("MAX_REQUEST_BYTES", 1<<20),
		ShutdownTimeout:   envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		MetricsAddr:       envutil.String("METRICS_ADDR", ":9090"),
		QuizBankPath:      envutil.String("QUIZ_BANK_PATH", ""),
	}
}

// Validate reports configuration the process cannot serve without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func (c Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}
