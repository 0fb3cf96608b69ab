package app

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	developmentAPIBase = "http://localhost:5000"
	productionAPIBase  = "https://api.trade-admin.app"
)

// Config holds runtime configuration for the console.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"60s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"45s"`
	RateLimitPerMin   int           `envconfig:"RATE_LIMIT_PER_MIN" default:"600"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	// APIBaseURL points at the backend serving /api/<resource>. Empty means
	// "derive from APP_ENV", see APIBase.
	APIBaseURL string        `envconfig:"API_BASE_URL"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"20s"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	PDFRenderer        string        `envconfig:"PDF_RENDERER" default:"maroto"`
	GotenbergURL       string        `envconfig:"GOTENBERG_URL" default:"http://127.0.0.1:3000"`
	LogoURL            string        `envconfig:"LOGO_URL"`
	DefaultLanguage    string        `envconfig:"DEFAULT_LANGUAGE" default:"en"`
	OfferLinesPageSize int           `envconfig:"OFFER_LINES_PAGE_SIZE" default:"200"`
	PreviewTTL         time.Duration `envconfig:"PREVIEW_TTL" default:"30m"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must be provided")
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	switch cfg.PDFRenderer {
	case "maroto", "gotenberg":
	default:
		return nil, errors.New("PDF_RENDERER must be maroto or gotenberg")
	}
	if cfg.OfferLinesPageSize <= 0 {
		return nil, errors.New("OFFER_LINES_PAGE_SIZE must be positive")
	}
	return &cfg, nil
}

// IsProduction returns true when the console runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// APIBase resolves the backend base URL once, at startup. The result is
// handed to every client; nothing else inspects the environment.
func (c *Config) APIBase() string {
	if c == nil {
		return developmentAPIBase
	}
	if base := strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/"); base != "" {
		return base
	}
	if c.AppEnv == "development" || c.AppEnv == "" {
		return developmentAPIBase
	}
	return productionAPIBase
}
