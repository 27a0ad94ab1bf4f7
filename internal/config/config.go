package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/akmtwell/telehealth/internal/platform/i18n"
)

const (
	ProviderRules  = "rules"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Port            string        `mapstructure:"PORT"`
	Env             string        `mapstructure:"ENV"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS    float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	BodyLimit       string        `mapstructure:"BODY_LIMIT"`
	DefaultLanguage string        `mapstructure:"DEFAULT_LANGUAGE"`
	SessionTTL      time.Duration `mapstructure:"SESSION_TTL"`
	SweepInterval   time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL"`

	ClassifierProvider  string        `mapstructure:"CLASSIFIER_PROVIDER"`
	ClassifyTimeout     time.Duration `mapstructure:"CLASSIFY_TIMEOUT"`
	GeminiAPIKey        string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel         string        `mapstructure:"GEMINI_MODEL"`
	GeminiEndpoint      string        `mapstructure:"GEMINI_ENDPOINT"`
	OpenAIAPIKey        string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel         string        `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL       string        `mapstructure:"OPENAI_BASE_URL"`
	TriageStrictUrgency bool          `mapstructure:"TRIAGE_STRICT_URGENCY"`

	BPAlertThreshold int    `mapstructure:"BP_ALERT_THRESHOLD"`
	OncallDoctorID   string `mapstructure:"ONCALL_DOCTOR_ID"`
}

var keys = []string{
	"PORT", "ENV", "CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"REQUEST_TIMEOUT", "BODY_LIMIT", "DEFAULT_LANGUAGE", "SESSION_TTL",
	"SESSION_SWEEP_INTERVAL", "CLASSIFIER_PROVIDER", "CLASSIFY_TIMEOUT",
	"GEMINI_MODEL", "GEMINI_ENDPOINT", "OPENAI_API_KEY", "OPENAI_MODEL",
	"OPENAI_BASE_URL", "TRIAGE_STRICT_URGENCY", "BP_ALERT_THRESHOLD",
	"ONCALL_DOCTOR_ID",
}

// Load reads configuration from the environment and an optional .env file
// in the working directory.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("REQUEST_TIMEOUT", "60s")
	v.SetDefault("BODY_LIMIT", "64K")
	v.SetDefault("DEFAULT_LANGUAGE", string(i18n.DefaultLanguage))
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "5m")
	v.SetDefault("CLASSIFIER_PROVIDER", "")
	v.SetDefault("CLASSIFY_TIMEOUT", "30s")
	v.SetDefault("TRIAGE_STRICT_URGENCY", true)
	v.SetDefault("BP_ALERT_THRESHOLD", 130)
	v.SetDefault("ONCALL_DOCTOR_ID", "d1")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	// API_KEY is the name the browser build used for the Gemini key.
	_ = v.BindEnv("GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY")

	// The .env file is optional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	cfg.ClassifierProvider = strings.ToLower(strings.TrimSpace(cfg.ClassifierProvider))
	if cfg.ClassifierProvider == "" {
		cfg.ClassifierProvider = ProviderGemini
		if cfg.IsDev() {
			cfg.ClassifierProvider = ProviderRules
		}
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Language returns DEFAULT_LANGUAGE as a catalog language.
func (c *Config) Language() i18n.Language {
	lang, err := i18n.ParseLanguage(c.DefaultLanguage)
	if err != nil {
		return i18n.DefaultLanguage
	}
	return lang
}

// Validate checks that the configuration is usable. Hosted classifiers need
// their API key; the rules classifier needs nothing.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := i18n.ParseLanguage(c.DefaultLanguage); err != nil {
		return fmt.Errorf("DEFAULT_LANGUAGE: %w", err)
	}

	switch c.ClassifierProvider {
	case ProviderRules:
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY (or API_KEY) is required when CLASSIFIER_PROVIDER is %q", ProviderGemini)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when CLASSIFIER_PROVIDER is %q", ProviderOpenAI)
		}
	default:
		return fmt.Errorf("CLASSIFIER_PROVIDER must be %q, %q, or %q, got %q",
			ProviderRules, ProviderGemini, ProviderOpenAI, c.ClassifierProvider)
	}

	if c.ClassifyTimeout <= 0 {
		return fmt.Errorf("CLASSIFY_TIMEOUT must be positive")
	}
	if c.RequestTimeout > 0 && c.RequestTimeout <= c.ClassifyTimeout {
		return fmt.Errorf("REQUEST_TIMEOUT (%s) must exceed CLASSIFY_TIMEOUT (%s)", c.RequestTimeout, c.ClassifyTimeout)
	}
	if c.SessionTTL <= 0 || c.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_TTL and SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.BPAlertThreshold <= 0 {
		return fmt.Errorf("BP_ALERT_THRESHOLD must be positive")
	}
	if c.OncallDoctorID == "" {
		return fmt.Errorf("ONCALL_DOCTOR_ID is required")
	}
	return nil
}
