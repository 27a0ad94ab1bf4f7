package triage

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Provider names accepted by NewClassifier.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderRules  = "rules"
)

// Classifier sends one symptom description to a classification service and
// returns its structured answer. Implementations must not mutate shared state.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, req Request) (ClassificationResponse, error)
}

// ProviderConfig selects and configures a Classifier.
type ProviderConfig struct {
	Provider       string
	GeminiAPIKey   string
	GeminiModel    string
	GeminiEndpoint string
	OpenAIAPIKey   string
	OpenAIModel    string
	OpenAIBaseURL  string
	HTTPTimeout    time.Duration
}

// NewClassifier builds the classifier named by cfg.Provider.
func NewClassifier(cfg ProviderConfig) (Classifier, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiClassifier(GeminiConfig{
			APIKey:   cfg.GeminiAPIKey,
			Model:    cfg.GeminiModel,
			Endpoint: cfg.GeminiEndpoint,
			Client:   &http.Client{Timeout: cfg.HTTPTimeout},
		})
	case ProviderOpenAI:
		return NewOpenAIClassifier(OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
	case ProviderRules:
		return NewRulesClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Provider)
	}
}
