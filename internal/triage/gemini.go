package triage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel      = "gemini-3-flash-preview"
	defaultGeminiAPIVersion = "v1beta"
)

// GeminiConfig configures the Gemini API client. Endpoint overrides the
// SDK's base URL and is mostly useful for tests and proxies.
type GeminiConfig struct {
	APIKey   string
	Model    string
	Endpoint string
	Client   *http.Client
}

// GeminiClassifier calls generateContent with a JSON response schema.
type GeminiClassifier struct {
	model  string
	models *genai.Models
}

// NewGeminiClassifier validates cfg, fills defaults and builds the SDK client.
func NewGeminiClassifier(cfg GeminiConfig) (*GeminiClassifier, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.Client,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.Endpoint,
			APIVersion: defaultGeminiAPIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &GeminiClassifier{model: cfg.Model, models: client.Models}, nil
}

func (g *GeminiClassifier) Name() string { return ProviderGemini }

// Classify sends a single generateContent request.
func (g *GeminiClassifier) Classify(ctx context.Context, req Request) (ClassificationResponse, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(BuildInstruction(req)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
	})
	if err != nil {
		// The SDK does not always wrap the context error, so check it first.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ClassificationResponse{}, transportError(fmt.Errorf("gemini: %w (%v)", ctxErr, err))
		}
		return ClassificationResponse{}, transportError(fmt.Errorf("gemini: %w", err))
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return ClassificationResponse{}, shapeError("gemini: prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ClassificationResponse{}, shapeError("gemini: response has no candidates")
	}

	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			text.WriteString(p.Text)
		}
	}
	return DecodeResponse([]byte(text.String()))
}
