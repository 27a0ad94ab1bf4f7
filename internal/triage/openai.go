package triage

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIConfig configures the chat-completion classifier. BaseURL is only
// needed for compatible gateways and tests.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIClassifier asks a chat model for a JSON object.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

func NewOpenAIClassifier(cfg OpenAIConfig) (*OpenAIClassifier, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	occ := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		occ.BaseURL = cfg.BaseURL
	}
	return &OpenAIClassifier{
		client: openai.NewClientWithConfig(occ),
		model:  cfg.Model,
	}, nil
}

func (o *OpenAIClassifier) Name() string { return ProviderOpenAI }

func (o *OpenAIClassifier) Classify(ctx context.Context, req Request) (ClassificationResponse, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a clinical triage assistant. Reply with JSON only."},
			{Role: openai.ChatMessageRoleUser, Content: BuildInstruction(req)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return ClassificationResponse{}, transportError(fmt.Errorf("openai: %w", err))
	}
	if len(resp.Choices) == 0 {
		return ClassificationResponse{}, shapeError("openai: response has no choices")
	}
	return DecodeResponse([]byte(resp.Choices[0].Message.Content))
}
