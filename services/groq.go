package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const defaultGroqEndpoint = "https://api.groq.com/openai/v1"

// GroqClient Groq兼容OpenAI协议，直接复用openai客户端指向Groq端点
type GroqClient struct {
	Chat llms.Model
}

func NewGroqClient(apiKey, apiEndpoint string) (*GroqClient, error) {
	if apiEndpoint == "" {
		apiEndpoint = defaultGroqEndpoint
	}
	model, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(apiEndpoint),
		openai.WithModel("llama-3.3-70b-versatile"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Groq client: %w", err)
	}

	return &GroqClient{
		Chat: model,
	}, nil
}

// RequestCompletion 单次补全请求，用于语气总结
func (g *GroqClient) RequestCompletion(ctx context.Context, prompt, systemPrompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	resp, err := g.Chat.GenerateContent(ctx, messages,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(200),
	)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Content, nil
}
