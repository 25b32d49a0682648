package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

const diyaSystemPrompt = "You are Diya — a kind, emotionally intelligent mental wellness companion. " +
	"Respond naturally and empathetically. Keep messages short, calm, and comforting."

// ChatService 陪伴聊天服务
type ChatService struct {
	client *GroqClient
}

func NewChatService(client *GroqClient) *ChatService {
	return &ChatService{
		client: client,
	}
}

// SendMessage 生成陪伴回复。用户当前心情会一并传给模型作为上下文
func (s *ChatService) SendMessage(ctx context.Context, message, mood string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if s.client == nil {
		return "", fmt.Errorf("%w: GROQ_API_KEY not configured", ErrProviderAuth)
	}
	if mood == "" {
		mood = "neutral"
	}

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(diyaSystemPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(fmt.Sprintf("User mood: %s. Message: %s", mood, message))},
		},
	}

	resp, err := s.client.Chat.GenerateContent(ctx, messages,
		llms.WithTemperature(0.8),
		llms.WithMaxTokens(300),
	)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", fmt.Errorf("empty response from completion provider")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}
