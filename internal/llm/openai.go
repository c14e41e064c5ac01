package llm

import (
	"context"
	"errors"
	"io"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	apperrors "github.com/poolexpert/concierge/internal/errors"
	"github.com/poolexpert/concierge/internal/models"
)

// OpenAIClient streams chat completions from the OpenAI API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewOpenAIClient(apiKey string, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// StreamReply opens a streaming completion and forwards delta tokens in
// order on the returned channel. Mid-stream failures close the channel
// without retracting what was already delivered.
func (c *OpenAIClient) StreamReply(ctx context.Context, system string, messages []models.Message) (<-chan string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	chatMessages = append(chatMessages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		MaxTokens:   c.maxTokens,
		Temperature: float32(c.temperature),
		Stream:      true,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				if ctx.Err() == nil {
					c.logger.Warn("completion stream interrupted", zap.Error(err))
				}
				return
			}
			if len(resp.Choices) == 0 {
				continue
			}
			delta := resp.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			select {
			case out <- delta:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// classifyError maps an OpenAI API failure onto the error taxonomy:
// bad credentials, exhausted quota, backend throttling, or anything else
// as a generic transient failure.
func classifyError(err error) error {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return apperrors.NewBackendTransient(err)
	}

	if code, ok := apiErr.Code.(string); ok && code == "insufficient_quota" {
		return apperrors.NewBackendCapacity(err)
	}

	switch apiErr.HTTPStatusCode {
	case 401, 403:
		return apperrors.NewBackendAuth(err)
	case 429:
		return apperrors.NewRateLimited()
	case 503:
		return apperrors.NewBackendCapacity(err)
	default:
		return apperrors.NewBackendTransient(err)
	}
}
