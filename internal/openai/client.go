package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/media-confidence/aifaq/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is used when no model is configured.
	DefaultChatModel = openai.GPT4oMini
	// DefaultMaxTokens caps the length of a single reply.
	DefaultMaxTokens = 1024
	// DefaultTimeout bounds one completion call.
	DefaultTimeout = 30 * time.Second
)

var (
	// ErrNoAPIKey is returned when OpenAI API key is not set
	ErrNoAPIKey = errors.New("OPENAI_API_KEY environment variable not set")
	// ErrEmptyReply is returned when the completion carries no usable text
	ErrEmptyReply = errors.New("completion returned no content")
)

// CompletionAPI is the subset of the OpenAI client used for chat.
type CompletionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// ChatClient relays a transcript to a chat completion endpoint.
type ChatClient struct {
	api       CompletionAPI
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewChatClient creates a client with explicit configuration.
func NewChatClient(cfg Config) (*ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return newChatClient(openai.NewClientWithConfig(oc), cfg), nil
}

func newChatClient(api CompletionAPI, cfg Config) *ChatClient {
	c := &ChatClient{
		api:       api,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
	}
	if c.model == "" {
		c.model = DefaultChatModel
	}
	if c.maxTokens <= 0 {
		c.maxTokens = DefaultMaxTokens
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	return c
}

// Complete sends the system instruction followed by the transcript and
// returns the first choice's text. An empty transcript is sent as the
// system message alone, which yields the greeting.
func (c *ChatClient) Complete(ctx context.Context, system string, messages []domain.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  buildMessages(system, messages),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(system string, messages []domain.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	out = append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == domain.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
