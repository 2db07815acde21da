package chat

import (
	"context"
	"sync"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel = openai.GPT3Dot5Turbo
	openAIHistory      = 20
	replyTemperature   = 0.6
	replyMaxTokens     = 256
)

type openAIProvider struct {
	cfg Config

	once   sync.Once
	client *openai.Client
}

func newOpenAIProvider(cfg Config) *openAIProvider {
	return &openAIProvider{cfg: cfg}
}

func (p *openAIProvider) Name() string { return TierOpenAI }

// api returns the process-wide client, building it on first use.
func (p *openAIProvider) api() *openai.Client {
	p.once.Do(func() {
		cfg := openai.DefaultConfig(p.cfg.OpenAIAPIKey)
		if p.cfg.OpenAIBaseURL != "" {
			cfg.BaseURL = p.cfg.OpenAIBaseURL
		}
		if p.cfg.HTTPClient != nil {
			cfg.HTTPClient = p.cfg.HTTPClient
		}
		p.client = openai.NewClientWithConfig(cfg)
	})
	return p.client
}

func (p *openAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	if p.cfg.OpenAIAPIKey == "" {
		return "", errNotConfigured
	}
	if len(messages) > openAIHistory {
		messages = messages[len(messages)-openAIHistory:]
	}

	req := openai.ChatCompletionRequest{
		Model:       p.cfg.OpenAIModel,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		Temperature: replyTemperature,
		MaxTokens:   replyMaxTokens,
	}
	if req.Model == "" {
		req.Model = defaultOpenAIModel
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := p.api().CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}
