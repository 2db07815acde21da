package chat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const (
	defaultOllamaModel = "llama3.1"
	ollamaHistory      = 10
)

type ollamaProvider struct {
	api    *api.Client
	model  string
	system string
}

func newOllamaProvider(cfg Config) (*ollamaProvider, error) {
	u, err := url.ParseRequestURI(cfg.OllamaBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	model := cfg.OllamaModel
	if model == "" {
		model = defaultOllamaModel
	}
	return &ollamaProvider{
		api:    api.NewClient(u, client),
		model:  model,
		system: cfg.SystemPrompt,
	}, nil
}

func (p *ollamaProvider) Name() string { return TierOllama }

func (p *ollamaProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	stream := false
	lines := append(transcript(messages, ollamaHistory), "Assistant:")
	req := &api.GenerateRequest{
		Model:  p.model,
		System: systemPrompt(messages, p.system),
		Prompt: strings.Join(lines, "\n"),
		Stream: &stream,
		Options: map[string]any{
			"temperature": replyTemperature,
			"num_predict": replyMaxTokens,
		},
	}

	var out strings.Builder
	err := p.api.Generate(ctx, req, func(r api.GenerateResponse) error {
		out.WriteString(r.Response)
		return nil
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
