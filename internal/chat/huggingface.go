package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultHuggingFaceEndpoint = "https://api-inference.huggingface.co/models/"
	defaultHuggingFaceModel    = "meta-llama/Llama-3.1-8B-Instruct"
	huggingFaceHistory         = 10
	huggingFaceTimeout         = 30 * time.Second
)

type huggingFaceProvider struct {
	apiKey   string
	url      string
	system   string
	client   *http.Client
	deadline time.Duration
}

func newHuggingFaceProvider(cfg Config) *huggingFaceProvider {
	endpoint := cfg.HuggingFaceEndpoint
	if endpoint == "" {
		endpoint = defaultHuggingFaceEndpoint
	}
	model := cfg.HuggingFaceModel
	if model == "" {
		model = defaultHuggingFaceModel
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: huggingFaceTimeout}
	}
	return &huggingFaceProvider{
		apiKey:   cfg.HuggingFaceAPIKey,
		url:      strings.TrimSuffix(endpoint, "/") + "/" + model,
		system:   cfg.SystemPrompt,
		client:   client,
		deadline: huggingFaceTimeout,
	}
}

func (p *huggingFaceProvider) Name() string { return TierHuggingFace }

func (p *huggingFaceProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	if p.apiKey == "" {
		return "", errNotConfigured
	}

	payload := map[string]any{
		"inputs": buildPrompt(messages, p.system, huggingFaceHistory),
		"parameters": map[string]any{
			"max_new_tokens": replyMaxTokens,
			"temperature":    replyTemperature,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.deadline)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("inference request failed with status %d", resp.StatusCode)
	}

	text, err := generatedText(raw)
	if err != nil {
		return "", err
	}
	if i := strings.LastIndex(text, "Assistant:"); i >= 0 {
		text = text[i+len("Assistant:"):]
	}
	return strings.TrimSpace(text), nil
}

// buildPrompt renders the system prompt, the last n turns and a trailing
// "Assistant:" cue, one per line.
func buildPrompt(messages []Message, fallbackSystem string, n int) string {
	parts := []string{systemPrompt(messages, fallbackSystem)}
	parts = append(parts, transcript(messages, n)...)
	parts = append(parts, "Assistant:")
	return strings.Join(parts, "\n")
}

// generatedText extracts generated_text or summary_text from either a list of
// results or a single result object.
func generatedText(raw []byte) (string, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("failed to parse inference response: %w", err)
	}

	var result map[string]any
	switch v := decoded.(type) {
	case []any:
		if len(v) == 0 {
			return "", errEmptyReply
		}
		result, _ = v[0].(map[string]any)
	case map[string]any:
		result = v
	}
	if result == nil {
		return "", errEmptyReply
	}

	for _, key := range []string{"generated_text", "summary_text"} {
		if s, ok := result[key].(string); ok {
			return s, nil
		}
	}
	return "", errEmptyReply
}
