// Package chat implements the help-desk assistant behind POST /chat. A reply is
// produced by the first provider in the chain that answers; the canned tier
// always answers.
package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"jobboard/internal/featureflags"
	"jobboard/internal/middleware"
	"jobboard/internal/observability"
)

// Message roles accepted by the assistant.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Tier names used in logs and metrics.
const (
	TierOpenAI      = "openai"
	TierHuggingFace = "huggingface"
	TierOllama      = "ollama"
	TierCanned      = "canned"
)

// DefaultSystemPrompt is used when the conversation carries no system message.
const DefaultSystemPrompt = "You are a helpful assistant for One-Day Job Board."

var (
	errNotConfigured = errors.New("provider not configured")
	errEmptyReply    = errors.New("provider returned no content")
)

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ValidRole reports whether role is user, assistant or system.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Provider is one tier of the fallback chain.
type Provider interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Config selects and configures the upstream tiers. Empty keys or URLs leave
// the corresponding tier out of the chain.
type Config struct {
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	HuggingFaceAPIKey   string
	HuggingFaceModel    string
	HuggingFaceEndpoint string
	SystemPrompt        string

	OllamaBaseURL string
	OllamaModel   string

	// HTTPClient overrides the transport for every tier. Nil uses per-tier
	// defaults.
	HTTPClient *http.Client

	// Flags gates the hosted tiers behind featureflags.ChatUpstream. A nil
	// manager leaves them enabled.
	Flags *featureflags.Manager
}

// Assistant answers chat conversations.
type Assistant struct {
	hosted []Provider
	local  []Provider
	flags  *featureflags.Manager
}

// New builds the provider chain from cfg: OpenAI, Hugging Face, Ollama, canned.
func New(cfg Config) *Assistant {
	a := &Assistant{flags: cfg.Flags}

	if cfg.OpenAIAPIKey != "" {
		a.hosted = append(a.hosted, newOpenAIProvider(cfg))
	}
	if cfg.HuggingFaceAPIKey != "" {
		a.hosted = append(a.hosted, newHuggingFaceProvider(cfg))
	}
	if cfg.OllamaBaseURL != "" {
		p, err := newOllamaProvider(cfg)
		if err != nil {
			middleware.Logger.Warn("chat: ignoring invalid OLLAMA_BASE_URL", "error", err)
		} else {
			a.local = append(a.local, p)
		}
	}
	return a
}

// NewWithProviders builds an assistant over an explicit chain. The canned tier
// is always appended.
func NewWithProviders(flags *featureflags.Manager, hosted []Provider, local []Provider) *Assistant {
	return &Assistant{hosted: hosted, local: local, flags: flags}
}

type subjectKey struct{}

// WithSubject attaches the rollout subject (user id or client address) used to
// evaluate the upstream flag.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

func subjectFrom(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey{}).(string)
	return s
}

// Reply returns a non-empty answer for messages. Upstream failures are logged
// and skipped, never returned.
func (a *Assistant) Reply(ctx context.Context, messages []Message) string {
	for _, p := range a.chain(ctx) {
		reply, err := complete(ctx, p, messages)
		if err != nil {
			observability.ChatUpstreamFailures.WithLabelValues(p.Name()).Inc()
			middleware.Logger.WarnContext(ctx, "chat tier failed, falling back",
				"tier", p.Name(), "error", err)
			continue
		}
		observability.ChatReplies.WithLabelValues(p.Name()).Inc()
		return reply
	}

	observability.ChatReplies.WithLabelValues(TierCanned).Inc()
	return CannedReply(messages)
}

func (a *Assistant) chain(ctx context.Context) []Provider {
	out := make([]Provider, 0, len(a.hosted)+len(a.local))
	if a.upstreamEnabled(ctx) {
		out = append(out, a.hosted...)
	}
	return append(out, a.local...)
}

func (a *Assistant) upstreamEnabled(ctx context.Context) bool {
	if a.flags == nil {
		return true
	}
	return a.flags.Enabled(featureflags.ChatUpstream, subjectFrom(ctx))
}

func complete(ctx context.Context, p Provider, messages []Message) (reply string, err error) {
	ctx, span := observability.StartClientSpan(ctx, p.Name(), "complete")
	defer func() { observability.EndSpan(span, err) }()

	reply, err = p.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", errEmptyReply
	}
	return reply, nil
}

// systemPrompt returns the first system message, or fallback.
func systemPrompt(messages []Message, fallback string) string {
	for _, m := range messages {
		if m.Role == RoleSystem {
			return m.Content
		}
	}
	if fallback == "" {
		return DefaultSystemPrompt
	}
	return fallback
}

// transcript renders the last n messages as "User:" and "Assistant:" lines.
func transcript(messages []Message, n int) []string {
	if len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		speaker := "Assistant"
		if m.Role == RoleUser {
			speaker = "User"
		}
		lines = append(lines, speaker+": "+m.Content)
	}
	return lines
}
