package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/settings"
)

type ReplySource string

const (
	SourceModel  ReplySource = "model"
	SourceCanned ReplySource = "canned"
)

type Reply struct {
	Content string      `json:"content"`
	Source  ReplySource `json:"source"`
	Model   string      `json:"model,omitempty"`
}

// ChatService answers free-form messages. It never fails: a missing API key
// or a failed completion both fall back to a canned reply.
type ChatService struct {
	settings     contractx.SettingsStore
	completer    contractx.ChatCompleter
	cfg          Config
	systemPrompt string
}

func NewChatService(
	store contractx.SettingsStore,
	completer contractx.ChatCompleter,
	cfg Config,
	systemPrompt string,
) (*ChatService, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: settings store is required", contractx.ErrValidation)
	}
	if completer == nil {
		return nil, fmt.Errorf("%w: chat completer is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: assistant system prompt", contractx.ErrPromptMissing)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ChatService{
		settings:     store,
		completer:    completer,
		cfg:          cfg,
		systemPrompt: systemPrompt,
	}, nil
}

func (s *ChatService) Reply(ctx context.Context, history []contractx.ChatMessage, message string) Reply {
	logger := log.Ctx(ctx)

	apiKey, ok, err := s.settings.Get(ctx, settings.KeyOpenAIAPIKey)
	if err != nil {
		logger.Warn().Err(err).Msg("read api key failed, using canned reply")
		return canned(message)
	}
	if !ok || strings.TrimSpace(apiKey) == "" {
		logger.Debug().Msg("api key not configured, using canned reply")
		return canned(message)
	}

	model := s.cfg.Model
	if override, ok, err := s.settings.Get(ctx, settings.KeyOpenAIModel); err != nil {
		logger.Warn().Err(err).Msg("read model override failed, using default model")
	} else if ok && strings.TrimSpace(override) != "" {
		model = strings.TrimSpace(override)
	}

	content, err := s.completer.Complete(ctx, contractx.CompletionRequest{
		SystemPrompt: s.systemPrompt,
		History:      s.window(history),
		UserMessage:  message,
		Model:        model,
		MaxTokens:    s.cfg.MaxTokens,
		Temperature:  s.cfg.Temperature,
		APIKey:       apiKey,
	})
	if err != nil {
		logger.Warn().Err(err).Str("model", model).Msg("chat completion failed, using canned reply")
		return canned(message)
	}
	if strings.TrimSpace(content) == "" {
		content = InvalidResponse
	}

	return Reply{Content: content, Source: SourceModel, Model: model}
}

func (s *ChatService) window(history []contractx.ChatMessage) []contractx.ChatMessage {
	n := s.cfg.HistoryWindow
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func canned(message string) Reply {
	return Reply{Content: CannedReply(message), Source: SourceCanned}
}
