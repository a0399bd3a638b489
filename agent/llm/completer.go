package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
)

// ModelBuilder creates a chat model bound to one API key and model name.
type ModelBuilder interface {
	Build(ctx context.Context, apiKey, model string) (einomodel.BaseChatModel, error)
}

// OpenRouterBuilder builds eino OpenAI chat models through pkg/openrouter.
type OpenRouterBuilder struct {
	Config Config
}

func (b OpenRouterBuilder) Build(ctx context.Context, apiKey, model string) (einomodel.BaseChatModel, error) {
	cfg := b.Config.OpenRouterFor(apiKey, model)
	return cfg.New(ctx)
}

type completionRunner = compose.Runnable[map[string]any, *schema.Message]

// GraphCompleter runs prompt -> chat model as a compiled eino graph. Compiled
// graphs are cached per API key and model.
type GraphCompleter struct {
	builder ModelBuilder

	mu      sync.Mutex
	runners map[string]completionRunner
}

var _ contractx.ChatCompleter = (*GraphCompleter)(nil)

func NewGraphCompleter(builder ModelBuilder) (*GraphCompleter, error) {
	if builder == nil {
		return nil, fmt.Errorf("%w: model builder is required", contractx.ErrValidation)
	}
	return &GraphCompleter{
		builder: builder,
		runners: make(map[string]completionRunner),
	}, nil
}

func (c *GraphCompleter) Complete(ctx context.Context, req contractx.CompletionRequest) (string, error) {
	if strings.TrimSpace(req.UserMessage) == "" {
		return "", fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(req.APIKey) == "" {
		return "", fmt.Errorf("%w: api key is required", contractx.ErrValidation)
	}

	runner, err := c.runnerFor(ctx, req.APIKey, req.Model)
	if err != nil {
		return "", err
	}

	var modelOpts []einomodel.Option
	if req.MaxTokens > 0 {
		modelOpts = append(modelOpts, einomodel.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature > 0 {
		modelOpts = append(modelOpts, einomodel.WithTemperature(req.Temperature))
	}

	out, err := runner.Invoke(ctx, map[string]any{
		"system":  req.SystemPrompt,
		"history": toSchemaMessages(req.History),
		"input":   req.UserMessage,
	}, compose.WithChatModelOption(modelOpts...))
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", contractx.ErrModelInvoke, err)
	}
	if out == nil {
		return "", fmt.Errorf("%w: chat completion returned no message", contractx.ErrModelInvoke)
	}
	return strings.TrimSpace(out.Content), nil
}

func (c *GraphCompleter) runnerFor(ctx context.Context, apiKey, model string) (completionRunner, error) {
	key := strings.TrimSpace(apiKey) + "|" + strings.TrimSpace(model)

	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.runners[key]; ok {
		return r, nil
	}

	chatModel, err := c.builder.Build(ctx, apiKey, model)
	if err != nil {
		return nil, fmt.Errorf("%w: build chat model: %v", contractx.ErrModelInvoke, err)
	}
	r, err := compileCompletionGraph(ctx, chatModel)
	if err != nil {
		return nil, fmt.Errorf("%w: compile completion graph: %v", contractx.ErrModelInvoke, err)
	}
	c.runners[key] = r
	return r, nil
}

func compileCompletionGraph(ctx context.Context, chatModel einomodel.BaseChatModel) (completionRunner, error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add completion prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add completion model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add completion edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add completion edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add completion edge model->end: %w", err)
	}

	return graph.Compile(ctx, compose.WithGraphName("assistant.completion_graph"))
}

func toSchemaMessages(history []contractx.ChatMessage) []*schema.Message {
	out := make([]*schema.Message, 0, len(history))
	for _, m := range history {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		switch m.Role {
		case contractx.RoleAssistant:
			out = append(out, schema.AssistantMessage(content, nil))
		case contractx.RoleSystem:
			out = append(out, schema.SystemMessage(content))
		default:
			out = append(out, schema.UserMessage(content))
		}
	}
	return out
}
