package strategy

import (
	"context"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
)

const maxInsights = 3

// StaticInsights returns two canned snippets for any company. It is the
// default lookup when no research endpoint is configured.
type StaticInsights struct{}

var _ contractx.InsightLookup = StaticInsights{}

func (StaticInsights) LookupInsights(_ context.Context, companyName, industry string) ([]string, error) {
	return []string{
		fmt.Sprintf("%s recently launched a new %s product line and shared important insights about sustainable manufacturing on LinkedIn.", companyName, industry),
		fmt.Sprintf("The CEO of %s emphasized the importance of digital transformation at a recent industry conference and expressed interest in finding reliable manufacturing partners.", companyName),
	}, nil
}

// CompletionInsights asks an OpenAI-compatible endpoint for short public
// signals about a company, one per line.
type CompletionInsights struct {
	client       *openaisdk.Client
	model        string
	systemPrompt string
}

var _ contractx.InsightLookup = (*CompletionInsights)(nil)

func NewCompletionInsights(client *openaisdk.Client, model, systemPrompt string) (*CompletionInsights, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: openai client is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: insight model is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: insights system prompt", contractx.ErrPromptMissing)
	}
	return &CompletionInsights{
		client:       client,
		model:        strings.TrimSpace(model),
		systemPrompt: systemPrompt,
	}, nil
}

func (c *CompletionInsights) LookupInsights(ctx context.Context, companyName, industry string) ([]string, error) {
	user := fmt.Sprintf("Company: %s\nIndustry: %s", strings.TrimSpace(companyName), strings.TrimSpace(industry))

	resp, err := c.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(c.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(c.systemPrompt),
			openaisdk.UserMessage(user),
		},
		MaxTokens:   openaisdk.Int(300),
		Temperature: openaisdk.Float(0.3),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", contractx.ErrLookupFailed, companyName, err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil
	}
	return parseInsightLines(resp.Choices[0].Message.Content), nil
}

func parseInsightLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•0123456789.) ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxInsights {
			break
		}
	}
	return out
}
