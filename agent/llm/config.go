package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	openrouterx "github.com/tanpawarit/Chative-Business-Assistant/pkg/openrouter"
)

// Config carries the chat defaults. The API key and model override are not
// here: they live in the settings store so the operator can change them at
// runtime.
type Config struct {
	BaseURL       string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.openai.com/v1"`
	Model         string        `envconfig:"MODEL" split_words:"true" default:"gpt-4"`
	MaxTokens     int           `envconfig:"MAX_TOKENS" split_words:"true" default:"2000"`
	Temperature   float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout       time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	HistoryWindow int           `envconfig:"HISTORY_WINDOW" split_words:"true" default:"10"`
	SiteURL       string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName      string        `envconfig:"SITE_NAME" split_words:"true"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:       "https://api.openai.com/v1",
		Model:         "gpt-4",
		MaxTokens:     2000,
		Temperature:   0.7,
		Timeout:       30 * time.Second,
		HistoryWindow: 10,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default chat model is required", contractx.ErrValidation)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("%w: max tokens must be positive", contractx.ErrValidation)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be within [0,2]", contractx.ErrValidation)
	}
	if c.HistoryWindow < 0 {
		return fmt.Errorf("%w: history window must not be negative", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor builds the client config for one API key and model.
func (c Config) OpenRouterFor(apiKey, model string) openrouterx.Config {
	modelName := strings.TrimSpace(model)
	if modelName == "" {
		modelName = strings.TrimSpace(c.Model)
	}
	maxTokens := c.MaxTokens
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(apiKey),
		Model:              modelName,
		MaxCompletionToken: &maxTokens,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
