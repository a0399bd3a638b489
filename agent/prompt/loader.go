package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/assistant.txt
	assistantRaw string

	//go:embed template/insights.txt
	insightsRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Assistant string
	Insights  string
}

// LoadPromptSet returns the embedded prompts, trimmed.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Assistant: strings.TrimSpace(assistantRaw),
		Insights:  strings.TrimSpace(insightsRaw),
	}
}
