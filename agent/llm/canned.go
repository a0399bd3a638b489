package llm

import "strings"

// InvalidResponse is returned when the model answers with empty content.
const InvalidResponse = "Sorry, I did not get a valid response."

type cannedRule struct {
	keywords []string
	reply    string
}

var cannedRules = []cannedRule{
	{
		keywords: []string{"hello", "hi"},
		reply:    "Hello! I am your AI business development assistant. How can I help you today?",
	},
	{
		keywords: []string{"lead", "customer"},
		reply:    "I can help you generate and qualify new leads. What industry or market are you targeting?",
	},
	{
		keywords: []string{"strategy", "outreach"},
		reply:    "I can develop personalized outreach strategies for your prospects. Which customer would you like me to analyze?",
	},
	{
		keywords: []string{"data", "analytics"},
		reply:    "I can help you analyze business data and generate reports. What specific metrics would you like to review?",
	},
}

const cannedDefault = "I am here to help with your business development needs. You can ask me about lead generation, strategy development, business analytics, or any other business development questions."

// CannedReply answers without a model. Rules are checked in order with
// lower-cased substring matching.
func CannedReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range cannedRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return cannedDefault
}
