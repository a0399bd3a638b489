// Package intent maps free-text input onto a structured AICommand using a fixed,
// ordered rule table.
package intent

import (
	"strings"

	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
)

// DefaultConfidence is reported when no rule matches.
const DefaultConfidence = 0.5

var (
	queryVerbs  = []string{"view", "show", "report"}
	actionVerbs = []string{"generate", "create", "send"}
	configVerbs = []string{"update", "modify", "set"}
)

// Rule matches when the input contains any of Verbs and, if Keywords is
// non-empty, any of Keywords. Confidence is a static property of the rule.
type Rule struct {
	Verbs      []string
	Keywords   []string
	Type       contractx.CommandType
	Intent     contractx.Intent
	Entities   []string
	Confidence float64
}

func (r Rule) matches(lower string) bool {
	if !containsAny(lower, r.Verbs) {
		return false
	}
	return len(r.Keywords) == 0 || containsAny(lower, r.Keywords)
}

func (r Rule) command() contractx.AICommand {
	return contractx.AICommand{
		Type:       r.Type,
		Intent:     r.Intent,
		Entities:   append([]string{}, r.Entities...),
		Confidence: r.Confidence,
	}
}

// DefaultRules returns the rule table in evaluation order: query verbs, then
// action verbs, then configuration verbs.
func DefaultRules() []Rule {
	return []Rule{
		{
			Verbs:      queryVerbs,
			Keywords:   []string{"customer", "funnel", "progress"},
			Type:       contractx.CommandQuery,
			Intent:     contractx.IntentViewBusinessMetrics,
			Entities:   []string{"business_metrics"},
			Confidence: 0.9,
		},
		{
			Verbs:      queryVerbs,
			Keywords:   []string{"data", "statistics"},
			Type:       contractx.CommandQuery,
			Intent:     contractx.IntentViewAnalytics,
			Entities:   []string{"analytics"},
			Confidence: 0.8,
		},
		{
			Verbs:      actionVerbs,
			Keywords:   []string{"customer", "lead"},
			Type:       contractx.CommandAction,
			Intent:     contractx.IntentGenerateLeads,
			Entities:   []string{"leads"},
			Confidence: 0.9,
		},
		{
			Verbs:      actionVerbs,
			Keywords:   []string{"strategy", "email"},
			Type:       contractx.CommandAction,
			Intent:     contractx.IntentGenerateStrategy,
			Entities:   []string{"strategy"},
			Confidence: 0.8,
		},
		{
			Verbs:      configVerbs,
			Type:       contractx.CommandConfig,
			Intent:     contractx.IntentUpdateProfile,
			Entities:   []string{"profile"},
			Confidence: 0.7,
		},
	}
}

// Default is the command returned for input no rule recognizes.
func Default() contractx.AICommand {
	return contractx.AICommand{
		Type:       contractx.CommandQuery,
		Intent:     contractx.IntentGeneralInquiry,
		Entities:   []string{},
		Confidence: DefaultConfidence,
	}
}

type Classifier struct {
	rules []Rule
}

func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify never fails; unmatched input yields Default().
func (c *Classifier) Classify(text string) contractx.AICommand {
	lower := strings.ToLower(text)
	for _, rule := range c.rules {
		if rule.matches(lower) {
			return rule.command()
		}
	}
	return Default()
}

var defaultClassifier = NewClassifier()

// Classify runs the default rule table.
func Classify(text string) contractx.AICommand {
	return defaultClassifier.Classify(text)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
