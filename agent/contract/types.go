package contract

import "time"

type CommandType string

const (
	CommandQuery  CommandType = "query"
	CommandAction CommandType = "action"
	CommandConfig CommandType = "config"
)

// Intent is the closed set of purposes a free-text command can resolve to.
type Intent string

const (
	IntentViewBusinessMetrics Intent = "view_business_metrics"
	IntentViewAnalytics       Intent = "view_analytics"
	IntentGenerateLeads       Intent = "generate_leads"
	IntentGenerateStrategy    Intent = "generate_strategy"
	IntentUpdateProfile       Intent = "update_profile"
	IntentGeneralInquiry      Intent = "general_inquiry"
)

// Intents lists every known intent in dispatch-table order.
func Intents() []Intent {
	return []Intent{
		IntentViewBusinessMetrics,
		IntentViewAnalytics,
		IntentGenerateLeads,
		IntentGenerateStrategy,
		IntentUpdateProfile,
		IntentGeneralInquiry,
	}
}

func (i Intent) Valid() bool {
	for _, known := range Intents() {
		if i == known {
			return true
		}
	}
	return false
}

// AICommand is transient; it is never persisted on its own.
type AICommand struct {
	Type       CommandType `json:"type"`
	Intent     Intent      `json:"intent"`
	Entities   []string    `json:"entities"`
	Confidence float64     `json:"confidence"`
}

type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

type CompletionRequest struct {
	SystemPrompt string        `json:"system_prompt"`
	History      []ChatMessage `json:"history,omitempty"`
	UserMessage  string        `json:"user_message"`
	Model        string        `json:"model"`
	MaxTokens    int           `json:"max_tokens"`
	Temperature  float32       `json:"temperature"`
	// APIKey is resolved per request from the settings store.
	APIKey string `json:"-"`
}

/* ------------------------------- Responses ------------------------------- */

type PayloadKind string

const (
	PayloadLeadList        PayloadKind = "lead_list"
	PayloadStrategySummary PayloadKind = "strategy_summary"
)

// Payload is the structured part of a Response. The set of variants is closed:
// LeadListPayload and StrategySummaryPayload. A nil Payload means none.
type Payload interface {
	Kind() PayloadKind
	sealed()
}

type Response struct {
	Content string  `json:"content"`
	Payload Payload `json:"payload,omitempty"`
}

type LeadSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Company    string `json:"company"`
	Industry   string `json:"industry"`
	Status     string `json:"status"`
	MatchScore int    `json:"match_score"`
}

type LeadListPayload struct {
	Leads []LeadSummary `json:"leads"`
}

func (LeadListPayload) Kind() PayloadKind { return PayloadLeadList }
func (LeadListPayload) sealed()           {}

type StrategySummaryPayload struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	Content         string    `json:"content"`
	TargetCustomers []string  `json:"target_customers"`
	SuccessMetrics  []string  `json:"success_metrics"`
	Timeline        string    `json:"timeline"`
	CreatedAt       time.Time `json:"created_at"`
}

func (StrategySummaryPayload) Kind() PayloadKind { return PayloadStrategySummary }
func (StrategySummaryPayload) sealed()           {}
