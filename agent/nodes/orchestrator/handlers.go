package orchestratornode

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

// BusinessReader is the read-only slice of the entity store handlers need.
type BusinessReader interface {
	BusinessMetrics() statex.BusinessMetrics
	Funnel() []statex.StageCount
	Strategies() []statex.StrategyReport
}

type Handler func(ctx context.Context, store BusinessReader, command contractx.AICommand) contractx.Response

// Dispatcher maps every known intent to one handler. Unknown intents get the
// capability overview.
type Dispatcher struct {
	store    BusinessReader
	handlers map[contractx.Intent]Handler
	now      func() time.Time
}

var _ Responder = (*Dispatcher)(nil)

func NewDispatcher(store BusinessReader, nowFn func() time.Time) (*Dispatcher, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: business reader is required", contractx.ErrValidation)
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	d := &Dispatcher{store: store, now: nowFn}
	d.handlers = map[contractx.Intent]Handler{
		contractx.IntentViewBusinessMetrics: metricsDigest,
		contractx.IntentViewAnalytics:       funnelBreakdown,
		contractx.IntentGenerateLeads:       leadRecommendations,
		contractx.IntentGenerateStrategy:    d.outreachStrategy,
		contractx.IntentUpdateProfile:       profileMenu,
		contractx.IntentGeneralInquiry:      capabilityOverview,
	}
	return d, nil
}

func (d *Dispatcher) Respond(ctx context.Context, command contractx.AICommand) contractx.Response {
	h, ok := d.handlers[command.Intent]
	if !ok {
		h = capabilityOverview
	}
	return h(ctx, d.store, command)
}

// Handles reports whether intent has a dedicated handler.
func (d *Dispatcher) Handles(intent contractx.Intent) bool {
	_, ok := d.handlers[intent]
	return ok
}

func metricsDigest(_ context.Context, store BusinessReader, _ contractx.AICommand) contractx.Response {
	return contractx.Response{Content: FormatMetricsDigest(store.BusinessMetrics())}
}

func FormatMetricsDigest(m statex.BusinessMetrics) string {
	var b strings.Builder
	b.WriteString("**Business Metrics Overview**\n\n")
	fmt.Fprintf(&b, "**Total Leads:** %d\n", m.TotalLeads)
	fmt.Fprintf(&b, "**Qualified Leads:** %d\n", m.QualifiedLeads)
	fmt.Fprintf(&b, "**Conversion Rate:** %.1f%%\n", m.ConversionPercent())
	fmt.Fprintf(&b, "**Average Response Time:** %s hours\n", formatFloat(m.AverageResponseHours))
	fmt.Fprintf(&b, "**Revenue Pipeline:** %s\n", FormatCurrency(m.RevenuePipeline))
	fmt.Fprintf(&b, "**Customer Satisfaction:** %s%%\n\n", formatFloat(m.CustomerSatisfaction))
	b.WriteString("Your lead generation is performing well! The conversion rate shows strong qualification process.")
	return b.String()
}

func funnelBreakdown(_ context.Context, store BusinessReader, _ contractx.AICommand) contractx.Response {
	var b strings.Builder
	b.WriteString("**Sales Funnel Analytics**\n\n")
	total := 0
	for _, stage := range store.Funnel() {
		fmt.Fprintf(&b, "• %s: %d\n", stage.Status.Label(), stage.Count)
		total += stage.Count
	}
	fmt.Fprintf(&b, "\n**Leads tracked:** %d\n", total)
	fmt.Fprintf(&b, "**Strategy reports on file:** %d", len(store.Strategies()))
	return contractx.Response{Content: b.String()}
}

var recommendedLeads = []contractx.LeadSummary{
	{
		ID:         "1",
		Name:       "John Smith",
		Position:   "Procurement Manager",
		Company:    "TechCorp Inc.",
		Industry:   "Technology",
		Status:     string(statex.StatusProspect),
		MatchScore: 92,
	},
	{
		ID:         "2",
		Name:       "Sarah Johnson",
		Position:   "Supply Chain Director",
		Company:    "Global Manufacturing Ltd.",
		Industry:   "Manufacturing",
		Status:     string(statex.StatusQualified),
		MatchScore: 88,
	},
}

func leadRecommendations(_ context.Context, _ BusinessReader, _ contractx.AICommand) contractx.Response {
	leads := append([]contractx.LeadSummary(nil), recommendedLeads...)

	var b strings.Builder
	b.WriteString("**Generated Lead Recommendations**\n\n")
	fmt.Fprintf(&b, "Based on your company profile, here are %d high-potential leads:\n\n", len(leads))
	for i, l := range leads {
		fmt.Fprintf(&b, "%d. **%s** - %s at %s\n", i+1, l.Name, l.Position, l.Company)
		fmt.Fprintf(&b, "   - Industry: %s\n", l.Industry)
		fmt.Fprintf(&b, "   - Status: %s\n", statex.CustomerStatus(l.Status).Label())
		fmt.Fprintf(&b, "   - Match Score: %d%%\n\n", l.MatchScore)
	}
	b.WriteString("Would you like me to generate personalized outreach strategies for these leads?")

	return contractx.Response{
		Content: b.String(),
		Payload: contractx.LeadListPayload{Leads: leads},
	}
}

func (d *Dispatcher) outreachStrategy(_ context.Context, _ BusinessReader, _ contractx.AICommand) contractx.Response {
	summary := contractx.StrategySummaryPayload{
		ID:              "1",
		Title:           "Multi-Channel Outreach Strategy",
		Type:            string(statex.StrategyOutreach),
		Content:         "Comprehensive approach combining email, LinkedIn, and industry events to engage high-value prospects.",
		TargetCustomers: []string{"Procurement Managers", "Supply Chain Directors"},
		SuccessMetrics:  []string{"Response Rate >15%", "Meeting Bookings >5/month"},
		Timeline:        "3 months",
		CreatedAt:       d.now().UTC(),
	}

	var b strings.Builder
	b.WriteString("**Outreach Strategy Generated**\n\n")
	fmt.Fprintf(&b, "**Strategy:** %s\n", summary.Title)
	fmt.Fprintf(&b, "**Target:** %s\n", strings.Join(summary.TargetCustomers, ", "))
	fmt.Fprintf(&b, "**Timeline:** %s\n", summary.Timeline)
	fmt.Fprintf(&b, "**Success Metrics:** %s\n\n", strings.Join(summary.SuccessMetrics, ", "))
	b.WriteString("This strategy leverages your manufacturing expertise and cost advantages to engage decision-makers in target industries.")

	return contractx.Response{Content: b.String(), Payload: summary}
}

func profileMenu(_ context.Context, _ BusinessReader, _ contractx.AICommand) contractx.Response {
	return contractx.Response{Content: `**Profile Update Options**

I can help you update:
• Company information and description
• Target markets and customer profiles
• Product portfolio and capabilities
• Contact information and preferences

What would you like to modify?`}
}

func capabilityOverview(_ context.Context, _ BusinessReader, _ contractx.AICommand) contractx.Response {
	return contractx.Response{Content: `Hello! I'm your AI business development assistant. I can help you with:

• **Lead Generation** - Find and qualify new prospects
• **Strategy Development** - Create outreach and follow-up plans
• **Business Analytics** - Track performance and identify opportunities
• **Profile Management** - Update company and customer information

What would you like to work on today?`}
}

// FormatCurrency renders whole dollars with thousands separators, e.g. $40,000.
func FormatCurrency(amount int64) string {
	return "$" + humanize.Comma(amount)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
