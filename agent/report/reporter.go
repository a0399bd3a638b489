package report

import (
	"errors"
	"fmt"
	"strings"

	nodex "github.com/tanpawarit/Chative-Business-Assistant/agent/nodes/orchestrator"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

var ErrUnknownKind = errors.New("unknown report kind")

type Kind string

const (
	KindMorning Kind = "morning"
	KindWeekly  Kind = "weekly"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindMorning, KindWeekly:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// improvingRate is the conversion ratio above which the morning trend reads
// as improving.
const improvingRate = 0.15

type MetricsSource interface {
	BusinessMetrics() statex.BusinessMetrics
}

// Reporter renders the periodic digests. It keeps no state between calls.
type Reporter struct {
	metrics  MetricsSource
	activity ActivitySource
}

func NewReporter(metrics MetricsSource, activity ActivitySource) (*Reporter, error) {
	if metrics == nil {
		return nil, errors.New("metrics source is required")
	}
	if activity == nil {
		activity = NewTimeSeededActivity()
	}
	return &Reporter{metrics: metrics, activity: activity}, nil
}

func (r *Reporter) Generate(kind Kind) (string, error) {
	switch kind {
	case KindMorning:
		return r.MorningReport(), nil
	case KindWeekly:
		return r.WeeklyReport(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func (r *Reporter) MorningReport() string {
	m := r.metrics.BusinessMetrics()
	a := r.activity.Daily()

	var b strings.Builder
	b.WriteString("**Morning Business Report**\n\n")
	b.WriteString("**Yesterday's Activity:**\n")
	fmt.Fprintf(&b, "• New leads generated: %d\n", a.NewLeads)
	fmt.Fprintf(&b, "• Follow-ups completed: %d\n", a.FollowUps)
	fmt.Fprintf(&b, "• Meetings scheduled: %d\n\n", a.Meetings)
	b.WriteString("**Today's Focus:**\n")
	b.WriteString("• Prioritize follow-ups with qualified leads\n")
	b.WriteString("• Review and update customer profiles\n")
	b.WriteString("• Prepare proposals for negotiation stage prospects\n\n")
	b.WriteString("**Key Metrics:**\n")
	fmt.Fprintf(&b, "• Total pipeline value: %s\n", nodex.FormatCurrency(m.RevenuePipeline))
	fmt.Fprintf(&b, "• Conversion rate trend: %s\n\n", Trend(m))
	b.WriteString("Have a productive day!")
	return b.String()
}

func (r *Reporter) WeeklyReport() string {
	m := r.metrics.BusinessMetrics()
	a := r.activity.Weekly()

	var b strings.Builder
	b.WriteString("**Weekly Business Summary**\n\n")
	b.WriteString("**This Week's Performance:**\n")
	fmt.Fprintf(&b, "• Total leads: %d\n", m.TotalLeads)
	fmt.Fprintf(&b, "• Qualified prospects: %d\n", m.QualifiedLeads)
	fmt.Fprintf(&b, "• Conversion rate: %.1f%%\n", m.ConversionPercent())
	fmt.Fprintf(&b, "• Revenue pipeline: %s\n\n", nodex.FormatCurrency(m.RevenuePipeline))
	b.WriteString("**Top Achievements:**\n")
	fmt.Fprintf(&b, "• Generated %d new qualified leads\n", a.QualifiedLeads)
	fmt.Fprintf(&b, "• Completed %d follow-up activities\n", a.FollowUps)
	fmt.Fprintf(&b, "• Scheduled %d prospect meetings\n\n", a.Meetings)
	b.WriteString("**Next Week's Goals:**\n")
	b.WriteString("• Focus on high-value prospects in manufacturing sector\n")
	b.WriteString("• Develop personalized outreach strategies\n")
	b.WriteString("• Strengthen relationships with existing qualified leads\n\n")
	b.WriteString("Keep up the great work!")
	return b.String()
}

func Trend(m statex.BusinessMetrics) string {
	if m.ConversionRate > improvingRate {
		return "Improving"
	}
	return "Stable"
}
