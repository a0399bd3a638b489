package strategy

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	"golang.org/x/time/rate"
)

const (
	baseConfidence       = 0.5
	productMatchBonus    = 0.2
	marketMatchBonus     = 0.15
	matchScoreBonus      = 0.15
	matchScoreThreshold  = 80
	fallbackIcebreaker   = "Based on industry trends and company dynamics"
	fallbackActivity     = "industry activities"
	fallbackEmailInsight = "recent industry developments"
	schedulingStep       = "Schedule a 15-minute call to discuss their specific needs and present our capabilities."
)

type Config struct {
	LookupTimeout time.Duration `envconfig:"LOOKUP_TIMEOUT" split_words:"true" default:"10s"`
	// LookupRate caps insight lookups per second; zero means unlimited.
	LookupRate  float64 `envconfig:"LOOKUP_RATE" split_words:"true" default:"0"`
	LookupBurst int     `envconfig:"LOOKUP_BURST" split_words:"true" default:"1"`
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

type Generator struct {
	lookup  contractx.InsightLookup
	timeout time.Duration
	limiter *rate.Limiter
	now     func() time.Time
}

// NewGenerator accepts a nil lookup; every strategy then takes the no-insight path.
func NewGenerator(lookup contractx.InsightLookup, cfg Config, opts ...Option) *Generator {
	limit := rate.Inf
	if cfg.LookupRate > 0 {
		limit = rate.Limit(cfg.LookupRate)
	}
	burst := cfg.LookupBurst
	if burst <= 0 {
		burst = 1
	}

	g := &Generator{
		lookup:  lookup,
		timeout: cfg.LookupTimeout,
		limiter: rate.NewLimiter(limit, burst),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

func (g *Generator) Generate(ctx context.Context, source SourceProfile, target LeadProfile) Strategy {
	insights := g.lookupInsights(ctx, target)
	first := ""
	if len(insights) > 0 {
		first = insights[0]
	}

	valueProposition := buildValueProposition(source, target)
	icebreaker := first
	if icebreaker == "" {
		icebreaker = fallbackIcebreaker
	}

	return Strategy{
		CustomerID:       target.ID,
		TargetName:       target.Name,
		Icebreaker:       icebreaker,
		ValueProposition: valueProposition,
		ActionSteps:      buildActionSteps(first),
		EmailDraft:       buildEmailDraft(target, first, valueProposition),
		Confidence:       Confidence(source, target),
		Insights:         insights,
		GeneratedAt:      g.now().UTC(),
	}
}

// GenerateBatch keeps input order. A lead whose lookup fails still gets an
// artifact built on the no-insight path.
func (g *Generator) GenerateBatch(ctx context.Context, source SourceProfile, leads []LeadProfile) []Strategy {
	out := make([]Strategy, 0, len(leads))
	for _, lead := range leads {
		out = append(out, g.Generate(ctx, source, lead))
	}
	return out
}

func (g *Generator) lookupInsights(ctx context.Context, target LeadProfile) []string {
	if g.lookup == nil {
		return nil
	}

	logger := log.With().Str("lead_id", target.ID).Str("lead", target.Name).Logger()
	if err := g.limiter.Wait(ctx); err != nil {
		logger.Warn().Err(err).Msg("insight lookup skipped")
		return nil
	}

	lookupCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	raw, err := g.lookup.LookupInsights(lookupCtx, target.Name, target.Industry)
	if err != nil {
		logger.Warn().Err(err).Msg("insight lookup failed, using generic fallback")
		return nil
	}

	insights := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			insights = append(insights, s)
		}
	}
	logger.Debug().Int("insights", len(insights)).Msg("insight lookup done")
	return insights
}

// Confidence scores fit in [0,1] from product/industry overlap, target-market
// coverage and the lead's own match score.
func Confidence(source SourceProfile, target LeadProfile) float64 {
	score := baseConfidence
	if productsMatchIndustry(source.MainProducts, target.Industry) {
		score += productMatchBonus
	}
	if country := strings.TrimSpace(target.Country); country != "" && strings.Contains(source.TargetMarkets, country) {
		score += marketMatchBonus
	}
	if target.MatchScore >= matchScoreThreshold {
		score += matchScoreBonus
	}
	return math.Min(score, 1.0)
}

func productsMatchIndustry(products []string, industry string) bool {
	industry = strings.ToLower(strings.TrimSpace(industry))
	if industry == "" {
		return false
	}
	for _, p := range products {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(industry, p) || strings.Contains(p, industry) {
			return true
		}
	}
	return false
}

func buildValueProposition(source SourceProfile, target LeadProfile) string {
	return fmt.Sprintf(
		"Our %s perfectly align with %s's needs in the %s sector. We can provide %s that meet their quality standards and delivery requirements.",
		strings.Join(source.CoreAdvantages, ", "),
		target.Name,
		target.Industry,
		strings.Join(source.MainProducts, ", "),
	)
}

func buildActionSteps(insight string) ActionSteps {
	activity := fallbackActivity
	if insight != "" {
		activity = strings.ToLower(insight)
	}
	return ActionSteps{
		Step1: fmt.Sprintf("Send personalized email mentioning their recent %s and how our solutions can help.", activity),
		Step2: schedulingStep,
	}
}

func buildEmailDraft(target LeadProfile, insight, valueProposition string) string {
	if insight == "" {
		insight = fallbackEmailInsight
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", target.Contact)
	fmt.Fprintf(&b, "I hope this email finds you well. I recently came across %s's %s, and I believe we can be the perfect manufacturing partner for your needs.\n\n", target.Name, insight)
	b.WriteString(valueProposition)
	b.WriteString("\n\nWould you be interested in a brief 15-minute call to discuss how we can support your business goals?\n\n")
	b.WriteString("Best regards,\n[Your Name]")
	return b.String()
}
