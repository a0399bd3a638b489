package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/agents/orchestrator"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/llm"
	nodex "github.com/tanpawarit/Chative-Business-Assistant/agent/nodes/orchestrator"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/prompt"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/report"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/settings"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/strategy"
	configx "github.com/tanpawarit/Chative-Business-Assistant/pkg/config"
	openrouterx "github.com/tanpawarit/Chative-Business-Assistant/pkg/openrouter"
	qstashx "github.com/tanpawarit/Chative-Business-Assistant/pkg/qstash"
)

type app struct {
	cfg AppConfig

	store        *statex.EntityStore
	settings     settings.Store
	orchestrator *orchestrator.Orchestrator
	chat         *llm.ChatService
	llmCfg       llm.Config
	strategyCfg  strategy.Config
	prompts      prompt.PromptSet
	source       strategy.SourceProfile
	qualifier    strategy.Qualifier

	reporter  *report.Reporter
	deliverer *report.Deliverer
	qstash    *qstashx.Client

	closers []func() error
}

func newApp(ctx context.Context, cfg AppConfig) (*app, error) {
	a := &app{
		cfg:       cfg,
		store:     statex.NewEntityStore(),
		prompts:   prompt.LoadPromptSet(),
		qualifier: strategy.DefaultQualifier(),
	}

	if err := a.openSettings(ctx); err != nil {
		return nil, err
	}

	llmCfg, err := configx.New[llm.Config]("OPENAI")
	if err != nil {
		return nil, fmt.Errorf("load chat config: %w", err)
	}
	a.llmCfg = *llmCfg

	completer, err := llm.NewGraphCompleter(llm.OpenRouterBuilder{Config: a.llmCfg})
	if err != nil {
		return nil, err
	}
	a.chat, err = llm.NewChatService(a.settings, completer, a.llmCfg, a.prompts.Assistant)
	if err != nil {
		return nil, err
	}

	strategyCfg, err := configx.New[strategy.Config]("STRATEGY")
	if err != nil {
		return nil, fmt.Errorf("load strategy config: %w", err)
	}
	a.strategyCfg = *strategyCfg

	if cfg.SeedDemo {
		if err := a.seedDemo(); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	a.orchestrator, err = orchestrator.New(a.store, orchestrator.WithChat(a.chat))
	if err != nil {
		return nil, err
	}

	a.reporter, err = report.NewReporter(a.store, report.NewTimeSeededActivity())
	if err != nil {
		return nil, err
	}

	if err := a.openDelivery(); err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Str("device_id", cfg.DeviceID).
		Str("settings_backend", cfg.SettingsBackend).
		Str("insights_backend", cfg.InsightsBackend).
		Bool("delivery", a.deliverer != nil).
		Msg("assistant initialized")
	return a, nil
}

func (a *app) openSettings(ctx context.Context) error {
	switch a.cfg.SettingsBackend {
	case backendUpstash:
		upCfg, err := configx.New[settings.UpstashConfig]("UPSTASH_REDIS")
		if err != nil {
			return fmt.Errorf("load upstash config: %w", err)
		}
		store, err := settings.NewUpstashStore(*upCfg, a.cfg.DeviceID)
		if err != nil {
			return err
		}
		a.settings = store
	case backendPostgres:
		pgCfg, err := configx.New[settings.PostgresConfig]("SETTINGS_PG")
		if err != nil {
			return fmt.Errorf("load postgres config: %w", err)
		}
		db, err := settings.OpenPostgres(*pgCfg)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, db.Close)
		store, err := settings.NewPostgresStore(db, a.cfg.DeviceID)
		if err != nil {
			return err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure settings schema: %w", err)
		}
		a.settings = store
	default:
		a.settings = settings.NewMemoryStore()
	}
	return nil
}

func (a *app) openDelivery() error {
	qsCfg, err := configx.New[qstashx.Config]("QSTASH")
	if err != nil {
		return fmt.Errorf("load qstash config: %w", err)
	}
	client, err := qstashx.NewClient(*qsCfg)
	if err != nil {
		return err
	}
	a.qstash = client

	if !qsCfg.Enabled() || strings.TrimSpace(a.cfg.ReportDestination) == "" {
		return nil
	}
	a.deliverer, err = report.NewDeliverer(client, a.cfg.ReportDestination)
	return err
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
}

func (a *app) serveWebhook(addr string) {
	var verifier report.SignatureVerifier
	if a.qstash != nil && a.qstash.CanVerify() {
		verifier = a.qstash
	} else {
		log.Warn().Msg("qstash signing keys not set, report webhook accepts unsigned triggers")
	}
	webhook := report.NewWebhookApp(a.reporter, verifier, a.deliverer, report.WebhookConfig{PublicURL: a.cfg.ReportPublicURL})
	log.Info().Str("addr", addr).Msg("report webhook listening")
	if err := webhook.Listen(addr); err != nil {
		log.Error().Err(err).Msg("report webhook stopped")
	}
}

func (a *app) conversationHistory() []contractx.ChatMessage {
	return nodex.ChatHistory(a.store.ConversationHistory())
}

func (a *app) report(ctx context.Context, kind report.Kind) (string, error) {
	digest, err := a.reporter.Generate(kind)
	if err != nil {
		return "", err
	}
	if a.deliverer != nil {
		if _, err := a.deliverer.Deliver(ctx, kind, digest); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("report delivery failed")
		}
	}
	return digest, nil
}

func (a *app) schedule(ctx context.Context) (string, error) {
	if a.deliverer == nil {
		return "", errors.New("report delivery is not configured")
	}
	base := strings.TrimRight(strings.TrimSpace(a.cfg.ReportPublicURL), "/")
	if base == "" {
		return "", errors.New("report public url is required to schedule reports")
	}

	var b strings.Builder
	for _, s := range []struct {
		kind report.Kind
		cron string
	}{
		{report.KindMorning, a.cfg.MorningCron},
		{report.KindWeekly, a.cfg.WeeklyCron},
	} {
		id, err := a.deliverer.Schedule(ctx, s.kind, s.cron, base+"/reports/"+string(s.kind))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "Scheduled %s report (%s): %s\n", s.kind, s.cron, id)
	}
	return strings.TrimSpace(b.String()), nil
}

func (a *app) setSetting(ctx context.Context, key, value string) (string, error) {
	if value == "" {
		if err := a.settings.Delete(ctx, key); err != nil {
			return "", err
		}
		return fmt.Sprintf("Cleared %s.", key), nil
	}
	if err := a.settings.Set(ctx, key, value); err != nil {
		return "", err
	}
	return fmt.Sprintf("Saved %s.", key), nil
}

// insightLookup resolves the lookup per call so a key saved with /key takes
// effect without a restart.
func (a *app) insightLookup(ctx context.Context) contractx.InsightLookup {
	if a.cfg.InsightsBackend != insightsCompletion {
		return strategy.StaticInsights{}
	}

	apiKey, ok, err := a.settings.Get(ctx, settings.KeyOpenAIAPIKey)
	if err != nil || !ok || strings.TrimSpace(apiKey) == "" {
		log.Ctx(ctx).Warn().Err(err).Msg("no api key for insight lookup, using static insights")
		return strategy.StaticInsights{}
	}
	model := a.llmCfg.Model
	if override, ok, _ := a.settings.Get(ctx, settings.KeyOpenAIModel); ok && strings.TrimSpace(override) != "" {
		model = override
	}

	client := openrouterx.NewClient(a.llmCfg.OpenRouterFor(apiKey, model))
	lookup, err := strategy.NewCompletionInsights(client, model, a.prompts.Insights)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("completion insights unavailable, using static insights")
		return strategy.StaticInsights{}
	}
	return lookup
}

func (a *app) outreach(ctx context.Context) (string, error) {
	leads := a.outreachTargets()
	if len(leads) == 0 {
		return "No leads to build outreach for.", nil
	}

	gen := strategy.NewGenerator(a.insightLookup(ctx), a.strategyCfg)
	strategies := gen.GenerateBatch(ctx, a.sourceProfile(), leads)

	var b strings.Builder
	now := time.Now()
	for i, s := range strategies {
		if err := a.store.AddStrategy(s.Report(now)); err != nil {
			return "", err
		}
		qualification := "unqualified"
		if a.qualifier.Qualified(leads[i]) {
			qualification = "qualified"
		}
		fmt.Fprintf(&b, "**%s** (confidence %.0f%%, %s; lead score %d, %s)\n",
			s.TargetName, s.Confidence*100, s.Quality(), leads[i].MatchScore, qualification)
		fmt.Fprintf(&b, "Icebreaker: %s\n", s.Icebreaker)
		fmt.Fprintf(&b, "1. %s\n2. %s\n\n", s.ActionSteps.Step1, s.ActionSteps.Step2)
		fmt.Fprintf(&b, "%s\n\n", s.EmailDraft)
	}
	fmt.Fprintf(&b, "Stored %d strategy reports.", len(strategies))
	return b.String(), nil
}

// outreachTargets scores every open customer in the store. Closed records
// are skipped.
func (a *app) outreachTargets() []strategy.LeadProfile {
	customers := a.store.Customers()
	leads := make([]strategy.LeadProfile, 0, len(customers))
	for _, c := range customers {
		if c.Status.IsTerminal() {
			continue
		}
		leads = append(leads, strategy.LeadFromCustomer(c))
	}
	return leads
}

// sourceProfile prefers the configured seller profile and falls back to the
// stored company profile.
func (a *app) sourceProfile() strategy.SourceProfile {
	if a.source.CompanyName != "" {
		return a.source
	}
	if company, ok := a.store.CompanyProfile(); ok {
		return strategy.SourceFromCompany(company)
	}
	return strategy.SourceProfile{}
}
