package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/report"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/settings"
	configx "github.com/tanpawarit/Chative-Business-Assistant/pkg/config"
	_ "github.com/tanpawarit/Chative-Business-Assistant/pkg/logger/autoload"
)

const (
	backendMemory   = "memory"
	backendUpstash  = "upstash"
	backendPostgres = "postgres"

	insightsStatic     = "static"
	insightsCompletion = "completion"
)

type AppConfig struct {
	DeviceID          string `envconfig:"DEVICE_ID" default:"local"`
	SettingsBackend   string `envconfig:"SETTINGS_BACKEND" default:"memory"`
	InsightsBackend   string `envconfig:"INSIGHTS_BACKEND" default:"static"`
	SeedDemo          bool   `envconfig:"SEED_DEMO" default:"true"`
	ReportDestination string `envconfig:"REPORT_DESTINATION"`
	ReportPublicURL   string `envconfig:"REPORT_PUBLIC_URL"`
	MorningCron       string `envconfig:"MORNING_CRON" default:"0 8 * * 1-5"`
	WeeklyCron        string `envconfig:"WEEKLY_CRON" default:"0 17 * * 5"`
	WebhookAddr       string `envconfig:"WEBHOOK_ADDR"`
}

func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.DeviceID) == "" {
		return errors.New("device id is required")
	}
	switch c.SettingsBackend {
	case backendMemory, backendUpstash, backendPostgres:
	default:
		return fmt.Errorf("unknown settings backend %q", c.SettingsBackend)
	}
	switch c.InsightsBackend {
	case insightsStatic, insightsCompletion:
	default:
		return fmt.Errorf("unknown insights backend %q", c.InsightsBackend)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	appCfg := configx.MustNew[AppConfig]("APP")

	a, err := newApp(ctx, *appCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build assistant")
	}
	defer a.Close()

	if appCfg.WebhookAddr != "" {
		go a.serveWebhook(appCfg.WebhookAddr)
	}

	if err := a.run(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("assistant stopped")
	}
}

func (a *app) run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Business assistant ready. Type a request, /help for commands, /quit to exit.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "/quit" || line == "/exit" {
			return nil
		}

		reply, err := a.handleLine(ctx, line)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("input", line).Msg("turn failed")
			fmt.Fprintln(out, "Sorry, something went wrong with that request.")
			continue
		}
		fmt.Fprintln(out, reply)
	}
}

func (a *app) handleLine(ctx context.Context, line string) (string, error) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		return helpText, nil
	case "/chat":
		if a.chat == nil {
			return "", errors.New("chat service is not configured")
		}
		history := a.conversationHistory()
		return a.chat.Reply(ctx, history, arg).Content, nil
	case "/morning", "/weekly":
		return a.report(ctx, report.Kind(strings.TrimPrefix(cmd, "/")))
	case "/schedule":
		return a.schedule(ctx)
	case "/outreach":
		return a.outreach(ctx)
	case "/key":
		return a.setSetting(ctx, settings.KeyOpenAIAPIKey, arg)
	case "/model":
		return a.setSetting(ctx, settings.KeyOpenAIModel, arg)
	}

	turn, err := a.orchestrator.HandleMessage(ctx, line)
	if err != nil {
		return "", err
	}
	log.Ctx(ctx).Info().
		Str("intent", string(turn.Command.Intent)).
		Float64("confidence", turn.Command.Confidence).
		Str("route", turn.Route).
		Msg("turn handled")
	return turn.Response.Content, nil
}

const helpText = `Commands:
  /chat <message>   talk to the chat model directly
  /morning          morning business report
  /weekly           weekly business summary
  /schedule         register report schedules with QStash
  /outreach         generate personalized outreach for stored leads
  /key <api key>    store the OpenAI API key for this device
  /model <name>     override the chat model for this device
  /quit             exit
Anything else is classified and answered by the assistant.`
