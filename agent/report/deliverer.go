package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/Chative-Business-Assistant/pkg/qstash"
)

const kindHeader = "Upstash-Forward-Report-Kind"

type Publisher interface {
	Publish(ctx context.Context, destination string, body []byte, headers map[string]string) (qstash.PublishResult, error)
	Schedule(ctx context.Context, destination, cron string, body []byte, headers map[string]string) (qstash.PublishResult, error)
}

var _ Publisher = (*qstash.Client)(nil)

// Deliverer hands digests to QStash, which forwards them to destination.
type Deliverer struct {
	publisher   Publisher
	destination string
}

func NewDeliverer(publisher Publisher, destination string) (*Deliverer, error) {
	if publisher == nil {
		return nil, errors.New("publisher is required")
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, errors.New("report destination is required")
	}
	return &Deliverer{publisher: publisher, destination: destination}, nil
}

func (d *Deliverer) Deliver(ctx context.Context, kind Kind, digest string) (string, error) {
	res, err := d.publisher.Publish(ctx, d.destination, []byte(digest), map[string]string{kindHeader: string(kind)})
	if err != nil {
		return "", fmt.Errorf("deliver %s report: %w", kind, err)
	}
	log.Ctx(ctx).Info().Str("kind", string(kind)).Str("message_id", res.MessageID).Msg("report delivered")
	return res.MessageID, nil
}

// Schedule asks QStash to call triggerURL on cron. The trigger endpoint then
// generates and delivers the report.
func (d *Deliverer) Schedule(ctx context.Context, kind Kind, cron, triggerURL string) (string, error) {
	res, err := d.publisher.Schedule(ctx, triggerURL, cron, nil, map[string]string{kindHeader: string(kind)})
	if err != nil {
		return "", fmt.Errorf("schedule %s report: %w", kind, err)
	}
	log.Ctx(ctx).Info().
		Str("kind", string(kind)).
		Str("cron", cron).
		Str("schedule_id", res.ScheduleID).
		Msg("report scheduled")
	return res.ScheduleID, nil
}
