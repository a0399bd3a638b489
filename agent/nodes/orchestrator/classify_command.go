package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
)

type CommandClassifier interface {
	Classify(text string) contractx.AICommand
}

func ClassifyCommand(ctx context.Context, in *GraphState, classifier CommandClassifier) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Command = classifier.Classify(in.Text)
	log.Ctx(ctx).Debug().
		Str("intent", string(in.Command.Intent)).
		Str("type", string(in.Command.Type)).
		Float64("confidence", in.Command.Confidence).
		Msg("command classified")
	return in, nil
}

// SelectRoute sends general inquiries to the chat model when one is attached.
func SelectRoute(in *GraphState, chatAttached bool) (string, error) {
	if in == nil {
		return "", fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if chatAttached && in.Command.Intent == contractx.IntentGeneralInquiry && in.Text != "" {
		in.Route = RouteConverse
	} else {
		in.Route = RouteDispatch
	}
	return in.Route, nil
}
