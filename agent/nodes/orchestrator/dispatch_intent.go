package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
)

type Responder interface {
	Respond(ctx context.Context, command contractx.AICommand) contractx.Response
}

func DispatchIntent(ctx context.Context, in *GraphState, responder Responder) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	in.Route = RouteDispatch
	in.Response = responder.Respond(ctx, in.Command)
	return in, nil
}
