package orchestratornode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	resp := in.Response
	resp.Content = strings.TrimSpace(resp.Content)
	if resp.Content == "" {
		return GraphOutput{}, fmt.Errorf("%w: intent=%s", ErrEmptyReply, in.Command.Intent)
	}

	return GraphOutput{Turn: Turn{
		EntryID:  in.Entry.ID,
		Input:    in.Text,
		Command:  in.Command,
		Response: resp,
		Route:    in.Route,
	}}, nil
}
