package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

type ConversationLog interface {
	AppendConversation(entry statex.ConversationEntry) statex.ConversationEntry
}

func RecordConversation(ctx context.Context, in *GraphState, conv ConversationLog) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	entry := statex.ConversationEntry{
		Input:     in.Text,
		Command:   in.Command,
		Response:  in.Response.Content,
		CreatedAt: in.Now,
	}
	if in.Response.Payload != nil {
		entry.PayloadKind = in.Response.Payload.Kind()
	}

	in.Entry = conv.AppendConversation(entry)
	log.Ctx(ctx).Debug().Str("entry_id", in.Entry.ID).Msg("conversation recorded")
	return in, nil
}
