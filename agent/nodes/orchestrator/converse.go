package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/llm"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

type ChatReplier interface {
	Reply(ctx context.Context, history []contractx.ChatMessage, message string) llm.Reply
}

type HistoryReader interface {
	ConversationHistory() []statex.ConversationEntry
}

func Converse(ctx context.Context, in *GraphState, chat ChatReplier, history HistoryReader) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	reply := chat.Reply(ctx, ChatHistory(history.ConversationHistory()), in.Text)
	log.Ctx(ctx).Debug().
		Str("source", string(reply.Source)).
		Str("model", reply.Model).
		Msg("chat reply produced")

	in.Route = RouteConverse
	in.Response = contractx.Response{Content: reply.Content}
	return in, nil
}

// ChatHistory flattens logged turns into alternating user/assistant messages.
func ChatHistory(entries []statex.ConversationEntry) []contractx.ChatMessage {
	out := make([]contractx.ChatMessage, 0, len(entries)*2)
	for _, e := range entries {
		if e.Input != "" {
			out = append(out, contractx.ChatMessage{Role: contractx.RoleUser, Content: e.Input})
		}
		if e.Response != "" {
			out = append(out, contractx.ChatMessage{Role: contractx.RoleAssistant, Content: e.Response})
		}
	}
	return out
}
