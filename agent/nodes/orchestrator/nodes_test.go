package orchestratornode

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/intent"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/llm"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

type fakeChat struct {
	history []contractx.ChatMessage
	message string
}

func (f *fakeChat) Reply(_ context.Context, history []contractx.ChatMessage, message string) llm.Reply {
	f.history = history
	f.message = message
	return llm.Reply{Content: "model says hi", Source: llm.SourceModel, Model: "gpt-4"}
}

func TestPrepareTurnKeepsBlankInput(t *testing.T) {
	t.Parallel()

	st, err := PrepareTurn(GraphInput{Text: "   "}, clock)
	if err != nil {
		t.Fatalf("PrepareTurn() error = %v", err)
	}
	if st.Text != "" || !st.Now.Equal(fixedNow) {
		t.Fatalf("state = %+v", st)
	}
}

func TestSelectRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		intent contractx.Intent
		text   string
		chat   bool
		want   string
	}{
		{"general with chat", contractx.IntentGeneralInquiry, "what can you do", true, RouteConverse},
		{"general without chat", contractx.IntentGeneralInquiry, "what can you do", false, RouteDispatch},
		{"blank general with chat", contractx.IntentGeneralInquiry, "", true, RouteDispatch},
		{"metrics with chat", contractx.IntentViewBusinessMetrics, "show funnel", true, RouteDispatch},
	}
	for _, tt := range tests {
		st := &GraphState{Text: tt.text, Command: contractx.AICommand{Intent: tt.intent}}
		got, err := SelectRoute(st, tt.chat)
		if err != nil {
			t.Fatalf("%s: SelectRoute() error = %v", tt.name, err)
		}
		if got != tt.want || st.Route != tt.want {
			t.Fatalf("%s: SelectRoute() = %q, want %q", tt.name, got, tt.want)
		}
	}

	if _, err := SelectRoute(nil, true); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("SelectRoute(nil) error = %v", err)
	}
}

func TestClassifyAndDispatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st, _ := PrepareTurn(GraphInput{Text: "Show me the sales funnel"}, clock)
	st, err := ClassifyCommand(ctx, st, intent.NewClassifier())
	if err != nil {
		t.Fatalf("ClassifyCommand() error = %v", err)
	}
	if st.Command.Intent != contractx.IntentViewBusinessMetrics {
		t.Fatalf("Intent = %q", st.Command.Intent)
	}

	st, err = DispatchIntent(ctx, st, newDispatcher(t, seededStore(t)))
	if err != nil {
		t.Fatalf("DispatchIntent() error = %v", err)
	}
	if st.Route != RouteDispatch || st.Response.Content == "" {
		t.Fatalf("state = %+v", st)
	}
}

func TestConverseUsesHistory(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	store.AppendConversation(statex.ConversationEntry{Input: "hello", Response: "hi there"})

	chat := &fakeChat{}
	st := &GraphState{Text: "tell me a joke", Command: contractx.AICommand{Intent: contractx.IntentGeneralInquiry}}
	st, err := Converse(context.Background(), st, chat, store)
	if err != nil {
		t.Fatalf("Converse() error = %v", err)
	}
	if st.Response.Content != "model says hi" || st.Route != RouteConverse {
		t.Fatalf("state = %+v", st)
	}
	if chat.message != "tell me a joke" {
		t.Fatalf("message = %q", chat.message)
	}
	if len(chat.history) != 2 || chat.history[0].Role != contractx.RoleUser || chat.history[1].Role != contractx.RoleAssistant {
		t.Fatalf("history = %+v", chat.history)
	}
}

func TestRecordAndFinalize(t *testing.T) {
	t.Parallel()

	store := seededStore(t)
	st := &GraphState{
		Text:     "generate leads",
		Now:      fixedNow,
		Command:  contractx.AICommand{Intent: contractx.IntentGenerateLeads},
		Route:    RouteDispatch,
		Response: contractx.Response{Content: "  leads  ", Payload: contractx.LeadListPayload{}},
	}

	st, err := RecordConversation(context.Background(), st, store)
	if err != nil {
		t.Fatalf("RecordConversation() error = %v", err)
	}
	history := store.ConversationHistory()
	if len(history) != 1 || history[0].PayloadKind != contractx.PayloadLeadList || history[0].ID == "" {
		t.Fatalf("history = %+v", history)
	}

	out, err := FinalizeReply(st)
	if err != nil {
		t.Fatalf("FinalizeReply() error = %v", err)
	}
	if out.Turn.Response.Content != "leads" || out.Turn.EntryID != history[0].ID {
		t.Fatalf("turn = %+v", out.Turn)
	}

	if _, err := FinalizeReply(&GraphState{}); !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("FinalizeReply(empty) error = %v", err)
	}
}
