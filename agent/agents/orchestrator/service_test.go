package orchestrator

import (
	"context"
	"strings"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/llm"
	nodex "github.com/tanpawarit/Chative-Business-Assistant/agent/nodes/orchestrator"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeChat struct {
	calls    int
	messages []string
	history  [][]contractx.ChatMessage
}

func (f *fakeChat) Reply(_ context.Context, history []contractx.ChatMessage, message string) llm.Reply {
	f.calls++
	f.messages = append(f.messages, message)
	f.history = append(f.history, history)
	return llm.Reply{Content: "chat: " + message, Source: llm.SourceModel, Model: "gpt-4"}
}

func newTestOrchestrator(t *testing.T, store *statex.EntityStore, opts ...Option) *Orchestrator {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	o, err := New(store, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return o
}

func addCustomers(t *testing.T, store *statex.EntityStore, statuses ...statex.CustomerStatus) {
	t.Helper()
	for i, status := range statuses {
		id := "cust-" + string(rune('a'+i))
		if err := store.AddCustomer(statex.CustomerProfile{
			ID:        id,
			CompanyID: "co-1",
			Name:      "Buyer " + id,
			Company:   "Buyer Co",
			Contact:   statex.ContactInfo{Email: id + "@buyer.example"},
		}); err != nil {
			t.Fatalf("AddCustomer() error = %v", err)
		}
		if status != statex.StatusProspect {
			if err := store.TransitionCustomerStatus(id, status); err != nil {
				t.Fatalf("TransitionCustomerStatus() error = %v", err)
			}
		}
	}
}

func TestNewRequiresStore(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); err == nil {
		t.Fatal("New(nil) error = nil, want error")
	}
}

func TestHandleMessageMetricsEndToEnd(t *testing.T) {
	t.Parallel()

	store := statex.NewEntityStore()
	addCustomers(t, store, statex.StatusProspect, statex.StatusQualified, statex.StatusProspect, statex.StatusProspect)
	o := newTestOrchestrator(t, store)

	turn, err := o.HandleMessage(context.Background(), "Show me the customer funnel report")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if turn.Command.Intent != contractx.IntentViewBusinessMetrics || turn.Command.Confidence != 0.9 {
		t.Fatalf("Command = %+v", turn.Command)
	}
	if !strings.Contains(turn.Response.Content, "Total Leads:** 4") {
		t.Fatalf("content missing total leads:\n%s", turn.Response.Content)
	}
	if !strings.Contains(turn.Response.Content, "25.0%") {
		t.Fatalf("content missing conversion rate:\n%s", turn.Response.Content)
	}
	if turn.Route != nodex.RouteDispatch {
		t.Fatalf("Route = %q", turn.Route)
	}

	history := store.ConversationHistory()
	if len(history) != 1 {
		t.Fatalf("history len = %d, want 1", len(history))
	}
	if history[0].ID != turn.EntryID || history[0].Input != "Show me the customer funnel report" {
		t.Fatalf("history[0] = %+v", history[0])
	}
	if !history[0].CreatedAt.Equal(fixedNow) {
		t.Fatalf("CreatedAt = %v", history[0].CreatedAt)
	}
}

func TestHandleMessagePayloads(t *testing.T) {
	t.Parallel()

	store := statex.NewEntityStore()
	o := newTestOrchestrator(t, store)
	ctx := context.Background()

	leads, err := o.HandleMessage(ctx, "Generate new leads for me")
	if err != nil {
		t.Fatalf("HandleMessage(leads) error = %v", err)
	}
	if _, ok := leads.Response.Payload.(contractx.LeadListPayload); !ok {
		t.Fatalf("leads Payload = %T", leads.Response.Payload)
	}

	strategy, err := o.HandleMessage(ctx, "Create an outreach email strategy")
	if err != nil {
		t.Fatalf("HandleMessage(strategy) error = %v", err)
	}
	if _, ok := strategy.Response.Payload.(contractx.StrategySummaryPayload); !ok {
		t.Fatalf("strategy Payload = %T", strategy.Response.Payload)
	}

	history := store.ConversationHistory()
	if len(history) != 2 {
		t.Fatalf("history len = %d, want 2", len(history))
	}
	if history[0].PayloadKind != contractx.PayloadLeadList || history[1].PayloadKind != contractx.PayloadStrategySummary {
		t.Fatalf("payload kinds = %q, %q", history[0].PayloadKind, history[1].PayloadKind)
	}
	if len(store.Customers()) != 0 || len(store.Strategies()) != 0 {
		t.Fatal("handlers must not mutate the store")
	}
}

func TestHandleMessageBlankInput(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{}
	o := newTestOrchestrator(t, statex.NewEntityStore(), WithChat(chat))

	turn, err := o.HandleMessage(context.Background(), "   ")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if turn.Command.Intent != contractx.IntentGeneralInquiry {
		t.Fatalf("Intent = %q", turn.Command.Intent)
	}
	if !strings.Contains(turn.Response.Content, "business development assistant") {
		t.Fatalf("content = %q", turn.Response.Content)
	}
	if chat.calls != 0 {
		t.Fatalf("chat calls = %d, want 0", chat.calls)
	}
}

func TestHandleMessageConverseRoute(t *testing.T) {
	t.Parallel()

	store := statex.NewEntityStore()
	chat := &fakeChat{}
	o := newTestOrchestrator(t, store, WithChat(chat))
	ctx := context.Background()

	first, err := o.HandleMessage(ctx, "What do you think about trade fairs?")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if first.Route != nodex.RouteConverse || first.Response.Content != "chat: What do you think about trade fairs?" {
		t.Fatalf("turn = %+v", first)
	}

	if _, err := o.HandleMessage(ctx, "Show analytics data"); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if chat.calls != 1 {
		t.Fatalf("chat calls = %d, want 1 (analytics dispatches)", chat.calls)
	}

	if _, err := o.HandleMessage(ctx, "Any tips for trade fairs?"); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if chat.calls != 2 {
		t.Fatalf("chat calls = %d, want 2", chat.calls)
	}
	if got := len(chat.history[1]); got != 4 {
		t.Fatalf("second chat history len = %d, want 4", got)
	}
}

func TestRespondIsExhaustive(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t, statex.NewEntityStore())
	for _, intent := range contractx.Intents() {
		resp := o.Respond(context.Background(), contractx.AICommand{Intent: intent})
		if strings.TrimSpace(resp.Content) == "" {
			t.Fatalf("Respond(%q) content is empty", intent)
		}
	}
	if len(o.Store().ConversationHistory()) != 0 {
		t.Fatal("Respond must not log conversation entries")
	}
}
