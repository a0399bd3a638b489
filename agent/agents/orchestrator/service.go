package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	"github.com/tanpawarit/Chative-Business-Assistant/agent/intent"
	nodex "github.com/tanpawarit/Chative-Business-Assistant/agent/nodes/orchestrator"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

var ErrEmptyReply = nodex.ErrEmptyReply

type Turn = nodex.Turn

type Option func(*Orchestrator)

// WithChat attaches a chat model for general inquiries. Without it every
// turn goes through the intent dispatch table.
func WithChat(chat nodex.ChatReplier) Option {
	return func(o *Orchestrator) {
		o.chat = chat
	}
}

func WithClassifier(classifier nodex.CommandClassifier) Option {
	return func(o *Orchestrator) {
		if classifier != nil {
			o.classifier = classifier
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

type Orchestrator struct {
	store      *statex.EntityStore
	classifier nodex.CommandClassifier
	dispatcher *nodex.Dispatcher
	chat       nodex.ChatReplier

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(store *statex.EntityStore, opts ...Option) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("entity store is required")
	}

	o := &Orchestrator{
		store:      store,
		classifier: intent.NewClassifier(),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	dispatcher, err := nodex.NewDispatcher(store, o.now)
	if err != nil {
		return nil, err
	}
	o.dispatcher = dispatcher

	graphRunner, err := o.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Respond maps an already classified command to its response. It only reads
// the store.
func (o *Orchestrator) Respond(ctx context.Context, command contractx.AICommand) contractx.Response {
	return o.dispatcher.Respond(ctx, command)
}

// HandleMessage runs one full turn: classify, answer, log.
func (o *Orchestrator) HandleMessage(ctx context.Context, text string) (Turn, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{Text: text})
	if err != nil {
		return Turn{}, err
	}
	return out.Turn, nil
}

func (o *Orchestrator) Store() *statex.EntityStore {
	return o.store
}
