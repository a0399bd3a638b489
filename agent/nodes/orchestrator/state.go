package orchestratornode

import (
	"errors"
	"time"

	contractx "github.com/tanpawarit/Chative-Business-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Business-Assistant/agent/state"
)

var ErrEmptyReply = errors.New("turn produced an empty reply")

// Route names double as graph node keys.
const (
	RouteDispatch = "dispatch_intent"
	RouteConverse = "converse"
)

type GraphInput struct {
	Text string
}

// Turn is the result of one HandleMessage call.
type Turn struct {
	EntryID  string              `json:"entry_id"`
	Input    string              `json:"input"`
	Command  contractx.AICommand `json:"command"`
	Response contractx.Response  `json:"response"`
	Route    string              `json:"route"`
}

type GraphOutput struct {
	Turn Turn
}

type GraphState struct {
	Text string
	Now  time.Time

	Command  contractx.AICommand
	Route    string
	Response contractx.Response

	Entry statex.ConversationEntry
}
