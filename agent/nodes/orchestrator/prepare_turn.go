package orchestratornode

import (
	"strings"
	"time"
)

// PrepareTurn never rejects input: blank text still classifies to the
// default intent and gets the capability overview.
func PrepareTurn(in GraphInput, nowFn func() time.Time) (*GraphState, error) {
	return &GraphState{
		Text: strings.TrimSpace(in.Text),
		Now:  nowFn().UTC(),
	}, nil
}
