package state

type CustomerStatus string

const (
	StatusProspect    CustomerStatus = "prospect"
	StatusQualified   CustomerStatus = "qualified"
	StatusProposal    CustomerStatus = "proposal"
	StatusNegotiation CustomerStatus = "negotiation"
	StatusClosed      CustomerStatus = "closed"
)

// FunnelStages returns the lead statuses in funnel order.
func FunnelStages() []CustomerStatus {
	return []CustomerStatus{StatusProspect, StatusQualified, StatusProposal, StatusNegotiation, StatusClosed}
}

func (s CustomerStatus) rank() int {
	for i, stage := range FunnelStages() {
		if stage == s {
			return i
		}
	}
	return -1
}

func (s CustomerStatus) Valid() bool {
	return s.rank() >= 0
}

func (s CustomerStatus) IsTerminal() bool {
	return s == StatusClosed
}

// CanTransitionTo reports whether moving from s to next keeps the funnel
// monotonic. Forward skips are allowed; closed is reachable from every
// non-terminal stage and nothing leaves closed.
func (s CustomerStatus) CanTransitionTo(next CustomerStatus) bool {
	if !s.Valid() || !next.Valid() || s.IsTerminal() {
		return false
	}
	return next.rank() > s.rank()
}

// Label is the human-facing name used in digests.
func (s CustomerStatus) Label() string {
	switch s {
	case StatusProspect:
		return "New Prospect"
	case StatusQualified:
		return "Qualified Lead"
	case StatusProposal:
		return "Proposal Sent"
	case StatusNegotiation:
		return "In Negotiation"
	case StatusClosed:
		return "Closed"
	default:
		return string(s)
	}
}
