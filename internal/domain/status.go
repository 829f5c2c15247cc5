package domain

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// AllStatuses lists statuses in lifecycle order.
var AllStatuses = []TicketStatus{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

func (s TicketStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether a ticket in s may move to next.
// Any non-closed status may move anywhere; a closed ticket may only be reopened.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s == StatusClosed {
		return next == StatusOpen
	}
	return true
}

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

var AllPriorities = []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh}

func (p TicketPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
