package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpen       TicketStatus = "Open"
	StatusInProgress TicketStatus = "In_Progress"
	StatusResolved   TicketStatus = "Resolved"
	StatusReopened   TicketStatus = "Reopened"
	StatusClosed     TicketStatus = "Closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusResolved:   true,
	StatusReopened:   true,
	StatusClosed:     true,
}

// AllStatuses lists statuses in the order status counters report them.
var AllStatuses = []TicketStatus{StatusOpen, StatusInProgress, StatusResolved, StatusReopened, StatusClosed}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

func NewTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}
