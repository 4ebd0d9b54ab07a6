package order

import "database/sql/driver"

// Status is the closed set of order lifecycle states. The wire values match
// what the kitchen display and customer views render.
type Status string

const (
	StatusReceived   Status = "Received"
	StatusInProgress Status = "In Progress"
	StatusReady      Status = "Ready"
	StatusServed     Status = "Served"
	StatusCancelled  Status = "Cancelled"
)

// next holds the single legal forward transition per status. Terminal
// statuses have no entry. Cancellation is handled separately because it
// carries extra eligibility conditions.
var next = map[Status]Status{
	StatusReceived:   StatusInProgress,
	StatusInProgress: StatusReady,
	StatusReady:      StatusServed,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

// ParseStatus maps a raw string to a Status. Unrecognized values fail with
// ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReceived, StatusInProgress, StatusReady, StatusServed, StatusCancelled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusServed || s == StatusCancelled
}

// CanTransitionTo reports whether target is reachable from s in one step.
// Only the immediate forward successor is reachable; no skipping, no going
// back. Received -> Cancelled is structurally legal here, but carries extra
// eligibility conditions enforced by the service.
func (s Status) CanTransitionTo(target Status) bool {
	if target == StatusCancelled {
		return s == StatusReceived
	}

	return next[s] == target
}
