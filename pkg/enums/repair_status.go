package enums

import "fmt"

// RepairStatus tracks a repair ticket's lifecycle.
// in_progress -> scheduled -> completed; declined is reachable from
// in_progress or scheduled. completed and declined are terminal.
type RepairStatus string

const (
	RepairStatusInProgress RepairStatus = "in_progress"
	RepairStatusScheduled  RepairStatus = "scheduled"
	RepairStatusCompleted  RepairStatus = "completed"
	RepairStatusDeclined   RepairStatus = "declined"
)

var validRepairStatuses = []RepairStatus{
	RepairStatusInProgress,
	RepairStatusScheduled,
	RepairStatusCompleted,
	RepairStatusDeclined,
}

// String implements fmt.Stringer.
func (s RepairStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RepairStatus.
func (s RepairStatus) IsValid() bool {
	for _, candidate := range validRepairStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s RepairStatus) IsTerminal() bool {
	return s == RepairStatusCompleted || s == RepairStatusDeclined
}

// ParseRepairStatus converts raw input into a RepairStatus.
func ParseRepairStatus(value string) (RepairStatus, error) {
	for _, candidate := range validRepairStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid repair status %q", value)
}
