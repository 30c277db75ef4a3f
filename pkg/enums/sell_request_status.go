package enums

import "fmt"

// SellRequestStatus tracks a sell-back intake request.
// converted and rejected are terminal.
type SellRequestStatus string

const (
	SellRequestStatusPending   SellRequestStatus = "pending"
	SellRequestStatusConverted SellRequestStatus = "converted"
	SellRequestStatusRejected  SellRequestStatus = "rejected"
)

var validSellRequestStatuses = []SellRequestStatus{
	SellRequestStatusPending,
	SellRequestStatusConverted,
	SellRequestStatusRejected,
}

// String implements fmt.Stringer.
func (s SellRequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SellRequestStatus.
func (s SellRequestStatus) IsValid() bool {
	for _, candidate := range validSellRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s SellRequestStatus) IsTerminal() bool {
	return s == SellRequestStatusConverted || s == SellRequestStatusRejected
}

// ParseSellRequestStatus converts raw input into a SellRequestStatus.
func ParseSellRequestStatus(value string) (SellRequestStatus, error) {
	for _, candidate := range validSellRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sell request status %q", value)
}
