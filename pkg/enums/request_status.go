package enums

import "fmt"

// RequestStatus tracks a purchase request through its lifecycle.
type RequestStatus string

const (
	RequestStatusOpen        RequestStatus = "Open"
	RequestStatusOrdered     RequestStatus = "Ordered"
	RequestStatusBackordered RequestStatus = "Backordered"
	RequestStatusReceived    RequestStatus = "Received"
	RequestStatusCompleted   RequestStatus = "Completed"

	// Legacy values still present in older documents. Never written by this
	// code, but tolerated on read.
	RequestStatusPending RequestStatus = "Pending"
	RequestStatusClosed  RequestStatus = "Closed"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusOpen,
	RequestStatusOrdered,
	RequestStatusBackordered,
	RequestStatusReceived,
	RequestStatusCompleted,
}

// String implements fmt.Stringer.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value may be written as a request status.
func (s RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsHistory reports whether the request belongs to the history view.
func (s RequestStatus) IsHistory() bool {
	switch s {
	case RequestStatusReceived, RequestStatusCompleted, RequestStatusClosed:
		return true
	}
	return false
}

// Rank orders statuses for display: open work first, in-flight orders last.
func (s RequestStatus) Rank() int {
	switch s {
	case RequestStatusOpen:
		return 1
	case RequestStatusBackordered, RequestStatusPending:
		return 2
	case RequestStatusOrdered:
		return 3
	}
	return 99
}

// ParseRequestStatus converts raw input into a writable RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	for _, candidate := range validRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request status %q", value)
}
