package enums

import "fmt"

// InventoryStatus describes the expiry-check state of a tracked unit item.
type InventoryStatus string

const (
	InventoryStatusUnset    InventoryStatus = ""
	InventoryStatusPending  InventoryStatus = "Pending"
	InventoryStatusOK       InventoryStatus = "OK"
	InventoryStatusReplaced InventoryStatus = "Replaced"
)

var validInventoryStatuses = []InventoryStatus{
	InventoryStatusPending,
	InventoryStatusOK,
	InventoryStatusReplaced,
}

// String implements fmt.Stringer.
func (s InventoryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known InventoryStatus. Unset counts.
func (s InventoryStatus) IsValid() bool {
	if s == InventoryStatusUnset {
		return true
	}
	for _, candidate := range validInventoryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseInventoryStatus converts raw input into an InventoryStatus.
func ParseInventoryStatus(value string) (InventoryStatus, error) {
	if value == "" {
		return InventoryStatusUnset, nil
	}
	for _, candidate := range validInventoryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory status %q", value)
}
