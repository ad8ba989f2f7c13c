package enums

import "fmt"

// BulkOrderStatus tracks staff follow-up on a bulk order inquiry.
// Any status may move to any other; there is no transition machine here.
type BulkOrderStatus string

const (
	BulkOrderStatusNew       BulkOrderStatus = "new"
	BulkOrderStatusContacted BulkOrderStatus = "contacted"
	BulkOrderStatusCompleted BulkOrderStatus = "completed"
)

var validBulkOrderStatuses = []BulkOrderStatus{
	BulkOrderStatusNew,
	BulkOrderStatusContacted,
	BulkOrderStatusCompleted,
}

// String implements fmt.Stringer.
func (b BulkOrderStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BulkOrderStatus.
func (b BulkOrderStatus) IsValid() bool {
	for _, candidate := range validBulkOrderStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBulkOrderStatus converts raw input into a BulkOrderStatus.
func ParseBulkOrderStatus(value string) (BulkOrderStatus, error) {
	for _, candidate := range validBulkOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bulk order status %q", value)
}
