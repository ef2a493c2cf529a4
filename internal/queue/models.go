package queue

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a work item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Priority bounds. Lower numbers are served first.
const (
	PriorityHighest = 1
	PriorityLowest  = 5
)

// ClampPriority forces a priority into the valid 1..5 range,
// defaulting to lowest when unset.
func ClampPriority(priority int) int {
	if priority <= 0 {
		return PriorityLowest
	}
	if priority < PriorityHighest {
		return PriorityHighest
	}
	if priority > PriorityLowest {
		return PriorityLowest
	}
	return priority
}

// WorkItem represents one unit of follow-up action on a content item.
type WorkItem struct {
	ID          int64
	ItemID      int64
	ItemType    string
	Action      string
	Priority    int
	Status      Status
	Reason      string
	CreatedBy   string
	AssignedTo  string
	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	Result      string
}
