package notify

import (
	"time"
)

// Type determines default styling and channel policy for a notification.
type Type string

const (
	TypeSuccess       Type = "success"
	TypeError         Type = "error"
	TypeWarning       Type = "warning"
	TypeInfo          Type = "info"
	TypeCollaboration Type = "collaboration"
	TypeSystem        Type = "system"
)

// Priority determines browser-push eligibility and sound behavior.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// pushEligible reports whether the priority qualifies for browser push.
func (p Priority) pushEligible() bool {
	return p == PriorityHigh || p == PriorityUrgent
}

// Source records where a notification originated. It is set once at
// creation and never changes.
type Source string

const (
	SourceLocal     Source = "local"
	SourceWebSocket Source = "websocket"
	SourceAPI       Source = "api"
)

// Notification is the core domain model. Callers fill in the content
// fields; ID, Timestamp, Read and a defaulted Source are assigned by the
// Center at creation time and must not be supplied.
type Notification struct {
	ID        string         `json:"id"`
	Type      Type           `json:"type"`
	Priority  Priority       `json:"priority"`
	Title     string         `json:"title,omitempty"`
	Message   string         `json:"message"`
	Duration  time.Duration  `json:"duration"`
	Persist   bool           `json:"persist"`
	Timestamp time.Time      `json:"timestamp"`
	Read      bool           `json:"read"`
	Source    Source         `json:"source"`
	Data      map[string]any `json:"data,omitempty"` // opaque payload for UI action handlers
}
