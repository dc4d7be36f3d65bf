package notify

import "errors"

var (
	// ErrNotificationNotFound is returned by Get for unknown ids.
	ErrNotificationNotFound = errors.New("notification not found")
)
