package settings

import "context"

// Store persists notification settings in an external key-value store.
// The notification center never touches a Store directly; the application
// loads settings at startup and saves them when the user changes preferences.
type Store interface {
	// Load returns the persisted settings, or Defaults() when nothing
	// has been saved yet.
	Load(ctx context.Context) (Settings, error)

	// Save persists the settings, replacing any previous record.
	Save(ctx context.Context, s Settings) error
}
