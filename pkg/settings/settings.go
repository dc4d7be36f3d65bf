package settings

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings holds the user-facing notification preferences consumed by the
// notification center. The center treats this record as injected
// configuration; persistence is owned by a Store implementation.
type Settings struct {
	// Per-channel toggles. A disabled channel receives nothing regardless
	// of notification priority.
	EnableWebSocketNotifications     bool `env:"NOTIFY_ENABLE_WEBSOCKET" envDefault:"true" json:"enable_websocket_notifications"`
	EnableBrowserNotifications       bool `env:"NOTIFY_ENABLE_BROWSER" envDefault:"true" json:"enable_browser_notifications"`
	EnableSoundNotifications         bool `env:"NOTIFY_ENABLE_SOUND" envDefault:"true" json:"enable_sound_notifications"`
	EnableCollaborationNotifications bool `env:"NOTIFY_ENABLE_COLLABORATION" envDefault:"true" json:"enable_collaboration_notifications"`
	EnableSystemNotifications        bool `env:"NOTIFY_ENABLE_SYSTEM" envDefault:"true" json:"enable_system_notifications"`

	// MaxNotificationsDisplay caps the retained notification list.
	MaxNotificationsDisplay int `env:"NOTIFY_MAX_DISPLAY" envDefault:"5" json:"max_notifications_display"`

	// DefaultDuration is applied to non-persistent notifications that do
	// not carry an explicit duration.
	DefaultDuration time.Duration `env:"NOTIFY_DEFAULT_DURATION" envDefault:"5s" json:"default_duration"`

	// Sounds maps a notification type name to the sound URL played for it.
	Sounds map[string]string `env:"NOTIFY_SOUNDS" envSeparator:"," envKeyValSeparator:"=" json:"sounds,omitempty"`
}

// Defaults returns the settings used when nothing has been persisted yet.
func Defaults() Settings {
	return Settings{
		EnableWebSocketNotifications:     true,
		EnableBrowserNotifications:       true,
		EnableSoundNotifications:         true,
		EnableCollaborationNotifications: true,
		EnableSystemNotifications:        true,
		MaxNotificationsDisplay:          5,
		DefaultDuration:                  5 * time.Second,
	}
}

// Normalized returns a copy with out-of-range values replaced by defaults,
// so a corrupted persisted record cannot disable the notification list.
func (s Settings) Normalized() Settings {
	d := Defaults()
	if s.MaxNotificationsDisplay < 1 {
		s.MaxNotificationsDisplay = d.MaxNotificationsDisplay
	}
	if s.DefaultDuration < 0 {
		s.DefaultDuration = d.DefaultDuration
	}
	return s
}

var defaultEnvLoaded sync.Once

// Load populates Settings from environment variables, loading the default
// .env file first if one exists.
func Load() (Settings, error) {
	defaultEnvLoaded.Do(func() {
		// The .env file might not exist and that's ok.
		_ = godotenv.Load()
	})

	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, errors.Join(ErrParsingSettings, err)
	}
	return s, nil
}
