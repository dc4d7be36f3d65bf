package settings

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileSettings mirrors Settings with pointer fields so that keys absent from
// the file keep their default values. Durations are written human-readable
// ("5s", "800ms") rather than as nanosecond integers.
type fileSettings struct {
	EnableWebSocketNotifications     *bool             `yaml:"enable_websocket_notifications"`
	EnableBrowserNotifications       *bool             `yaml:"enable_browser_notifications"`
	EnableSoundNotifications         *bool             `yaml:"enable_sound_notifications"`
	EnableCollaborationNotifications *bool             `yaml:"enable_collaboration_notifications"`
	EnableSystemNotifications        *bool             `yaml:"enable_system_notifications"`
	MaxNotificationsDisplay          *int              `yaml:"max_notifications_display"`
	DefaultDuration                  *string           `yaml:"default_duration"`
	Sounds                           map[string]string `yaml:"sounds"`
}

// FromFile reads settings from a YAML file, overlaying the file's keys on
// top of Defaults().
func FromFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	var f fileSettings
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Settings{}, errors.Join(ErrInvalidSettingsFile, err)
	}

	s := Defaults()
	if f.EnableWebSocketNotifications != nil {
		s.EnableWebSocketNotifications = *f.EnableWebSocketNotifications
	}
	if f.EnableBrowserNotifications != nil {
		s.EnableBrowserNotifications = *f.EnableBrowserNotifications
	}
	if f.EnableSoundNotifications != nil {
		s.EnableSoundNotifications = *f.EnableSoundNotifications
	}
	if f.EnableCollaborationNotifications != nil {
		s.EnableCollaborationNotifications = *f.EnableCollaborationNotifications
	}
	if f.EnableSystemNotifications != nil {
		s.EnableSystemNotifications = *f.EnableSystemNotifications
	}
	if f.MaxNotificationsDisplay != nil {
		s.MaxNotificationsDisplay = *f.MaxNotificationsDisplay
	}
	if f.DefaultDuration != nil {
		d, err := time.ParseDuration(*f.DefaultDuration)
		if err != nil {
			return Settings{}, errors.Join(ErrInvalidSettingsFile, err)
		}
		s.DefaultDuration = d
	}
	if f.Sounds != nil {
		s.Sounds = f.Sounds
	}

	return s.Normalized(), nil
}
