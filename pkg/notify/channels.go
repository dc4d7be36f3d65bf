package notify

import "context"

// PermissionState is the browser/system push permission as last reported
// by the platform.
type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionUnset   PermissionState = "unset"
)

// SoundPlayer plays an audio cue by URL. Playback is fire-and-forget; the
// center logs failures and never surfaces them.
type SoundPlayer interface {
	Play(url string) error
}

// Pusher is the system-level push notification collaborator. Push only
// fires for high and urgent priorities, and only after the user granted
// permission.
type Pusher interface {
	// RequestPermission asks the platform for push permission.
	// Denial is a valid outcome, not an error.
	RequestPermission(ctx context.Context) (bool, error)

	// PermissionState returns the current permission without prompting.
	PermissionState() PermissionState

	// Push displays a system-level notification.
	Push(title, message string) error
}

// NoopSoundPlayer ignores playback requests. It is the default when no
// sound capability is injected.
type NoopSoundPlayer struct{}

func (NoopSoundPlayer) Play(string) error { return nil }

// NoopPusher reports permission as unset and ignores pushes. It is the
// default when no push capability is injected.
type NoopPusher struct{}

func (NoopPusher) RequestPermission(context.Context) (bool, error) { return false, nil }

func (NoopPusher) PermissionState() PermissionState { return PermissionUnset }

func (NoopPusher) Push(string, string) error { return nil }
