// Package notify implements the client-side notification center: identity,
// ordering, channel fan-out and expiry for in-app notifications.
//
// A single Center is constructed at application start and passed to
// consumers. Optional channels are injected as capabilities; anything not
// injected is a no-op:
//
//	s, _ := settings.Load()
//	center := notify.New(s,
//	    notify.WithSoundPlayer(audioPlayer),
//	    notify.WithPusher(systemPush),
//	    notify.WithLogger(log),
//	)
//	defer center.Close()
//
// # Showing notifications
//
// Show accepts a notification value and always succeeds; the assigned id is
// returned synchronously while sound and push fire in the background:
//
//	id := center.Show(notify.Notification{
//	    Type:    notify.TypeInfo,
//	    Message: "Analysis complete",
//	})
//
// The per-type wrappers apply the default policies (errors persist and are
// push-eligible, warnings stay longer, and so on), with options taking
// precedence:
//
//	center.Error("Sync failed", notify.WithTitle("Workspace"))
//	center.Success("Saved", notify.WithDuration(2*time.Second))
//
// # Lifecycle
//
// Non-persistent notifications auto-dismiss after their duration. Hide,
// ClearAll and ClearByType remove entries immediately; a timer firing after
// its entry was removed is a no-op. The retained list is capped at
// MaxNotificationsDisplay, evicting the oldest entries first.
//
// # Real-time channel
//
// AttachStream wires an inbound event stream (see pkg/realtime). Inbound
// messages are dispatched by their type discriminator; unknown types are
// ignored and malformed payloads are logged and dropped.
//
// # Observing changes
//
// UI components subscribe to list-change events and re-render from List():
//
//	sub := center.Subscribe(ctx)
//	for range sub.Events() {
//	    render(center.List())
//	}
package notify
