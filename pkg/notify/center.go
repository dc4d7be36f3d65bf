package notify

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thinklens/clientkit/pkg/logger"
	"github.com/thinklens/clientkit/pkg/settings"
)

// Per-type defaults applied by the convenience wrappers. Caller options
// take precedence.
const (
	warningDuration       = 8 * time.Second
	collaborationDuration = 10 * time.Second

	// defaultPushTitle is the push payload title when the notification
	// carries none.
	defaultPushTitle = "ThinkLens"
)

// Center is the single authority for notification identity, ordering,
// channel fan-out and expiry. One Center is constructed at application
// start and handed to consumers; optional channels (sound, push, the
// real-time stream) are injected as capabilities and default to no-ops.
type Center struct {
	settings    settings.Settings
	sound       SoundPlayer
	pusher      Pusher
	logger      *slog.Logger
	now         func() time.Time
	dedupWindow time.Duration

	mu     sync.Mutex
	list   []Notification // most recent first
	timers map[string]*time.Timer
	recent map[string]dedupEntry // fingerprint -> last sighting
	stream Stream
	closed bool

	feed *feed
}

// CenterOption configures a Center.
type CenterOption func(*Center)

// WithSoundPlayer injects the audio channel.
func WithSoundPlayer(p SoundPlayer) CenterOption {
	return func(c *Center) {
		if p != nil {
			c.sound = p
		}
	}
}

// WithPusher injects the system-level push channel.
func WithPusher(p Pusher) CenterOption {
	return func(c *Center) {
		if p != nil {
			c.pusher = p
		}
	}
}

// WithLogger sets the logger for the Center.
func WithLogger(l *slog.Logger) CenterOption {
	return func(c *Center) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source. Test seam.
func WithClock(now func() time.Time) CenterOption {
	return func(c *Center) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDedupWindow sets how long an identical type+title+message collapses
// into the existing entry instead of creating a new one. Zero disables
// deduplication.
func WithDedupWindow(d time.Duration) CenterOption {
	return func(c *Center) { c.dedupWindow = d }
}

// WithFeedBuffer sets the per-subscriber event buffer size.
func WithFeedBuffer(size int) CenterOption {
	return func(c *Center) { c.feed.bufferSize = max(size, 1) }
}

// New creates a notification center with the given settings. Absent
// capabilities are no-ops, so a bare New(settings.Defaults()) is a fully
// functional in-app-only center.
func New(s settings.Settings, opts ...CenterOption) *Center {
	c := &Center{
		settings:    s.Normalized(),
		sound:       NoopSoundPlayer{},
		pusher:      NoopPusher{},
		logger:      slog.Default(),
		now:         time.Now,
		dedupWindow: 2 * time.Second,
		timers:      make(map[string]*time.Timer),
		recent:      make(map[string]dedupEntry),
		feed:        newFeed(16),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Show records a notification and returns its assigned id. It never fails:
// the entry is always added to the in-app list, and the secondary channels
// (sound, push) are best-effort. ID, Timestamp and Read are assigned here
// regardless of what the caller supplied.
func (c *Center) Show(n Notification) string {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ""
	}

	if id, ok := c.dedupeLocked(n); ok {
		c.mu.Unlock()
		return id
	}

	n.ID = uuid.New().String()
	n.Timestamp = c.now()
	n.Read = false
	if n.Source == "" {
		n.Source = SourceLocal
	}
	if n.Priority == "" {
		n.Priority = PriorityNormal
	}
	if n.Duration == 0 && !n.Persist {
		n.Duration = c.settings.DefaultDuration
	}

	c.list = slices.Insert(c.list, 0, n)
	evicted := c.truncateLocked()
	c.rememberLocked(n)

	if !n.Persist && n.Duration > 0 {
		id := n.ID
		c.timers[id] = time.AfterFunc(n.Duration, func() { c.expire(id) })
	}
	s := c.settings
	c.mu.Unlock()

	c.feed.publish(Event{Kind: EventAdded, Notification: n})
	for _, old := range evicted {
		c.feed.publish(Event{Kind: EventRemoved, Notification: old})
	}
	c.fanOut(n, s)

	return n.ID
}

// Success shows a success notification. Auto-dismisses after the settings
// default duration.
func (c *Center) Success(message string, opts ...Option) string {
	return c.Show(applyOptions(Notification{
		Type:    TypeSuccess,
		Message: message,
	}, opts))
}

// Error shows an error notification. Errors persist until dismissed and
// are push-eligible.
func (c *Center) Error(message string, opts ...Option) string {
	return c.Show(applyOptions(Notification{
		Type:     TypeError,
		Message:  message,
		Priority: PriorityHigh,
		Persist:  true,
	}, opts))
}

// Warning shows a warning notification with a longer dismiss delay.
func (c *Center) Warning(message string, opts ...Option) string {
	return c.Show(applyOptions(Notification{
		Type:     TypeWarning,
		Message:  message,
		Duration: warningDuration,
	}, opts))
}

// Info shows an informational notification.
func (c *Center) Info(message string, opts ...Option) string {
	return c.Show(applyOptions(Notification{
		Type:    TypeInfo,
		Message: message,
	}, opts))
}

// Collaboration shows a collaboration notification.
func (c *Center) Collaboration(message string, opts ...Option) string {
	return c.Show(applyOptions(Notification{
		Type:     TypeCollaboration,
		Message:  message,
		Duration: collaborationDuration,
	}, opts))
}

// System shows a system notification. System notices persist until
// dismissed and are push-eligible.
func (c *Center) System(message string, opts ...Option) string {
	return c.Show(applyOptions(Notification{
		Type:     TypeSystem,
		Message:  message,
		Priority: PriorityHigh,
		Persist:  true,
	}, opts))
}

// Hide removes the notification with the given id. Hiding an absent id is
// a no-op, so repeated dismissal is safe.
func (c *Center) Hide(id string) {
	c.mu.Lock()
	i := c.indexOfLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	n := c.list[i]
	c.removeAtLocked(i)
	c.mu.Unlock()

	c.feed.publish(Event{Kind: EventRemoved, Notification: n})
}

// MarkRead marks a notification as read. Read-ness is sticky: there is no
// way back to unread. Unknown ids are ignored.
func (c *Center) MarkRead(id string) {
	c.mu.Lock()
	i := c.indexOfLocked(id)
	if i < 0 || c.list[i].Read {
		c.mu.Unlock()
		return
	}
	c.list[i].Read = true
	n := c.list[i]
	c.mu.Unlock()

	c.feed.publish(Event{Kind: EventRead, Notification: n})
}

// MarkAllRead marks every retained notification as read. Order and content
// of the list are otherwise unchanged.
func (c *Center) MarkAllRead() {
	c.mu.Lock()
	var changed []Notification
	for i := range c.list {
		if !c.list[i].Read {
			c.list[i].Read = true
			changed = append(changed, c.list[i])
		}
	}
	c.mu.Unlock()

	for _, n := range changed {
		c.feed.publish(Event{Kind: EventRead, Notification: n})
	}
}

// ClearAll empties the list unconditionally and cancels all pending
// auto-dismiss timers.
func (c *Center) ClearAll() {
	c.mu.Lock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	cleared := len(c.list) > 0
	c.list = nil
	c.mu.Unlock()

	if cleared {
		c.feed.publish(Event{Kind: EventCleared})
	}
}

// ClearByType removes all notifications of the given type.
func (c *Center) ClearByType(t Type) {
	c.mu.Lock()
	var kept, removed []Notification
	for _, n := range c.list {
		if n.Type == t {
			removed = append(removed, n)
			c.stopTimerLocked(n.ID)
			continue
		}
		kept = append(kept, n)
	}
	c.list = kept
	c.mu.Unlock()

	for _, n := range removed {
		c.feed.publish(Event{Kind: EventRemoved, Notification: n})
	}
}

// List returns a copy of the retained notifications, most recent first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.list)
}

// Get returns a copy of the notification with the given id, or
// ErrNotificationNotFound.
func (c *Center) Get(id string) (*Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOfLocked(id)
	if i < 0 {
		return nil, ErrNotificationNotFound
	}
	n := c.list[i]
	return &n, nil
}

// UnreadCount returns the number of retained unread notifications.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, n := range c.list {
		if !n.Read {
			count++
		}
	}
	return count
}

// Settings returns the settings the center currently applies.
func (c *Center) Settings() settings.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// ApplySettings swaps the active settings, e.g. after the user changed
// preferences. A smaller display cap evicts the oldest entries immediately.
func (c *Center) ApplySettings(s settings.Settings) {
	c.mu.Lock()
	c.settings = s.Normalized()
	evicted := c.truncateLocked()
	c.mu.Unlock()

	for _, old := range evicted {
		c.feed.publish(Event{Kind: EventRemoved, Notification: old})
	}
}

// RequestPushPermission asks the push collaborator for permission. Denial
// is not an error; push simply stays silent.
func (c *Center) RequestPushPermission(ctx context.Context) (bool, error) {
	return c.pusher.RequestPermission(ctx)
}

// Subscribe returns a subscription delivering list-change events. The
// subscription is cleaned up when ctx is cancelled or Close is called.
// Slow consumers lose events rather than blocking the center.
func (c *Center) Subscribe(ctx context.Context) *Subscription {
	return c.feed.subscribe(ctx)
}

// Close stops the center: pending auto-dismiss timers are cancelled, the
// inbound stream subscription is detached, and the event feed is closed.
// Timers that already fired become no-ops via the presence check.
func (c *Center) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.mu.Unlock()

	c.feed.close()
	return nil
}

// expire removes a notification whose auto-dismiss timer fired. The
// id-presence check makes late timers harmless after Hide or ClearAll,
// and persistent entries are never expired even if a timer leaks.
func (c *Center) expire(id string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	i := c.indexOfLocked(id)
	if i < 0 || c.list[i].Persist {
		c.mu.Unlock()
		return
	}
	n := c.list[i]
	c.removeAtLocked(i)
	c.mu.Unlock()

	c.feed.publish(Event{Kind: EventRemoved, Notification: n})
}

// fanOut performs the secondary-channel side effects for a freshly shown
// notification. Both channels are fire-and-forget; the in-app list has
// already been updated by the time fanOut runs.
func (c *Center) fanOut(n Notification, s settings.Settings) {
	if s.EnableSoundNotifications {
		if url, ok := s.Sounds[string(n.Type)]; ok && url != "" {
			go c.playSound(n, url)
		}
	}

	if s.EnableBrowserNotifications &&
		n.Priority.pushEligible() &&
		c.pusher.PermissionState() == PermissionGranted {
		go c.push(n)
	}
}

func (c *Center) playSound(n Notification, url string) {
	if err := c.sound.Play(url); err != nil {
		c.logger.LogAttrs(context.Background(), slog.LevelWarn, "sound playback failed",
			logger.Component("notify"),
			logger.Channel("sound"),
			logger.NotificationID(n.ID),
			logger.URL(url),
			logger.Error(err),
		)
	}
}

func (c *Center) push(n Notification) {
	title := n.Title
	if title == "" {
		title = defaultPushTitle
	}
	if err := c.pusher.Push(title, n.Message); err != nil {
		c.logger.LogAttrs(context.Background(), slog.LevelWarn, "push delivery failed",
			logger.Component("notify"),
			logger.Channel("push"),
			logger.NotificationID(n.ID),
			logger.Error(err),
		)
	}
}

// truncateLocked enforces the display cap: the retained list is exactly
// the displayed list, oldest entries evicted first. Returns the evicted
// entries with their timers already stopped.
func (c *Center) truncateLocked() []Notification {
	maxDisplay := c.settings.MaxNotificationsDisplay
	if len(c.list) <= maxDisplay {
		return nil
	}

	evicted := slices.Clone(c.list[maxDisplay:])
	c.list = c.list[:maxDisplay:maxDisplay]
	for _, old := range evicted {
		c.stopTimerLocked(old.ID)
	}
	return evicted
}

func (c *Center) indexOfLocked(id string) int {
	return slices.IndexFunc(c.list, func(n Notification) bool { return n.ID == id })
}

func (c *Center) removeAtLocked(i int) {
	c.stopTimerLocked(c.list[i].ID)
	c.list = slices.Delete(c.list, i, i+1)
}

func (c *Center) stopTimerLocked(id string) {
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
}
