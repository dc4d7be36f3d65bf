package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinklens/clientkit/pkg/notify"
	"github.com/thinklens/clientkit/pkg/settings"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeSound records playback requests.
type fakeSound struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (f *fakeSound) Play(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return f.err
}

func (f *fakeSound) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.urls...)
}

// fakePusher records push deliveries behind a configurable permission state.
type fakePusher struct {
	mu     sync.Mutex
	state  notify.PermissionState
	titles []string
	err    error
}

func (f *fakePusher) RequestPermission(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = notify.PermissionGranted
	return true, nil
}

func (f *fakePusher) PermissionState() notify.PermissionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakePusher) Push(title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	return f.err
}

func (f *fakePusher) pushed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.titles...)
}

func messages(list []notify.Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.Message
	}
	return out
}

func TestCenter_Show_AssignsIdentityAndDefaults(t *testing.T) {
	clock := newFakeClock()
	c := notify.New(settings.Defaults(), notify.WithClock(clock.Now))
	defer c.Close()

	id := c.Show(notify.Notification{
		Type:    notify.TypeInfo,
		Message: "analysis complete",
	})
	require.NotEmpty(t, id)

	n, err := c.Get(id)
	require.NoError(t, err)
	assert.Equal(t, notify.TypeInfo, n.Type)
	assert.Equal(t, notify.PriorityNormal, n.Priority)
	assert.Equal(t, notify.SourceLocal, n.Source)
	assert.Equal(t, clock.Now(), n.Timestamp)
	assert.False(t, n.Read)
	assert.Equal(t, settings.Defaults().DefaultDuration, n.Duration)
}

func TestCenter_Show_CallerCannotSupplyIdentity(t *testing.T) {
	c := notify.New(settings.Defaults())
	defer c.Close()

	id := c.Show(notify.Notification{
		ID:      "forged",
		Read:    true,
		Message: "m",
	})

	assert.NotEqual(t, "forged", id)
	n, err := c.Get(id)
	require.NoError(t, err)
	assert.False(t, n.Read)
}

func TestCenter_List_MostRecentFirst(t *testing.T) {
	clock := newFakeClock()
	c := notify.New(settings.Defaults(), notify.WithClock(clock.Now))
	defer c.Close()

	for _, msg := range []string{"first", "second", "third"} {
		c.Info(msg)
		clock.Advance(time.Second)
	}

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"third", "second", "first"}, messages(list))
	assert.True(t, list[0].Timestamp.After(list[1].Timestamp))
	assert.True(t, list[1].Timestamp.After(list[2].Timestamp))
}

// The display cap is applied directly: the retained list is the displayed
// list, oldest entries evicted first.
func TestCenter_DisplayCapEvictsOldest(t *testing.T) {
	s := settings.Defaults()
	s.MaxNotificationsDisplay = 2
	c := notify.New(s)
	defer c.Close()

	c.Success("a")
	c.Success("b")
	c.Success("c")

	assert.Equal(t, []string{"c", "b"}, messages(c.List()))
}

func TestCenter_AutoDismiss(t *testing.T) {
	c := notify.New(settings.Defaults())
	defer c.Close()

	id := c.Show(notify.Notification{
		Type:     notify.TypeInfo,
		Message:  "fleeting",
		Duration: 20 * time.Millisecond,
	})

	_, err := c.Get(id)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := c.Get(id)
		return errors.Is(err, notify.ErrNotificationNotFound)
	}, time.Second, 5*time.Millisecond)
}

func TestCenter_PersistentNeverAutoDismissed(t *testing.T) {
	c := notify.New(settings.Defaults())
	defer c.Close()

	id := c.Show(notify.Notification{
		Type:     notify.TypeError,
		Message:  "stays",
		Persist:  true,
		Duration: 10 * time.Millisecond,
	})

	time.Sleep(50 * time.Millisecond)

	_, err := c.Get(id)
	require.NoError(t, err)

	c.Hide(id)
	_, err = c.Get(id)
	assert.ErrorIs(t, err, notify.ErrNotificationNotFound)
}

func TestCenter_LateTimerIsNoOp(t *testing.T) {
	c := notify.New(settings.Defaults())
	defer c.Close()

	id := c.Show(notify.Notification{
		Type:     notify.TypeInfo,
		Message:  "dismiss me first",
		Duration: 30 * time.Millisecond,
	})
	c.Hide(id)

	// A fresh entry must not be resurrected or removed by the stale timer.
	keep := c.Show(notify.Notification{
		Type:    notify.TypeInfo,
		Message: "unrelated",
		Persist: true,
	})

	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, []string{"unrelated"}, messages(c.List()))
	_, err := c.Get(keep)
	assert.NoError(t, err)
}

func TestCenter_Hide_Idempotent(t *testing.T) {
	c := notify.New(settings.Defaults())
	defer c.Close()

	id := c.Info("once")
	c.Hide(id)
	before := c.List()

	assert.NotPanics(t, func() { c.Hide(id) })
	assert.Equal(t, before, c.List())
}

func TestCenter_TypeWrapperDefaults(t *testing.T) {
	tests := []struct {
		name         string
		show         func(c *notify.Center) string
		wantType     notify.Type
		wantPriority notify.Priority
		wantPersist  bool
		wantDuration time.Duration
	}{
		{
			name:         "success uses settings default duration",
			show:         func(c *notify.Center) string { return c.Success("x") },
			wantType:     notify.TypeSuccess,
			wantPriority: notify.PriorityNormal,
			wantDuration: settings.Defaults().DefaultDuration,
		},
		{
			name:         "error persists with high priority",
			show:         func(c *notify.Center) string { return c.Error("x") },
			wantType:     notify.TypeError,
			wantPriority: notify.PriorityHigh,
			wantPersist:  true,
		},
		{
			name:         "warning stays 8 seconds",
			show:         func(c *notify.Center) string { return c.Warning("x") },
			wantType:     notify.TypeWarning,
			wantPriority: notify.PriorityNormal,
			wantDuration: 8 * time.Second,
		},
		{
			name:         "info uses settings default duration",
			show:         func(c *notify.Center) string { return c.Info("x") },
			wantType:     notify.TypeInfo,
			wantPriority: notify.PriorityNormal,
			wantDuration: settings.Defaults().DefaultDuration,
		},
		{
			name:         "collaboration stays 10 seconds",
			show:         func(c *notify.Center) string { return c.Collaboration("x") },
			wantType:     notify.TypeCollaboration,
			wantPriority: notify.PriorityNormal,
			wantDuration: 10 * time.Second,
		},
		{
			name:         "system persists with high priority",
			show:         func(c *notify.Center) string { return c.System("x") },
			wantType:     notify.TypeSystem,
			wantPriority: notify.PriorityHigh,
			wantPersist:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := notify.New(settings.Defaults())
			defer c.Close()

			id := tt.show(c)
			n, err := c.Get(id)
			require.NoError(t, err)

			assert.Equal(t, tt.wantType, n.Type)
			assert.Equal(t, tt.wantPriority, n.Priority)
			assert.Equal(t, tt.wantPersist, n.Persist)
			if tt.wantDuration > 0 {
				assert.Equal(t, tt.wantDuration, n.Duration)
			}
		})
	}
}

func TestCenter_OptionsWinOverTypeDefaults(t *testing.T) {
	c := notify.New(settings.Defaults())
	defer c.Close()

	id := c.Error("x",
		notify.WithPriority(notify.PriorityUrgent),
		notify.WithTitle("Sync"),
		notify.WithData(map[string]any{"retry": true}),
	)

	n, err := c.Get(id)
	require.NoError(t, err)
	assert.Equal(t, notify.PriorityUrgent, n.Priority)
	assert.Equal(t, "Sync", n.Title)
	assert.Equal(t, map[string]any{"retry": true}, n.Data)
	assert.True(t, n.Persist)
}

func TestCenter_MarkRead(t *testing.T) {
	c := notify.New(settings.Defaults())
	defer c.Close()

	id := c.Info("m")
	require.Equal(t, 1, c.UnreadCount())

	c.MarkRead(id)
	n, err := c.Get(id)
	require.NoError(t, err)
	assert.True(t, n.Read)
	assert.Equal(t, 0, c.UnreadCount())

	// Unknown ids are a no-op.
	assert.NotPanics(t, func() { c.MarkRead("missing") })
}

func TestCenter_MarkAllRead_PreservesOrderAndContent(t *testing.T) {
	clock := newFakeClock()
	c := notify.New(settings.Defaults(), notify.WithClock(clock.Now))
	defer c.Close()

	c.Info("first")
	clock.Advance(time.Second)
	c.Info("second")
	clock.Advance(time.Second)
	c.Info("third")

	before := messages(c.List())
	c.MarkAllRead()

	list := c.List()
	assert.Equal(t, before, messages(list))
	for _, n := range list {
		assert.True(t, n.Read)
	}
	assert.Equal(t, 0, c.UnreadCount())
}

func TestCenter_ClearAll(t *testing.T) {
	c := notify.New(settings.Defaults())
	defer c.Close()

	c.Info("a")
	c.Error("b")
	c.ClearAll()

	assert.Empty(t, c.List())
	assert.NotPanics(t, func() { c.ClearAll() })
}

func TestCenter_ClearByType(t *testing.T) {
	c := notify.New(settings.Defaults())
	defer c.Close()

	c.Info("keep me")
	c.Error("drop me")
	c.Error("drop me too")

	c.ClearByType(notify.TypeError)

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, notify.TypeInfo, list[0].Type)
}

func TestCenter_SoundChannel(t *testing.T) {
	soundSettings := func(enabled bool) settings.Settings {
		s := settings.Defaults()
		s.EnableSoundNotifications = enabled
		s.Sounds = map[string]string{
			"success": "https://cdn.example.com/ok.mp3",
			"error":   "https://cdn.example.com/err.mp3",
		}
		return s
	}

	t.Run("disabled channel plays nothing regardless of priority", func(t *testing.T) {
		player := &fakeSound{}
		c := notify.New(soundSettings(false), notify.WithSoundPlayer(player))
		defer c.Close()

		c.Success("a")
		c.Error("b")
		c.Show(notify.Notification{Type: notify.TypeSuccess, Message: "c", Priority: notify.PriorityUrgent})

		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, player.calls())
	})

	t.Run("enabled channel plays the registered sound", func(t *testing.T) {
		player := &fakeSound{}
		c := notify.New(soundSettings(true), notify.WithSoundPlayer(player))
		defer c.Close()

		c.Success("a")

		assert.Eventually(t, func() bool {
			calls := player.calls()
			return len(calls) == 1 && calls[0] == "https://cdn.example.com/ok.mp3"
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("no sound registered for type", func(t *testing.T) {
		player := &fakeSound{}
		c := notify.New(soundSettings(true), notify.WithSoundPlayer(player))
		defer c.Close()

		c.Warning("no sound for warnings")

		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, player.calls())
	})

	t.Run("playback failure is swallowed", func(t *testing.T) {
		player := &fakeSound{err: errors.New("codec error")}
		c := notify.New(soundSettings(true), notify.WithSoundPlayer(player))
		defer c.Close()

		id := c.Success("still recorded")

		_, err := c.Get(id)
		assert.NoError(t, err)
	})
}

func TestCenter_PushChannel(t *testing.T) {
	t.Run("high priority pushes when granted", func(t *testing.T) {
		pusher := &fakePusher{state: notify.PermissionGranted}
		c := notify.New(settings.Defaults(), notify.WithPusher(pusher))
		defer c.Close()

		c.Error("disk full", notify.WithTitle("Storage"))

		assert.Eventually(t, func() bool {
			pushed := pusher.pushed()
			return len(pushed) == 1 && pushed[0] == "Storage"
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("missing title falls back to generic label", func(t *testing.T) {
		pusher := &fakePusher{state: notify.PermissionGranted}
		c := notify.New(settings.Defaults(), notify.WithPusher(pusher))
		defer c.Close()

		c.Error("disk full")

		assert.Eventually(t, func() bool {
			pushed := pusher.pushed()
			return len(pushed) == 1 && pushed[0] == "ThinkLens"
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("normal priority never pushes", func(t *testing.T) {
		pusher := &fakePusher{state: notify.PermissionGranted}
		c := notify.New(settings.Defaults(), notify.WithPusher(pusher))
		defer c.Close()

		c.Info("routine")

		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, pusher.pushed())
	})

	t.Run("permission not granted", func(t *testing.T) {
		pusher := &fakePusher{state: notify.PermissionDenied}
		c := notify.New(settings.Defaults(), notify.WithPusher(pusher))
		defer c.Close()

		c.Error("urgent but denied")

		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, pusher.pushed())
	})

	t.Run("disabled channel pushes nothing", func(t *testing.T) {
		s := settings.Defaults()
		s.EnableBrowserNotifications = false
		pusher := &fakePusher{state: notify.PermissionGranted}
		c := notify.New(s, notify.WithPusher(pusher))
		defer c.Close()

		c.Error("urgent but muted")

		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, pusher.pushed())
	})
}

func TestCenter_RequestPushPermission(t *testing.T) {
	pusher := &fakePusher{state: notify.PermissionUnset}
	c := notify.New(settings.Defaults(), notify.WithPusher(pusher))
	defer c.Close()

	granted, err := c.RequestPushPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, notify.PermissionGranted, pusher.PermissionState())
}

func TestCenter_ApplySettings_ShrinksList(t *testing.T) {
	c := notify.New(settings.Defaults())
	defer c.Close()

	for _, msg := range []string{"a", "b", "c", "d"} {
		c.Info(msg)
	}

	s := settings.Defaults()
	s.MaxNotificationsDisplay = 2
	c.ApplySettings(s)

	assert.Equal(t, []string{"d", "c"}, messages(c.List()))
}

func TestCenter_ShowAfterClose(t *testing.T) {
	c := notify.New(settings.Defaults())
	require.NoError(t, c.Close())

	assert.Empty(t, c.Show(notify.Notification{Type: notify.TypeInfo, Message: "late"}))
	assert.Empty(t, c.List())
	assert.NoError(t, c.Close())
}
