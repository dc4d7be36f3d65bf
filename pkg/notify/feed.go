package notify

import (
	"context"
	"sync"
)

// EventKind identifies a change to the notification list.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventRemoved EventKind = "removed"
	EventRead    EventKind = "read"
	EventCleared EventKind = "cleared"
)

// Event describes a single list change. Cleared events carry no
// notification; everything was removed at once.
type Event struct {
	Kind         EventKind
	Notification Notification
}

// Subscription receives list-change events from a Center. UI components
// typically render from Center.List() and treat events as an invalidation
// signal, so losing an event to a full buffer is harmless.
type Subscription struct {
	ch     chan Event
	closed bool
	mu     sync.RWMutex
}

func newSubscription(bufferSize int) *Subscription {
	return &Subscription{
		ch: make(chan Event, bufferSize),
	}
}

// Events returns the receive channel. It is closed when the subscription
// closes.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close closes the subscription. Close is idempotent.
func (s *Subscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

// send delivers non-blocking: a full buffer drops the event.
func (s *Subscription) send(ev Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// feed fans list-change events out to subscribers. Publishing never blocks
// the center; subscribers that fell behind or closed are detached lazily.
type feed struct {
	subscribers map[*Subscription]struct{}
	bufferSize  int
	closed      bool
	quit        chan struct{}
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup
}

func newFeed(bufferSize int) *feed {
	return &feed{
		subscribers: make(map[*Subscription]struct{}),
		bufferSize:  max(bufferSize, 1),
		quit:        make(chan struct{}),
	}
}

func (f *feed) subscribe(ctx context.Context) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		sub := newSubscription(f.bufferSize)
		_ = sub.Close()
		return sub
	}

	sub := newSubscription(f.bufferSize)
	f.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		f.cleanupWg.Add(1)
		go func() {
			defer f.cleanupWg.Done()
			select {
			case <-ctx.Done():
				f.unsubscribe(sub)
			case <-f.quit:
				// feed closed; subscriptions were closed there
			}
		}()
	}

	return sub
}

func (f *feed) publish(ev Event) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}

	for sub := range f.subscribers {
		if !sub.send(ev) {
			// Detach asynchronously to avoid write-lock contention
			// while holding the read lock.
			go f.unsubscribe(sub)
		}
	}
}

func (f *feed) close() {
	f.mu.Lock()

	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	close(f.quit)

	for sub := range f.subscribers {
		_ = sub.Close()
	}
	clear(f.subscribers)
	f.mu.Unlock()

	f.cleanupWg.Wait()
}

func (f *feed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subscribers, sub)
	_ = sub.Close()
}
