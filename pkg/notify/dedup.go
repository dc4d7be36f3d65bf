package notify

import "time"

// dedupEntry remembers the last notification created for a fingerprint so
// that bursts of identical messages (retried API calls, echoed websocket
// events) collapse into one entry.
type dedupEntry struct {
	id     string
	seenAt time.Time
}

func fingerprint(n Notification) string {
	return string(n.Type) + "\x00" + n.Title + "\x00" + n.Message
}

// dedupeLocked returns the id of a live duplicate created inside the dedup
// window, if any. Entries that were dismissed in the meantime do not count.
func (c *Center) dedupeLocked(n Notification) (string, bool) {
	if c.dedupWindow <= 0 {
		return "", false
	}

	key := fingerprint(n)
	e, ok := c.recent[key]
	if !ok {
		return "", false
	}
	if c.now().Sub(e.seenAt) > c.dedupWindow || c.indexOfLocked(e.id) < 0 {
		delete(c.recent, key)
		return "", false
	}
	return e.id, true
}

// rememberLocked records the fingerprint of a freshly created notification
// and prunes stale entries to keep the map bounded.
func (c *Center) rememberLocked(n Notification) {
	if c.dedupWindow <= 0 {
		return
	}

	now := c.now()
	for k, e := range c.recent {
		if now.Sub(e.seenAt) > c.dedupWindow {
			delete(c.recent, k)
		}
	}
	c.recent[fingerprint(n)] = dedupEntry{id: n.ID, seenAt: now}
}
