package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/thinklens/clientkit/pkg/logger"
)

// Stream is the real-time event channel collaborator. Connection lifetime,
// reconnects and backoff are the implementation's concern (see
// pkg/realtime); the center only consumes messages and connection signals.
type Stream interface {
	Connect(ctx context.Context) error
	Disconnect() error
	IsConnected() bool

	// OnMessage registers the callback invoked for every inbound message.
	OnMessage(fn func(data []byte))

	// OnConnect registers the callback invoked after every successful
	// connect, including reconnects.
	OnConnect(fn func())
}

// Inbound message discriminators. Anything else is ignored so that newer
// servers can introduce message types without breaking older clients.
const (
	msgNotification        = "notification"
	msgCollaborationUpdate = "collaboration_update"
	msgSystemAnnouncement  = "system_announcement"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// inboundNotification is the wire shape of a forwarded notification.
// Durations travel as milliseconds.
type inboundNotification struct {
	Type     string         `json:"type"`
	Priority string         `json:"priority"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Duration int64          `json:"duration"`
	Persist  bool           `json:"persist"`
	Data     map[string]any `json:"data"`
}

// inboundUpdate is the wire shape of collaboration updates and system
// announcements.
type inboundUpdate struct {
	Message string         `json:"message"`
	Title   string         `json:"title"`
	Data    map[string]any `json:"data"`
}

// AttachStream subscribes the center to the real-time channel. On every
// successful connect the center shows a local low-priority system notice
// confirming that live notifications are available.
func (c *Center) AttachStream(s Stream) {
	c.mu.Lock()
	c.stream = s
	c.mu.Unlock()

	s.OnConnect(func() {
		if c.isClosed() {
			return
		}
		c.Show(Notification{
			Type:     TypeSystem,
			Priority: PriorityLow,
			Message:  "Live notifications are enabled.",
		})
	})
	s.OnMessage(c.handleStreamMessage)
}

// Stream returns the attached real-time channel, or nil when none was
// attached. Consumers use it to surface connection state in the UI.
func (c *Center) Stream() Stream {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream
}

// handleStreamMessage dispatches an inbound message by its type
// discriminator. Malformed messages are logged and dropped; they must
// never take the center down.
func (c *Center) handleStreamMessage(data []byte) {
	c.mu.Lock()
	closed := c.closed
	s := c.settings
	c.mu.Unlock()

	if closed || !s.EnableWebSocketNotifications {
		return
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		c.logger.LogAttrs(context.Background(), slog.LevelWarn, "dropping malformed stream message",
			logger.Component("notify"),
			logger.Error(err),
		)
		return
	}

	switch env.Type {
	case msgNotification:
		var in inboundNotification
		if err := json.Unmarshal(env.Payload, &in); err != nil || in.Message == "" {
			c.logStreamDrop(env.Type, err)
			return
		}
		typ := Type(in.Type)
		if typ == "" {
			typ = TypeInfo
		}
		c.Show(Notification{
			Type:     typ,
			Priority: Priority(in.Priority),
			Title:    in.Title,
			Message:  in.Message,
			Duration: time.Duration(in.Duration) * time.Millisecond,
			Persist:  in.Persist,
			Data:     in.Data,
			Source:   SourceWebSocket,
		})

	case msgCollaborationUpdate:
		if !s.EnableCollaborationNotifications {
			return
		}
		var in inboundUpdate
		if err := json.Unmarshal(env.Payload, &in); err != nil || in.Message == "" {
			c.logStreamDrop(env.Type, err)
			return
		}
		c.Show(Notification{
			Type:     TypeCollaboration,
			Title:    in.Title,
			Message:  in.Message,
			Duration: collaborationDuration,
			Data:     in.Data,
			Source:   SourceWebSocket,
		})

	case msgSystemAnnouncement:
		if !s.EnableSystemNotifications {
			return
		}
		var in inboundUpdate
		if err := json.Unmarshal(env.Payload, &in); err != nil || in.Message == "" {
			c.logStreamDrop(env.Type, err)
			return
		}
		c.Show(Notification{
			Type:     TypeSystem,
			Priority: PriorityHigh,
			Persist:  true,
			Title:    in.Title,
			Message:  in.Message,
			Data:     in.Data,
			Source:   SourceWebSocket,
		})
	}
}

func (c *Center) logStreamDrop(eventType string, err error) {
	c.logger.LogAttrs(context.Background(), slog.LevelWarn, "dropping stream message with invalid payload",
		logger.Component("notify"),
		logger.EventType(eventType),
		logger.Error(err),
	)
}

func (c *Center) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
