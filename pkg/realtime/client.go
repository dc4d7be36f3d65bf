package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/thinklens/clientkit/pkg/logger"
)

// Config describes the real-time channel connection.
type Config struct {
	URL               string        `env:"REALTIME_URL,required"`
	HandshakeTimeout  time.Duration `env:"REALTIME_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	ReconnectMinDelay time.Duration `env:"REALTIME_RECONNECT_MIN_DELAY" envDefault:"1s"`
	ReconnectMaxDelay time.Duration `env:"REALTIME_RECONNECT_MAX_DELAY" envDefault:"30s"`
}

// Client is a websocket client for the ThinkLens event stream. It owns
// connection lifetime: a lost connection is re-established with capped
// exponential backoff until Disconnect is called. Client satisfies the
// notify.Stream contract.
type Client struct {
	cfg    Config
	dialer *websocket.Dialer
	header http.Header
	logger *slog.Logger

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool
	onMessage func([]byte)
	onConnect func()
	cancel    context.CancelFunc
	done      chan struct{}
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger for the Client.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithHeader sets extra handshake headers, typically authorization.
func WithHeader(h http.Header) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.header = h
		}
	}
}

// New creates a real-time stream client. Zero config durations fall back
// to safe defaults.
func New(cfg Config, opts ...ClientOption) *Client {
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}
	if cfg.ReconnectMinDelay <= 0 {
		cfg.ReconnectMinDelay = time.Second
	}
	if cfg.ReconnectMaxDelay < cfg.ReconnectMinDelay {
		cfg.ReconnectMaxDelay = 30 * time.Second
	}

	c := &Client{
		cfg: cfg,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// OnMessage registers the inbound message callback. Register before
// Connect; messages arriving without a callback are discarded.
func (c *Client) OnMessage(fn func(data []byte)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMessage = fn
}

// OnConnect registers a callback fired after every successful connect,
// including reconnects.
func (c *Client) OnConnect(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onConnect = fn
}

// IsConnected reports whether a connection is currently established.
// During a reconnect backoff it returns false.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Connect dials the stream and starts the read loop. The ctx bounds the
// initial dial only; the established session lives until Disconnect.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	conn, _, err := c.dialer.DialContext(ctx, c.cfg.URL, c.header)
	if err != nil {
		c.mu.Lock()
		c.cancel = nil
		c.mu.Unlock()
		cancel()
		close(done)
		return err
	}

	if !c.adopt(runCtx, conn) {
		close(done)
		return runCtx.Err()
	}

	go c.run(runCtx, conn, done)
	c.fireConnect()
	return nil
}

// Disconnect stops the read loop, closes the connection, and waits for
// the session goroutine to exit.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	if c.cancel == nil {
		c.mu.Unlock()
		return ErrNotConnected
	}
	c.cancel()
	c.cancel = nil
	if c.conn != nil {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = c.conn.Close()
		c.conn = nil
	}
	c.connected = false
	done := c.done
	c.mu.Unlock()

	<-done
	return nil
}

func (c *Client) run(ctx context.Context, conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		err := c.readLoop(conn)

		c.mu.Lock()
		c.connected = false
		c.conn = nil
		c.mu.Unlock()
		_ = conn.Close()

		if ctx.Err() != nil {
			return
		}

		c.logger.LogAttrs(ctx, slog.LevelWarn, "realtime connection lost, reconnecting",
			logger.Component("realtime"),
			logger.URL(c.cfg.URL),
			logger.Error(err),
		)

		next, ok := c.reconnect(ctx)
		if !ok {
			return
		}
		conn = next
		c.fireConnect()
	}
}

func (c *Client) readLoop(conn *websocket.Conn) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		c.mu.RLock()
		fn := c.onMessage
		c.mu.RUnlock()
		if fn != nil {
			fn(data)
		}
	}
}

// reconnect dials until it succeeds or ctx is cancelled, doubling the
// delay between attempts up to the configured maximum.
func (c *Client) reconnect(ctx context.Context) (*websocket.Conn, bool) {
	delay := c.cfg.ReconnectMinDelay

	for {
		select {
		case <-ctx.Done():
			return nil, false
		case <-time.After(delay):
		}

		conn, _, err := c.dialer.DialContext(ctx, c.cfg.URL, c.header)
		if err == nil {
			if !c.adopt(ctx, conn) {
				return nil, false
			}
			return conn, true
		}

		c.logger.LogAttrs(ctx, slog.LevelWarn, "realtime reconnect attempt failed",
			logger.Component("realtime"),
			logger.URL(c.cfg.URL),
			logger.Duration(delay),
			logger.Error(err),
		)

		delay = min(delay*2, c.cfg.ReconnectMaxDelay)
	}
}

// adopt registers a freshly dialed connection unless the session was
// cancelled while dialing, in which case the connection is closed.
func (c *Client) adopt(ctx context.Context, conn *websocket.Conn) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		_ = conn.Close()
		return false
	}
	c.conn = conn
	c.connected = true
	return true
}

func (c *Client) fireConnect() {
	c.mu.RLock()
	fn := c.onConnect
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
