package notify

import "time"

// Option overrides the per-type defaults applied by the convenience
// wrappers (Success, Error, ...). Options always win over type defaults.
type Option func(*Notification)

// WithTitle sets the short label shown above the message.
func WithTitle(title string) Option {
	return func(n *Notification) { n.Title = title }
}

// WithDuration sets the auto-dismiss delay. It has no effect when the
// notification persists.
func WithDuration(d time.Duration) Option {
	return func(n *Notification) { n.Duration = d }
}

// WithPersist controls whether the auto-dismiss timer is armed.
func WithPersist(persist bool) Option {
	return func(n *Notification) { n.Persist = persist }
}

// WithPriority overrides the priority.
func WithPriority(p Priority) Option {
	return func(n *Notification) { n.Priority = p }
}

// WithData attaches an opaque payload passed through to UI action handlers.
func WithData(data map[string]any) Option {
	return func(n *Notification) { n.Data = data }
}

// WithSource overrides the provenance, e.g. SourceAPI for notifications
// synthesized from REST responses.
func WithSource(s Source) Option {
	return func(n *Notification) { n.Source = s }
}

func applyOptions(n Notification, opts []Option) Notification {
	for _, opt := range opts {
		opt(&n)
	}
	return n
}
