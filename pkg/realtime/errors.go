package realtime

import "errors"

var (
	// ErrAlreadyConnected is returned by Connect on a live session.
	ErrAlreadyConnected = errors.New("realtime client already connected")

	// ErrNotConnected is returned by Disconnect without a live session.
	ErrNotConnected = errors.New("realtime client not connected")
)
