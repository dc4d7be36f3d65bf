package settings

import "errors"

var (
	// ErrParsingSettings is returned when environment parsing fails.
	ErrParsingSettings = errors.New("failed to parse notification settings")

	// ErrInvalidSettingsFile is returned when a settings file cannot be decoded.
	ErrInvalidSettingsFile = errors.New("invalid settings file")

	// ErrStoreUnavailable is returned when the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("settings store unavailable")
)
