// Package settings defines the notification preferences record and its
// persistence adapters.
//
// The notification center (pkg/notify) receives a Settings value as plain
// injected configuration. How that value is obtained is the application's
// choice:
//
//   - settings.Load() parses environment variables (with .env support)
//   - settings.FromFile(path) reads a YAML preferences file
//   - a Store implementation loads/saves the record in an external
//     key-value store; RedisStore is provided, MemoryStore covers tests
//
// # Usage
//
//	store := settings.NewRedisStore(redisClient, "settings:notify:"+userID)
//
//	s, err := store.Load(ctx)
//	if err != nil {
//	    s = settings.Defaults()
//	}
//	center := notify.New(s)
//
//	// Later, after the user toggles a preference:
//	s.EnableSoundNotifications = false
//	if err := store.Save(ctx, s); err != nil {
//	    // surface to the user, keep the in-memory value
//	}
package settings
