// Package logger provides a thin factory around log/slog plus attribute
// helpers shared by the clientkit packages.
//
// The factory produces JSON logs at INFO level by default, which suits log
// aggregation; development builds usually switch to the text format:
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(slog.String("service", "thinklens-client")),
//	)
//	logger.SetAsDefault(log)
//
// The attribute helpers keep log keys consistent across packages:
//
//	log.LogAttrs(ctx, slog.LevelWarn, "sound playback failed",
//	    logger.Component("notify"),
//	    logger.NotificationID(id),
//	    logger.Error(err),
//	)
package logger
