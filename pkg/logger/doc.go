// Package logger provides a thin factory around Go's slog package with
// functional options for format, level and static attributes, plus attribute
// constructors for the identifiers that recur across the delivery pipeline
// (notification ID, recipient ID, channel, attempt count).
//
// The factory keeps every binary's log shape identical: JSON at INFO by
// default, text for local development.
//
//	log := logger.New(
//		logger.WithTextFormatter(),
//		logger.WithService("notifyd"),
//	)
//	log.Info("queue sweep finished", logger.BatchSize(50))
package logger
