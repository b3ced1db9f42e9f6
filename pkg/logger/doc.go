// Package logger provides a small factory around Go's slog package with
// functional options for format, level, output and default attributes.
//
// The resolution core itself never logs; this package serves the invocation
// layer, which reports configuration faults and client validation failures
// through a single consistently-configured *slog.Logger:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatJSON),
//		logger.WithLevel(slog.LevelInfo),
//		logger.WithAttr(slog.String("service", "api")),
//	)
package logger
