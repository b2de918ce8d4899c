// Package logging builds the reader's slog loggers.
//
// The plain CLI logs text to stderr. The terminal UI owns the screen, so it
// logs JSON to a file instead (see OpenFile). WithRequestID tags a logger
// with the request id carried by ctx, so lines from one API call group together:
//
//	logger := logging.WithRequestID(ctx, slog.Default())
//	logger.Warn("news api call failed", slog.Any("error", err))
package logging
