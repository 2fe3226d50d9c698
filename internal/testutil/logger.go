package testutil

import "log/slog"

// DiscardLogger returns a *slog.Logger that discards all output.
// Components taking log.Logger (an alias for *slog.Logger) can use
// log.NewNop() directly; this exists for packages that avoid the
// internal/log import.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
