package services

import "context"

// Notifier broadcasts best-effort real-time events. It never blocks the caller and never fails it.
type Notifier interface {
	Notify(ctx context.Context, event string, args ...any)
}
