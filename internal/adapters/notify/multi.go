package notify

import (
	"context"

	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
)

// Multi forwards every event to each configured notifier.
type Multi []portssvc.Notifier

func (m Multi) Notify(ctx context.Context, event string, args ...any) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, event, args...)
		}
	}
}

var _ portssvc.Notifier = Multi(nil)
