package server

import (
	"context"
	"log/slog"

	"github.com/nfrund/healthtrack/internal/pubsub"
	"github.com/nfrund/healthtrack/internal/session"
)

// ExpiryRecorder counts forced session resets.
type ExpiryRecorder interface {
	SessionExpired(ctx context.Context, reason string)
}

// SubscribeSessionEvents logs every session lifecycle event and counts
// expiries on rec, which may be nil. Subscriptions end with ctx.
func SubscribeSessionEvents(ctx context.Context, sub pubsub.Subscriber, rec ExpiryRecorder) error {
	audit := func(event string) func(context.Context, session.Event) error {
		return func(ctx context.Context, ev session.Event) error {
			slog.InfoContext(ctx, "Session event", "event", event, "user_id", ev.UserID, "reason", ev.Reason, "at", ev.At)
			if event == session.ExpiredEvent.Name() && rec != nil {
				rec.SessionExpired(ctx, ev.Reason)
			}
			return nil
		}
	}

	for _, ev := range []pubsub.Event[session.Event]{session.StartedEvent, session.EndedEvent, session.ExpiredEvent} {
		if err := pubsub.Subscribe(ctx, sub, ev, audit(ev.Name())); err != nil {
			return err
		}
	}
	return nil
}
