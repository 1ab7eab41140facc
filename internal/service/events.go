package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/complaint-service/internal/events"
)

// publish stamps and dispatches an event. Listener failures never fail the
// request that caused the event.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_ = dispatcher.Publish(ctx, event)
}
