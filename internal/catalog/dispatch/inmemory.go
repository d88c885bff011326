package dispatch

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/model"
)

// Handler applies a projection job directly, bypassing the broker.
type Handler func(ctx context.Context, eventGUID uuid.UUID) error

// InMemoryDispatcher backs the ENABLE_IN_MEMORY_TASK_BROKER development
// toggle: jobs run on an in-process goroutine instead of JetStream. A
// failed apply leaves the event pending in the inbox for the sweeper, the
// same contract as a broker outage in production.
type InMemoryDispatcher struct {
	handler Handler
	log     *zap.Logger
}

// NewInMemoryDispatcher builds a Dispatcher that hands jobs straight to
// handler.
func NewInMemoryDispatcher(handler Handler, log *zap.Logger) *InMemoryDispatcher {
	return &InMemoryDispatcher{handler: handler, log: log}
}

func (d *InMemoryDispatcher) Enqueue(ctx context.Context, eventType model.EventType, eventGUID uuid.UUID) error {
	if subjectFor(eventType) == "" {
		return nil
	}
	go func() {
		if err := d.handler(context.Background(), eventGUID); err != nil {
			d.log.Warn("in-memory projection job failed, event stays pending for the sweeper",
				zap.String("event_type", string(eventType)),
				zap.String("event_guid", eventGUID.String()),
				zap.Error(err))
		}
	}()
	return nil
}
