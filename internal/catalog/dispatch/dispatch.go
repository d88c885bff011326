// Package dispatch implements the task dispatcher (C6): a thin adapter over
// the durable message broker that schedules projector work keyed by inbox
// event id. Grounded on the teacher's public-api-service SDK handler, which
// publishes to JetStream and treats a publish failure as a 503-equivalent —
// here, as catalogerr.KindBrokerUnavailable, since the event stays safely
// pending in the inbox either way (§4.4, §7).
package dispatch

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
	"github.com/shopery/catalog-bridge/internal/catalog/model"
	"github.com/shopery/catalog-bridge/internal/platform/natsclient"
)

// Job is the at-least-once message body: just the inbox event guid plus
// enough trace context for the projector to continue the same trace.
type Job struct {
	EventGUID uuid.UUID `json:"event_guid"`
	TraceID   string    `json:"trace_id,omitempty"`
	SpanID    string    `json:"span_id,omitempty"`
}

// Dispatcher is the C6 contract: enqueue returns only once the broker has
// durably acknowledged the job.
type Dispatcher interface {
	Enqueue(ctx context.Context, eventType model.EventType, eventGUID uuid.UUID) error
}

// NATSDispatcher publishes jobs onto the CATALOG_PROJECTION JetStream
// stream, one subject per event kind (§6: "one durable queue per task kind").
type NATSDispatcher struct {
	client *natsclient.Client
}

// NewNATSDispatcher builds a Dispatcher bound to an already-provisioned
// JetStream client.
func NewNATSDispatcher(client *natsclient.Client) *NATSDispatcher {
	return &NATSDispatcher{client: client}
}

func (d *NATSDispatcher) Enqueue(ctx context.Context, eventType model.EventType, eventGUID uuid.UUID) error {
	subject := subjectFor(eventType)
	if subject == "" {
		// Open question (a): CATEGORY_UPDATED/CATEGORY_REMOVED/TAG_REMOVED have
		// no projector consumer yet. Leave unenqueued rather than invent one.
		return nil
	}

	job := Job{EventGUID: eventGUID}
	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		job.TraceID = sc.TraceID().String()
		job.SpanID = sc.SpanID().String()
	}

	data, err := json.Marshal(job)
	if err != nil {
		return catalogerr.Wrap(catalogerr.KindBrokerUnavailable, "encode dispatch job", err)
	}

	if _, err := d.client.JS.Publish(subject, data, nats.Context(ctx)); err != nil {
		d.client.Log.Warn("dispatch enqueue failed, event stays pending for the sweeper",
			zap.String("subject", subject), zap.String("event_guid", eventGUID.String()), zap.Error(err))
		return catalogerr.Wrap(catalogerr.KindBrokerUnavailable, "publish projection job", err)
	}
	return nil
}

// Dispatchable reports whether a projector consumer exists for the event
// type. The sweeper uses it to avoid re-enqueueing event kinds that nothing
// consumes yet.
func Dispatchable(eventType model.EventType) bool {
	return subjectFor(eventType) != ""
}

func subjectFor(eventType model.EventType) string {
	switch eventType {
	case model.EventProductUpdated:
		return natsclient.SubjectProductUpdated
	case model.EventProductRemoved:
		return natsclient.SubjectProductRemoved
	default:
		return ""
	}
}
