// Package projector implements the projection worker (C7): a durable
// JetStream pull consumer that loads a pending inbox event, applies it to
// the document store, and marks it processed. Structure mirrors the
// teacher's trm-service dictionary_consumer.go: pull-based subscription,
// msg.Ack only after the side effect commits, msg.Term on poison pills,
// msg.Nak on transient failure.
package projector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/docstore"
	"github.com/shopery/catalog-bridge/internal/catalog/model"
	"github.com/shopery/catalog-bridge/internal/catalog/projection"
	"github.com/shopery/catalog-bridge/internal/platform/clock"
	"github.com/shopery/catalog-bridge/internal/platform/natsclient"
)

// maxDeliveries bounds the retry budget (§7): a job delivered this many
// times (the first delivery included) without succeeding is considered poison and moved to the
// dead-letter subject, while its inbox record stays pending for the sweeper.
const maxDeliveries = 5

const fetchBatch = 10

// Worker consumes projection jobs and applies them to the document store.
type Worker struct {
	nats    *natsclient.Client
	queries db.Querier
	docs    docstore.Gateway
	clock   clock.Clock
	log     *zap.Logger
	tracer  trace.Tracer
}

// New constructs a projection Worker. nats may be nil when the worker is
// driven directly through ProcessEvent (the in-memory dev broker) instead
// of Start.
func New(n *natsclient.Client, q db.Querier, docs docstore.Gateway, c clock.Clock, log *zap.Logger) *Worker {
	return &Worker{
		nats:    n,
		queries: q,
		docs:    docs,
		clock:   c,
		log:     log,
		tracer:  otel.Tracer("catalog-projector"),
	}
}

// Start subscribes to both product subjects with their own durable
// consumers and launches the fetch loop for each. Returns once both
// subscriptions exist; processing continues in background goroutines until
// ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	subs := []struct {
		subject string
		durable string
	}{
		{natsclient.SubjectProductUpdated, natsclient.DurableProductUpdated},
		{natsclient.SubjectProductRemoved, natsclient.DurableProductRemoved},
	}

	for _, s := range subs {
		sub, err := w.nats.JS.PullSubscribe(
			s.subject,
			s.durable,
			nats.BindStream(natsclient.StreamProjection),
			nats.AckExplicit(),
			nats.ManualAck(),
		)
		if err != nil {
			return fmt.Errorf("PullSubscribe %s: %w", s.subject, err)
		}
		w.log.Info("projection consumer started", zap.String("subject", s.subject), zap.String("durable", s.durable))
		go w.loop(ctx, sub)
	}
	return nil
}

func (w *Worker) loop(ctx context.Context, sub *nats.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			msgs, err := sub.Fetch(fetchBatch, nats.Context(ctx))
			if err != nil {
				// nats.ErrTimeout on an empty queue is the normal idle case.
				continue
			}
			for _, msg := range msgs {
				w.processMessage(ctx, msg)
			}
		}
	}
}

// poisonPillError marks a job as structurally invalid: terminate, never
// redeliver.
type poisonPillError struct{ msg string }

func (e *poisonPillError) Error() string { return "poison pill: " + e.msg }

func (w *Worker) processMessage(ctx context.Context, msg *nats.Msg) {
	err := w.processJob(ctx, msg.Data)
	if err == nil {
		msg.Ack()
		return
	}

	if _, ok := err.(*poisonPillError); ok {
		w.log.Warn("terminating poison-pill projection job", zap.Error(err))
		msg.Term()
		return
	}

	if meta, mErr := msg.Metadata(); mErr == nil && meta.NumDelivered >= maxDeliveries {
		w.log.Error("projection job exceeded retry budget, routing to dead-letter",
			zap.Error(err), zap.Uint64("deliveries", meta.NumDelivered))
		if _, pubErr := w.nats.JS.Publish(natsclient.SubjectDeadLetter, msg.Data, nats.Context(ctx)); pubErr != nil {
			w.log.Error("dead-letter publish failed", zap.Error(pubErr))
		}
		// The inbox record stays pending; the sweeper will re-enqueue it later.
		msg.Term()
		return
	}

	w.log.Warn("NAK projection job (transient failure)", zap.Error(err))
	msg.Nak()
}

type jobEnvelope struct {
	EventGUID string `json:"event_guid"`
	TraceID   string `json:"trace_id,omitempty"`
	SpanID    string `json:"span_id,omitempty"`
}

// processJob implements the state machine in §4.5: load_event → apply →
// mark_processed, with event absent/already-processed treated as a no-op
// success rather than an error.
func (w *Worker) processJob(ctx context.Context, data []byte) error {
	var job jobEnvelope
	if err := json.Unmarshal(data, &job); err != nil {
		return &poisonPillError{msg: fmt.Sprintf("unmarshal job envelope: %v", err)}
	}

	eventGUID, err := db.ParsePgUUID(job.EventGUID)
	if err != nil {
		return &poisonPillError{msg: fmt.Sprintf("invalid event_guid %q: %v", job.EventGUID, err)}
	}

	ctx = attachTraceContext(ctx, job.TraceID, job.SpanID)
	return w.ProcessEvent(ctx, eventGUID)
}

// ProcessEvent is the broker-independent core of the worker: load the
// pending inbox event by guid, apply it to the document store, mark it
// processed. Used by the JetStream fetch loop and, in development, by the
// in-memory dispatcher directly.
func (w *Worker) ProcessEvent(ctx context.Context, eventGUID pgtype.UUID) error {
	ctx, span := w.tracer.Start(ctx, "projector.apply")
	defer span.End()

	event, err := w.queries.LoadPendingInboxEvent(ctx, eventGUID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Missing or already processed — idempotent no-op (§4.2, §4.5).
			return nil
		}
		return fmt.Errorf("load pending inbox event: %w", err)
	}

	if err := w.apply(ctx, event); err != nil {
		span.RecordError(err)
		return err
	}

	// apply-then-mark (§4.5): the document store cannot join the SQL
	// transaction, so a crash between the two steps yields a redundant
	// re-apply on retry, which whole-document replace/delete makes safe.
	if err := w.queries.MarkInboxEventProcessed(ctx, db.MarkInboxEventProcessedParams{
		GUID:        eventGUID,
		ProcessedAt: pgtype.Timestamptz{Time: w.clock.Now(), Valid: true},
	}); err != nil {
		return fmt.Errorf("mark inbox event processed: %w", err)
	}

	return nil
}

func (w *Worker) apply(ctx context.Context, event db.InboxEvent) error {
	switch model.EventType(event.EventType) {
	case model.EventProductUpdated:
		return w.applyProductUpdated(ctx, event.Data)
	case model.EventProductRemoved:
		return w.applyProductRemoved(ctx, event)
	default:
		// CATEGORY_UPDATED / CATEGORY_REMOVED / TAG_REMOVED have no
		// consumer yet (§9 open question a) — ack without acting.
		w.log.Debug("skipping event type with no projector", zap.String("event_type", event.EventType))
		return nil
	}
}

func (w *Worker) applyProductUpdated(ctx context.Context, data []byte) error {
	var payload projection.ProductUpdated
	if err := json.Unmarshal(data, &payload); err != nil {
		return &poisonPillError{msg: fmt.Sprintf("unmarshal PRODUCT_UPDATED payload: %v", err)}
	}
	guid := payload.GUID.String()

	// Removal guard (§4.5): the updated/removed subjects are independent
	// consumers, so an older update can arrive after the remove has already
	// deleted the document. The tombstone keeps the removal time around;
	// an update at or before it must not resurrect the document (tie
	// prefers delete). An update strictly after it re-creates the product
	// and retires the tombstone.
	tombstone, err := w.docs.GetTombstone(ctx, guid)
	if err != nil {
		return fmt.Errorf("read removal tombstone: %w", err)
	}
	if tombstone != nil {
		if !payload.UpdatedAt.After(*tombstone) {
			w.log.Info("skipping PRODUCT_UPDATED older than recorded removal", zap.String("guid", guid))
			return nil
		}
		if err := w.docs.DeleteTombstone(ctx, guid); err != nil {
			return fmt.Errorf("delete removal tombstone: %w", err)
		}
	}

	// Stale-write guard (§4.5): skip if the incoming updated_at is strictly
	// older than what's already materialized.
	existing, err := w.docs.GetProduct(ctx, guid)
	if err != nil {
		return fmt.Errorf("read existing document: %w", err)
	}
	if existing != nil && payload.UpdatedAt.Before(existing.UpdatedAt) {
		w.log.Info("skipping stale PRODUCT_UPDATED", zap.String("guid", guid))
		return nil
	}

	if err := w.docs.PutProduct(ctx, payload); err != nil {
		return fmt.Errorf("put product document: %w", err)
	}
	return nil
}

func (w *Worker) applyProductRemoved(ctx context.Context, event db.InboxEvent) error {
	var payload projection.ProductRemoved
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return &poisonPillError{msg: fmt.Sprintf("unmarshal PRODUCT_REMOVED payload: %v", err)}
	}
	guid := payload.GUID.String()

	// The removal payload carries no timestamp of its own; the inbox event's
	// created_at is the removal time (both come from the orchestrator's
	// clock in the same transaction). Tombstone first: a crash between the
	// two steps leaves the event pending, so both are retried.
	if err := w.docs.PutTombstone(ctx, guid, event.CreatedAt.Time); err != nil {
		return fmt.Errorf("put removal tombstone: %w", err)
	}
	if err := w.docs.DeleteProduct(ctx, guid); err != nil {
		return fmt.Errorf("delete product document: %w", err)
	}
	return nil
}

func attachTraceContext(ctx context.Context, traceIDHex, spanIDHex string) context.Context {
	if traceIDHex == "" || spanIDHex == "" {
		return ctx
	}
	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil {
		return ctx
	}
	spanID, err := trace.SpanIDFromHex(spanIDHex)
	if err != nil {
		return ctx
	}
	remote := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	return trace.ContextWithRemoteSpanContext(ctx, remote)
}
