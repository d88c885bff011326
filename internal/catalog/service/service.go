// Package service implements the write-side orchestrator (C5): validate,
// mutate, append inbox event, commit, then hand off to the dispatcher
// (§4.1). Structured after the teacher's discovery-service DictionaryService/
// ScanService: a thin struct wrapping a pool + Querier + external
// collaborator, with every mutating method driving one db.WithinTx call.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dispatch"
	"github.com/shopery/catalog-bridge/internal/catalog/model"
	"github.com/shopery/catalog-bridge/internal/platform/clock"
)

// Service is the C5 write-side orchestrator for brands, categories, tags,
// and products.
type Service struct {
	pool       *pgxpool.Pool
	queries    db.Querier
	dispatcher dispatch.Dispatcher
	clock      clock.Clock
	log        *zap.Logger
}

// New wires together the orchestrator's collaborators (§9: "injected
// collaborators ... no process-wide singletons beyond the bootstrap-created
// clients").
func New(pool *pgxpool.Pool, q db.Querier, d dispatch.Dispatcher, c clock.Clock, log *zap.Logger) *Service {
	return &Service{pool: pool, queries: q, dispatcher: d, clock: c, log: log}
}

// nowTimestamp is the single call site translating the injected clock into
// a pgtype-ready timestamp; every mutating statement's created_at/updated_at
// comes from here, never the wall clock directly (§4.1).
func (s *Service) nowTimestamp() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: s.clock.Now(), Valid: true}
}

// dispatchAfterCommit hands the freshly committed inbox event to C6. A
// dispatcher failure is swallowed into a log line, not surfaced to the
// caller: the event stays pending and the sweeper will retry it (§4.1 step
// 7, §7).
func (s *Service) dispatchAfterCommit(eventType model.EventType, eventGUID uuid.UUID) {
	if err := s.dispatcher.Enqueue(context.Background(), eventType, eventGUID); err != nil {
		s.log.Warn("dispatch enqueue failed after commit, event stays pending for sweeper",
			zap.String("event_type", string(eventType)),
			zap.String("event_guid", eventGUID.String()),
			zap.Error(err))
	}
}

// appendEvent writes an inbox event row within the caller's open
// transaction, so it commits atomically with the business write.
func (s *Service) appendEvent(ctx context.Context, qtx db.Querier, eventGUID uuid.UUID, eventType model.EventType, payload []byte) error {
	_, err := qtx.AppendInboxEvent(ctx, db.AppendInboxEventParams{
		GUID:      db.ToPgUUID(eventGUID),
		EventType: string(eventType),
		Data:      payload,
		CreatedAt: s.nowTimestamp(),
	})
	return err
}

// newEventGUID mints a fresh uuid.UUID for an inbox event.
func newEventGUID() uuid.UUID {
	id, _ := uuid.NewV7()
	return id
}
