package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// This file is the C4 inbox repository: the append-only log of pending
// projection work (§4.2). append is only ever called inside the caller's
// open transaction (I2), so it commits atomically with the business write.

const appendInboxEvent = `
INSERT INTO store.inbox_events (guid, event_type, data, created_at)
VALUES ($1, $2, $3, $4)
RETURNING guid, event_type, data, created_at, processed_at`

// AppendInboxEventParams carries the columns written for a new inbox event.
type AppendInboxEventParams struct {
	GUID      pgtype.UUID
	EventType string
	Data      []byte
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) AppendInboxEvent(ctx context.Context, arg AppendInboxEventParams) (InboxEvent, error) {
	row := q.db.QueryRow(ctx, appendInboxEvent, arg.GUID, arg.EventType, arg.Data, arg.CreatedAt)
	return scanInboxEvent(row)
}

// loadPendingInboxEvent returns the event only if it is present AND still
// pending — matching the Python original_source's load_pending(guid) →
// Event | None contract, which treats "missing" and "already processed" the
// same way (§4.2): both become pgx.ErrNoRows here for the caller to no-op on.
const loadPendingInboxEvent = `
SELECT guid, event_type, data, created_at, processed_at
FROM store.inbox_events WHERE guid = $1 AND processed_at IS NULL`

func (q *Queries) LoadPendingInboxEvent(ctx context.Context, guid pgtype.UUID) (InboxEvent, error) {
	row := q.db.QueryRow(ctx, loadPendingInboxEvent, guid)
	return scanInboxEvent(row)
}

// markInboxEventProcessed only ever transitions NULL → value (I1): the
// WHERE clause makes a second call on an already-processed event a no-op
// rather than an overwrite.
const markInboxEventProcessed = `
UPDATE store.inbox_events SET processed_at = $2
WHERE guid = $1 AND processed_at IS NULL`

// MarkInboxEventProcessedParams carries the processed timestamp.
type MarkInboxEventProcessedParams struct {
	GUID        pgtype.UUID
	ProcessedAt pgtype.Timestamptz
}

func (q *Queries) MarkInboxEventProcessed(ctx context.Context, arg MarkInboxEventProcessedParams) error {
	_, err := q.db.Exec(ctx, markInboxEventProcessed, arg.GUID, arg.ProcessedAt)
	return err
}

// listStalePendingInboxEvents backs the sweeper (§7): events pending past
// the configured grace period. Relies on the (processed_at IS NULL,
// created_at) index named in I3.
const listStalePendingInboxEvents = `
SELECT guid, event_type, data, created_at, processed_at
FROM store.inbox_events
WHERE processed_at IS NULL AND created_at < $1
ORDER BY created_at`

func (q *Queries) ListStalePendingInboxEvents(ctx context.Context, olderThan pgtype.Timestamptz) ([]InboxEvent, error) {
	rows, err := q.db.Query(ctx, listStalePendingInboxEvents, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InboxEvent
	for rows.Next() {
		e, err := scanInboxEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanInboxEvent(r row) (InboxEvent, error) {
	var e InboxEvent
	err := r.Scan(&e.GUID, &e.EventType, &e.Data, &e.CreatedAt, &e.ProcessedAt)
	return e, err
}
