package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/model"
	"github.com/shopery/catalog-bridge/internal/platform/clock"
)

type mockQuerier struct {
	db.Querier
	events []db.InboxEvent
	cutoff pgtype.Timestamptz
}

func (m *mockQuerier) ListStalePendingInboxEvents(ctx context.Context, cutoff pgtype.Timestamptz) ([]db.InboxEvent, error) {
	m.cutoff = cutoff
	return m.events, nil
}

type mockDispatcher struct {
	enqueued []uuid.UUID
	fail     bool
}

func (m *mockDispatcher) Enqueue(ctx context.Context, eventType model.EventType, eventGUID uuid.UUID) error {
	if m.fail {
		return assert.AnError
	}
	m.enqueued = append(m.enqueued, eventGUID)
	return nil
}

func mustPgUUID(u uuid.UUID) pgtype.UUID {
	var v pgtype.UUID
	_ = v.Scan(u.String())
	return v
}

// TestSweepOnce_ReenqueuesStalePendingEvents covers §7/P7: events pending
// past the grace period get a fresh dispatch attempt.
func TestSweepOnce_ReenqueuesStalePendingEvents(t *testing.T) {
	g1 := uuid.New()
	g2 := uuid.New()
	q := &mockQuerier{events: []db.InboxEvent{
		{GUID: mustPgUUID(g1), EventType: string(model.EventProductUpdated)},
		{GUID: mustPgUUID(g2), EventType: string(model.EventProductRemoved)},
	}}
	d := &mockDispatcher{}
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	s := New(30, q, d, clock.Frozen{At: now}, zap.NewNop())

	s.sweepOnce()

	require.Len(t, d.enqueued, 2)
	assert.ElementsMatch(t, []uuid.UUID{g1, g2}, d.enqueued)
	assert.True(t, q.cutoff.Valid)
	assert.True(t, q.cutoff.Time.Equal(now.Add(-30*time.Second)))
}

// TestSweepOnce_NoStaleEvents_NoDispatchCalls covers the empty-scan path.
func TestSweepOnce_NoStaleEvents_NoDispatchCalls(t *testing.T) {
	q := &mockQuerier{}
	d := &mockDispatcher{}
	s := New(30, q, d, clock.Frozen{At: time.Now()}, zap.NewNop())

	s.sweepOnce()

	assert.Empty(t, d.enqueued)
}

// TestSweepOnce_DispatchFailure_DoesNotPanic covers §7's tolerance for a
// failed re-enqueue: the event simply stays pending for the next sweep.
func TestSweepOnce_DispatchFailure_DoesNotPanic(t *testing.T) {
	q := &mockQuerier{events: []db.InboxEvent{{GUID: mustPgUUID(uuid.New()), EventType: string(model.EventProductUpdated)}}}
	d := &mockDispatcher{fail: true}
	s := New(30, q, d, clock.Frozen{At: time.Now()}, zap.NewNop())

	assert.NotPanics(t, func() { s.sweepOnce() })
}
