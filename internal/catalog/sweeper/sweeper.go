// Package sweeper implements the periodic background task from §7: scan
// inbox_events for rows pending past a grace period and re-enqueue their
// guids. Wraps robfig/cron the way the teacher's notification-service
// scheduler does, trading its tick-publishing body for a direct repository
// scan plus dispatch.
package sweeper

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dispatch"
	"github.com/shopery/catalog-bridge/internal/catalog/model"
	"github.com/shopery/catalog-bridge/internal/platform/clock"
)

// Sweeper re-enqueues pending inbox events whose age exceeds graceSeconds,
// covering the case where the dispatcher call after a commit failed or was
// never made (§4.1 step 7, §7, P7).
type Sweeper struct {
	cron         *cron.Cron
	queries      db.Querier
	dispatcher   dispatch.Dispatcher
	clock        clock.Clock
	graceSeconds int
	log          *zap.Logger
}

// New constructs a Sweeper. The grace period is expressed in seconds,
// matching §6's configuration shape.
func New(graceSeconds int, q db.Querier, d dispatch.Dispatcher, c clock.Clock, log *zap.Logger) *Sweeper {
	return &Sweeper{
		cron:         cron.New(cron.WithSeconds()),
		queries:      q,
		dispatcher:   d,
		clock:        c,
		graceSeconds: graceSeconds,
		log:          log,
	}
}

// Start registers the sweep job and starts the scheduler. Call Stop to
// gracefully shut down.
func (s *Sweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweepOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("sweeper started", zap.String("spec", spec), zap.Int("grace_seconds", s.graceSeconds))
	return nil
}

// Stop gracefully stops the scheduler, waiting for any in-flight sweep.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("sweeper stopped")
}

func (s *Sweeper) sweepOnce() {
	ctx := context.Background()

	cutoff := s.clock.Now().Add(-durationSeconds(s.graceSeconds))
	events, err := s.queries.ListStalePendingInboxEvents(ctx, pgtype.Timestamptz{Time: cutoff, Valid: true})
	if err != nil {
		s.log.Error("sweeper: list stale pending inbox events", zap.Error(err))
		return
	}
	if len(events) == 0 {
		return
	}

	s.log.Info("sweeper re-enqueuing stale inbox events", zap.Int("count", len(events)))
	for _, e := range events {
		if !dispatch.Dispatchable(model.EventType(e.EventType)) {
			continue
		}
		guid := db.FromPgUUID(e.GUID)
		if err := s.dispatcher.Enqueue(ctx, model.EventType(e.EventType), guid); err != nil {
			s.log.Warn("sweeper: re-enqueue failed, will retry next sweep",
				zap.String("event_guid", guid.String()), zap.Error(err))
		}
	}
}

func durationSeconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
