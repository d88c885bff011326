package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopery/catalog-bridge/internal/catalog/model"
	"github.com/shopery/catalog-bridge/internal/platform/natsclient"
)

func TestSubjectFor_KnownEventTypesMapToStreamSubjects(t *testing.T) {
	assert.Equal(t, natsclient.SubjectProductUpdated, subjectFor(model.EventProductUpdated))
	assert.Equal(t, natsclient.SubjectProductRemoved, subjectFor(model.EventProductRemoved))
}

// TestSubjectFor_UnconsumedEventTypesReturnEmpty covers §9 open question (a):
// CATEGORY_UPDATED/CATEGORY_REMOVED/TAG_REMOVED have no projector consumer.
func TestSubjectFor_UnconsumedEventTypesReturnEmpty(t *testing.T) {
	assert.Empty(t, subjectFor(model.EventCategoryUpdated))
	assert.Empty(t, subjectFor(model.EventCategoryRemoved))
	assert.Empty(t, subjectFor(model.EventTagRemoved))
}

func TestDispatchable(t *testing.T) {
	assert.True(t, Dispatchable(model.EventProductUpdated))
	assert.True(t, Dispatchable(model.EventProductRemoved))
	assert.False(t, Dispatchable(model.EventTagRemoved))
}

func TestInMemoryDispatcher_HandsJobToHandler(t *testing.T) {
	var (
		mu      sync.Mutex
		handled []uuid.UUID
		done    = make(chan struct{})
	)
	d := NewInMemoryDispatcher(func(_ context.Context, eventGUID uuid.UUID) error {
		mu.Lock()
		handled = append(handled, eventGUID)
		mu.Unlock()
		close(done)
		return nil
	}, zap.NewNop())

	eventGUID := uuid.New()
	require.NoError(t, d.Enqueue(context.Background(), model.EventProductUpdated, eventGUID))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler never invoked")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []uuid.UUID{eventGUID}, handled)
}

func TestInMemoryDispatcher_SkipsUnconsumedEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher(func(context.Context, uuid.UUID) error {
		t.Error("handler must not run for an unconsumed event type")
		return nil
	}, zap.NewNop())

	require.NoError(t, d.Enqueue(context.Background(), model.EventTagRemoved, uuid.New()))
	time.Sleep(20 * time.Millisecond)
}
