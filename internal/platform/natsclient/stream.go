package natsclient

import (
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	// StreamProjection is the durable stream carrying catalog projection jobs.
	StreamProjection = "CATALOG_PROJECTION"
	// SubjectProductUpdated is the subject the dispatcher publishes to after a
	// PRODUCT_UPDATED inbox event commits; consume_product_updated_event binds here.
	SubjectProductUpdated = "CATALOG_PROJECTION.product.updated"
	// SubjectProductRemoved is the subject for PRODUCT_REMOVED inbox events;
	// consume_product_removed_event binds here.
	SubjectProductRemoved = "CATALOG_PROJECTION.product.removed"
	// SubjectDeadLetter receives jobs that exceeded the projector's retry budget.
	SubjectDeadLetter = "CATALOG_PROJECTION.dead-letter"

	// DurableProductUpdated is the durable consumer name for product-updated jobs.
	DurableProductUpdated = "consume_product_updated_event"
	// DurableProductRemoved is the durable consumer name for product-removed jobs.
	DurableProductRemoved = "consume_product_removed_event"
)

var projectionSubjects = []string{
	SubjectProductUpdated,
	SubjectProductRemoved,
	SubjectDeadLetter,
}

// ProvisionStreams idempotently ensures the CATALOG_PROJECTION JetStream
// stream exists with the correct subject filter. Creating an
// already-existing stream is a success (C9 bootstrap semantics).
func (c *Client) ProvisionStreams() error {
	if _, err := c.JS.StreamInfo(StreamProjection); err == nil {
		c.Log.Info("NATS stream already exists", zap.String("stream", StreamProjection))
		return nil
	} else if !errors.Is(err, nats.ErrStreamNotFound) {
		return fmt.Errorf("stream info: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      StreamProjection,
		Subjects:  projectionSubjects,
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
	}

	if _, err := c.JS.AddStream(cfg); err != nil {
		return fmt.Errorf("create stream: %w", err)
	}

	c.Log.Info("NATS stream provisioned",
		zap.String("stream", StreamProjection),
	)
	return nil
}
