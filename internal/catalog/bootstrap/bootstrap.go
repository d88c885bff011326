// Package bootstrap is C9: idempotent startup provisioning of the buckets
// and index the rest of the service depends on existing. Grounded on
// original_source/src/bootstrap.py, which performs the same two steps
// (object-storage buckets, RediSearch index) before the app starts serving.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/shopery/catalog-bridge/internal/catalog/docstore"
	"github.com/shopery/catalog-bridge/internal/catalog/storage"
	"github.com/shopery/catalog-bridge/internal/platform/natsclient"
)

// Run performs every idempotent provisioning step required before the
// write-side orchestrator, search service, and projector can run.
// Creating an already-existing resource is a success (§4.7). nc is nil when
// the in-memory broker toggle is on; there is no stream to provision then.
func Run(ctx context.Context, nc *natsclient.Client, docs docstore.Gateway, objects *storage.Gateway) error {
	if nc != nil {
		if err := nc.ProvisionStreams(); err != nil {
			return fmt.Errorf("provision NATS streams: %w", err)
		}
	}

	if err := objects.EnsureBucket(ctx, storage.BucketProductImages); err != nil {
		return fmt.Errorf("ensure bucket %s: %w", storage.BucketProductImages, err)
	}
	if err := objects.EnsureBucket(ctx, storage.BucketBrandLogos); err != nil {
		return fmt.Errorf("ensure bucket %s: %w", storage.BucketBrandLogos, err)
	}

	if err := docs.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure document store index: %w", err)
	}

	return nil
}
