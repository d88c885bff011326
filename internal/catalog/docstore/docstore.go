// Package docstore implements the document store gateway (C3) over Redis,
// using RedisJSON for document storage and RediSearch for the secondary
// index (§3, §4.7). go-redis has no native bindings for either module, so
// every call here is issued as a raw command via Conn.Do, the same pattern
// original_source/src/common/redis.py and bootstrap.py use against the
// redis-py JSON()/ft() client extensions.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopery/catalog-bridge/internal/catalog/projection"
)

// IndexName is the RediSearch index over the product:* key prefix (§3, §6).
const IndexName = "idx:products"

// KeyPrefix is the document key prefix for projected products.
const KeyPrefix = "product:"

// tombstonePrefix keys removal markers. Deliberately outside KeyPrefix so
// tombstones never match the search index.
const tombstonePrefix = "tombstone:product:"

// tombstoneTTL bounds tombstone lifetime. It only has to outlive the
// broker's redelivery window, after which no stale PRODUCT_UPDATED for the
// removed product can still arrive.
const tombstoneTTL = 24 * time.Hour

// Gateway is the C3 contract: put/delete a JSON document, record/read
// removal tombstones, or run a structured search against the index.
type Gateway interface {
	PutProduct(ctx context.Context, payload projection.ProductUpdated) error
	DeleteProduct(ctx context.Context, guid string) error
	GetProduct(ctx context.Context, guid string) (*projection.ProductUpdated, error)
	PutTombstone(ctx context.Context, guid string, removedAt time.Time) error
	GetTombstone(ctx context.Context, guid string) (*time.Time, error)
	DeleteTombstone(ctx context.Context, guid string) error
	Search(ctx context.Context, query Query) (Result, error)
	EnsureIndex(ctx context.Context) error
}

// RedisGateway is the Gateway implementation over redis/go-redis/v9.
type RedisGateway struct {
	rdb *redis.Client
}

// NewRedisGateway wraps an already-connected redis.Client.
func NewRedisGateway(rdb *redis.Client) *RedisGateway {
	return &RedisGateway{rdb: rdb}
}

func productKey(guid string) string { return KeyPrefix + guid }

// PutProduct whole-document replaces the product:{guid} key (§4.5: "upsert
// the document ... whole-document replace; no partial merges").
func (g *RedisGateway) PutProduct(ctx context.Context, payload projection.ProductUpdated) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal product document: %w", err)
	}
	return g.rdb.Do(ctx, "JSON.SET", productKey(payload.GUID.String()), "$", string(data)).Err()
}

// DeleteProduct removes the document. Deleting a missing key is a success
// (§4.5), matching JSON.DEL's own semantics (returns 0, not an error).
func (g *RedisGateway) DeleteProduct(ctx context.Context, guid string) error {
	err := g.rdb.Do(ctx, "JSON.DEL", productKey(guid), "$").Err()
	if err == redis.Nil {
		return nil
	}
	return err
}

// PutTombstone records that the product was removed at removedAt, so an
// out-of-order older PRODUCT_UPDATED cannot resurrect the document (§4.5:
// delete wins over older updates).
func (g *RedisGateway) PutTombstone(ctx context.Context, guid string, removedAt time.Time) error {
	return g.rdb.Set(ctx, tombstonePrefix+guid, removedAt.UTC().Format(time.RFC3339Nano), tombstoneTTL).Err()
}

// GetTombstone returns the recorded removal time, or nil when none exists.
func (g *RedisGateway) GetTombstone(ctx context.Context, guid string) (*time.Time, error) {
	val, err := g.rdb.Get(ctx, tombstonePrefix+guid).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return nil, fmt.Errorf("parse tombstone for %s: %w", guid, err)
	}
	return &t, nil
}

// DeleteTombstone drops the removal marker; deleting a missing one is a
// success.
func (g *RedisGateway) DeleteTombstone(ctx context.Context, guid string) error {
	return g.rdb.Del(ctx, tombstonePrefix+guid).Err()
}

// GetProduct reads back the current document, used by the projector's
// stale-write guard (§4.5) to compare updated_at before overwriting.
func (g *RedisGateway) GetProduct(ctx context.Context, guid string) (*projection.ProductUpdated, error) {
	res, err := g.rdb.Do(ctx, "JSON.GET", productKey(guid), "$").Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	raw, ok := res.(string)
	if !ok || raw == "" {
		return nil, nil
	}

	// JSON.GET with a $ path wraps the result in a single-element array.
	var wrapped []projection.ProductUpdated
	if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
		return nil, fmt.Errorf("unmarshal product document: %w", err)
	}
	if len(wrapped) == 0 {
		return nil, nil
	}
	return &wrapped[0], nil
}

// EnsureIndex idempotently creates the idx:products RediSearch index (C9).
// Creating an already-existing index is a success.
func (g *RedisGateway) EnsureIndex(ctx context.Context) error {
	err := g.rdb.Do(ctx, "FT.INFO", IndexName).Err()
	if err == nil {
		return nil
	}

	args := []any{
		"FT.CREATE", IndexName,
		"ON", "JSON",
		"PREFIX", "1", KeyPrefix,
		"SCHEMA",
		"$.sku", "AS", "sku", "TAG",
		"$.name_en", "AS", "name_en", "TEXT", "SORTABLE",
		"$.name_pl", "AS", "name_pl", "TEXT", "SORTABLE",
		"$.description_en", "AS", "description_en", "TEXT",
		"$.description_pl", "AS", "description_pl", "TEXT",
		"$.color_en", "AS", "color_en", "TAG",
		"$.color_pl", "AS", "color_pl", "TAG",
		"$.tags[*].en", "AS", "tag_en", "TAG",
		"$.tags[*].pl", "AS", "tag_pl", "TAG",
		"$.category_guid", "AS", "category_guid", "TAG",
		"$.category_name_en", "AS", "category_name_en", "TAG", "SORTABLE",
		"$.brand_guid", "AS", "brand_guid", "TAG",
		"$.brand_name", "AS", "brand_name", "TAG", "SORTABLE",
		"$.discounted_price_usd", "AS", "discounted_price_usd", "NUMERIC", "SORTABLE",
		"$.discounted_price_pln", "AS", "discounted_price_pln", "NUMERIC", "SORTABLE",
	}
	return g.rdb.Do(ctx, args...).Err()
}
