package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const deleteProductTags = `DELETE FROM products.products_tags WHERE product_guid = $1`

const insertProductTag = `INSERT INTO products.products_tags (product_guid, tag_guid) VALUES ($1, $2)`

// ReplaceProductTags replaces a product's tag associations wholesale (§4.1:
// "tag set is replaced, not merged"). Must run inside the caller's
// transaction alongside the product row write.
func (q *Queries) ReplaceProductTags(ctx context.Context, productGUID pgtype.UUID, tagGUIDs []pgtype.UUID) error {
	if _, err := q.db.Exec(ctx, deleteProductTags, productGUID); err != nil {
		return err
	}
	for _, tagGUID := range tagGUIDs {
		if _, err := q.db.Exec(ctx, insertProductTag, productGUID, tagGUID); err != nil {
			return err
		}
	}
	return nil
}

const listProductTags = `
SELECT t.guid, t.en, t.pl, t.created_at, t.removed_at
FROM products.products_tags pt
JOIN products.tags t ON t.guid = pt.tag_guid
WHERE pt.product_guid = $1`

func (q *Queries) ListProductTags(ctx context.Context, productGUID pgtype.UUID) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listProductTags, productGUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
