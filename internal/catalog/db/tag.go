package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertTag = `
INSERT INTO products.tags (guid, en, pl, created_at)
VALUES ($1, $2, $3, $4)
RETURNING guid, en, pl, created_at, removed_at`

// InsertTagParams carries the columns written on tag creation.
type InsertTagParams struct {
	GUID      pgtype.UUID
	EN        string
	PL        string
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) InsertTag(ctx context.Context, arg InsertTagParams) (Tag, error) {
	row := q.db.QueryRow(ctx, insertTag, arg.GUID, arg.EN, arg.PL, arg.CreatedAt)
	return scanTag(row)
}

const getLiveTag = `
SELECT guid, en, pl, created_at, removed_at
FROM products.tags WHERE guid = $1 AND removed_at IS NULL`

func (q *Queries) GetLiveTag(ctx context.Context, guid pgtype.UUID) (Tag, error) {
	row := q.db.QueryRow(ctx, getLiveTag, guid)
	return scanTag(row)
}

const findLiveTagByEN = `
SELECT guid, en, pl, created_at, removed_at
FROM products.tags WHERE en = $1 AND removed_at IS NULL`

func (q *Queries) FindLiveTagByEN(ctx context.Context, en string) (Tag, error) {
	row := q.db.QueryRow(ctx, findLiveTagByEN, en)
	return scanTag(row)
}

const findLiveTagByPL = `
SELECT guid, en, pl, created_at, removed_at
FROM products.tags WHERE pl = $1 AND removed_at IS NULL`

func (q *Queries) FindLiveTagByPL(ctx context.Context, pl string) (Tag, error) {
	row := q.db.QueryRow(ctx, findLiveTagByPL, pl)
	return scanTag(row)
}

const listLiveTagsByGUIDs = `
SELECT guid, en, pl, created_at, removed_at
FROM products.tags WHERE guid = ANY($1) AND removed_at IS NULL`

func (q *Queries) ListLiveTagsByGUIDs(ctx context.Context, guids []pgtype.UUID) ([]Tag, error) {
	if len(guids) == 0 {
		return nil, nil
	}
	rows, err := q.db.Query(ctx, listLiveTagsByGUIDs, guids)
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

const removeTag = `
UPDATE products.tags SET removed_at = $2 WHERE guid = $1 AND removed_at IS NULL`

// RemoveTagParams carries the soft-delete timestamp.
type RemoveTagParams struct {
	GUID      pgtype.UUID
	RemovedAt pgtype.Timestamptz
}

func (q *Queries) RemoveTag(ctx context.Context, arg RemoveTagParams) error {
	tag, err := q.db.Exec(ctx, removeTag, arg.GUID, arg.RemovedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const countLiveProductsByTag = `
SELECT count(*) FROM products.products_tags pt
JOIN products.products p ON p.guid = pt.product_guid
WHERE pt.tag_guid = $1 AND p.removed_at IS NULL`

func (q *Queries) CountLiveProductsByTag(ctx context.Context, tagGUID pgtype.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countLiveProductsByTag, tagGUID).Scan(&n)
	return n, err
}

const listTags = `
SELECT guid, en, pl, created_at, removed_at
FROM products.tags WHERE removed_at IS NULL
ORDER BY en LIMIT $1 OFFSET $2`

func (q *Queries) ListTags(ctx context.Context, arg ListParams) ([]Tag, error) {
	rows, err := q.db.Query(ctx, listTags, arg.Limit, arg.Offset)
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

const countTags = `SELECT count(*) FROM products.tags WHERE removed_at IS NULL`

func (q *Queries) CountTags(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countTags).Scan(&n)
	return n, err
}

func scanTag(r row) (Tag, error) {
	var t Tag
	err := r.Scan(&t.GUID, &t.EN, &t.PL, &t.CreatedAt, &t.RemovedAt)
	return t, err
}
