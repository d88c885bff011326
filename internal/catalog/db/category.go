package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertCategory = `
INSERT INTO products.categories (guid, name_en, name_pl, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
RETURNING guid, name_en, name_pl, created_at, updated_at, removed_at`

// InsertCategoryParams carries the columns written on category creation.
type InsertCategoryParams struct {
	GUID      pgtype.UUID
	NameEN    string
	NamePL    string
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) InsertCategory(ctx context.Context, arg InsertCategoryParams) (Category, error) {
	row := q.db.QueryRow(ctx, insertCategory, arg.GUID, arg.NameEN, arg.NamePL, arg.CreatedAt)
	return scanCategory(row)
}

const getLiveCategory = `
SELECT guid, name_en, name_pl, created_at, updated_at, removed_at
FROM products.categories WHERE guid = $1 AND removed_at IS NULL`

func (q *Queries) GetLiveCategory(ctx context.Context, guid pgtype.UUID) (Category, error) {
	row := q.db.QueryRow(ctx, getLiveCategory, guid)
	return scanCategory(row)
}

const findLiveCategoryByNameEN = `
SELECT guid, name_en, name_pl, created_at, updated_at, removed_at
FROM products.categories WHERE name_en = $1 AND removed_at IS NULL`

func (q *Queries) FindLiveCategoryByNameEN(ctx context.Context, nameEN string) (Category, error) {
	row := q.db.QueryRow(ctx, findLiveCategoryByNameEN, nameEN)
	return scanCategory(row)
}

const findLiveCategoryByNamePL = `
SELECT guid, name_en, name_pl, created_at, updated_at, removed_at
FROM products.categories WHERE name_pl = $1 AND removed_at IS NULL`

func (q *Queries) FindLiveCategoryByNamePL(ctx context.Context, namePL string) (Category, error) {
	row := q.db.QueryRow(ctx, findLiveCategoryByNamePL, namePL)
	return scanCategory(row)
}

const updateCategory = `
UPDATE products.categories SET name_en = $2, name_pl = $3, updated_at = $4
WHERE guid = $1 AND removed_at IS NULL
RETURNING guid, name_en, name_pl, created_at, updated_at, removed_at`

// UpdateCategoryParams carries the columns written on category update.
type UpdateCategoryParams struct {
	GUID      pgtype.UUID
	NameEN    string
	NamePL    string
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error) {
	row := q.db.QueryRow(ctx, updateCategory, arg.GUID, arg.NameEN, arg.NamePL, arg.UpdatedAt)
	return scanCategory(row)
}

const removeCategory = `
UPDATE products.categories SET removed_at = $2 WHERE guid = $1 AND removed_at IS NULL`

// RemoveCategoryParams carries the soft-delete timestamp.
type RemoveCategoryParams struct {
	GUID      pgtype.UUID
	RemovedAt pgtype.Timestamptz
}

func (q *Queries) RemoveCategory(ctx context.Context, arg RemoveCategoryParams) error {
	tag, err := q.db.Exec(ctx, removeCategory, arg.GUID, arg.RemovedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const countLiveProductsByCategory = `
SELECT count(*) FROM products.products WHERE category_guid = $1 AND removed_at IS NULL`

func (q *Queries) CountLiveProductsByCategory(ctx context.Context, categoryGUID pgtype.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countLiveProductsByCategory, categoryGUID).Scan(&n)
	return n, err
}

const listCategories = `
SELECT guid, name_en, name_pl, created_at, updated_at, removed_at
FROM products.categories WHERE removed_at IS NULL
ORDER BY name_en LIMIT $1 OFFSET $2`

func (q *Queries) ListCategories(ctx context.Context, arg ListParams) ([]Category, error) {
	rows, err := q.db.Query(ctx, listCategories, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const countCategories = `SELECT count(*) FROM products.categories WHERE removed_at IS NULL`

func (q *Queries) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countCategories).Scan(&n)
	return n, err
}

func scanCategory(r row) (Category, error) {
	var c Category
	err := r.Scan(&c.GUID, &c.NameEN, &c.NamePL, &c.CreatedAt, &c.UpdatedAt, &c.RemovedAt)
	return c, err
}
