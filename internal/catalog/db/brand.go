package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertBrand = `
INSERT INTO products.brands (guid, name, logo_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
RETURNING guid, name, logo_url, created_at, updated_at, removed_at`

// InsertBrandParams carries the columns written on brand creation.
type InsertBrandParams struct {
	GUID      pgtype.UUID
	Name      string
	LogoURL   pgtype.Text
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) InsertBrand(ctx context.Context, arg InsertBrandParams) (Brand, error) {
	row := q.db.QueryRow(ctx, insertBrand, arg.GUID, arg.Name, arg.LogoURL, arg.CreatedAt)
	return scanBrand(row)
}

const getLiveBrand = `
SELECT guid, name, logo_url, created_at, updated_at, removed_at
FROM products.brands WHERE guid = $1 AND removed_at IS NULL`

func (q *Queries) GetLiveBrand(ctx context.Context, guid pgtype.UUID) (Brand, error) {
	row := q.db.QueryRow(ctx, getLiveBrand, guid)
	return scanBrand(row)
}

const findLiveBrandByName = `
SELECT guid, name, logo_url, created_at, updated_at, removed_at
FROM products.brands WHERE name = $1 AND removed_at IS NULL`

func (q *Queries) FindLiveBrandByName(ctx context.Context, name string) (Brand, error) {
	row := q.db.QueryRow(ctx, findLiveBrandByName, name)
	return scanBrand(row)
}

const updateBrand = `
UPDATE products.brands SET name = $2, logo_url = $3, updated_at = $4
WHERE guid = $1 AND removed_at IS NULL
RETURNING guid, name, logo_url, created_at, updated_at, removed_at`

// UpdateBrandParams carries the columns written on brand update.
type UpdateBrandParams struct {
	GUID      pgtype.UUID
	Name      string
	LogoURL   pgtype.Text
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) UpdateBrand(ctx context.Context, arg UpdateBrandParams) (Brand, error) {
	row := q.db.QueryRow(ctx, updateBrand, arg.GUID, arg.Name, arg.LogoURL, arg.UpdatedAt)
	return scanBrand(row)
}

const removeBrand = `
UPDATE products.brands SET removed_at = $2 WHERE guid = $1 AND removed_at IS NULL`

// RemoveBrandParams carries the soft-delete timestamp.
type RemoveBrandParams struct {
	GUID      pgtype.UUID
	RemovedAt pgtype.Timestamptz
}

func (q *Queries) RemoveBrand(ctx context.Context, arg RemoveBrandParams) error {
	tag, err := q.db.Exec(ctx, removeBrand, arg.GUID, arg.RemovedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const countLiveProductsByBrand = `
SELECT count(*) FROM products.products WHERE brand_guid = $1 AND removed_at IS NULL`

func (q *Queries) CountLiveProductsByBrand(ctx context.Context, brandGUID pgtype.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countLiveProductsByBrand, brandGUID).Scan(&n)
	return n, err
}

const listBrands = `
SELECT guid, name, logo_url, created_at, updated_at, removed_at
FROM products.brands WHERE removed_at IS NULL
ORDER BY name LIMIT $1 OFFSET $2`

func (q *Queries) ListBrands(ctx context.Context, arg ListParams) ([]Brand, error) {
	rows, err := q.db.Query(ctx, listBrands, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

const countBrands = `SELECT count(*) FROM products.brands WHERE removed_at IS NULL`

func (q *Queries) CountBrands(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countBrands).Scan(&n)
	return n, err
}

// row is satisfied by both pgx.Row and pgx.Rows, letting scanBrand serve
// both QueryRow and Query call sites.
type row interface {
	Scan(dest ...any) error
}

func scanBrand(r row) (Brand, error) {
	var b Brand
	err := r.Scan(&b.GUID, &b.Name, &b.LogoURL, &b.CreatedAt, &b.UpdatedAt, &b.RemovedAt)
	return b, err
}
