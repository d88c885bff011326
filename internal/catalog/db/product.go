package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const productColumns = `guid, sku, name_en, name_pl, image_url, description_en, description_pl,
	base_price_usd, base_price_pln, discount, quantity, weight_grams,
	color_en, color_pl, category_guid, brand_guid, created_at, updated_at, removed_at`

const insertProduct = `
INSERT INTO products.products (
	guid, sku, name_en, name_pl, image_url, description_en, description_pl,
	base_price_usd, base_price_pln, discount, quantity, weight_grams,
	color_en, color_pl, category_guid, brand_guid, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $17)
RETURNING ` + productColumns

// InsertProductParams carries the columns written on product creation.
type InsertProductParams struct {
	GUID          pgtype.UUID
	SKU           string
	NameEN        string
	NamePL        string
	ImageURL      pgtype.Text
	DescriptionEN string
	DescriptionPL string
	BasePriceUSD  pgtype.Numeric
	BasePricePLN  pgtype.Numeric
	Discount      pgtype.Int4
	Quantity      pgtype.Numeric
	WeightGrams   int32
	ColorEN       string
	ColorPL       string
	CategoryGUID  pgtype.UUID
	BrandGUID     pgtype.UUID
	CreatedAt     pgtype.Timestamptz
}

func (q *Queries) InsertProduct(ctx context.Context, arg InsertProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, insertProduct,
		arg.GUID, arg.SKU, arg.NameEN, arg.NamePL, arg.ImageURL, arg.DescriptionEN, arg.DescriptionPL,
		arg.BasePriceUSD, arg.BasePricePLN, arg.Discount, arg.Quantity, arg.WeightGrams,
		arg.ColorEN, arg.ColorPL, arg.CategoryGUID, arg.BrandGUID, arg.CreatedAt,
	)
	return scanProduct(row)
}

const getLiveProduct = `SELECT ` + productColumns + ` FROM products.products WHERE guid = $1 AND removed_at IS NULL`

func (q *Queries) GetLiveProduct(ctx context.Context, guid pgtype.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, getLiveProduct, guid)
	return scanProduct(row)
}

const findLiveProductBySKU = `SELECT ` + productColumns + ` FROM products.products WHERE sku = $1 AND removed_at IS NULL`

func (q *Queries) FindLiveProductBySKU(ctx context.Context, sku string) (Product, error) {
	row := q.db.QueryRow(ctx, findLiveProductBySKU, sku)
	return scanProduct(row)
}

const findLiveProductByNameEN = `SELECT ` + productColumns + ` FROM products.products WHERE name_en = $1 AND removed_at IS NULL`

func (q *Queries) FindLiveProductByNameEN(ctx context.Context, nameEN string) (Product, error) {
	row := q.db.QueryRow(ctx, findLiveProductByNameEN, nameEN)
	return scanProduct(row)
}

const findLiveProductByNamePL = `SELECT ` + productColumns + ` FROM products.products WHERE name_pl = $1 AND removed_at IS NULL`

func (q *Queries) FindLiveProductByNamePL(ctx context.Context, namePL string) (Product, error) {
	row := q.db.QueryRow(ctx, findLiveProductByNamePL, namePL)
	return scanProduct(row)
}

const updateProduct = `
UPDATE products.products SET
	sku = $2, name_en = $3, name_pl = $4, image_url = $5, description_en = $6, description_pl = $7,
	base_price_usd = $8, base_price_pln = $9, discount = $10, quantity = $11, weight_grams = $12,
	color_en = $13, color_pl = $14, category_guid = $15, brand_guid = $16, updated_at = $17
WHERE guid = $1 AND removed_at IS NULL
RETURNING ` + productColumns

// UpdateProductParams carries the columns written on product update.
type UpdateProductParams struct {
	GUID          pgtype.UUID
	SKU           string
	NameEN        string
	NamePL        string
	ImageURL      pgtype.Text
	DescriptionEN string
	DescriptionPL string
	BasePriceUSD  pgtype.Numeric
	BasePricePLN  pgtype.Numeric
	Discount      pgtype.Int4
	Quantity      pgtype.Numeric
	WeightGrams   int32
	ColorEN       string
	ColorPL       string
	CategoryGUID  pgtype.UUID
	BrandGUID     pgtype.UUID
	UpdatedAt     pgtype.Timestamptz
}

func (q *Queries) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, updateProduct,
		arg.GUID, arg.SKU, arg.NameEN, arg.NamePL, arg.ImageURL, arg.DescriptionEN, arg.DescriptionPL,
		arg.BasePriceUSD, arg.BasePricePLN, arg.Discount, arg.Quantity, arg.WeightGrams,
		arg.ColorEN, arg.ColorPL, arg.CategoryGUID, arg.BrandGUID, arg.UpdatedAt,
	)
	return scanProduct(row)
}

const removeProduct = `
UPDATE products.products SET removed_at = $2 WHERE guid = $1 AND removed_at IS NULL`

// RemoveProductParams carries the soft-delete timestamp.
type RemoveProductParams struct {
	GUID      pgtype.UUID
	RemovedAt pgtype.Timestamptz
}

func (q *Queries) RemoveProduct(ctx context.Context, arg RemoveProductParams) error {
	tag, err := q.db.Exec(ctx, removeProduct, arg.GUID, arg.RemovedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const listProducts = `SELECT ` + productColumns + ` FROM products.products WHERE removed_at IS NULL
ORDER BY name_en LIMIT $1 OFFSET $2`

func (q *Queries) ListProducts(ctx context.Context, arg ListParams) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const countProducts = `SELECT count(*) FROM products.products WHERE removed_at IS NULL`

func (q *Queries) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countProducts).Scan(&n)
	return n, err
}

func scanProduct(r row) (Product, error) {
	var p Product
	err := r.Scan(
		&p.GUID, &p.SKU, &p.NameEN, &p.NamePL, &p.ImageURL, &p.DescriptionEN, &p.DescriptionPL,
		&p.BasePriceUSD, &p.BasePricePLN, &p.Discount, &p.Quantity, &p.WeightGrams,
		&p.ColorEN, &p.ColorPL, &p.CategoryGUID, &p.BrandGUID, &p.CreatedAt, &p.UpdatedAt, &p.RemovedAt,
	)
	return p, err
}
