package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the full set of statements the catalog service issues against
// Postgres. Both the pool-bound and the per-transaction Queries values
// satisfy it, mirroring how the teacher's db.Querier lets service code run
// the same calls inside or outside an open transaction.
type Querier interface {
	// brands
	InsertBrand(ctx context.Context, arg InsertBrandParams) (Brand, error)
	GetLiveBrand(ctx context.Context, guid pgtype.UUID) (Brand, error)
	FindLiveBrandByName(ctx context.Context, name string) (Brand, error)
	UpdateBrand(ctx context.Context, arg UpdateBrandParams) (Brand, error)
	RemoveBrand(ctx context.Context, arg RemoveBrandParams) error
	CountLiveProductsByBrand(ctx context.Context, brandGUID pgtype.UUID) (int64, error)
	ListBrands(ctx context.Context, arg ListParams) ([]Brand, error)
	CountBrands(ctx context.Context) (int64, error)

	// categories
	InsertCategory(ctx context.Context, arg InsertCategoryParams) (Category, error)
	GetLiveCategory(ctx context.Context, guid pgtype.UUID) (Category, error)
	FindLiveCategoryByNameEN(ctx context.Context, nameEN string) (Category, error)
	FindLiveCategoryByNamePL(ctx context.Context, namePL string) (Category, error)
	UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error)
	RemoveCategory(ctx context.Context, arg RemoveCategoryParams) error
	CountLiveProductsByCategory(ctx context.Context, categoryGUID pgtype.UUID) (int64, error)
	ListCategories(ctx context.Context, arg ListParams) ([]Category, error)
	CountCategories(ctx context.Context) (int64, error)

	// tags
	InsertTag(ctx context.Context, arg InsertTagParams) (Tag, error)
	GetLiveTag(ctx context.Context, guid pgtype.UUID) (Tag, error)
	FindLiveTagByEN(ctx context.Context, en string) (Tag, error)
	FindLiveTagByPL(ctx context.Context, pl string) (Tag, error)
	ListLiveTagsByGUIDs(ctx context.Context, guids []pgtype.UUID) ([]Tag, error)
	RemoveTag(ctx context.Context, arg RemoveTagParams) error
	CountLiveProductsByTag(ctx context.Context, tagGUID pgtype.UUID) (int64, error)
	ListTags(ctx context.Context, arg ListParams) ([]Tag, error)
	CountTags(ctx context.Context) (int64, error)

	// products
	InsertProduct(ctx context.Context, arg InsertProductParams) (Product, error)
	GetLiveProduct(ctx context.Context, guid pgtype.UUID) (Product, error)
	FindLiveProductBySKU(ctx context.Context, sku string) (Product, error)
	FindLiveProductByNameEN(ctx context.Context, nameEN string) (Product, error)
	FindLiveProductByNamePL(ctx context.Context, namePL string) (Product, error)
	UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error)
	RemoveProduct(ctx context.Context, arg RemoveProductParams) error
	ListProducts(ctx context.Context, arg ListParams) ([]Product, error)
	CountProducts(ctx context.Context) (int64, error)

	// product_tags
	ReplaceProductTags(ctx context.Context, productGUID pgtype.UUID, tagGUIDs []pgtype.UUID) error
	ListProductTags(ctx context.Context, productGUID pgtype.UUID) ([]Tag, error)

	// inbox_events (C4)
	AppendInboxEvent(ctx context.Context, arg AppendInboxEventParams) (InboxEvent, error)
	LoadPendingInboxEvent(ctx context.Context, guid pgtype.UUID) (InboxEvent, error)
	MarkInboxEventProcessed(ctx context.Context, arg MarkInboxEventProcessedParams) error
	ListStalePendingInboxEvents(ctx context.Context, olderThan pgtype.Timestamptz) ([]InboxEvent, error)
}

// ListParams is the shared offset/limit pagination input (§4.6, §6).
type ListParams struct {
	Limit  int32
	Offset int32
}

var _ Querier = (*Queries)(nil)
