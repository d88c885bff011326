// Package dto holds the write- and read-side data-transfer objects at the
// HTTP boundary. Per §9(c), prices are decimals in, strings out: callers
// submit decimal.Decimal (parsed from JSON strings by the handler layer)
// and read back formatted strings.
package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductWrite carries the caller-supplied fields for add/update product.
type ProductWrite struct {
	SKU            string
	NameEN         string
	NamePL         string
	ImageURL       *string
	DescriptionEN  string
	DescriptionPL  string
	BasePriceUSD   decimal.Decimal
	BasePricePLN   decimal.Decimal
	Discount       *int32
	Quantity       decimal.Decimal
	WeightGrams    int32
	ColorEN        string
	ColorPL        string
	TagGUIDs       []uuid.UUID
	CategoryGUID   uuid.UUID
	BrandGUID      uuid.UUID
}

// ProductDetail is the full read-after-write projection of a product,
// returned by the orchestrator on success.
type ProductDetail struct {
	GUID          uuid.UUID    `json:"guid"`
	SKU           string       `json:"sku"`
	NameEN        string       `json:"name_en"`
	NamePL        string       `json:"name_pl"`
	ImageURL      *string      `json:"image_url,omitempty"`
	DescriptionEN string       `json:"description_en"`
	DescriptionPL string       `json:"description_pl"`
	BasePriceUSD  string       `json:"base_price_usd"`
	BasePricePLN  string       `json:"base_price_pln"`
	Discount      *int32       `json:"discount,omitempty"`
	Quantity      string       `json:"quantity"`
	WeightGrams   int32        `json:"weight"`
	ColorEN       string       `json:"color_en"`
	ColorPL       string       `json:"color_pl"`
	Tags          []TagItem    `json:"tags"`
	Category      CategoryItem `json:"category"`
	Brand         BrandItem    `json:"brand"`
}

// BrandWrite carries the caller-supplied fields for add/update brand.
type BrandWrite struct {
	Name    string
	LogoURL *string
}

// BrandItem is the read-side representation of a brand.
type BrandItem struct {
	GUID    uuid.UUID `json:"guid"`
	Name    string    `json:"name"`
	LogoURL *string   `json:"logo_url,omitempty"`
}

// CategoryWrite carries the caller-supplied fields for add/update category.
type CategoryWrite struct {
	NameEN string
	NamePL string
}

// CategoryItem is the read-side representation of a category.
type CategoryItem struct {
	GUID   uuid.UUID `json:"guid"`
	NameEN string    `json:"name_en"`
	NamePL string    `json:"name_pl"`
}

// NewTag carries the caller-supplied fields for add tag.
type NewTag struct {
	EN string
	PL string
}

// TagItem is the read-side representation of a tag.
type TagItem struct {
	GUID uuid.UUID `json:"guid"`
	EN   string    `json:"en"`
	PL   string    `json:"pl"`
}

// Page is the generic paginated list envelope used by every GET-list
// endpoint (§6).
type Page[T any] struct {
	PageNumber int `json:"page_number"`
	PageSize   int `json:"page_size"`
	PagesCount int `json:"pages_count"`
	Total      int `json:"total"`
	Items      []T `json:"items"`
}
