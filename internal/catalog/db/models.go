package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Brand mirrors the brands table row shape.
type Brand struct {
	GUID      pgtype.UUID
	Name      string
	LogoURL   pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
	RemovedAt pgtype.Timestamptz
}

// Category mirrors the categories table row shape.
type Category struct {
	GUID      pgtype.UUID
	NameEN    string
	NamePL    string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
	RemovedAt pgtype.Timestamptz
}

// Tag mirrors the tags table row shape.
type Tag struct {
	GUID      pgtype.UUID
	EN        string
	PL        string
	CreatedAt pgtype.Timestamptz
	RemovedAt pgtype.Timestamptz
}

// Product mirrors the products table row shape.
type Product struct {
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
	UpdatedAt     pgtype.Timestamptz
	RemovedAt     pgtype.Timestamptz
}

// ProductTag mirrors a row of the product_tags join table.
type ProductTag struct {
	ProductGUID pgtype.UUID
	TagGUID     pgtype.UUID
}

// InboxEvent mirrors the inbox_events table row shape (§4.2, §4.4).
type InboxEvent struct {
	GUID        pgtype.UUID
	EventType   string
	Data        []byte
	CreatedAt   pgtype.Timestamptz
	ProcessedAt pgtype.Timestamptz
}
