// Package model holds the write-side relational entities (§3): Brand,
// Category, Tag, Product, and the InboxEvent that bridges the write model
// to the read-side projection.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Brand is a soft-deletable product manufacturer/label.
type Brand struct {
	GUID      uuid.UUID
	Name      string
	LogoURL   *string
	CreatedAt time.Time
	UpdatedAt time.Time
	RemovedAt *time.Time
}

// Live reports whether the brand has not been soft-deleted.
func (b Brand) Live() bool { return b.RemovedAt == nil }

// Category is a bilingual, soft-deletable product grouping.
type Category struct {
	GUID      uuid.UUID
	NameEN    string
	NamePL    string
	CreatedAt time.Time
	UpdatedAt time.Time
	RemovedAt *time.Time
}

// Live reports whether the category has not been soft-deleted.
func (c Category) Live() bool { return c.RemovedAt == nil }

// Tag is a bilingual, soft-deletable product label.
type Tag struct {
	GUID      uuid.UUID
	EN        string
	PL        string
	CreatedAt time.Time
	RemovedAt *time.Time
}

// Live reports whether the tag has not been soft-deleted.
func (t Tag) Live() bool { return t.RemovedAt == nil }

// Product is the write-side product row. Tags/Category/Brand are
// references-but-not-owned, resolved by guid at write time and snapshotted
// into the inbox payload (§4.3) rather than re-dereferenced at projection time.
type Product struct {
	GUID           uuid.UUID
	SKU            string
	NameEN         string
	NamePL         string
	ImageURL       *string
	DescriptionEN  string
	DescriptionPL  string
	BasePriceUSD   decimal.Decimal
	BasePricePLN   decimal.Decimal
	Discount       *int32 // percent off, 1..99
	Quantity       decimal.Decimal
	WeightGrams    int32
	ColorEN        string
	ColorPL        string
	TagGUIDs       []uuid.UUID
	CategoryGUID   uuid.UUID
	BrandGUID      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	RemovedAt      *time.Time
}

// Live reports whether the product has not been soft-deleted.
func (p Product) Live() bool { return p.RemovedAt == nil }

// DiscountedPrice applies §4.1's rounding rule: base * (100-discount) / 100,
// rounded half-to-even to two fractional digits. Absence of a discount
// means the discounted price equals the base price.
func (p Product) DiscountedPrice(base decimal.Decimal) decimal.Decimal {
	if p.Discount == nil {
		return base.Round(2)
	}
	factor := decimal.NewFromInt(100 - int64(*p.Discount)).Div(decimal.NewFromInt(100))
	return base.Mul(factor).RoundBank(2)
}

// EventType is the tagged variant over InboxEvent.data's shape (§3, §9).
type EventType string

const (
	EventProductUpdated  EventType = "PRODUCT_UPDATED"
	EventProductRemoved  EventType = "PRODUCT_REMOVED"
	EventCategoryUpdated EventType = "CATEGORY_UPDATED"
	EventCategoryRemoved EventType = "CATEGORY_REMOVED"
	EventTagRemoved      EventType = "TAG_REMOVED"
)

// InboxEvent is the append-only transactional-inbox record (§3, §4.2).
// Once ProcessedAt is set it is never reset (I1); events are never updated
// otherwise (append-only).
type InboxEvent struct {
	GUID        uuid.UUID
	EventType   EventType
	Data        []byte // opaque JSON payload, shape depends on EventType
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// Pending reports whether the event has not yet been applied to the
// document store.
func (e InboxEvent) Pending() bool { return e.ProcessedAt == nil }
