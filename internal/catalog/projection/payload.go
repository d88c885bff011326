// Package projection builds the JSON payloads embedded in inbox events
// (§4.3). The projector (C7) never re-dereferences brand/category/tag ids
// at apply time — every payload is a full snapshot taken at write time, so
// later writes to those referenced entities cannot retroactively change an
// already-queued event.
package projection

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/shopery/catalog-bridge/internal/catalog/model"
)

// TagSnapshot is the bilingual tag label embedded in a product payload.
type TagSnapshot struct {
	GUID uuid.UUID `json:"guid"`
	EN   string    `json:"en"`
	PL   string    `json:"pl"`
}

// ProductUpdated is the PRODUCT_UPDATED event payload (§4.3). Every field a
// search document needs is present here; the projector performs a
// whole-document replace from this shape, never a partial merge.
type ProductUpdated struct {
	GUID                uuid.UUID     `json:"guid"`
	SKU                 string        `json:"sku"`
	NameEN              string        `json:"name_en"`
	NamePL              string        `json:"name_pl"`
	ImageURL            *string       `json:"image_url,omitempty"`
	DescriptionEN       string        `json:"description_en"`
	DescriptionPL       string        `json:"description_pl"`
	BasePriceUSD        string        `json:"base_price_usd"`
	BasePricePLN        string        `json:"base_price_pln"`
	DiscountedPriceUSD  json.Number   `json:"discounted_price_usd"`
	DiscountedPricePLN  json.Number   `json:"discounted_price_pln"`
	Discount            *int32        `json:"discount,omitempty"`
	Quantity            string        `json:"quantity"`
	WeightGrams         int32         `json:"weight"`
	ColorEN             string        `json:"color_en"`
	ColorPL             string        `json:"color_pl"`
	Tags                []TagSnapshot `json:"tags"`
	CategoryGUID        uuid.UUID     `json:"category_guid"`
	CategoryNameEN      string        `json:"category_name_en"`
	CategoryNamePL      string        `json:"category_name_pl"`
	BrandGUID           uuid.UUID     `json:"brand_guid"`
	BrandName           string        `json:"brand_name"`
	BrandLogoURL        *string       `json:"brand_logo_url,omitempty"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// ProductRemoved is the PRODUCT_REMOVED event payload (§4.3): just enough
// to key the delete in the document store.
type ProductRemoved struct {
	GUID uuid.UUID `json:"guid"`
}

// Snapshot bundles the related entities resolved at write time, ready to
// embed in a ProductUpdated payload.
type Snapshot struct {
	Tags     []model.Tag
	Category model.Category
	Brand    model.Brand
}

// BuildProductUpdated assembles the PRODUCT_UPDATED payload for p, applying
// the discount-rounding rule from §4.1/P6 and snapshotting related entities
// per §4.3's rationale: the projector must see the view as it existed at
// commit time, not as it exists whenever the job finally runs.
func BuildProductUpdated(p model.Product, snap Snapshot) ProductUpdated {
	tags := make([]TagSnapshot, 0, len(snap.Tags))
	for _, t := range snap.Tags {
		tags = append(tags, TagSnapshot{GUID: t.GUID, EN: t.EN, PL: t.PL})
	}

	return ProductUpdated{
		GUID:               p.GUID,
		SKU:                p.SKU,
		NameEN:             p.NameEN,
		NamePL:             p.NamePL,
		ImageURL:           p.ImageURL,
		DescriptionEN:      p.DescriptionEN,
		DescriptionPL:      p.DescriptionPL,
		BasePriceUSD:       p.BasePriceUSD.StringFixed(2),
		BasePricePLN:       p.BasePricePLN.StringFixed(2),
		// json.Number keeps the exact decimal rendering while serializing as
		// a bare JSON number, which the index's NUMERIC fields require.
		DiscountedPriceUSD: json.Number(p.DiscountedPrice(p.BasePriceUSD).StringFixed(2)),
		DiscountedPricePLN: json.Number(p.DiscountedPrice(p.BasePricePLN).StringFixed(2)),
		Discount:           p.Discount,
		Quantity:           p.Quantity.String(),
		WeightGrams:        p.WeightGrams,
		ColorEN:            p.ColorEN,
		ColorPL:            p.ColorPL,
		Tags:               tags,
		CategoryGUID:       snap.Category.GUID,
		CategoryNameEN:     snap.Category.NameEN,
		CategoryNamePL:     snap.Category.NamePL,
		BrandGUID:          snap.Brand.GUID,
		BrandName:          snap.Brand.Name,
		BrandLogoURL:       snap.Brand.LogoURL,
		UpdatedAt:          p.UpdatedAt,
	}
}

// MarshalProductUpdated is a convenience wrapper for the common case of
// needing raw bytes for the inbox row's data column.
func MarshalProductUpdated(p model.Product, snap Snapshot) ([]byte, error) {
	return json.Marshal(BuildProductUpdated(p, snap))
}

// MarshalProductRemoved builds and encodes a PRODUCT_REMOVED payload.
func MarshalProductRemoved(guid uuid.UUID) ([]byte, error) {
	return json.Marshal(ProductRemoved{GUID: guid})
}

// CategoryUpdated is the CATEGORY_UPDATED event payload. No projector
// consumes it yet; the inbox row is the system of record for the change.
type CategoryUpdated struct {
	GUID      uuid.UUID `json:"guid"`
	NameEN    string    `json:"name_en"`
	NamePL    string    `json:"name_pl"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRemoved is the CATEGORY_REMOVED event payload.
type CategoryRemoved struct {
	GUID uuid.UUID `json:"guid"`
}

// TagRemoved is the TAG_REMOVED event payload.
type TagRemoved struct {
	GUID uuid.UUID `json:"guid"`
}

// MarshalCategoryUpdated builds and encodes a CATEGORY_UPDATED payload.
func MarshalCategoryUpdated(c model.Category) ([]byte, error) {
	return json.Marshal(CategoryUpdated{GUID: c.GUID, NameEN: c.NameEN, NamePL: c.NamePL, UpdatedAt: c.UpdatedAt})
}

// MarshalCategoryRemoved builds and encodes a CATEGORY_REMOVED payload.
func MarshalCategoryRemoved(guid uuid.UUID) ([]byte, error) {
	return json.Marshal(CategoryRemoved{GUID: guid})
}

// MarshalTagRemoved builds and encodes a TAG_REMOVED payload.
func MarshalTagRemoved(guid uuid.UUID) ([]byte, error) {
	return json.Marshal(TagRemoved{GUID: guid})
}
