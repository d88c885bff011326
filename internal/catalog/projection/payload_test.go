package projection_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopery/catalog-bridge/internal/catalog/model"
	"github.com/shopery/catalog-bridge/internal/catalog/projection"
)

func discount(n int32) *int32 { return &n }

// TestBuildProductUpdated_ScenarioOne reproduces §8 scenario 1's literal
// numbers end to end through the payload builder.
func TestBuildProductUpdated_ScenarioOne(t *testing.T) {
	productGUID := uuid.New()
	categoryGUID := uuid.New()
	brandGUID := uuid.New()
	tagGUID := uuid.New()
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)

	p := model.Product{
		GUID:          productGUID,
		SKU:           "2,51,594",
		NameEN:        "Chinese Cabbage",
		NamePL:        "Kapusta Chińska",
		DescriptionEN: "fresh",
		DescriptionPL: "świeża",
		BasePriceUSD:  decimal.RequireFromString("48.00"),
		BasePricePLN:  decimal.RequireFromString("194.43"),
		Discount:      discount(64),
		Quantity:      decimal.RequireFromString("5413"),
		WeightGrams:   3,
		ColorEN:       "Green",
		ColorPL:       "Zielony",
		CategoryGUID:  categoryGUID,
		BrandGUID:     brandGUID,
		UpdatedAt:     now,
	}
	snap := projection.Snapshot{
		Tags:     []model.Tag{{GUID: tagGUID, EN: "Vegetables", PL: "Warzywa"}},
		Category: model.Category{GUID: categoryGUID, NameEN: "Vegetables", NamePL: "Warzywa"},
		Brand:    model.Brand{GUID: brandGUID, Name: "Farmary"},
	}

	got := projection.BuildProductUpdated(p, snap)

	assert.Equal(t, json.Number("17.28"), got.DiscountedPriceUSD)
	assert.Equal(t, productGUID, got.GUID)
	assert.Equal(t, "Vegetables", got.CategoryNameEN)
	assert.Equal(t, "Farmary", got.BrandName)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "Vegetables", got.Tags[0].EN)
	assert.True(t, got.UpdatedAt.Equal(now))
}

func TestBuildProductUpdated_NoDiscount_EqualsBase(t *testing.T) {
	p := model.Product{
		BasePriceUSD: decimal.RequireFromString("10.00"),
		BasePricePLN: decimal.RequireFromString("40.00"),
	}
	got := projection.BuildProductUpdated(p, projection.Snapshot{})
	assert.Equal(t, json.Number("10.00"), got.DiscountedPriceUSD)
	assert.Equal(t, json.Number("40.00"), got.DiscountedPricePLN)
}

func TestMarshalProductUpdated_RoundTripsJSON(t *testing.T) {
	p := model.Product{GUID: uuid.New(), BasePriceUSD: decimal.NewFromInt(5), BasePricePLN: decimal.NewFromInt(20)}
	data, err := projection.MarshalProductUpdated(p, projection.Snapshot{})
	require.NoError(t, err)

	var decoded projection.ProductUpdated
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p.GUID, decoded.GUID)
}

func TestMarshalProductRemoved(t *testing.T) {
	guid := uuid.New()
	data, err := projection.MarshalProductRemoved(guid)
	require.NoError(t, err)

	var decoded projection.ProductRemoved
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, guid, decoded.GUID)
}
