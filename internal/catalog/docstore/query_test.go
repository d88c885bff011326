package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExpr_Empty(t *testing.T) {
	assert.Equal(t, "*", buildExpr(Query{}))
}

func TestBuildExpr_CombinesFilters(t *testing.T) {
	q := Query{
		Text:         `cabbage "fresh"`,
		CategoryGUID: "abc-123",
		TagEN:        "Vegetables",
		ColorEN:      "Green",
	}
	expr := buildExpr(q)
	assert.Contains(t, expr, `cabbage \"fresh\"`)
	assert.Contains(t, expr, "@category_guid:{abc-123}")
	assert.Contains(t, expr, "@tag_en:{Vegetables}")
	assert.Contains(t, expr, "@color_en:{Green}")
}

func TestBuildExpr_PriceRange(t *testing.T) {
	assert.Contains(t, buildExpr(Query{MinDiscountedUSD: "10.00"}), "@discounted_price_usd:[10.00 +inf]")
	assert.Contains(t, buildExpr(Query{MaxDiscountedUSD: "20.00"}), "@discounted_price_usd:[-inf 20.00]")
}

func TestEscapeTag_EscapesReservedChars(t *testing.T) {
	assert.Equal(t, `Green\-Leaf`, escapeTag("Green-Leaf"))
	assert.Equal(t, `2\,51\,594`, escapeTag("2,51,594"))
}

func TestParseSearchReply_Empty(t *testing.T) {
	result, err := parseSearchReply([]any{int64(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Items)
}

func TestParseSearchReply_DecodesDocuments(t *testing.T) {
	raw := []any{
		int64(1),
		"product:11111111-1111-1111-1111-111111111111",
		[]any{"$", `{"guid":"11111111-1111-1111-1111-111111111111","sku":"2,51,594"}`},
	}
	result, err := parseSearchReply(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "2,51,594", result.Items[0].SKU)
}

func TestParseSearchReply_NotAnArray(t *testing.T) {
	result, err := parseSearchReply("unexpected")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}
