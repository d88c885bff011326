package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shopery/catalog-bridge/internal/catalog/model"
)

func discount(n int32) *int32 { return &n }

// TestProduct_DiscountedPrice_NoDiscount covers §4.1's "absence of discount
// means discounted = base" rule.
func TestProduct_DiscountedPrice_NoDiscount(t *testing.T) {
	p := model.Product{}
	base := decimal.RequireFromString("48.00")
	assert.True(t, base.Equal(p.DiscountedPrice(base)))
}

// TestProduct_DiscountedPrice_HalfToEven exercises P6 with the literal
// numbers from §8 scenario 1: base 48.00, discount 64 -> 17.28.
func TestProduct_DiscountedPrice_HalfToEven(t *testing.T) {
	p := model.Product{Discount: discount(64)}
	base := decimal.RequireFromString("48.00")
	got := p.DiscountedPrice(base)
	assert.Equal(t, "17.28", got.StringFixed(2))
}

// TestProduct_DiscountedPrice_RoundsBankers picks a case whose third decimal
// digit is exactly 5, so half-to-even and half-up disagree.
func TestProduct_DiscountedPrice_RoundsBankers(t *testing.T) {
	p := model.Product{Discount: discount(50)} // factor 0.50
	base := decimal.RequireFromString("0.25")
	got := p.DiscountedPrice(base)
	// 0.25 * 0.50 = 0.125, an exact tie: half-to-even gives 0.12, half-up
	// would give 0.13.
	assert.Equal(t, "0.12", got.StringFixed(2))
}

func TestEntities_Live(t *testing.T) {
	live := model.Brand{}
	assert.True(t, live.Live())

	removedAt := live.CreatedAt
	removed := model.Brand{RemovedAt: &removedAt}
	assert.False(t, removed.Live())
}

func TestInboxEvent_Pending(t *testing.T) {
	e := model.InboxEvent{}
	assert.True(t, e.Pending())

	at := e.CreatedAt
	e.ProcessedAt = &at
	assert.False(t, e.Pending())
}
