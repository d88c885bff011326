package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dto"
)

// validProductWrite returns a dto.ProductWrite satisfying every §3
// constraint, so individual tests only need to break one field.
func validProductWrite() dto.ProductWrite {
	return dto.ProductWrite{
		SKU:           "2,51,594",
		NameEN:        "Chinese Cabbage",
		NamePL:        "Kapusta Chińska",
		DescriptionEN: "fresh",
		DescriptionPL: "świeża",
		BasePriceUSD:  decimal.RequireFromString("48.00"),
		BasePricePLN:  decimal.RequireFromString("194.43"),
		Quantity:      decimal.RequireFromString("5413"),
		WeightGrams:   3,
		ColorEN:       "Green",
		ColorPL:       "Zielony",
		CategoryGUID:  uuid.New(),
		BrandGUID:     uuid.New(),
	}
}

func TestValidateProductWrite_Valid(t *testing.T) {
	assert.NoError(t, validateProductWrite(validProductWrite()))
}

func TestValidateProductWrite_RejectsBlankAndOversizedFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.ProductWrite)
		field  string
	}{
		{"empty sku", func(p *dto.ProductWrite) { p.SKU = "" }, "sku"},
		{"oversized sku", func(p *dto.ProductWrite) { p.SKU = string(make([]byte, 17)) }, "sku"},
		{"empty name_en", func(p *dto.ProductWrite) { p.NameEN = "" }, "name_en"},
		{"empty name_pl", func(p *dto.ProductWrite) { p.NamePL = "" }, "name_pl"},
		{"empty description_en", func(p *dto.ProductWrite) { p.DescriptionEN = "" }, "description_en"},
		{"empty description_pl", func(p *dto.ProductWrite) { p.DescriptionPL = "" }, "description_pl"},
		{"empty color_en", func(p *dto.ProductWrite) { p.ColorEN = "" }, "color_en"},
		{"empty color_pl", func(p *dto.ProductWrite) { p.ColorPL = "" }, "color_pl"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := validProductWrite()
			c.mutate(&in)
			err := validateProductWrite(in)
			require.Error(t, err)
			ce, ok := catalogerr.As(err)
			require.True(t, ok)
			assert.Equal(t, catalogerr.KindValidation, ce.Kind)
			assert.Equal(t, c.field, ce.Detail)
		})
	}
}

func TestValidateProductWrite_NumericConstraints(t *testing.T) {
	t.Run("negative base price usd", func(t *testing.T) {
		in := validProductWrite()
		in.BasePriceUSD = decimal.RequireFromString("-1")
		require.Error(t, validateProductWrite(in))
	})
	t.Run("discount out of range", func(t *testing.T) {
		in := validProductWrite()
		bad := int32(100)
		in.Discount = &bad
		require.Error(t, validateProductWrite(in))
	})
	t.Run("discount at boundary is valid", func(t *testing.T) {
		in := validProductWrite()
		lo, hi := int32(1), int32(99)
		in.Discount = &lo
		assert.NoError(t, validateProductWrite(in))
		in.Discount = &hi
		assert.NoError(t, validateProductWrite(in))
	})
	t.Run("quantity below one rejected", func(t *testing.T) {
		in := validProductWrite()
		in.Quantity = decimal.RequireFromString("0.5")
		require.Error(t, validateProductWrite(in))
	})
	t.Run("non-positive weight rejected", func(t *testing.T) {
		in := validProductWrite()
		in.WeightGrams = 0
		require.Error(t, validateProductWrite(in))
	})
}

// ── hand-rolled mockQuerier matching db.Querier exactly ─────────────────────

type mockQuerier struct {
	db.Querier
	findSKUFn       func(context.Context, string) (db.Product, error)
	findNameENFn    func(context.Context, string) (db.Product, error)
	findNamePLFn    func(context.Context, string) (db.Product, error)
	getLiveProduct  func(context.Context, pgtype.UUID) (db.Product, error)
	listProductTags func(context.Context, pgtype.UUID) ([]db.Tag, error)
	getLiveCategory func(context.Context, pgtype.UUID) (db.Category, error)
	getLiveBrand    func(context.Context, pgtype.UUID) (db.Brand, error)
	countProducts   func(context.Context) (int64, error)
	listProducts    func(context.Context, db.ListParams) ([]db.Product, error)
}

func (m *mockQuerier) FindLiveProductBySKU(ctx context.Context, sku string) (db.Product, error) {
	if m.findSKUFn != nil {
		return m.findSKUFn(ctx, sku)
	}
	return db.Product{}, pgx.ErrNoRows
}
func (m *mockQuerier) FindLiveProductByNameEN(ctx context.Context, name string) (db.Product, error) {
	if m.findNameENFn != nil {
		return m.findNameENFn(ctx, name)
	}
	return db.Product{}, pgx.ErrNoRows
}
func (m *mockQuerier) FindLiveProductByNamePL(ctx context.Context, name string) (db.Product, error) {
	if m.findNamePLFn != nil {
		return m.findNamePLFn(ctx, name)
	}
	return db.Product{}, pgx.ErrNoRows
}
func (m *mockQuerier) GetLiveProduct(ctx context.Context, guid pgtype.UUID) (db.Product, error) {
	return m.getLiveProduct(ctx, guid)
}
func (m *mockQuerier) ListProductTags(ctx context.Context, guid pgtype.UUID) ([]db.Tag, error) {
	if m.listProductTags != nil {
		return m.listProductTags(ctx, guid)
	}
	return nil, nil
}
func (m *mockQuerier) GetLiveCategory(ctx context.Context, guid pgtype.UUID) (db.Category, error) {
	return m.getLiveCategory(ctx, guid)
}
func (m *mockQuerier) GetLiveBrand(ctx context.Context, guid pgtype.UUID) (db.Brand, error) {
	return m.getLiveBrand(ctx, guid)
}
func (m *mockQuerier) CountProducts(ctx context.Context) (int64, error) {
	return m.countProducts(ctx)
}
func (m *mockQuerier) ListProducts(ctx context.Context, arg db.ListParams) ([]db.Product, error) {
	return m.listProducts(ctx, arg)
}

var _ db.Querier = (*mockQuerier)(nil)

// TestCheckLiveUniqueness_NoConflict_OnFreshInsert covers §4.1 step 1 for add.
func TestCheckLiveUniqueness_NoConflict_OnFreshInsert(t *testing.T) {
	q := &mockQuerier{}
	s := &Service{queries: q}
	err := s.checkLiveUniqueness(context.Background(), q, validProductWrite(), nil)
	assert.NoError(t, err)
}

// TestCheckLiveUniqueness_RejectsConflictingSKU exercises §8 scenario 2.
func TestCheckLiveUniqueness_RejectsConflictingSKU(t *testing.T) {
	existingGUID := db.NewGUID()
	q := &mockQuerier{findSKUFn: func(context.Context, string) (db.Product, error) {
		return db.Product{GUID: existingGUID}, nil
	}}
	err := (&Service{queries: q}).checkLiveUniqueness(context.Background(), q, validProductWrite(), nil)

	require.Error(t, err)
	ce, ok := catalogerr.As(err)
	require.True(t, ok)
	assert.Equal(t, catalogerr.KindAlreadyExists, ce.Kind)
	assert.Contains(t, ce.Detail, "sku")
}

// TestCheckLiveUniqueness_RejectsConflictingNameEN exercises §8 scenario 3.
func TestCheckLiveUniqueness_RejectsConflictingNameEN(t *testing.T) {
	existingGUID := db.NewGUID()
	q := &mockQuerier{findNameENFn: func(context.Context, string) (db.Product, error) {
		return db.Product{GUID: existingGUID}, nil
	}}
	err := (&Service{queries: q}).checkLiveUniqueness(context.Background(), q, validProductWrite(), nil)

	require.Error(t, err)
	ce, _ := catalogerr.As(err)
	assert.Contains(t, ce.Detail, "name_en")
}

// TestCheckLiveUniqueness_ExcludesSelf_OnUpdate ensures a product doesn't
// conflict with its own unchanged sku/name on update.
func TestCheckLiveUniqueness_ExcludesSelf_OnUpdate(t *testing.T) {
	self := db.NewGUID()
	q := &mockQuerier{
		findSKUFn:    func(context.Context, string) (db.Product, error) { return db.Product{GUID: self}, nil },
		findNameENFn: func(context.Context, string) (db.Product, error) { return db.Product{GUID: self}, nil },
		findNamePLFn: func(context.Context, string) (db.Product, error) { return db.Product{GUID: self}, nil },
	}
	err := (&Service{queries: q}).checkLiveUniqueness(context.Background(), q, validProductWrite(), &self)
	assert.NoError(t, err)
}

// TestCheckLiveUniqueness_DoesNotExcludeOtherProduct ensures excludeGUID
// only exempts the product's own row, not any other conflicting one.
func TestCheckLiveUniqueness_DoesNotExcludeOtherProduct(t *testing.T) {
	self := db.NewGUID()
	other := db.NewGUID()
	q := &mockQuerier{findSKUFn: func(context.Context, string) (db.Product, error) { return db.Product{GUID: other}, nil }}
	err := (&Service{queries: q}).checkLiveUniqueness(context.Background(), q, validProductWrite(), &self)
	require.Error(t, err)
}

// TestGetProduct_NotFound covers the read-by-id path when the product is
// missing or already soft-deleted.
func TestGetProduct_NotFound(t *testing.T) {
	q := &mockQuerier{getLiveProduct: func(context.Context, pgtype.UUID) (db.Product, error) {
		return db.Product{}, pgx.ErrNoRows
	}}
	s := &Service{queries: q}

	_, err := s.GetProduct(context.Background(), db.NewGUID())

	require.Error(t, err)
	ce, ok := catalogerr.As(err)
	require.True(t, ok)
	assert.Equal(t, catalogerr.KindNotFound, ce.Kind)
}

// TestGetProduct_Success assembles the full read-after-write detail.
func TestGetProduct_Success(t *testing.T) {
	guid := db.NewGUID()
	categoryGUID := db.NewGUID()
	brandGUID := db.NewGUID()

	q := &mockQuerier{
		getLiveProduct: func(context.Context, pgtype.UUID) (db.Product, error) {
			return db.Product{
				GUID: guid, SKU: "2,51,594", NameEN: "Chinese Cabbage", NamePL: "Kapusta Chińska",
				CategoryGUID: categoryGUID, BrandGUID: brandGUID,
				BasePriceUSD: db.ToNumeric(decimal.RequireFromString("48.00")),
				BasePricePLN: db.ToNumeric(decimal.RequireFromString("194.43")),
				Quantity:     db.ToNumeric(decimal.RequireFromString("5413")),
			}, nil
		},
		listProductTags: func(context.Context, pgtype.UUID) ([]db.Tag, error) {
			return []db.Tag{{GUID: db.NewGUID(), EN: "Vegetables", PL: "Warzywa"}}, nil
		},
		getLiveCategory: func(context.Context, pgtype.UUID) (db.Category, error) {
			return db.Category{GUID: categoryGUID, NameEN: "Vegetables", NamePL: "Warzywa"}, nil
		},
		getLiveBrand: func(context.Context, pgtype.UUID) (db.Brand, error) {
			return db.Brand{GUID: brandGUID, Name: "Farmary"}, nil
		},
	}
	s := &Service{queries: q}

	out, err := s.GetProduct(context.Background(), guid)

	require.NoError(t, err)
	assert.Equal(t, "2,51,594", out.SKU)
	assert.Equal(t, "48.00", out.BasePriceUSD)
	assert.Equal(t, "Farmary", out.Brand.Name)
	require.Len(t, out.Tags, 1)
	assert.Equal(t, "Vegetables", out.Tags[0].EN)
}

// TestListProducts_PaginationEnvelope checks pages_count = ceil(total/size).
func TestListProducts_PaginationEnvelope(t *testing.T) {
	q := &mockQuerier{
		countProducts: func(context.Context) (int64, error) { return 7, nil },
		listProducts: func(context.Context, db.ListParams) ([]db.Product, error) {
			return []db.Product{{GUID: db.NewGUID(), CategoryGUID: db.NewGUID(), BrandGUID: db.NewGUID()}}, nil
		},
		listProductTags: func(context.Context, pgtype.UUID) ([]db.Tag, error) { return nil, nil },
		getLiveCategory: func(context.Context, pgtype.UUID) (db.Category, error) { return db.Category{}, nil },
		getLiveBrand:    func(context.Context, pgtype.UUID) (db.Brand, error) { return db.Brand{}, nil },
	}
	s := &Service{queries: q}

	page, err := s.ListProducts(context.Background(), 0, 3)

	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 3, page.PagesCount)
	assert.Len(t, page.Items, 1)
}
