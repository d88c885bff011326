package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dto"
	"github.com/shopery/catalog-bridge/internal/catalog/model"
	"github.com/shopery/catalog-bridge/internal/catalog/projection"
)

// validateProductWrite enforces the field constraints in §3. Referential
// checks (tags/category/brand existing and live) happen inside the
// transaction, since they require a round-trip.
func validateProductWrite(in dto.ProductWrite) error {
	switch {
	case strings.TrimSpace(in.SKU) == "" || len(in.SKU) > 16:
		return catalogerr.New(catalogerr.KindValidation, "sku")
	case strings.TrimSpace(in.NameEN) == "" || len(in.NameEN) > 64:
		return catalogerr.New(catalogerr.KindValidation, "name_en")
	case strings.TrimSpace(in.NamePL) == "" || len(in.NamePL) > 64:
		return catalogerr.New(catalogerr.KindValidation, "name_pl")
	case in.ImageURL != nil && len(*in.ImageURL) > 256:
		return catalogerr.New(catalogerr.KindValidation, "image_url")
	case strings.TrimSpace(in.DescriptionEN) == "" || len(in.DescriptionEN) > 4096:
		return catalogerr.New(catalogerr.KindValidation, "description_en")
	case strings.TrimSpace(in.DescriptionPL) == "" || len(in.DescriptionPL) > 4096:
		return catalogerr.New(catalogerr.KindValidation, "description_pl")
	case in.BasePriceUSD.IsNegative():
		return catalogerr.New(catalogerr.KindValidation, "base_price_usd")
	case in.BasePricePLN.IsNegative():
		return catalogerr.New(catalogerr.KindValidation, "base_price_pln")
	case in.Discount != nil && (*in.Discount < 1 || *in.Discount > 99):
		return catalogerr.New(catalogerr.KindValidation, "discount")
	case in.Quantity.LessThan(decimal.NewFromInt(1)):
		return catalogerr.New(catalogerr.KindValidation, "quantity")
	case in.WeightGrams <= 0:
		return catalogerr.New(catalogerr.KindValidation, "weight")
	case strings.TrimSpace(in.ColorEN) == "" || len(in.ColorEN) > 32:
		return catalogerr.New(catalogerr.KindValidation, "color_en")
	case strings.TrimSpace(in.ColorPL) == "" || len(in.ColorPL) > 32:
		return catalogerr.New(catalogerr.KindValidation, "color_pl")
	}
	return nil
}

// resolveReferences loads and validates the category, brand, and tag
// references a product write points at (§4.1 steps 2-4).
func resolveReferences(ctx context.Context, qtx db.Querier, in dto.ProductWrite) (model.Category, model.Brand, []model.Tag, error) {
	// Tag references are a set; duplicates in the request collapse here so
	// the count check below compares distinct ids against distinct rows.
	seen := make(map[uuid.UUID]struct{}, len(in.TagGUIDs))
	tagGUIDs := make([]pgtype.UUID, 0, len(in.TagGUIDs))
	for _, id := range in.TagGUIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		tagGUIDs = append(tagGUIDs, db.ToPgUUID(id))
	}
	tagRows, err := qtx.ListLiveTagsByGUIDs(ctx, tagGUIDs)
	if err != nil {
		return model.Category{}, model.Brand{}, nil, err
	}
	if len(tagRows) != len(tagGUIDs) {
		return model.Category{}, model.Brand{}, nil, catalogerr.ReferenceNotFound("tags", nil)
	}
	tags := make([]model.Tag, 0, len(tagRows))
	for _, t := range tagRows {
		tags = append(tags, tagRowToModel(t))
	}

	categoryGUID := db.ToPgUUID(in.CategoryGUID)
	categoryRow, err := qtx.GetLiveCategory(ctx, categoryGUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, model.Brand{}, nil, catalogerr.ReferenceNotFound("category", in.CategoryGUID)
		}
		return model.Category{}, model.Brand{}, nil, err
	}

	brandGUID := db.ToPgUUID(in.BrandGUID)
	brandRow, err := qtx.GetLiveBrand(ctx, brandGUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, model.Brand{}, nil, catalogerr.ReferenceNotFound("brand", in.BrandGUID)
		}
		return model.Category{}, model.Brand{}, nil, err
	}

	return categoryRowToModel(categoryRow), brandRowToModel(brandRow), tags, nil
}

// AddProduct implements §4.1's add-product contract end to end.
func (s *Service) AddProduct(ctx context.Context, in dto.ProductWrite) (dto.ProductDetail, error) {
	if err := validateProductWrite(in); err != nil {
		return dto.ProductDetail{}, err
	}

	var (
		out       dto.ProductDetail
		eventGUID = newEventGUID()
	)

	err := db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if err := s.checkLiveUniqueness(ctx, qtx, in, nil); err != nil {
			return err
		}

		category, brand, tags, err := resolveReferences(ctx, qtx, in)
		if err != nil {
			return err
		}

		now := s.nowTimestamp()
		row, err := qtx.InsertProduct(ctx, db.InsertProductParams{
			GUID:          db.NewGUID(),
			SKU:           in.SKU,
			NameEN:        in.NameEN,
			NamePL:        in.NamePL,
			ImageURL:      toPgText(in.ImageURL),
			DescriptionEN: in.DescriptionEN,
			DescriptionPL: in.DescriptionPL,
			BasePriceUSD:  db.ToNumeric(in.BasePriceUSD),
			BasePricePLN:  db.ToNumeric(in.BasePricePLN),
			Discount:      toPgInt4(in.Discount),
			Quantity:      db.ToNumeric(in.Quantity),
			WeightGrams:   in.WeightGrams,
			ColorEN:       in.ColorEN,
			ColorPL:       in.ColorPL,
			CategoryGUID:  db.ToPgUUID(in.CategoryGUID),
			BrandGUID:     db.ToPgUUID(in.BrandGUID),
			CreatedAt:     now,
		})
		if err != nil {
			return err
		}

		if err := qtx.ReplaceProductTags(ctx, row.GUID, tagGUIDsOf(tags)); err != nil {
			return err
		}

		if err := s.appendProductUpdatedEvent(ctx, qtx, eventGUID, row, category, brand, tags); err != nil {
			return err
		}

		out = productToDTO(row, tags, category, brand)
		return nil
	})
	if err != nil {
		return dto.ProductDetail{}, err
	}

	s.dispatchAfterCommit(model.EventProductUpdated, eventGUID)
	return out, nil
}

// UpdateProduct implements §4.1's update-product contract: same invariants
// as add, replacing the tag set wholesale and bumping updated_at.
func (s *Service) UpdateProduct(ctx context.Context, guid pgtype.UUID, in dto.ProductWrite) (dto.ProductDetail, error) {
	if err := validateProductWrite(in); err != nil {
		return dto.ProductDetail{}, err
	}

	var (
		out       dto.ProductDetail
		eventGUID = newEventGUID()
	)

	err := db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if _, err := qtx.GetLiveProduct(ctx, guid); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return catalogerr.NotFound("product", db.FromPgUUID(guid))
			}
			return err
		}

		if err := s.checkLiveUniqueness(ctx, qtx, in, &guid); err != nil {
			return err
		}

		category, brand, tags, err := resolveReferences(ctx, qtx, in)
		if err != nil {
			return err
		}

		row, err := qtx.UpdateProduct(ctx, db.UpdateProductParams{
			GUID:          guid,
			SKU:           in.SKU,
			NameEN:        in.NameEN,
			NamePL:        in.NamePL,
			ImageURL:      toPgText(in.ImageURL),
			DescriptionEN: in.DescriptionEN,
			DescriptionPL: in.DescriptionPL,
			BasePriceUSD:  db.ToNumeric(in.BasePriceUSD),
			BasePricePLN:  db.ToNumeric(in.BasePricePLN),
			Discount:      toPgInt4(in.Discount),
			Quantity:      db.ToNumeric(in.Quantity),
			WeightGrams:   in.WeightGrams,
			ColorEN:       in.ColorEN,
			ColorPL:       in.ColorPL,
			CategoryGUID:  db.ToPgUUID(in.CategoryGUID),
			BrandGUID:     db.ToPgUUID(in.BrandGUID),
			UpdatedAt:     s.nowTimestamp(),
		})
		if err != nil {
			return err
		}

		if err := qtx.ReplaceProductTags(ctx, row.GUID, tagGUIDsOf(tags)); err != nil {
			return err
		}

		if err := s.appendProductUpdatedEvent(ctx, qtx, eventGUID, row, category, brand, tags); err != nil {
			return err
		}

		out = productToDTO(row, tags, category, brand)
		return nil
	})
	if err != nil {
		return dto.ProductDetail{}, err
	}

	s.dispatchAfterCommit(model.EventProductUpdated, eventGUID)
	return out, nil
}

// RemoveProduct soft-deletes a live product and appends a PRODUCT_REMOVED
// event carrying just its guid (§4.1, §4.3).
func (s *Service) RemoveProduct(ctx context.Context, guid pgtype.UUID) error {
	eventGUID := newEventGUID()

	err := db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if _, err := qtx.GetLiveProduct(ctx, guid); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return catalogerr.NotFound("product", db.FromPgUUID(guid))
			}
			return err
		}

		if err := qtx.RemoveProduct(ctx, db.RemoveProductParams{GUID: guid, RemovedAt: s.nowTimestamp()}); err != nil {
			return err
		}

		payload, err := projection.MarshalProductRemoved(db.FromPgUUID(guid))
		if err != nil {
			return err
		}
		return s.appendEvent(ctx, qtx, eventGUID, model.EventProductRemoved, payload)
	})
	if err != nil {
		return err
	}

	s.dispatchAfterCommit(model.EventProductRemoved, eventGUID)
	return nil
}

// GetProduct returns a single live product by id, with tags/category/brand
// resolved fresh (the read-after-write path, unlike the projected view).
func (s *Service) GetProduct(ctx context.Context, guid pgtype.UUID) (dto.ProductDetail, error) {
	row, err := s.queries.GetLiveProduct(ctx, guid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.ProductDetail{}, catalogerr.NotFound("product", db.FromPgUUID(guid))
		}
		return dto.ProductDetail{}, err
	}

	tagRows, err := s.queries.ListProductTags(ctx, guid)
	if err != nil {
		return dto.ProductDetail{}, err
	}
	tags := make([]model.Tag, 0, len(tagRows))
	for _, t := range tagRows {
		tags = append(tags, tagRowToModel(t))
	}

	categoryRow, err := s.queries.GetLiveCategory(ctx, row.CategoryGUID)
	if err != nil {
		return dto.ProductDetail{}, err
	}
	brandRow, err := s.queries.GetLiveBrand(ctx, row.BrandGUID)
	if err != nil {
		return dto.ProductDetail{}, err
	}

	return productToDTO(row, tags, categoryRowToModel(categoryRow), brandRowToModel(brandRow)), nil
}

// ListProducts returns a page of live products (write-side listing; the
// shopper-facing paginated search lives in the search package over C3).
func (s *Service) ListProducts(ctx context.Context, pageNumber, pageSize int) (dto.Page[dto.ProductDetail], error) {
	total, err := s.queries.CountProducts(ctx)
	if err != nil {
		return dto.Page[dto.ProductDetail]{}, err
	}
	rows, err := s.queries.ListProducts(ctx, db.ListParams{Limit: int32(pageSize), Offset: int32(pageNumber * pageSize)})
	if err != nil {
		return dto.Page[dto.ProductDetail]{}, err
	}

	items := make([]dto.ProductDetail, 0, len(rows))
	for _, row := range rows {
		tagRows, err := s.queries.ListProductTags(ctx, row.GUID)
		if err != nil {
			return dto.Page[dto.ProductDetail]{}, err
		}
		tags := make([]model.Tag, 0, len(tagRows))
		for _, t := range tagRows {
			tags = append(tags, tagRowToModel(t))
		}
		categoryRow, err := s.queries.GetLiveCategory(ctx, row.CategoryGUID)
		if err != nil {
			return dto.Page[dto.ProductDetail]{}, err
		}
		brandRow, err := s.queries.GetLiveBrand(ctx, row.BrandGUID)
		if err != nil {
			return dto.Page[dto.ProductDetail]{}, err
		}
		items = append(items, productToDTO(row, tags, categoryRowToModel(categoryRow), brandRowToModel(brandRow)))
	}

	return newPage(pageNumber, pageSize, int(total), items), nil
}

// checkLiveUniqueness enforces §4.1 step 1: no live product may share sku,
// name_en, or name_pl with another. excludeGUID is nil on add and the
// product's own guid on update, so a product doesn't conflict with itself.
func (s *Service) checkLiveUniqueness(ctx context.Context, qtx db.Querier, in dto.ProductWrite, excludeGUID *pgtype.UUID) error {
	checks := []struct {
		field string
		find  func() (db.Product, error)
	}{
		{"sku", func() (db.Product, error) { return qtx.FindLiveProductBySKU(ctx, in.SKU) }},
		{"name_en", func() (db.Product, error) { return qtx.FindLiveProductByNameEN(ctx, in.NameEN) }},
		{"name_pl", func() (db.Product, error) { return qtx.FindLiveProductByNamePL(ctx, in.NamePL) }},
	}
	for _, c := range checks {
		row, err := c.find()
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return err
		}
		if excludeGUID == nil || row.GUID != *excludeGUID {
			return catalogerr.AlreadyExists(c.field)
		}
	}
	return nil
}

// appendProductUpdatedEvent builds the §4.3 snapshot payload and appends
// the PRODUCT_UPDATED inbox event in the same transaction as the row write
// (§4.1 step 6, P1).
func (s *Service) appendProductUpdatedEvent(ctx context.Context, qtx db.Querier, eventGUID uuid.UUID, row db.Product, category model.Category, brand model.Brand, tags []model.Tag) error {
	payload, err := projection.MarshalProductUpdated(productRowToModel(row, tags), projection.Snapshot{Tags: tags, Category: category, Brand: brand})
	if err != nil {
		return err
	}
	return s.appendEvent(ctx, qtx, eventGUID, model.EventProductUpdated, payload)
}

// tagRowToModel converts a scanned tag row into its domain model.
func tagRowToModel(t db.Tag) model.Tag {
	m := model.Tag{GUID: db.FromPgUUID(t.GUID), EN: t.EN, PL: t.PL, CreatedAt: t.CreatedAt.Time}
	if t.RemovedAt.Valid {
		removedAt := t.RemovedAt.Time
		m.RemovedAt = &removedAt
	}
	return m
}

// categoryRowToModel converts a scanned category row into its domain model.
func categoryRowToModel(c db.Category) model.Category {
	m := model.Category{
		GUID:      db.FromPgUUID(c.GUID),
		NameEN:    c.NameEN,
		NamePL:    c.NamePL,
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
	}
	if c.RemovedAt.Valid {
		removedAt := c.RemovedAt.Time
		m.RemovedAt = &removedAt
	}
	return m
}

// brandRowToModel converts a scanned brand row into its domain model.
func brandRowToModel(b db.Brand) model.Brand {
	m := model.Brand{
		GUID:      db.FromPgUUID(b.GUID),
		Name:      b.Name,
		CreatedAt: b.CreatedAt.Time,
		UpdatedAt: b.UpdatedAt.Time,
	}
	if b.LogoURL.Valid {
		logoURL := b.LogoURL.String
		m.LogoURL = &logoURL
	}
	if b.RemovedAt.Valid {
		removedAt := b.RemovedAt.Time
		m.RemovedAt = &removedAt
	}
	return m
}

// productRowToModel converts a scanned product row plus its resolved tags
// into the domain model consumed by projection.BuildProductUpdated.
func productRowToModel(row db.Product, tags []model.Tag) model.Product {
	tagGUIDs := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		tagGUIDs = append(tagGUIDs, t.GUID)
	}
	p := model.Product{
		GUID:          db.FromPgUUID(row.GUID),
		SKU:           row.SKU,
		NameEN:        row.NameEN,
		NamePL:        row.NamePL,
		DescriptionEN: row.DescriptionEN,
		DescriptionPL: row.DescriptionPL,
		BasePriceUSD:  db.FromNumeric(row.BasePriceUSD),
		BasePricePLN:  db.FromNumeric(row.BasePricePLN),
		Discount:      fromPgInt4(row.Discount),
		Quantity:      db.FromNumeric(row.Quantity),
		WeightGrams:   row.WeightGrams,
		ColorEN:       row.ColorEN,
		ColorPL:       row.ColorPL,
		TagGUIDs:      tagGUIDs,
		CategoryGUID:  db.FromPgUUID(row.CategoryGUID),
		BrandGUID:     db.FromPgUUID(row.BrandGUID),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
	if row.ImageURL.Valid {
		imageURL := row.ImageURL.String
		p.ImageURL = &imageURL
	}
	if row.RemovedAt.Valid {
		removedAt := row.RemovedAt.Time
		p.RemovedAt = &removedAt
	}
	return p
}

// tagGUIDsOf extracts the pgtype guids from a resolved tag slice, ready for
// ReplaceProductTags.
func tagGUIDsOf(tags []model.Tag) []pgtype.UUID {
	out := make([]pgtype.UUID, 0, len(tags))
	for _, t := range tags {
		out = append(out, db.ToPgUUID(t.GUID))
	}
	return out
}

// productToDTO assembles the read-after-write ProductDetail for a product
// row plus its resolved tags/category/brand.
func productToDTO(row db.Product, tags []model.Tag, category model.Category, brand model.Brand) dto.ProductDetail {
	p := productRowToModel(row, tags)

	items := make([]dto.TagItem, 0, len(tags))
	for _, t := range tags {
		items = append(items, dto.TagItem{GUID: t.GUID, EN: t.EN, PL: t.PL})
	}

	var brandLogoURL *string
	if brand.LogoURL != nil {
		logoURL := *brand.LogoURL
		brandLogoURL = &logoURL
	}

	return dto.ProductDetail{
		GUID:          p.GUID,
		SKU:           p.SKU,
		NameEN:        p.NameEN,
		NamePL:        p.NamePL,
		ImageURL:      p.ImageURL,
		DescriptionEN: p.DescriptionEN,
		DescriptionPL: p.DescriptionPL,
		BasePriceUSD:  p.BasePriceUSD.StringFixed(2),
		BasePricePLN:  p.BasePricePLN.StringFixed(2),
		Discount:      p.Discount,
		Quantity:      p.Quantity.String(),
		WeightGrams:   p.WeightGrams,
		ColorEN:       p.ColorEN,
		ColorPL:       p.ColorPL,
		Tags:          items,
		Category:      dto.CategoryItem{GUID: category.GUID, NameEN: category.NameEN, NamePL: category.NamePL},
		Brand:         dto.BrandItem{GUID: brand.GUID, Name: brand.Name, LogoURL: brandLogoURL},
	}
}
