package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/shopery/catalog-bridge/internal/catalog/catalogerr"
	"github.com/shopery/catalog-bridge/internal/catalog/db"
	"github.com/shopery/catalog-bridge/internal/catalog/dto"
)

// AddBrand validates live-uniqueness on name and inserts the brand.
func (s *Service) AddBrand(ctx context.Context, in dto.BrandWrite) (dto.BrandItem, error) {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 64 {
		return dto.BrandItem{}, catalogerr.New(catalogerr.KindValidation, "name")
	}

	var out dto.BrandItem
	err := db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if _, err := qtx.FindLiveBrandByName(ctx, in.Name); err == nil {
			return catalogerr.AlreadyExists("name")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		now := s.nowTimestamp()
		b, err := qtx.InsertBrand(ctx, db.InsertBrandParams{
			GUID:      db.NewGUID(),
			Name:      in.Name,
			LogoURL:   toPgText(in.LogoURL),
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
		out = brandToDTO(b)
		return nil
	})
	if err != nil {
		return dto.BrandItem{}, err
	}
	return out, nil
}

// UpdateBrand replaces a live brand's fields, enforcing the same
// uniqueness rule as add (excluding the brand's own current row).
func (s *Service) UpdateBrand(ctx context.Context, guid pgtype.UUID, in dto.BrandWrite) (dto.BrandItem, error) {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 64 {
		return dto.BrandItem{}, catalogerr.New(catalogerr.KindValidation, "name")
	}

	var out dto.BrandItem
	err := db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if _, err := qtx.GetLiveBrand(ctx, guid); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return catalogerr.NotFound("brand", db.FromPgUUID(guid))
			}
			return err
		}

		if conflict, err := qtx.FindLiveBrandByName(ctx, in.Name); err == nil && conflict.GUID != guid {
			return catalogerr.AlreadyExists("name")
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		b, err := qtx.UpdateBrand(ctx, db.UpdateBrandParams{
			GUID:      guid,
			Name:      in.Name,
			LogoURL:   toPgText(in.LogoURL),
			UpdatedAt: s.nowTimestamp(),
		})
		if err != nil {
			return err
		}
		out = brandToDTO(b)
		return nil
	})
	if err != nil {
		return dto.BrandItem{}, err
	}
	return out, nil
}

// RemoveBrand soft-deletes a brand, enforcing referential integrity: a
// brand referenced by any live product cannot be removed (§4.1, P5).
func (s *Service) RemoveBrand(ctx context.Context, guid pgtype.UUID) error {
	return db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if _, err := qtx.GetLiveBrand(ctx, guid); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return catalogerr.NotFound("brand", db.FromPgUUID(guid))
			}
			return err
		}

		n, err := qtx.CountLiveProductsByBrand(ctx, guid)
		if err != nil {
			return err
		}
		if n > 0 {
			return catalogerr.InUse("brand")
		}

		return qtx.RemoveBrand(ctx, db.RemoveBrandParams{GUID: guid, RemovedAt: s.nowTimestamp()})
	})
}

// GetBrand returns a single live brand by id.
func (s *Service) GetBrand(ctx context.Context, guid pgtype.UUID) (dto.BrandItem, error) {
	b, err := s.queries.GetLiveBrand(ctx, guid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.BrandItem{}, catalogerr.NotFound("brand", db.FromPgUUID(guid))
		}
		return dto.BrandItem{}, err
	}
	return brandToDTO(b), nil
}

// ListBrands returns a page of live brands.
func (s *Service) ListBrands(ctx context.Context, pageNumber, pageSize int) (dto.Page[dto.BrandItem], error) {
	total, err := s.queries.CountBrands(ctx)
	if err != nil {
		return dto.Page[dto.BrandItem]{}, err
	}
	rows, err := s.queries.ListBrands(ctx, db.ListParams{Limit: int32(pageSize), Offset: int32(pageNumber * pageSize)})
	if err != nil {
		return dto.Page[dto.BrandItem]{}, err
	}
	items := make([]dto.BrandItem, 0, len(rows))
	for _, b := range rows {
		items = append(items, brandToDTO(b))
	}
	return newPage(pageNumber, pageSize, int(total), items), nil
}

func brandToDTO(b db.Brand) dto.BrandItem {
	item := dto.BrandItem{GUID: db.FromPgUUID(b.GUID), Name: b.Name}
	if b.LogoURL.Valid {
		item.LogoURL = &b.LogoURL.String
	}
	return item
}
