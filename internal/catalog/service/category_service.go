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
	"github.com/shopery/catalog-bridge/internal/catalog/model"
	"github.com/shopery/catalog-bridge/internal/catalog/projection"
)

func validateCategoryNames(nameEN, namePL string) error {
	if strings.TrimSpace(nameEN) == "" || len(nameEN) > 64 {
		return catalogerr.New(catalogerr.KindValidation, "name_en")
	}
	if strings.TrimSpace(namePL) == "" || len(namePL) > 64 {
		return catalogerr.New(catalogerr.KindValidation, "name_pl")
	}
	return nil
}

// AddCategory validates live-uniqueness on both language names and inserts
// the category.
func (s *Service) AddCategory(ctx context.Context, in dto.CategoryWrite) (dto.CategoryItem, error) {
	if err := validateCategoryNames(in.NameEN, in.NamePL); err != nil {
		return dto.CategoryItem{}, err
	}

	var (
		out       dto.CategoryItem
		eventGUID = newEventGUID()
	)
	err := db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if _, err := qtx.FindLiveCategoryByNameEN(ctx, in.NameEN); err == nil {
			return catalogerr.AlreadyExists("name_en")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if _, err := qtx.FindLiveCategoryByNamePL(ctx, in.NamePL); err == nil {
			return catalogerr.AlreadyExists("name_pl")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		c, err := qtx.InsertCategory(ctx, db.InsertCategoryParams{
			GUID:      db.NewGUID(),
			NameEN:    in.NameEN,
			NamePL:    in.NamePL,
			CreatedAt: s.nowTimestamp(),
		})
		if err != nil {
			return err
		}

		payload, err := projection.MarshalCategoryUpdated(categoryRowToModel(c))
		if err != nil {
			return err
		}
		if err := s.appendEvent(ctx, qtx, eventGUID, model.EventCategoryUpdated, payload); err != nil {
			return err
		}

		out = categoryToDTO(c)
		return nil
	})
	if err != nil {
		return dto.CategoryItem{}, err
	}

	s.dispatchAfterCommit(model.EventCategoryUpdated, eventGUID)
	return out, nil
}

// UpdateCategory replaces a live category's names, enforcing the same
// per-language uniqueness as add (excluding its own current row).
func (s *Service) UpdateCategory(ctx context.Context, guid pgtype.UUID, in dto.CategoryWrite) (dto.CategoryItem, error) {
	if err := validateCategoryNames(in.NameEN, in.NamePL); err != nil {
		return dto.CategoryItem{}, err
	}

	var (
		out       dto.CategoryItem
		eventGUID = newEventGUID()
	)
	err := db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if _, err := qtx.GetLiveCategory(ctx, guid); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return catalogerr.NotFound("category", db.FromPgUUID(guid))
			}
			return err
		}

		if conflict, err := qtx.FindLiveCategoryByNameEN(ctx, in.NameEN); err == nil && conflict.GUID != guid {
			return catalogerr.AlreadyExists("name_en")
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if conflict, err := qtx.FindLiveCategoryByNamePL(ctx, in.NamePL); err == nil && conflict.GUID != guid {
			return catalogerr.AlreadyExists("name_pl")
		} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		c, err := qtx.UpdateCategory(ctx, db.UpdateCategoryParams{
			GUID:      guid,
			NameEN:    in.NameEN,
			NamePL:    in.NamePL,
			UpdatedAt: s.nowTimestamp(),
		})
		if err != nil {
			return err
		}

		payload, err := projection.MarshalCategoryUpdated(categoryRowToModel(c))
		if err != nil {
			return err
		}
		if err := s.appendEvent(ctx, qtx, eventGUID, model.EventCategoryUpdated, payload); err != nil {
			return err
		}

		out = categoryToDTO(c)
		return nil
	})
	if err != nil {
		return dto.CategoryItem{}, err
	}

	s.dispatchAfterCommit(model.EventCategoryUpdated, eventGUID)
	return out, nil
}

// RemoveCategory soft-deletes a category, blocked by any live product
// referencing it (§4.1, P5).
func (s *Service) RemoveCategory(ctx context.Context, guid pgtype.UUID) error {
	eventGUID := newEventGUID()

	err := db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if _, err := qtx.GetLiveCategory(ctx, guid); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return catalogerr.NotFound("category", db.FromPgUUID(guid))
			}
			return err
		}

		n, err := qtx.CountLiveProductsByCategory(ctx, guid)
		if err != nil {
			return err
		}
		if n > 0 {
			return catalogerr.InUse("category")
		}

		if err := qtx.RemoveCategory(ctx, db.RemoveCategoryParams{GUID: guid, RemovedAt: s.nowTimestamp()}); err != nil {
			return err
		}

		payload, err := projection.MarshalCategoryRemoved(db.FromPgUUID(guid))
		if err != nil {
			return err
		}
		return s.appendEvent(ctx, qtx, eventGUID, model.EventCategoryRemoved, payload)
	})
	if err != nil {
		return err
	}

	s.dispatchAfterCommit(model.EventCategoryRemoved, eventGUID)
	return nil
}

// GetCategory returns a single live category by id.
func (s *Service) GetCategory(ctx context.Context, guid pgtype.UUID) (dto.CategoryItem, error) {
	c, err := s.queries.GetLiveCategory(ctx, guid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.CategoryItem{}, catalogerr.NotFound("category", db.FromPgUUID(guid))
		}
		return dto.CategoryItem{}, err
	}
	return categoryToDTO(c), nil
}

// ListCategories returns a page of live categories.
func (s *Service) ListCategories(ctx context.Context, pageNumber, pageSize int) (dto.Page[dto.CategoryItem], error) {
	total, err := s.queries.CountCategories(ctx)
	if err != nil {
		return dto.Page[dto.CategoryItem]{}, err
	}
	rows, err := s.queries.ListCategories(ctx, db.ListParams{Limit: int32(pageSize), Offset: int32(pageNumber * pageSize)})
	if err != nil {
		return dto.Page[dto.CategoryItem]{}, err
	}
	items := make([]dto.CategoryItem, 0, len(rows))
	for _, c := range rows {
		items = append(items, categoryToDTO(c))
	}
	return newPage(pageNumber, pageSize, int(total), items), nil
}

func categoryToDTO(c db.Category) dto.CategoryItem {
	return dto.CategoryItem{GUID: db.FromPgUUID(c.GUID), NameEN: c.NameEN, NamePL: c.NamePL}
}
