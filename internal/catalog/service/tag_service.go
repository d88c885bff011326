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

// AddTag validates live-uniqueness on both language labels and inserts the
// tag. Tags have no update operation (§3: the write-side row carries no
// updated_at) — only add and remove.
func (s *Service) AddTag(ctx context.Context, in dto.NewTag) (dto.TagItem, error) {
	if strings.TrimSpace(in.EN) == "" || len(in.EN) > 16 {
		return dto.TagItem{}, catalogerr.New(catalogerr.KindValidation, "en")
	}
	if strings.TrimSpace(in.PL) == "" || len(in.PL) > 16 {
		return dto.TagItem{}, catalogerr.New(catalogerr.KindValidation, "pl")
	}

	var out dto.TagItem
	err := db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if _, err := qtx.FindLiveTagByEN(ctx, in.EN); err == nil {
			return catalogerr.AlreadyExists("en")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if _, err := qtx.FindLiveTagByPL(ctx, in.PL); err == nil {
			return catalogerr.AlreadyExists("pl")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		t, err := qtx.InsertTag(ctx, db.InsertTagParams{
			GUID:      db.NewGUID(),
			EN:        in.EN,
			PL:        in.PL,
			CreatedAt: s.nowTimestamp(),
		})
		if err != nil {
			return err
		}
		out = tagToDTO(t)
		return nil
	})
	if err != nil {
		return dto.TagItem{}, err
	}
	return out, nil
}

// RemoveTag soft-deletes a tag, blocked by any live product carrying it
// (§4.1, P5).
func (s *Service) RemoveTag(ctx context.Context, guid pgtype.UUID) error {
	eventGUID := newEventGUID()

	err := db.WithinTx(ctx, s.pool, func(qtx *db.Queries) error {
		if _, err := qtx.GetLiveTag(ctx, guid); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return catalogerr.NotFound("tag", db.FromPgUUID(guid))
			}
			return err
		}

		n, err := qtx.CountLiveProductsByTag(ctx, guid)
		if err != nil {
			return err
		}
		if n > 0 {
			return catalogerr.InUse("tag")
		}

		if err := qtx.RemoveTag(ctx, db.RemoveTagParams{GUID: guid, RemovedAt: s.nowTimestamp()}); err != nil {
			return err
		}

		payload, err := projection.MarshalTagRemoved(db.FromPgUUID(guid))
		if err != nil {
			return err
		}
		return s.appendEvent(ctx, qtx, eventGUID, model.EventTagRemoved, payload)
	})
	if err != nil {
		return err
	}

	s.dispatchAfterCommit(model.EventTagRemoved, eventGUID)
	return nil
}

// GetTag returns a single live tag by id.
func (s *Service) GetTag(ctx context.Context, guid pgtype.UUID) (dto.TagItem, error) {
	t, err := s.queries.GetLiveTag(ctx, guid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.TagItem{}, catalogerr.NotFound("tag", db.FromPgUUID(guid))
		}
		return dto.TagItem{}, err
	}
	return tagToDTO(t), nil
}

// ListTags returns a page of live tags.
func (s *Service) ListTags(ctx context.Context, pageNumber, pageSize int) (dto.Page[dto.TagItem], error) {
	total, err := s.queries.CountTags(ctx)
	if err != nil {
		return dto.Page[dto.TagItem]{}, err
	}
	rows, err := s.queries.ListTags(ctx, db.ListParams{Limit: int32(pageSize), Offset: int32(pageNumber * pageSize)})
	if err != nil {
		return dto.Page[dto.TagItem]{}, err
	}
	items := make([]dto.TagItem, 0, len(rows))
	for _, t := range rows {
		items = append(items, tagToDTO(t))
	}
	return newPage(pageNumber, pageSize, int(total), items), nil
}

func tagToDTO(t db.Tag) dto.TagItem {
	return dto.TagItem{GUID: db.FromPgUUID(t.GUID), EN: t.EN, PL: t.PL}
}
