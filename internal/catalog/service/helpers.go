package service

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/shopery/catalog-bridge/internal/catalog/dto"
)

func toPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func toPgInt4(n *int32) pgtype.Int4 {
	if n == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *n, Valid: true}
}

func fromPgInt4(n pgtype.Int4) *int32 {
	if !n.Valid {
		return nil
	}
	v := n.Int32
	return &v
}

// newPage assembles the generic dto.Page envelope (§4.6: pages_count =
// ceil(total / page_size)).
func newPage[T any](pageNumber, pageSize, total int, items []T) dto.Page[T] {
	pagesCount := 0
	if total > 0 {
		pagesCount = (total + pageSize - 1) / pageSize
	}
	return dto.Page[T]{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		PagesCount: pagesCount,
		Total:      total,
		Items:      items,
	}
}
