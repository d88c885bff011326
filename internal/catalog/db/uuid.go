package db

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// NewGUID mints a UUIDv7 (time-ordered, unlike v4) as a pgtype.UUID, ready
// to bind as a query parameter.
func NewGUID() pgtype.UUID {
	id, _ := uuid.NewV7()
	return ToPgUUID(id)
}

// ToPgUUID converts a uuid.UUID to its pgtype wire representation.
func ToPgUUID(id uuid.UUID) pgtype.UUID {
	var u pgtype.UUID
	u.Scan(id.String())
	return u
}

// ParsePgUUID parses a string guid into its pgtype wire representation.
func ParsePgUUID(s string) (pgtype.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return ToPgUUID(id), nil
}

// FromPgUUID converts a pgtype.UUID column value back to uuid.UUID.
func FromPgUUID(u pgtype.UUID) uuid.UUID {
	return uuid.UUID(u.Bytes)
}
