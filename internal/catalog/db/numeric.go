package db

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// ToNumeric converts a decimal.Decimal to the pgtype.Numeric wire
// representation. Both types store an arbitrary-precision coefficient plus a
// base-10 exponent, so the conversion is a direct field copy with no
// intermediate string formatting or rounding.
func ToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// FromNumeric converts a pgtype.Numeric column value back to decimal.Decimal.
// An invalid (SQL NULL) Numeric converts to the zero decimal.
func FromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
