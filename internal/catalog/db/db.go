// Package db is the relational store gateway (C2) plus the transactional
// inbox repository (C4). It is hand-written in the sqlc-generated shape the
// rest of the codebase expects — a DBTX-backed Querier, Params structs per
// statement, pgtype scalars — because no generated query code shipped with
// this service; only the call-site convention (db.New(tx), qtx.Insert...)
// survived from the teacher.
package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, letting a Queries
// value run against either the pool directly or an open transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries is the concrete Querier implementation.
type Queries struct {
	db DBTX
}

// New builds a Queries bound to db, which may be a pool or an open tx.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to the given transaction, used for
// statements issued inside a caller-managed transaction (§4.1, §4.2).
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}
