package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres SQLSTATE for a serialization failure under SERIALIZABLE.
const serializationFailure = "40001"

const maxTxAttempts = 3

// WithinTx runs fn against a *Queries bound to a fresh SERIALIZABLE
// transaction on pool, committing on success and rolling back on error.
// This is the shared shape behind every C5 orchestrator operation (§4.1
// steps 1-7): the business write and the inbox append happen inside the
// same fn call, so they commit or roll back together (P1). Serializable
// isolation makes the concurrent-uniqueness checks sound — two overlapping
// writes of the same sku cannot both commit — at the cost of occasional
// serialization failures, which are retried here.
func WithinTx(ctx context.Context, pool *pgxpool.Pool, fn func(*Queries) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if err = runTx(ctx, pool, fn); err == nil {
			return nil
		}
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != serializationFailure {
			return err
		}
	}
	return err
}

func runTx(ctx context.Context, pool *pgxpool.Pool, fn func(*Queries) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(New(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
