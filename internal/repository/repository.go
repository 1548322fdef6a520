// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// A statement that affects or returns no row reports sqlerr.NoRows(<table>);
// classifying that (and driver errors) into HTTP errors is left to callers.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the part of *pgxpool.Pool the repositories use. pgxmock's pool
// satisfies it too.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

const questionExists = `SELECT EXISTS (SELECT 1 FROM questions WHERE id = $1)`

// requireQuestion fails with sqlerr.NoRows("questions") inside tx when the
// question is absent.
func requireQuestion(ctx context.Context, tx pgx.Tx, questionID int64) error {
	var exists bool
	if err := tx.QueryRow(ctx, questionExists, questionID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return errQuestionNotFound
	}
	return nil
}
