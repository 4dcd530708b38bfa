// Package pgx persists users, sessions, tasks and tags in PostgreSQL
// through a pgx connection pool.
package pgx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lborres/tasuku/core"
)

const uniqueViolationCode = "23505"

type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.Storage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
