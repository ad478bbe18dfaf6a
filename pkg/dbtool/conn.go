package dbtool

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrReadOnlyViolation = errors.New("only SELECT queries are allowed for data retrieval")
	ErrConnection        = errors.New("database connection failed")
	ErrQueryFailed       = errors.New("database query failed")
)

// Conn is the subset of *pgx.Conn the tools need.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close(ctx context.Context) error
}

// Connector opens one connection to a caller-supplied database.
type Connector func(ctx context.Context, dsn string) (Conn, error)

// PgxConnector dials with pgx. The descriptor is normalised first so
// driver-qualified URLs ("postgresql+psycopg2://...") are accepted.
func PgxConnector(ctx context.Context, dsn string) (Conn, error) {
	conn, err := pgx.Connect(ctx, NormalizeDSN(dsn))
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// NormalizeDSN strips a "+driver" suffix from the URL scheme.
func NormalizeDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	scheme, rest, found := strings.Cut(dsn, "://")
	if !found {
		return dsn
	}
	if base, _, hasDriver := strings.Cut(scheme, "+"); hasDriver {
		scheme = base
	}
	return scheme + "://" + rest
}
