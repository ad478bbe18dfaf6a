package dbtool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRows struct {
	columns []string
	data    [][]any
	pos     int
	err     error
	closed  bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(r.columns))
	for i, c := range r.columns {
		fields[i] = pgconn.FieldDescription{Name: c}
	}
	return fields
}

func (r *fakeRows) Next() bool {
	if r.closed || r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.data[r.pos-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: want %d dest, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		switch target := d.(type) {
		case *string:
			*target = row[i].(string)
		case **string:
			if row[i] == nil {
				*target = nil
				continue
			}
			s := row[i].(string)
			*target = &s
		default:
			return fmt.Errorf("scan: unsupported dest %T", d)
		}
	}
	return nil
}

// fakeConn answers queries from a table keyed by a substring of the SQL text
// plus the first bind argument after the schema.
type fakeConn struct {
	tables  []string
	columns map[string][][]any
	fks     map[string][][]any
	rows    *fakeRows
	queries []string
	execs   []string
	execErr error
	closed  bool
}

func (c *fakeConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	c.queries = append(c.queries, sql)
	switch {
	case strings.Contains(sql, "information_schema.tables"):
		data := make([][]any, len(c.tables))
		for i, t := range c.tables {
			data[i] = []any{t}
		}
		return &fakeRows{columns: []string{"table_name"}, data: data}, nil
	case strings.Contains(sql, "information_schema.columns"):
		return &fakeRows{data: c.columns[args[1].(string)]}, nil
	case strings.Contains(sql, "FOREIGN KEY"):
		return &fakeRows{data: c.fks[args[1].(string)]}, nil
	}
	if c.rows == nil {
		return nil, errors.New(`relation "missing" does not exist`)
	}
	return c.rows, nil
}

func (c *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	c.execs = append(c.execs, sql)
	return pgconn.NewCommandTag("SET"), c.execErr
}

func (c *fakeConn) Close(ctx context.Context) error {
	c.closed = true
	return nil
}

func connectorFor(conn *fakeConn, calls *int) Connector {
	return func(ctx context.Context, dsn string) (Conn, error) {
		*calls++
		return conn, nil
	}
}
