package dbtool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const readOnlySession = "SET SESSION CHARACTERISTICS AS TRANSACTION READ ONLY"

type QueryResult struct {
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	Truncated bool             `json:"truncated,omitempty"`
}

// QueryOptions bounds a single statement. Zero values disable the bound.
type QueryOptions struct {
	Timeout  time.Duration
	RowLimit int
}

type QueryRunner struct {
	connect Connector
	opts    QueryOptions
}

func NewQueryRunner(connect Connector, opts QueryOptions) *QueryRunner {
	if connect == nil {
		connect = PgxConnector
	}
	return &QueryRunner{connect: connect, opts: opts}
}

// ValidateReadOnly accepts only statements that start with SELECT.
func ValidateReadOnly(query string) error {
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") {
		return ErrReadOnlyViolation
	}
	return nil
}

// Run executes a read-only statement and returns its rows in result order.
// The statement is validated before any connection is opened.
func (r *QueryRunner) Run(ctx context.Context, dsn, query string) (*QueryResult, error) {
	if err := ValidateReadOnly(query); err != nil {
		return nil, err
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	conn, err := r.connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, readOnlySession); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	rows, err := conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	result := &QueryResult{
		Columns: make([]string, len(fields)),
		Rows:    []map[string]any{},
	}
	for i, f := range fields {
		result.Columns[i] = f.Name
	}

	for rows.Next() {
		if r.opts.RowLimit > 0 && len(result.Rows) >= r.opts.RowLimit {
			result.Truncated = true
			break
		}

		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
		}

		row := make(map[string]any, len(values))
		for i, v := range values {
			row[result.Columns[i]] = normalizeValue(v)
		}
		result.Rows = append(result.Rows, row)
	}

	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	return result, nil
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case [16]byte:
		return uuid.UUID(val).String()
	case []byte:
		return string(val)
	default:
		return v
	}
}
