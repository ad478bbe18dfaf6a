package dbtool

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestInspectorFetchSchema(t *testing.T) {
	conn := &fakeConn{
		tables: []string{"customers", "orders"},
		columns: map[string][][]any{
			"customers": {
				{"id", "integer", "NO", "nextval('customers_id_seq'::regclass)"},
				{"email", "text", "YES", nil},
			},
			"orders": {
				{"id", "integer", "NO", nil},
				{"customer_id", "integer", "YES", nil},
			},
		},
		fks: map[string][][]any{
			"orders": {{"customer_id", "customers", "id"}},
		},
	}
	calls := 0

	schema, err := NewInspector(connectorFor(conn, &calls)).FetchSchema(context.Background(), "postgres://x")
	require.NoError(t, err)

	want := &DatabaseSchema{
		SchemaName: "public",
		Tables: map[string]*TableSchema{
			"customers": {
				Columns: []Column{
					{Name: "id", Type: "integer", Nullable: false, Default: strPtr("nextval('customers_id_seq'::regclass)")},
					{Name: "email", Type: "text", Nullable: true},
				},
				ForeignKeys: []ForeignKey{},
			},
			"orders": {
				Columns: []Column{
					{Name: "id", Type: "integer", Nullable: false},
					{Name: "customer_id", Type: "integer", Nullable: true},
				},
				ForeignKeys: []ForeignKey{
					{Column: "customer_id", References: Reference{Table: "customers", Column: "id"}},
				},
			},
		},
	}

	if diff := cmp.Diff(want, schema); diff != "" {
		t.Errorf("schema mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, calls)
	assert.True(t, conn.closed)
	// one table listing, then columns and foreign keys per table
	assert.Len(t, conn.queries, 5)
}

func TestInspectorConnectionError(t *testing.T) {
	connect := func(ctx context.Context, dsn string) (Conn, error) {
		return nil, errors.New("dial tcp: connection refused")
	}

	_, err := NewInspector(connect).FetchSchema(context.Background(), "postgres://nowhere")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "postgresql+psycopg2://u:p@h:5432/db", want: "postgresql://u:p@h:5432/db"},
		{in: "postgres://u:p@h/db?sslmode=disable", want: "postgres://u:p@h/db?sslmode=disable"},
		{in: "  postgresql://h/db  ", want: "postgresql://h/db"},
		{in: "host=localhost dbname=app", want: "host=localhost dbname=app"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDSN(tt.in))
		})
	}
}
