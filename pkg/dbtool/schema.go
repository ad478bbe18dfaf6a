package dbtool

import (
	"context"
	"fmt"
)

const defaultSchema = "public"

const (
	tablesQuery = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	columnsQuery = `
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position`

	foreignKeysQuery = `
		SELECT
		  kcu.column_name,
		  ccu.table_name AS foreign_table_name,
		  ccu.column_name AS foreign_column_name
		FROM information_schema.table_constraints AS tc
		  JOIN information_schema.key_column_usage AS kcu
		    ON tc.constraint_name = kcu.constraint_name
		   AND tc.table_schema = kcu.table_schema
		  JOIN information_schema.constraint_column_usage AS ccu
		    ON ccu.constraint_name = tc.constraint_name
		   AND ccu.constraint_schema = tc.table_schema
		WHERE tc.constraint_type = 'FOREIGN KEY'
		  AND tc.table_schema = $1
		  AND tc.table_name = $2
		ORDER BY kcu.ordinal_position`
)

type Column struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default"`
}

type Reference struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

type ForeignKey struct {
	Column     string    `json:"column"`
	References Reference `json:"references"`
}

type TableSchema struct {
	Columns     []Column     `json:"columns"`
	ForeignKeys []ForeignKey `json:"foreignKeys"`
}

type DatabaseSchema struct {
	SchemaName string                  `json:"schema_name"`
	Tables     map[string]*TableSchema `json:"tables"`
}

// Inspector describes the base tables of a database's default schema.
type Inspector struct {
	connect Connector
	schema  string
}

func NewInspector(connect Connector) *Inspector {
	if connect == nil {
		connect = PgxConnector
	}
	return &Inspector{connect: connect, schema: defaultSchema}
}

// FetchSchema opens one connection, walks the catalog and closes it again.
// Views and temporary tables are not reported.
func (i *Inspector) FetchSchema(ctx context.Context, dsn string) (*DatabaseSchema, error) {
	conn, err := i.connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer conn.Close(context.Background())

	tables, err := i.tableNames(ctx, conn)
	if err != nil {
		return nil, err
	}

	result := &DatabaseSchema{
		SchemaName: i.schema,
		Tables:     make(map[string]*TableSchema, len(tables)),
	}

	for _, table := range tables {
		columns, err := i.columns(ctx, conn, table)
		if err != nil {
			return nil, err
		}
		fks, err := i.foreignKeys(ctx, conn, table)
		if err != nil {
			return nil, err
		}
		result.Tables[table] = &TableSchema{Columns: columns, ForeignKeys: fks}
	}

	return result, nil
}

func (i *Inspector) tableNames(ctx context.Context, conn Conn) ([]string, error) {
	rows, err := conn.Query(ctx, tablesQuery, i.schema)
	if err != nil {
		return nil, fmt.Errorf("%w: list tables: %w", ErrQueryFailed, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: list tables: %w", ErrQueryFailed, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list tables: %w", ErrQueryFailed, err)
	}
	return names, nil
}

func (i *Inspector) columns(ctx context.Context, conn Conn, table string) ([]Column, error) {
	rows, err := conn.Query(ctx, columnsQuery, i.schema, table)
	if err != nil {
		return nil, fmt.Errorf("%w: columns of %s: %w", ErrQueryFailed, table, err)
	}
	defer rows.Close()

	columns := []Column{}
	for rows.Next() {
		var (
			col        Column
			isNullable string
		)
		if err := rows.Scan(&col.Name, &col.Type, &isNullable, &col.Default); err != nil {
			return nil, fmt.Errorf("%w: columns of %s: %w", ErrQueryFailed, table, err)
		}
		col.Nullable = isNullable == "YES"
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: columns of %s: %w", ErrQueryFailed, table, err)
	}
	return columns, nil
}

func (i *Inspector) foreignKeys(ctx context.Context, conn Conn, table string) ([]ForeignKey, error) {
	rows, err := conn.Query(ctx, foreignKeysQuery, i.schema, table)
	if err != nil {
		return nil, fmt.Errorf("%w: foreign keys of %s: %w", ErrQueryFailed, table, err)
	}
	defer rows.Close()

	fks := []ForeignKey{}
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Column, &fk.References.Table, &fk.References.Column); err != nil {
			return nil, fmt.Errorf("%w: foreign keys of %s: %w", ErrQueryFailed, table, err)
		}
		fks = append(fks, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: foreign keys of %s: %w", ErrQueryFailed, table, err)
	}
	return fks, nil
}
