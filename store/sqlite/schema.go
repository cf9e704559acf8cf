package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Options names the table and columns holding the vocabulary.
type Options struct {
	Table        string
	TokenColumn  string
	VectorColumn string
}

// DefaultOptions matches the schema created by EnsureSchema.
func DefaultOptions() Options {
	return Options{Table: "vectors", TokenColumn: "token", VectorColumn: "vector"}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Table == "" {
		o.Table = d.Table
	}
	if o.TokenColumn == "" {
		o.TokenColumn = d.TokenColumn
	}
	if o.VectorColumn == "" {
		o.VectorColumn = d.VectorColumn
	}
	return o
}

// EnsureSchema creates the vocabulary table if it does not already exist.
// Identifiers are interpolated into SQL; callers must not derive them from
// untrusted input.
func EnsureSchema(ctx context.Context, db *sql.DB, opts Options) error {
	opts = opts.withDefaults()
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    %s TEXT PRIMARY KEY,
    %s BLOB NOT NULL
);`, opts.Table, opts.TokenColumn, opts.VectorColumn)
	_, err := db.ExecContext(ctx, ddl)
	return err
}
