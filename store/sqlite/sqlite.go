package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/viant/lexvec/store"
	"github.com/viant/lexvec/store/memory"
)

// Load reads every row of the vocabulary table, in rowid order, into an
// in-memory store.
func Load(ctx context.Context, db *sql.DB, opts Options) (*memory.Store, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlite: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	opts = opts.withDefaults()

	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY rowid`, opts.TokenColumn, opts.VectorColumn, opts.Table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	b := memory.NewBuilder(0)
	for rows.Next() {
		var token string
		var blob []byte
		if err := rows.Scan(&token, &blob); err != nil {
			return nil, err
		}
		vec, err := store.DecodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("sqlite: token %q: %w", token, err)
		}
		if err := b.Add(token, vec); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// Save writes every token of s, in enumeration order, into the vocabulary
// table inside one transaction. Existing tokens are overwritten.
func Save(ctx context.Context, db *sql.DB, s store.Store, opts Options) error {
	if db == nil {
		return fmt.Errorf("sqlite: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	opts = opts.withDefaults()
	if err := EnsureSchema(ctx, db, opts); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s(%s, %s) VALUES(?, ?)
ON CONFLICT(%s) DO UPDATE SET %s = excluded.%s`,
		opts.Table, opts.TokenColumn, opts.VectorColumn,
		opts.TokenColumn, opts.VectorColumn, opts.VectorColumn))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, token := range s.Tokens(false) {
		vec, err := store.Vector(s, token)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, token, store.EncodeVector(vec)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
