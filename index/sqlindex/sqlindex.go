package sqlindex

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/viant/lexvec/engine"
	"github.com/viant/lexvec/index"
	"github.com/viant/lexvec/metric"
	"github.com/viant/lexvec/store"
)

var tableSeq atomic.Uint64

// Open registers the distance functions and opens a private in-memory
// database for ranking. The pool is limited to one connection since every
// connection to ":memory:" is a separate database.
func Open() (*sql.DB, error) {
	if err := engine.RegisterDistanceFunctions(); err != nil {
		return nil, err
	}
	db, err := engine.Open(":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Index ranks vectors stored in a table of db.
type Index struct {
	db    *sql.DB
	table string
	n     int
	dim   int
}

// New creates an empty Index backed by db. The db must have been opened
// after engine.RegisterDistanceFunctions, as Open does.
func New(db *sql.DB) *Index {
	return &Index{db: db, table: fmt.Sprintf("lexvec_candidates_%d", tableSeq.Add(1))}
}

// Factory returns an index.Factory whose indexes share db.
func Factory(db *sql.DB) index.Factory {
	return func() index.Index { return New(db) }
}

// Build implements index.Index. It replaces the index table in one
// transaction.
func (i *Index) Build(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("sqlindex: ids and vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("sqlindex: inconsistent vector dims %d vs %d", len(vectors[j]), dim)
		}
	}

	ctx := context.Background()
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+i.table); err != nil {
		return err
	}
	ddl := fmt.Sprintf(`CREATE TABLE %s (pos INTEGER PRIMARY KEY, id TEXT NOT NULL, vector BLOB NOT NULL)`, i.table)
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s(pos, id, vector) VALUES(?, ?, ?)`, i.table))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for j, id := range ids {
		if _, err := stmt.ExecContext(ctx, j, id, store.EncodeVector(vectors[j])); err != nil {
			return fmt.Errorf("sqlindex: insert %q: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	i.n, i.dim = len(ids), dim
	return nil
}

// Len implements index.Index.
func (i *Index) Len() int { return i.n }

// Query implements index.Index. Ties on distance are broken by build
// position.
func (i *Index) Query(query []float32, k int, m metric.Name) ([]index.Neighbor, error) {
	if m.Function() == nil {
		return nil, fmt.Errorf("%w: %q", metric.ErrUnsupportedMetric, m)
	}
	if k <= 0 || i.n == 0 {
		return []index.Neighbor{}, nil
	}
	if len(query) != i.dim {
		return nil, fmt.Errorf("%w: query dim %d != index dim %d", metric.ErrDimensionMismatch, len(query), i.dim)
	}

	rows, err := i.db.QueryContext(context.Background(),
		fmt.Sprintf(`SELECT pos, id, vec_distance(?, vector, ?) AS d FROM %s ORDER BY d, pos LIMIT ?`, i.table),
		string(m), store.EncodeVector(query), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]index.Neighbor, 0, min(k, i.n))
	for rows.Next() {
		var n index.Neighbor
		if err := rows.Scan(&n.Pos, &n.ID, &n.Distance); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Close drops the index table. The shared db stays open.
func (i *Index) Close() error {
	_, err := i.db.ExecContext(context.Background(), `DROP TABLE IF EXISTS `+i.table)
	return err
}

var _ index.Index = (*Index)(nil)
