package lexvec

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"github.com/viant/lexvec/config"
	"github.com/viant/lexvec/engine"
	"github.com/viant/lexvec/index/sqlindex"
	"github.com/viant/lexvec/metric"
	"github.com/viant/lexvec/resolve"
	"github.com/viant/lexvec/store"
	"github.com/viant/lexvec/store/kvfile"
	"github.com/viant/lexvec/store/redis"
	"github.com/viant/lexvec/store/sqlite"
)

// LoadStore materializes the store described by cfg into memory. Backends
// are only read during the call.
func LoadStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Type {
	case config.StoreKVFile:
		return kvfile.Open(cfg.Path)
	case config.StoreSQLite:
		if _, err := os.Stat(cfg.Path); err != nil {
			return nil, err
		}
		db, err := engine.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return sqlite.Load(ctx, db, sqlite.Options{
			Table:        cfg.Table,
			TokenColumn:  cfg.TokenColumn,
			VectorColumn: cfg.VectorColumn,
		})
	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		defer client.Close()
		return redis.Load(ctx, client, cfg.Key)
	default:
		return nil, fmt.Errorf("lexvec: unknown store type %q", cfg.Type)
	}
}

// NewLoggerFromConfig builds the logger described by cfg.
func NewLoggerFromConfig(cfg config.LogConfig) *Logger {
	level := ParseLevel(cfg.Level)
	if cfg.Format == "json" {
		return NewJSONLogger(level)
	}
	return NewTextLogger(level)
}

// Load builds a Language from cfg, loading its store and applying the
// resolver and similarity defaults. Extra options are applied last.
func Load(ctx context.Context, cfg *config.Config, opts ...Option) (*Language, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := LoadStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	m, err := metric.Parse(cfg.Similarity.Metric)
	if err != nil {
		return nil, err
	}
	policy, _ := resolve.ParseMissPolicy(cfg.Resolver.MissPolicy)
	logger := NewLoggerFromConfig(cfg.Log)
	logger.WithStore(cfg.Store.Type, s.Dimension()).Info("store loaded",
		slog.Int("tokens", len(s.Tokens(false))),
	)

	base := []Option{
		WithLogger(logger),
		WithMissPolicy(policy),
		WithParallelism(cfg.Similarity.Parallelism),
		WithSimilarityDefaults(cfg.Similarity.N, m, cfg.Similarity.Lower),
	}
	var closers []io.Closer
	if cfg.Similarity.Index == config.IndexSQLite {
		db, err := sqlindex.Open()
		if err != nil {
			return nil, fmt.Errorf("lexvec: open ranking db: %w", err)
		}
		closers = append(closers, db)
		base = append(base, WithIndex(sqlindex.Factory(db)))
	}
	lang := New(s, append(base, opts...)...)
	lang.closers = closers
	return lang, nil
}
