// Package redis loads a store.Store from Redis and writes stores back.
//
// A vocabulary under key K is kept in two structures:
//
//	K:tokens   LIST of tokens in enumeration order
//	K:vectors  HASH token -> vector BLOB (store.EncodeVector)
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/viant/lexvec/store"
	"github.com/viant/lexvec/store/memory"
)

// DefaultBatchSize bounds the fields requested per HMGET.
const DefaultBatchSize = 512

// TokensKey returns the list key holding the token order.
func TokensKey(key string) string { return key + ":tokens" }

// VectorsKey returns the hash key holding the vectors.
func VectorsKey(key string) string { return key + ":vectors" }

// Load reads the vocabulary stored under key into an in-memory store.
func Load(ctx context.Context, client goredis.Cmdable, key string) (*memory.Store, error) {
	return LoadBatched(ctx, client, key, DefaultBatchSize)
}

// LoadBatched is Load with an explicit HMGET batch size.
func LoadBatched(ctx context.Context, client goredis.Cmdable, key string, batchSize int) (*memory.Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis: client is nil")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	tokens, err := client.LRange(ctx, TokensKey(key), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: read tokens: %w", err)
	}

	b := memory.NewBuilder(0)
	for lo := 0; lo < len(tokens); lo += batchSize {
		hi := min(lo+batchSize, len(tokens))
		values, err := client.HMGet(ctx, VectorsKey(key), tokens[lo:hi]...).Result()
		if err != nil {
			return nil, fmt.Errorf("redis: read vectors: %w", err)
		}
		for i, raw := range values {
			token := tokens[lo+i]
			blob, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("redis: token %q listed but has no vector", token)
			}
			vec, err := store.DecodeVector([]byte(blob))
			if err != nil {
				return nil, fmt.Errorf("redis: token %q: %w", token, err)
			}
			if err := b.Add(token, vec); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(), nil
}

// Save replaces the vocabulary under key with the contents of s in a single
// MULTI/EXEC transaction.
func Save(ctx context.Context, client goredis.Cmdable, key string, s store.Store) error {
	if client == nil {
		return fmt.Errorf("redis: client is nil")
	}
	tokens := s.Tokens(false)
	order := make([]interface{}, 0, len(tokens))
	fields := make([]interface{}, 0, 2*len(tokens))
	for _, token := range tokens {
		vec, err := store.Vector(s, token)
		if err != nil {
			return err
		}
		order = append(order, token)
		fields = append(fields, token, store.EncodeVector(vec))
	}
	_, err := client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, TokensKey(key), VectorsKey(key))
		if len(tokens) == 0 {
			return nil
		}
		pipe.RPush(ctx, TokensKey(key), order...)
		pipe.HSet(ctx, VectorsKey(key), fields...)
		return nil
	})
	return err
}
