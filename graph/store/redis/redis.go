// Package redis implements a graph.Store on top of Redis. The outgoing
// links of every source live in a hash keyed by target whose values are the
// accumulated weights; a set tracks the known sources.
package redis

import (
	"context"
	"strconv"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/redis/go-redis/v9"
	"golang.org/x/xerrors"
)

var _ graph.Store = (*RedisStore)(nil)

const defaultKeyPrefix = "linkrank"

// RedisStore is a graph.Store backed by Redis.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
	prefix string
}

// NewRedisStore returns a store that uses client and namespaces its keys
// with prefix. An empty prefix selects "linkrank".
func NewRedisStore(ctx context.Context, client *redis.Client, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, xerrors.New("redis store: nil client")
	}
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, xerrors.Errorf("redis store: %w", err)
	}
	return &RedisStore{client: client, ctx: ctx, prefix: prefix}, nil
}

// NewRedisStoreFromURL parses a redis:// URL and connects to it.
func NewRedisStoreFromURL(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, xerrors.Errorf("redis store: %w", err)
	}
	return NewRedisStore(ctx, redis.NewClient(opts), "")
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// KeySources is the set holding every known source.
func (s *RedisStore) KeySources() string {
	return s.prefix + ":sources"
}

// KeyOutLinks is the hash holding the outgoing weights of source.
func (s *RedisStore) KeyOutLinks(source string) string {
	return s.prefix + ":out:" + source
}

func (s *RedisStore) UpsertRecord(r *graph.Record) error {
	if err := graph.ValidateRecord(r); err != nil {
		return xerrors.Errorf("upsert record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.SAdd(s.ctx, s.KeySources(), r.Source)
	pipe.HIncrBy(s.ctx, s.KeyOutLinks(r.Source), r.Target, int64(r.Weight))
	if _, err := pipe.Exec(s.ctx); err != nil {
		return xerrors.Errorf("upsert record: %w", err)
	}
	return nil
}

// Records returns an iterator that fetches the outgoing links one source at
// a time.
func (s *RedisStore) Records() (graph.RecordIterator, error) {
	sources, err := s.client.SMembers(s.ctx, s.KeySources()).Result()
	if err != nil {
		return nil, xerrors.Errorf("records: %w", err)
	}
	return &recordIterator{s: s, sources: sources}, nil
}

// Flush removes every key owned by the store.
func (s *RedisStore) Flush() error {
	sources, err := s.client.SMembers(s.ctx, s.KeySources()).Result()
	if err != nil {
		return xerrors.Errorf("flush: %w", err)
	}

	keys := []string{s.KeySources()}
	for _, src := range sources {
		keys = append(keys, s.KeyOutLinks(src))
	}
	if err := s.client.Del(s.ctx, keys...).Err(); err != nil {
		return xerrors.Errorf("flush: %w", err)
	}
	return nil
}

func parseWeight(source, target, val string) (graph.Record, error) {
	w, err := strconv.Atoi(val)
	if err != nil {
		return graph.Record{}, xerrors.Errorf("parse weight of %q -> %q: %w", source, target, err)
	}
	return graph.Record{Source: source, Target: target, Weight: w}, nil
}
