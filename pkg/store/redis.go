package store

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/observability"
)

const redisKeyPrefix = "griddeck:layout:"

// RedisStore keeps records as JSON values under a shared key prefix.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the given Redis URL
// (e.g. redis://localhost:6379/0) and pings it once.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to redis")
	}
	return &RedisStore{client: client}, nil
}

func redisKey(id string) string { return redisKeyPrefix + id }

// Get returns the record with the given id.
func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := s.get(ctx, id)
	observability.Store().OnGet(ctx, "redis", id, err)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *RedisStore) get(ctx context.Context, id string) (*Record, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err == redis.Nil {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "reading layout %s", id)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decoding layout %s", id)
	}
	return &rec, nil
}

// Put inserts or replaces a record.
func (s *RedisStore) Put(ctx context.Context, rec *Record) error {
	err := s.put(ctx, rec)
	observability.Store().OnPut(ctx, "redis", rec.ID, err)
	return err
}

func (s *RedisStore) put(ctx context.Context, rec *Record) error {
	if err := ValidateID(rec.ID); err != nil {
		return err
	}
	rec.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encoding layout %s", rec.ID)
	}
	if err := s.client.Set(ctx, redisKey(rec.ID), data, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing layout %s", rec.ID)
	}
	return nil
}

// Delete removes a record.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	err := s.del(ctx, id)
	observability.Store().OnDelete(ctx, "redis", id, err)
	return err
}

func (s *RedisStore) del(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	n, err := s.client.Del(ctx, redisKey(id)).Result()
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "deleting layout %s", id)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

// List returns all records, most recently updated first.
func (s *RedisStore) List(ctx context.Context) ([]Record, error) {
	var out []Record
	iter := s.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "listing layouts")
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
