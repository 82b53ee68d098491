package kvstore

import (
	"context"
	"encoding/json"
	"errors"

	pkgerrors "github.com/handloomhouse/storefront-backend/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/multierr"
)

const redisKeyPrefix = "hh:"

// RedisStore keeps the storefront state in Redis. Writes issued inside
// WithTx are staged and committed in one MULTI/EXEC pipeline, so the
// transactional contract matches the gorm backend for a single writer.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an established client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read key "+key)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode key "+key)
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode key "+key)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, raw, 0).Err(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write key "+key)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "remove key "+key)
	}
	return nil
}

// WithTx stages writes from fn and flushes them atomically via MULTI/EXEC.
// Reads inside the transaction observe the staged writes.
func (s *RedisStore) WithTx(ctx context.Context, fn func(Store) error) error {
	staged := &stagedRedisStore{
		base: s,
		sets: map[string][]byte{},
		dels: map[string]struct{}{},
	}
	if err := fn(staged); err != nil {
		return err
	}
	if len(staged.sets) == 0 && len(staged.dels) == 0 {
		return nil
	}

	cmds, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, raw := range staged.sets {
			pipe.Set(ctx, redisKeyPrefix+key, raw, 0)
		}
		for key := range staged.dels {
			pipe.Del(ctx, redisKeyPrefix+key)
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "commit kv transaction")
	}

	var cmdErrs error
	for _, cmd := range cmds {
		if cmdErr := cmd.Err(); cmdErr != nil {
			cmdErrs = multierr.Append(cmdErrs, cmdErr)
		}
	}
	if cmdErrs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, cmdErrs, "commit kv transaction")
	}
	return nil
}

type stagedRedisStore struct {
	base *RedisStore
	sets map[string][]byte
	dels map[string]struct{}
}

func (s *stagedRedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	if raw, ok := s.sets[key]; ok {
		if err := json.Unmarshal(raw, dest); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode key "+key)
		}
		return true, nil
	}
	if _, ok := s.dels[key]; ok {
		return false, nil
	}
	return s.base.Get(ctx, key, dest)
}

func (s *stagedRedisStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode key "+key)
	}
	delete(s.dels, key)
	s.sets[key] = raw
	return nil
}

func (s *stagedRedisStore) Remove(_ context.Context, key string) error {
	delete(s.sets, key)
	s.dels[key] = struct{}{}
	return nil
}
