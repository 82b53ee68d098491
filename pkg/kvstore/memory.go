package kvstore

import (
	"context"
	"encoding/json"
	"sync"

	pkgerrors "github.com/handloomhouse/storefront-backend/pkg/errors"
)

// MemoryStore is a map-backed TxStore used by tests and throwaway
// environments. WithTx operates on a snapshot that replaces the live map
// only when fn succeeds.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode key "+key)
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode key "+key)
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string][]byte, len(s.data))
	for k, v := range s.data {
		snapshot[k] = v
	}

	tx := &memoryTx{data: snapshot}
	if err := fn(tx); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

type memoryTx struct {
	data map[string][]byte
}

func (t *memoryTx) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := t.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode key "+key)
	}
	return true, nil
}

func (t *memoryTx) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode key "+key)
	}
	t.data[key] = raw
	return nil
}

func (t *memoryTx) Remove(_ context.Context, key string) error {
	delete(t.data, key)
	return nil
}
