package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/handloomhouse/storefront-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the single-table layout backing the gorm store.
type Entry struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the goose-managed table name.
func (Entry) TableName() string { return "kv_entries" }

// GormStore persists keys as JSON rows in kv_entries.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore binds a store to the provided connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// AutoMigrate creates the kv_entries table when the dev auto-migrate flag is on.
func (s *GormStore) AutoMigrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Entry{}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "migrate kv_entries")
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read key "+key)
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "decode key "+key)
	}
	return true, nil
}

func (s *GormStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "encode key "+key)
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&Entry{Key: key, Value: string(raw), UpdatedAt: time.Now().UTC()}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write key "+key)
	}
	return nil
}

func (s *GormStore) Remove(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&Entry{}).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "remove key "+key)
	}
	return nil
}

// WithTx runs fn against a transaction-scoped store; the transaction commits
// only when fn returns nil.
func (s *GormStore) WithTx(ctx context.Context, fn func(Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "kv transaction")
}
