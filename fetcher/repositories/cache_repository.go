package repositories

import (
	"context"
	"errors"
	"rugbyrank/pkg/database/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Public Interface.
type CacheRepository interface {
	SetKey(ctx context.Context, key string, value string) error
	GetKey(ctx context.Context, key string) (string, error)
}

// Cache repository structure.
type cacheRepository struct {
	db *gorm.DB
}

// Create a cache repository.
func NewCacheRepository(db *gorm.DB) (CacheRepository, error) {
	if db == nil {
		return nil, errors.New("invalid database connection")
	}
	return &cacheRepository{db: db}, nil
}

// SetKey sets the given key value.
// Should be used as a Redis fallback.
func (cr *cacheRepository) SetKey(ctx context.Context, key string, value string) error {
	cacheEntry := &models.CacheBackup{
		CacheKey:   key,
		CacheValue: datatypes.JSON(value),
	}

	// Upsert the cache key.
	return cr.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"cache_value", "updated_at"}),
	}).Create(cacheEntry).Error
}

// GetKey returns the backed up value.
// A missing key is returned as a empty string without error.
func (cr *cacheRepository) GetKey(ctx context.Context, key string) (string, error) {
	var entry models.CacheBackup
	err := cr.db.WithContext(ctx).Where("cache_key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(entry.CacheValue), nil
}
