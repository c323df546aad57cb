package models

import (
	"time"

	"gorm.io/datatypes"
)

// Database model for saving the cache keys.
// Used as fallback in case the Redis is down or the feed can't be reached.
// Should be use only as a last resort, since it will be too slow.
type CacheBackup struct {
	CacheKey   string         `gorm:"primaryKey;autoIncrement:false"`
	CacheValue datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt  time.Time
}
