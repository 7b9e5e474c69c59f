package repositories

import (
	"time"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/pkg/cache"
	"github.com/lumicea/lumicea/pkg/database"
	"github.com/lumicea/lumicea/pkg/orm"
	"gorm.io/gorm/clause"
)

// SettingsRepository handles the shop-wide key/value settings.
type SettingsRepository struct{}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

const settingsCacheKey = "lumicea:settings:all"

// All returns every setting as a key → value map, cached for five minutes.
func (r *SettingsRepository) All() (map[string]string, error) {
	var out map[string]string
	if cache.Get(settingsCacheKey, &out) {
		return out, nil
	}

	var rows []models.Setting
	if err := orm.DB().Model(&models.Setting{}).Get(&rows); err != nil {
		return nil, err
	}

	out = make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}

	cache.Set(settingsCacheKey, out, 5*time.Minute) //nolint:errcheck
	return out, nil
}

// Get returns one setting value, or "" when unset.
func (r *SettingsRepository) Get(key string) (string, error) {
	all, err := r.All()
	if err != nil {
		return "", err
	}
	return all[key], nil
}

// Set upserts one setting and invalidates the cache.
func (r *SettingsRepository) Set(key, value string) error {
	row := models.Setting{Key: key, Value: value}
	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return err
	}
	return cache.Forget(settingsCacheKey)
}
