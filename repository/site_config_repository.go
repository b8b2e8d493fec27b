package repository

import (
	"context"
	"time"

	"restaurant_site/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteConfigRepository struct {
	DB *gorm.DB
}

func NewSiteConfigRepository(db *gorm.DB) *SiteConfigRepository {
	return &SiteConfigRepository{DB: db}
}

// All returns the whole key/value table.
func (r *SiteConfigRepository) All(ctx context.Context) (map[string]string, error) {
	var rows []model.SiteConfig
	if err := r.DB.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// UpsertMany writes every pair in a single transaction, inserting missing keys
// and overwriting existing ones.
func (r *SiteConfigRepository) UpsertMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]model.SiteConfig, 0, len(values))
	for k, v := range values {
		rows = append(rows, model.SiteConfig{Key: k, Value: v, UpdatedAt: now})
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
}

// Replace makes the table hold exactly values.
func (r *SiteConfigRepository) Replace(ctx context.Context, values map[string]string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.SiteConfig{}).Error; err != nil {
			return err
		}
		return (&SiteConfigRepository{DB: tx}).UpsertMany(ctx, values)
	})
}
