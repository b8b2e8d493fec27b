package repository

import (
	"context"
	"time"

	"restaurant_site/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeatureRepository struct {
	DB *gorm.DB
}

func NewFeatureRepository(db *gorm.DB) *FeatureRepository {
	return &FeatureRepository{DB: db}
}

// Get returns the named switch. A missing row reads as disabled.
func (r *FeatureRepository) Get(ctx context.Context, name string) (*model.Feature, error) {
	var f model.Feature
	err := r.DB.WithContext(ctx).Where("name = ?", name).First(&f).Error
	if err != nil {
		if translate(err) == ErrNotFound {
			return &model.Feature{Name: name}, nil
		}
		return nil, err
	}
	return &f, nil
}

func (r *FeatureRepository) List(ctx context.Context) ([]model.Feature, error) {
	var rows []model.Feature
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *FeatureRepository) Set(ctx context.Context, name string, enabled bool) (*model.Feature, error) {
	f := model.Feature{Name: name, Enabled: enabled, UpdatedAt: time.Now()}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "updated_at"}),
	}).Create(&f).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, name)
}
