package repository

import (
	"context"

	"restaurant_site/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteSettingRepository struct {
	DB *gorm.DB
}

func NewSiteSettingRepository(db *gorm.DB) *SiteSettingRepository {
	return &SiteSettingRepository{DB: db}
}

func (r *SiteSettingRepository) List(ctx context.Context, settingType string) ([]model.SiteSetting, error) {
	db := r.DB.WithContext(ctx).Model(&model.SiteSetting{})
	if settingType != "" {
		db = db.Where("type = ?", settingType)
	}
	var rows []model.SiteSetting
	err := db.Order("type ASC, key ASC").Find(&rows).Error
	return rows, err
}

func (r *SiteSettingRepository) Upsert(ctx context.Context, setting *model.SiteSetting) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}

func (r *SiteSettingRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.SiteSetting{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
