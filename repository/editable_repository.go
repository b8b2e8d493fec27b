package repository

import (
	"context"

	"restaurant_site/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EditableRepository struct {
	DB *gorm.DB
}

func NewEditableRepository(db *gorm.DB) *EditableRepository {
	return &EditableRepository{DB: db}
}

func (r *EditableRepository) ListByPage(ctx context.Context, pagePath string) ([]model.EditableElement, error) {
	db := r.DB.WithContext(ctx).Model(&model.EditableElement{})
	if pagePath != "" {
		db = db.Where("page_path = ?", pagePath)
	}
	var rows []model.EditableElement
	err := db.Order("page_path ASC, element_id ASC").Find(&rows).Error
	return rows, err
}

func (r *EditableRepository) Upsert(ctx context.Context, el *model.EditableElement) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "page_path"}, {Name: "element_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(el).Error
}

func (r *EditableRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.EditableElement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
