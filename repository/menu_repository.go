package repository

import (
	"context"

	"restaurant_site/model"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) List(ctx context.Context, filter model.MenuFilter) ([]model.MenuItem, error) {
	db := r.DB.WithContext(ctx).Model(&model.MenuItem{})
	if filter.Categorie != nil && *filter.Categorie != "" {
		db = db.Where("categorie = ?", *filter.Categorie)
	}
	if filter.Vegan != nil {
		db = db.Where("is_vegan = ?", *filter.Vegan)
	}
	if filter.GlutenFree != nil {
		db = db.Where("is_gluten_free = ?", *filter.GlutenFree)
	}
	var items []model.MenuItem
	err := db.Order("nom ASC, id ASC").Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *MenuRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *MenuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return translate(r.DB.WithContext(ctx).Create(item).Error)
}

// Save writes every column of item, including zero-valued flags.
func (r *MenuRepository) Save(ctx context.Context, item *model.MenuItem) error {
	return translate(r.DB.WithContext(ctx).Save(item).Error)
}

func (r *MenuRepository) Delete(ctx context.Context, ids []uint) (int64, error) {
	res := r.DB.WithContext(ctx).Delete(&model.MenuItem{}, ids)
	return res.RowsAffected, res.Error
}
