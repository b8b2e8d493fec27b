package repository

import (
	"context"

	"restaurant_site/model"

	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	var acc model.Account
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&acc).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	var acc model.Account
	if err := r.DB.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

// UpdateMetadata replaces the account metadata and email in one statement.
func (r *AccountRepository) UpdateMetadata(ctx context.Context, id uint, email string, metadata map[string]string) error {
	acc := model.Account{DTO: model.DTO{ID: id}, Email: email, Metadata: metadata}
	res := r.DB.WithContext(ctx).Model(&acc).Select("email", "metadata").Updates(&acc)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.DB.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Update("password", hash).Error
}
