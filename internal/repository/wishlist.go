package repository

import (
	"context"
	"marketplace-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository interface {
	Add(ctx context.Context, item *model.WishlistItem) error
	Remove(ctx context.Context, userID, itemID string) error
	ListByUser(ctx context.Context, userID string) ([]*model.WishlistItem, error)
}

type wishlistRepoImpl struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepoImpl{
		db: db,
	}
}

func (r *wishlistRepoImpl) Add(ctx context.Context, item *model.WishlistItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&item).Error
}

func (r *wishlistRepoImpl) Remove(ctx context.Context, userID, itemID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&model.WishlistItem{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *wishlistRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.WishlistItem, error) {
	var items []*model.WishlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}
