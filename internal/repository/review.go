package repository

import (
	"context"
	"marketplace-api/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *model.Review) error
	ListByProduct(ctx context.Context, productID string) ([]*model.Review, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, tx *gorm.DB, review *model.Review) error {
	return tx.WithContext(ctx).Create(review).Error
}

func (r *reviewRepoImpl) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reviews).Error

	if err != nil {
		return nil, err
	}

	return reviews, nil
}
