package repository

import (
	"context"
	"marketplace-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type PayoutRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payout *model.Payout) error
	FindByID(ctx context.Context, payoutID string) (*model.Payout, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Payout, error)
	List(ctx context.Context) ([]*model.Payout, error)
	CountOpenBySeller(ctx context.Context, sellerID string) (int64, error)
	// Resolve moves a still-open payout to a terminal status; returns
	// gorm.ErrRecordNotFound when the payout is absent or already terminal,
	// which is what keeps a redundant admin call from refunding twice.
	Resolve(ctx context.Context, tx *gorm.DB, payoutID string, status model.PayoutStatus, transactionID, notes string, processedAt *time.Time) error
}

type payoutRepoImpl struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepoImpl{
		db: db,
	}
}

func (r *payoutRepoImpl) Create(ctx context.Context, tx *gorm.DB, payout *model.Payout) error {
	return tx.WithContext(ctx).Create(payout).Error
}

func (r *payoutRepoImpl) FindByID(ctx context.Context, payoutID string) (*model.Payout, error) {
	var payout model.Payout
	err := r.db.WithContext(ctx).
		Where("id = ?", payoutID).
		First(&payout).Error

	if err != nil {
		return nil, err
	}

	return &payout, nil
}

func (r *payoutRepoImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.Payout, error) {
	var payouts []*model.Payout
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("requested_at desc").
		Find(&payouts).Error

	if err != nil {
		return nil, err
	}

	return payouts, nil
}

func (r *payoutRepoImpl) List(ctx context.Context) ([]*model.Payout, error) {
	var payouts []*model.Payout
	err := r.db.WithContext(ctx).
		Order("requested_at desc").
		Find(&payouts).Error

	if err != nil {
		return nil, err
	}

	return payouts, nil
}

func (r *payoutRepoImpl) CountOpenBySeller(ctx context.Context, sellerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Payout{}).
		Where("seller_id = ? AND status IN ?", sellerID,
			[]model.PayoutStatus{model.PayoutPending, model.PayoutProcessing}).
		Count(&count).Error

	return count, err
}

func (r *payoutRepoImpl) Resolve(ctx context.Context, tx *gorm.DB, payoutID string, status model.PayoutStatus, transactionID, notes string, processedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if transactionID != "" {
		updates["transaction_id"] = transactionID
	}
	if notes != "" {
		updates["notes"] = notes
	}
	if processedAt != nil {
		updates["processed_at"] = *processedAt
	}

	result := tx.WithContext(ctx).
		Model(&model.Payout{}).
		Where("id = ? AND status IN ?", payoutID,
			[]model.PayoutStatus{model.PayoutPending, model.PayoutProcessing}).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
