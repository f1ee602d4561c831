package repository

import (
	"context"
	"marketplace-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type SellerRepository interface {
	Create(ctx context.Context, seller *model.Seller) error
	FindByID(ctx context.Context, sellerID string) (*model.Seller, error)
	FindByUserID(ctx context.Context, userID string) (*model.Seller, error)
	List(ctx context.Context) ([]*model.Seller, error)
	// SetVerification resolves a pending application; returns
	// gorm.ErrRecordNotFound when the seller is absent or already resolved.
	SetVerification(ctx context.Context, sellerID string, status model.VerificationStatus) error
	CreditWallet(ctx context.Context, tx *gorm.DB, sellerID string, amount int64) error
	// DebitWalletIfEnough decrements the wallet only when the stored balance
	// covers the amount; reports whether the debit happened.
	DebitWalletIfEnough(ctx context.Context, tx *gorm.DB, sellerID string, amount int64) (bool, error)
}

type sellerRepoImpl struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &sellerRepoImpl{
		db: db,
	}
}

func (r *sellerRepoImpl) Create(ctx context.Context, seller *model.Seller) error {
	return r.db.WithContext(ctx).Create(seller).Error
}

func (r *sellerRepoImpl) FindByID(ctx context.Context, sellerID string) (*model.Seller, error) {
	var seller model.Seller
	err := r.db.WithContext(ctx).
		Where("id = ?", sellerID).
		First(&seller).Error

	if err != nil {
		return nil, err
	}

	return &seller, nil
}

func (r *sellerRepoImpl) FindByUserID(ctx context.Context, userID string) (*model.Seller, error) {
	var seller model.Seller
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&seller).Error

	if err != nil {
		return nil, err
	}

	return &seller, nil
}

func (r *sellerRepoImpl) List(ctx context.Context) ([]*model.Seller, error) {
	var sellers []*model.Seller
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&sellers).Error

	if err != nil {
		return nil, err
	}

	return sellers, nil
}

func (r *sellerRepoImpl) SetVerification(ctx context.Context, sellerID string, status model.VerificationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Seller{}).
		Where("id = ? AND verification_status = ?", sellerID, model.VerificationPending).
		Updates(map[string]interface{}{
			"verification_status": status,
			"is_verified":         status == model.VerificationVerified,
			"updated_at":          time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *sellerRepoImpl) CreditWallet(ctx context.Context, tx *gorm.DB, sellerID string, amount int64) error {
	result := tx.WithContext(ctx).
		Model(&model.Seller{}).
		Where("id = ?", sellerID).
		Updates(map[string]interface{}{
			"wallet_balance": gorm.Expr("wallet_balance + ?", amount),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *sellerRepoImpl) DebitWalletIfEnough(ctx context.Context, tx *gorm.DB, sellerID string, amount int64) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&model.Seller{}).
		Where("id = ? AND wallet_balance >= ?", sellerID, amount).
		Updates(map[string]interface{}{
			"wallet_balance": gorm.Expr("wallet_balance - ?", amount),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
