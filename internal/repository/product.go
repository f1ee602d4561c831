package repository

import (
	"context"
	"marketplace-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID string) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	// FindByIDTx reads through the caller's transaction.
	FindByIDTx(ctx context.Context, tx *gorm.DB, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	List(ctx context.Context, category string) ([]*model.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Product, error)
	ListLowStock(ctx context.Context, sellerID string) ([]*model.Product, error)
	CountBySeller(ctx context.Context, sellerID string) (int64, error)
	// DecrementStockIfEnough reserves checkout quantity; reports whether the
	// stored stock covered it.
	DecrementStockIfEnough(ctx context.Context, tx *gorm.DB, productID string, quantity int64) (bool, error)
	UpdateStock(ctx context.Context, productID string, stockQuantity *int64, inStock *bool) error
	SetRating(ctx context.Context, tx *gorm.DB, productID string, average float64, count int64) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindByIDTx(ctx context.Context, tx *gorm.DB, productID string) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context, category string) ([]*model.Product, error) {
	q := r.db.WithContext(ctx)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var products []*model.Product
	err := q.Order("created_at desc").Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListLowStock(ctx context.Context, sellerID string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND stock_quantity <= low_stock_threshold", sellerID).
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("seller_id = ?", sellerID).
		Count(&count).Error

	return count, err
}

func (r *productRepoImpl) DecrementStockIfEnough(ctx context.Context, tx *gorm.DB, productID string, quantity int64) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *productRepoImpl) UpdateStock(ctx context.Context, productID string, stockQuantity *int64, inStock *bool) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if stockQuantity != nil {
		updates["stock_quantity"] = *stockQuantity
	}
	if inStock != nil {
		updates["in_stock"] = *inStock
	}

	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) SetRating(ctx context.Context, tx *gorm.DB, productID string, average float64, count int64) error {
	return tx.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating_average": average,
			"review_count":   count,
			"updated_at":     time.Now(),
		}).Error
}
