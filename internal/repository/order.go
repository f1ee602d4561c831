package repository

import (
	"context"
	"marketplace-api/internal/model"
	"time"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	List(ctx context.Context) ([]*model.Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error)
	// UpdateStatus moves the order from its expected current status; returns
	// gorm.ErrRecordNotFound when another writer got there first.
	UpdateStatus(ctx context.Context, tx *gorm.DB, orderID string, from, to model.OrderStatus) error
	// GetUnsettledItems returns the order's items still awaiting settlement.
	GetUnsettledItems(ctx context.Context, tx *gorm.DB, orderID string) ([]*model.OrderItem, error)
	MarkItemsSettled(ctx context.Context, tx *gorm.DB, itemIDs []string) error
	SellerHasItem(ctx context.Context, orderID, sellerID string) (bool, error)
	RequestReturn(ctx context.Context, orderID string, reason string) error
	ResolveReturn(ctx context.Context, orderID string, status model.ReturnStatus) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateOrderItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) List(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID string, from, to model.OrderStatus) error {
	result := tx.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *orderRepoImpl) GetUnsettledItems(ctx context.Context, tx *gorm.DB, orderID string) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := tx.WithContext(ctx).
		Where("order_id = ? AND is_payout_processed = ?", orderID, false).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *orderRepoImpl) MarkItemsSettled(ctx context.Context, tx *gorm.DB, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}

	return tx.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("id IN ?", itemIDs).
		Update("is_payout_processed", true).Error
}

func (r *orderRepoImpl) SellerHasItem(ctx context.Context, orderID, sellerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("order_id = ? AND seller_id = ?", orderID, sellerID).
		Count(&count).Error

	return count > 0, err
}

func (r *orderRepoImpl) RequestReturn(ctx context.Context, orderID string, reason string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND return_status = ?", orderID, model.ReturnNone).
		Updates(map[string]interface{}{
			"return_status": model.ReturnRequested,
			"return_reason": reason,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *orderRepoImpl) ResolveReturn(ctx context.Context, orderID string, status model.ReturnStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND return_status = ?", orderID, model.ReturnRequested).
		Updates(map[string]interface{}{
			"return_status": status,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
