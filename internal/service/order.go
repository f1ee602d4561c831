package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService interface {
	// Checkout snapshots the user's cart into an order. Unit prices and the
	// owning seller are captured from the product at this moment; the stored
	// total is Σ(unit price × quantity) and is never re-validated afterwards.
	Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*model.Order, error)
	Get(ctx context.Context, callerID string, isAdmin bool, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	List(ctx context.Context) ([]*model.Order, error)
	GetItems(ctx context.Context, orderID string) ([]*model.OrderItem, error)
	// UpdateStatus applies the transition table and, on Delivered, settles the
	// order's items into seller wallets within the same transaction.
	UpdateStatus(ctx context.Context, callerID string, isAdmin bool, orderID string, next model.OrderStatus) (*model.Order, error)
	RequestReturn(ctx context.Context, userID, orderID, reason string) error
	ResolveReturn(ctx context.Context, orderID string, status model.ReturnStatus) error
}

type orderServiceImpl struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	sellerRepo  repository.SellerRepository
	log         *slog.Logger
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	sellerRepo repository.SellerRepository,
	log *slog.Logger,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		sellerRepo:  sellerRepo,
		log:         log,
	}
}

func (s *orderServiceImpl) Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*model.Order, error) {
	cartItems, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrInvalidInput
	}

	productIDs := make([]string, len(cartItems))
	for i, item := range cartItems {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get cart products: %w", err)
	}
	if len(products) != len(cartItems) {
		return nil, fmt.Errorf("%w: some cart products no longer exist", ErrInvalidInput)
	}

	productByID := make(map[string]*model.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	order := &model.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Status:        model.OrderPending,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
	}

	totalAmount := int64(0)
	orderItems := make([]*model.OrderItem, len(cartItems))
	for i, cartItem := range cartItems {
		product := productByID[cartItem.ProductID]
		totalAmount += product.Price * cartItem.Quantity

		orderItems[i] = &model.OrderItem{
			ID:               uuid.NewString(),
			OrderID:          order.ID,
			ProductID:        product.ID,
			SellerID:         product.SellerID,
			Quantity:         cartItem.Quantity,
			UnitPrice:        product.Price,
			SelectedFeatures: cartItem.SelectedFeatures,
		}
	}
	order.TotalAmount = totalAmount

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range orderItems {
			ok, err := s.productRepo.DecrementStockIfEnough(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
			}
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}

		return s.cartRepo.Clear(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *orderServiceImpl) Get(ctx context.Context, callerID string, isAdmin bool, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !isAdmin && order.UserID != callerID {
		if ok, err := s.sellerHasItem(ctx, callerID, orderID); err != nil || !ok {
			return nil, ErrForbidden
		}
	}

	return order, nil
}

func (s *orderServiceImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *orderServiceImpl) List(ctx context.Context) ([]*model.Order, error) {
	return s.orderRepo.List(ctx)
}

func (s *orderServiceImpl) GetItems(ctx context.Context, orderID string) ([]*model.OrderItem, error) {
	return s.orderRepo.GetOrderItems(ctx, orderID)
}

func (s *orderServiceImpl) sellerHasItem(ctx context.Context, callerID, orderID string) (bool, error) {
	seller, err := s.sellerRepo.FindByUserID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return s.orderRepo.SellerHasItem(ctx, orderID, seller.ID)
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, callerID string, isAdmin bool, orderID string, next model.OrderStatus) (*model.Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidInput
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// scoping: the owning user may only cancel; sellers must have a line item
	// in the order; admins may do anything
	if !isAdmin {
		if order.UserID == callerID {
			if next != model.OrderCancelled {
				return nil, ErrForbidden
			}
		} else {
			ok, err := s.sellerHasItem(ctx, callerID, orderID)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, ErrForbidden
			}
		}
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidState, order.Status, next)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.Status != next {
			if err := s.orderRepo.UpdateStatus(ctx, tx, orderID, order.Status, next); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInvalidState // lost the race to another writer
				}
				return err
			}
		}

		if next == model.OrderDelivered {
			return s.settleDelivered(ctx, tx, orderID)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = next
	return order, nil
}

func (s *orderServiceImpl) RequestReturn(ctx context.Context, userID, orderID, reason string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if order.UserID != userID {
		return ErrForbidden
	}
	if order.Status != model.OrderDelivered {
		return ErrInvalidState
	}

	err = s.orderRepo.RequestReturn(ctx, orderID, reason)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidState // already requested or resolved
	}
	return err
}

func (s *orderServiceImpl) ResolveReturn(ctx context.Context, orderID string, status model.ReturnStatus) error {
	if status != model.ReturnApproved && status != model.ReturnRejected {
		return ErrInvalidInput
	}

	err := s.orderRepo.ResolveReturn(ctx, orderID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
