package service

import (
	"context"
	"errors"
	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartService interface {
	Add(ctx context.Context, userID string, req *dto.CartAddRequest) error
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int64) error
	Remove(ctx context.Context, userID, itemID string) error
	List(ctx context.Context, userID string) ([]*model.CartItem, error)
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, itemID string) error
	ListWishlist(ctx context.Context, userID string) ([]*model.WishlistItem, error)
}

type cartServiceImpl struct {
	cartRepo     repository.CartRepository
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartServiceImpl{
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *cartServiceImpl) Add(ctx context.Context, userID string, req *dto.CartAddRequest) error {
	if req.ProductID == "" || req.Quantity <= 0 {
		return ErrInvalidInput
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.cartRepo.Upsert(ctx, &model.CartItem{
		ID:               uuid.NewString(),
		UserID:           userID,
		ProductID:        req.ProductID,
		Quantity:         req.Quantity,
		SelectedFeatures: req.SelectedFeatures,
	})
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidInput
	}

	err := s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *cartServiceImpl) Remove(ctx context.Context, userID, itemID string) error {
	err := s.cartRepo.Remove(ctx, userID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *cartServiceImpl) List(ctx context.Context, userID string) ([]*model.CartItem, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

func (s *cartServiceImpl) AddToWishlist(ctx context.Context, userID, productID string) error {
	if productID == "" {
		return ErrInvalidInput
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.wishlistRepo.Add(ctx, &model.WishlistItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
	})
}

func (s *cartServiceImpl) RemoveFromWishlist(ctx context.Context, userID, itemID string) error {
	err := s.wishlistRepo.Remove(ctx, userID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *cartServiceImpl) ListWishlist(ctx context.Context, userID string) ([]*model.WishlistItem, error) {
	return s.wishlistRepo.ListByUser(ctx, userID)
}
