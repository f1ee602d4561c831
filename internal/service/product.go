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

type ProductService interface {
	Create(ctx context.Context, callerID string, isAdmin bool, req *dto.ProductRequest) (*model.Product, error)
	Update(ctx context.Context, callerID string, isAdmin bool, productID string, req *dto.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, callerID string, isAdmin bool, productID string) error
	Get(ctx context.Context, productID string) (*model.Product, error)
	List(ctx context.Context, category string) ([]*model.Product, error)
	ListBySeller(ctx context.Context, userID string) ([]*model.Product, error)
	ListLowStock(ctx context.Context, userID string) ([]*model.Product, error)
	UpdateStock(ctx context.Context, callerID string, isAdmin bool, productID string, req *dto.StockUpdateRequest) error
	AddReview(ctx context.Context, userID, productID string, req *dto.ReviewRequest) error
	ListReviews(ctx context.Context, productID string) ([]*model.Review, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
}

type productServiceImpl struct {
	db           *gorm.DB
	productRepo  repository.ProductRepository
	reviewRepo   repository.ReviewRepository
	categoryRepo repository.CategoryRepository
	sellerRepo   repository.SellerRepository
}

func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	categoryRepo repository.CategoryRepository,
	sellerRepo repository.SellerRepository,
) ProductService {
	return &productServiceImpl{
		db:           db,
		productRepo:  productRepo,
		reviewRepo:   reviewRepo,
		categoryRepo: categoryRepo,
		sellerRepo:   sellerRepo,
	}
}

func (s *productServiceImpl) Create(ctx context.Context, callerID string, isAdmin bool, req *dto.ProductRequest) (*model.Product, error) {
	if req.Title == "" || req.Price <= 0 {
		return nil, ErrInvalidInput
	}

	product := &model.Product{
		ID:                uuid.NewString(),
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		CategoryID:        req.CategoryID,
		SubcategoryID:     req.SubcategoryID,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		InStock:           true,
		Attributes:        req.Attributes,
		Specifications:    req.Specifications,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if product.LowStockThreshold == 0 {
		product.LowStockThreshold = 5
	}

	// admin products carry no seller; sellers must be verified to list
	if !isAdmin {
		seller, err := s.sellerRepo.FindByUserID(ctx, callerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrForbidden
			}
			return nil, err
		}
		if !seller.IsVerified {
			return nil, ErrSellerNotVerified
		}
		product.SellerID = seller.ID
	}

	s.resolveCategories(ctx, product)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// resolveCategories fills the denormalized names from the id references when
// they are present; missing ids leave the names as provided.
func (s *productServiceImpl) resolveCategories(ctx context.Context, product *model.Product) {
	if product.CategoryID != "" {
		if category, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err == nil {
			product.Category = category.Name
		}
	}
	if product.SubcategoryID != "" {
		if sub, err := s.categoryRepo.FindByID(ctx, product.SubcategoryID); err == nil {
			product.Subcategory = sub.Name
		}
	}
}

func (s *productServiceImpl) ownedProduct(ctx context.Context, callerID string, isAdmin bool, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if isAdmin {
		return product, nil
	}

	seller, err := s.sellerRepo.FindByUserID(ctx, callerID)
	if err != nil || product.SellerID == "" || product.SellerID != seller.ID {
		return nil, ErrForbidden
	}

	return product, nil
}

func (s *productServiceImpl) Update(ctx context.Context, callerID string, isAdmin bool, productID string, req *dto.ProductRequest) (*model.Product, error) {
	product, err := s.ownedProduct(ctx, callerID, isAdmin, productID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		product.Title = req.Title
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.CategoryID != "" {
		product.CategoryID = req.CategoryID
	}
	if req.SubcategoryID != "" {
		product.SubcategoryID = req.SubcategoryID
	}
	if req.StockQuantity > 0 {
		product.StockQuantity = req.StockQuantity
	}
	if req.LowStockThreshold > 0 {
		product.LowStockThreshold = req.LowStockThreshold
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.Attributes != nil {
		product.Attributes = req.Attributes
	}
	if req.Specifications != nil {
		product.Specifications = req.Specifications
	}

	s.resolveCategories(ctx, product)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, callerID string, isAdmin bool, productID string) error {
	if _, err := s.ownedProduct(ctx, callerID, isAdmin, productID); err != nil {
		return err
	}

	return s.productRepo.Delete(ctx, productID)
}

func (s *productServiceImpl) Get(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return product, nil
}

func (s *productServiceImpl) List(ctx context.Context, category string) ([]*model.Product, error) {
	return s.productRepo.List(ctx, category)
}

func (s *productServiceImpl) ListBySeller(ctx context.Context, userID string) ([]*model.Product, error) {
	seller, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.productRepo.ListBySeller(ctx, seller.ID)
}

func (s *productServiceImpl) ListLowStock(ctx context.Context, userID string) ([]*model.Product, error) {
	seller, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.productRepo.ListLowStock(ctx, seller.ID)
}

func (s *productServiceImpl) UpdateStock(ctx context.Context, callerID string, isAdmin bool, productID string, req *dto.StockUpdateRequest) error {
	if req.StockQuantity == nil && req.InStock == nil {
		return ErrInvalidInput
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return ErrInvalidInput
	}

	if _, err := s.ownedProduct(ctx, callerID, isAdmin, productID); err != nil {
		return err
	}

	// StockQuantity and InStock are deliberately independent; neither write
	// derives the other.
	return s.productRepo.UpdateStock(ctx, productID, req.StockQuantity, req.InStock)
}

func (s *productServiceImpl) AddReview(ctx context.Context, userID, productID string, req *dto.ReviewRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return ErrInvalidInput
	}

	product, err := s.Get(ctx, productID)
	if err != nil {
		return err
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			return err
		}

		newCount := product.ReviewCount + 1
		newAverage := (product.RatingAverage*float64(product.ReviewCount) + float64(req.Rating)) / float64(newCount)

		return s.productRepo.SetRating(ctx, tx, productID, newAverage, newCount)
	})
}

func (s *productServiceImpl) ListReviews(ctx context.Context, productID string) ([]*model.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

func (s *productServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}
