package service

import (
	"context"
	"errors"
	"log/slog"
	"marketplace-api/internal/client"
	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SellerService interface {
	Apply(ctx context.Context, userID string, req *dto.SellerApplyRequest) (*model.Seller, error)
	GetByUserID(ctx context.Context, userID string) (*model.Seller, error)
	List(ctx context.Context) ([]*model.Seller, error)
	// Verify resolves a pending application to verified or rejected. On
	// verified, a notification email goes out best-effort: a send failure is
	// logged and the state change stands.
	Verify(ctx context.Context, sellerID string, status model.VerificationStatus) error
	Dashboard(ctx context.Context, userID string) (*dto.SellerDashboard, error)
}

type sellerServiceImpl struct {
	sellerRepo  repository.SellerRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	payoutRepo  repository.PayoutRepository
	mailer      client.Mailer
	log         *slog.Logger
}

func NewSellerService(
	sellerRepo repository.SellerRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	payoutRepo repository.PayoutRepository,
	mailer client.Mailer,
	log *slog.Logger,
) SellerService {
	return &sellerServiceImpl{
		sellerRepo:  sellerRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		payoutRepo:  payoutRepo,
		mailer:      mailer,
		log:         log,
	}
}

func (s *sellerServiceImpl) Apply(ctx context.Context, userID string, req *dto.SellerApplyRequest) (*model.Seller, error) {
	if req.StoreName == "" || req.AccountNumber == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.sellerRepo.FindByUserID(ctx, userID); err == nil {
		return nil, ErrAlreadySeller
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seller := &model.Seller{
		ID:                 uuid.NewString(),
		UserID:             userID,
		StoreName:          req.StoreName,
		About:              req.About,
		VerificationStatus: model.VerificationPending,
		DocumentType:       req.DocumentType,
		DocumentNumber:     req.DocumentNumber,
		AccountName:        req.AccountName,
		AccountNumber:      req.AccountNumber,
		BankName:           req.BankName,
		IFSC:               req.IFSC,
	}
	if err := s.sellerRepo.Create(ctx, seller); err != nil {
		return nil, err
	}

	return seller, nil
}

func (s *sellerServiceImpl) GetByUserID(ctx context.Context, userID string) (*model.Seller, error) {
	seller, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return seller, nil
}

func (s *sellerServiceImpl) List(ctx context.Context) ([]*model.Seller, error) {
	return s.sellerRepo.List(ctx)
}

func (s *sellerServiceImpl) Verify(ctx context.Context, sellerID string, status model.VerificationStatus) error {
	if status != model.VerificationVerified && status != model.VerificationRejected {
		return ErrInvalidInput
	}

	seller, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.sellerRepo.SetVerification(ctx, sellerID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// existed a moment ago, so the application was already resolved
			return ErrInvalidState
		}
		return err
	}

	if status == model.VerificationVerified {
		if err := s.userRepo.UpdateRole(ctx, seller.UserID, model.RoleSeller); err != nil {
			return err
		}
		s.notifyVerified(ctx, seller)
	}

	return nil
}

func (s *sellerServiceImpl) notifyVerified(ctx context.Context, seller *model.Seller) {
	user, err := s.userRepo.FindByID(ctx, seller.UserID)
	if err != nil {
		s.log.Warn("verification email skipped", "seller_id", seller.ID, "error", err)
		return
	}

	err = s.mailer.Send(user.Email,
		"Your store has been verified",
		"Congratulations! Your store \""+seller.StoreName+"\" is now verified and you can start listing products.")
	if err != nil {
		s.log.Warn("verification email failed", "seller_id", seller.ID, "error", err)
	}
}

func (s *sellerServiceImpl) Dashboard(ctx context.Context, userID string) (*dto.SellerDashboard, error) {
	seller, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	productCount, err := s.productRepo.CountBySeller(ctx, seller.ID)
	if err != nil {
		return nil, err
	}

	openPayouts, err := s.payoutRepo.CountOpenBySeller(ctx, seller.ID)
	if err != nil {
		return nil, err
	}

	return &dto.SellerDashboard{
		StoreName:          seller.StoreName,
		VerificationStatus: string(seller.VerificationStatus),
		WalletBalance:      seller.WalletBalance,
		ProductCount:       productCount,
		PendingPayouts:     openPayouts,
	}, nil
}
