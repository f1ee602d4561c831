package service

import (
	"context"
	"errors"
	"log/slog"
	"marketplace-api/internal/config"
	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const minPayoutSettingKey = "min_payout_amount"

type PayoutService interface {
	// Request debits the seller's wallet up front (funds are reserved, not
	// yet paid) and records the payout as Processing.
	Request(ctx context.Context, userID string, req *dto.PayoutRequest) (*model.Payout, error)
	// Resolve moves an open payout to Paid, Failed or Rejected. Failed and
	// Rejected re-credit the wallet exactly once; a redundant call against a
	// terminal payout fails without touching the wallet.
	Resolve(ctx context.Context, payoutID string, req *dto.PayoutResolveRequest) (*model.Payout, error)
	ListForSeller(ctx context.Context, userID string) ([]*model.Payout, error)
	List(ctx context.Context) ([]*model.Payout, error)
}

type payoutServiceImpl struct {
	db          *gorm.DB
	payoutRepo  repository.PayoutRepository
	sellerRepo  repository.SellerRepository
	settingRepo repository.SettingRepository
	payoutCfg   *config.Payout
	log         *slog.Logger
}

func NewPayoutService(
	db *gorm.DB,
	payoutRepo repository.PayoutRepository,
	sellerRepo repository.SellerRepository,
	settingRepo repository.SettingRepository,
	payoutCfg *config.Payout,
	log *slog.Logger,
) PayoutService {
	return &payoutServiceImpl{
		db:          db,
		payoutRepo:  payoutRepo,
		sellerRepo:  sellerRepo,
		settingRepo: settingRepo,
		payoutCfg:   payoutCfg,
		log:         log,
	}
}

func (s *payoutServiceImpl) minAmount(ctx context.Context) int64 {
	value, err := s.settingRepo.Get(ctx, minPayoutSettingKey)
	if err == nil {
		if parsed, perr := strconv.ParseInt(value, 10, 64); perr == nil && parsed > 0 {
			return parsed
		}
	}
	return s.payoutCfg.MinAmount
}

func (s *payoutServiceImpl) Request(ctx context.Context, userID string, req *dto.PayoutRequest) (*model.Payout, error) {
	seller, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.Amount < s.minAmount(ctx) {
		return nil, ErrBelowMinPayout
	}

	payout := &model.Payout{
		ID:          uuid.NewString(),
		SellerID:    seller.ID,
		Amount:      req.Amount,
		Status:      model.PayoutProcessing,
		RequestedAt: time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// conditional decrement: validation and debit are one statement, so
		// two concurrent requests cannot jointly overdraw the wallet
		ok, err := s.sellerRepo.DebitWalletIfEnough(ctx, tx, seller.ID, req.Amount)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInsufficientBalance
		}

		return s.payoutRepo.Create(ctx, tx, payout)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payout requested",
		"payout_id", payout.ID, "seller_id", seller.ID, "amount", req.Amount)

	return payout, nil
}

func (s *payoutServiceImpl) Resolve(ctx context.Context, payoutID string, req *dto.PayoutResolveRequest) (*model.Payout, error) {
	status := model.PayoutStatus(req.Status)
	if !status.Terminal() {
		return nil, ErrInvalidInput
	}
	if status == model.PayoutPaid && req.TransactionID == "" {
		return nil, ErrInvalidInput
	}

	payout, err := s.payoutRepo.FindByID(ctx, payoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if payout.Status.Terminal() {
		return nil, ErrInvalidState
	}

	// processed_at is stamped for Paid and Failed but not Rejected, matching
	// the historical behavior callers rely on
	var processedAt *time.Time
	if status == model.PayoutPaid || status == model.PayoutFailed {
		now := time.Now()
		processedAt = &now
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := s.payoutRepo.Resolve(ctx, tx, payoutID, status, req.TransactionID, req.Notes, processedAt)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidState // resolved concurrently; no second refund
			}
			return err
		}

		// Paid has no wallet effect: the amount was debited at request time.
		// Failed and Rejected hand the reserved funds back.
		if status == model.PayoutFailed || status == model.PayoutRejected {
			return s.sellerRepo.CreditWallet(ctx, tx, payout.SellerID, payout.Amount)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payout resolved",
		"payout_id", payoutID, "status", status, "seller_id", payout.SellerID)

	payout.Status = status
	payout.ProcessedAt = processedAt
	if req.TransactionID != "" {
		payout.TransactionID = req.TransactionID
	}
	if req.Notes != "" {
		payout.Notes = req.Notes
	}

	return payout, nil
}

func (s *payoutServiceImpl) ListForSeller(ctx context.Context, userID string) ([]*model.Payout, error) {
	seller, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.payoutRepo.ListBySeller(ctx, seller.ID)
}

func (s *payoutServiceImpl) List(ctx context.Context) ([]*model.Payout, error) {
	return s.payoutRepo.List(ctx)
}
