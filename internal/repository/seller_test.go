package repository

import (
	"context"
	"testing"

	"marketplace-api/internal/client"
	"marketplace-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, client.Migrate(db))

	return db
}

func createSeller(t *testing.T, repo SellerRepository, wallet int64) *model.Seller {
	t.Helper()

	seller := &model.Seller{
		ID:                 uuid.NewString(),
		UserID:             uuid.NewString(),
		StoreName:          "Store",
		VerificationStatus: model.VerificationVerified,
		IsVerified:         true,
		WalletBalance:      wallet,
	}
	require.NoError(t, repo.Create(context.Background(), seller))

	return seller
}

func TestDebitWalletIfEnough(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSellerRepository(db)

	seller := createSeller(t, repo, 1000)

	// exact balance drains to zero
	ok, err := repo.DebitWalletIfEnough(ctx, db, seller.ID, 1000)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := repo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.WalletBalance)

	// any further debit is refused, balance stays put
	ok, err = repo.DebitWalletIfEnough(ctx, db, seller.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err = repo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.WalletBalance)
}

func TestCreditWallet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSellerRepository(db)

	seller := createSeller(t, repo, 500)

	require.NoError(t, repo.CreditWallet(ctx, db, seller.ID, 250))
	require.NoError(t, repo.CreditWallet(ctx, db, seller.ID, 250))

	stored, err := repo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stored.WalletBalance)

	err = repo.CreditWallet(ctx, db, "missing", 100)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSetVerification_PendingOnly(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSellerRepository(db)

	seller := &model.Seller{
		ID:                 uuid.NewString(),
		UserID:             uuid.NewString(),
		StoreName:          "Store",
		VerificationStatus: model.VerificationPending,
	}
	require.NoError(t, repo.Create(ctx, seller))

	require.NoError(t, repo.SetVerification(ctx, seller.ID, model.VerificationVerified))

	stored, err := repo.FindByID(ctx, seller.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVerified)

	// resolved applications cannot be flipped again
	err = repo.SetVerification(ctx, seller.ID, model.VerificationRejected)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
