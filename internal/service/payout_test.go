package service

import (
	"context"
	"testing"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPayout_DebitsWalletImmediately(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 15000)

	payout, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 12000})
	require.NoError(t, err)

	assert.Equal(t, model.PayoutProcessing, payout.Status)
	assert.Equal(t, int64(12000), payout.Amount)
	assert.Equal(t, int64(3000), env.sellerWallet(t, seller.ID))
}

func TestRequestPayout_BelowMinimum(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 15000)

	_, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 5000})
	require.ErrorIs(t, err, ErrBelowMinPayout)

	assert.Equal(t, int64(15000), env.sellerWallet(t, seller.ID))
}

func TestRequestPayout_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 15000)

	for _, amount := range []int64{0, -100} {
		_, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: amount})
		require.ErrorIs(t, err, ErrInvalidAmount)
	}

	assert.Equal(t, int64(15000), env.sellerWallet(t, seller.ID))
}

func TestRequestPayout_InsufficientBalance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 11000)

	_, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 12000})
	require.ErrorIs(t, err, ErrInsufficientBalance)

	assert.Equal(t, int64(11000), env.sellerWallet(t, seller.ID))

	payouts, err := env.payouts.ListForSeller(ctx, seller.UserID)
	require.NoError(t, err)
	assert.Empty(t, payouts, "no payout record on a rejected request")
}

func TestRequestPayout_MinimumFromSettings(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.settingRepo.Upsert(ctx, "min_payout_amount", "20000"))
	seller := env.createVerifiedSeller(t, 30000)

	_, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 15000})
	require.ErrorIs(t, err, ErrBelowMinPayout)

	_, err = env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 20000})
	require.NoError(t, err)
}

func TestResolvePayout_PaidKeepsWalletDebited(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 15000)
	payout, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 12000})
	require.NoError(t, err)

	resolved, err := env.payouts.Resolve(ctx, payout.ID, &dto.PayoutResolveRequest{
		Status:        string(model.PayoutPaid),
		TransactionID: "TXN-123",
	})
	require.NoError(t, err)

	assert.Equal(t, model.PayoutPaid, resolved.Status)
	assert.Equal(t, "TXN-123", resolved.TransactionID)
	assert.NotNil(t, resolved.ProcessedAt)
	assert.Equal(t, int64(3000), env.sellerWallet(t, seller.ID))
}

func TestResolvePayout_PaidRequiresTransactionID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 15000)
	payout, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 12000})
	require.NoError(t, err)

	_, err = env.payouts.Resolve(ctx, payout.ID, &dto.PayoutResolveRequest{
		Status: string(model.PayoutPaid),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolvePayout_FailedRefundsWallet(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 15000)
	payout, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 12000})
	require.NoError(t, err)
	require.Equal(t, int64(3000), env.sellerWallet(t, seller.ID))

	resolved, err := env.payouts.Resolve(ctx, payout.ID, &dto.PayoutResolveRequest{
		Status: string(model.PayoutFailed),
		Notes:  "bank transfer bounced",
	})
	require.NoError(t, err)

	assert.Equal(t, model.PayoutFailed, resolved.Status)
	assert.NotNil(t, resolved.ProcessedAt)
	assert.Equal(t, int64(15000), env.sellerWallet(t, seller.ID))
}

func TestResolvePayout_RejectedRefundsWithoutProcessedAt(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 15000)
	payout, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 12000})
	require.NoError(t, err)

	_, err = env.payouts.Resolve(ctx, payout.ID, &dto.PayoutResolveRequest{
		Status: string(model.PayoutRejected),
	})
	require.NoError(t, err)

	stored, err := env.payoutRepo.FindByID(ctx, payout.ID)
	require.NoError(t, err)

	assert.Equal(t, model.PayoutRejected, stored.Status)
	assert.Nil(t, stored.ProcessedAt, "Rejected does not stamp processed_at")
	assert.Equal(t, int64(15000), env.sellerWallet(t, seller.ID))
}

func TestResolvePayout_RedundantCallDoesNotRefundTwice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 15000)
	payout, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 12000})
	require.NoError(t, err)

	_, err = env.payouts.Resolve(ctx, payout.ID, &dto.PayoutResolveRequest{
		Status: string(model.PayoutFailed),
	})
	require.NoError(t, err)
	require.Equal(t, int64(15000), env.sellerWallet(t, seller.ID))

	_, err = env.payouts.Resolve(ctx, payout.ID, &dto.PayoutResolveRequest{
		Status: string(model.PayoutFailed),
	})
	require.ErrorIs(t, err, ErrInvalidState)

	assert.Equal(t, int64(15000), env.sellerWallet(t, seller.ID), "wallet credited exactly once")
}

func TestResolvePayout_NotFound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.payouts.Resolve(ctx, "missing", &dto.PayoutResolveRequest{
		Status: string(model.PayoutFailed),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolvePayout_NonTerminalTarget(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 15000)
	payout, err := env.payouts.Request(ctx, seller.UserID, &dto.PayoutRequest{Amount: 12000})
	require.NoError(t, err)

	_, err = env.payouts.Resolve(ctx, payout.ID, &dto.PayoutResolveRequest{
		Status: string(model.PayoutPending),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
