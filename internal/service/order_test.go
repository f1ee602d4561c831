package service

import (
	"context"
	"testing"

	"marketplace-api/internal/dto"
	"marketplace-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckout_TotalMatchesItems(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 0)
	p1 := env.createProduct(t, seller.ID, 100, 10)
	p2 := env.createProduct(t, seller.ID, 250, 10)

	buyer := env.createUser(t, model.RoleUser)
	env.addToCart(t, buyer.ID, p1.ID, 2)
	env.addToCart(t, buyer.ID, p2.ID, 3)

	order, err := env.orders.Checkout(ctx, buyer.ID, &dto.CheckoutRequest{PaymentMethod: "COD"})
	require.NoError(t, err)

	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, int64(2*100+3*250), order.TotalAmount)

	items, err := env.orders.GetItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	var sum int64
	for _, item := range items {
		sum += item.UnitPrice * item.Quantity
		assert.Equal(t, seller.ID, item.SellerID)
		assert.False(t, item.IsPayoutProcessed)
	}
	assert.Equal(t, order.TotalAmount, sum)

	// cart is cleared and stock reserved
	cart, err := env.carts.List(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)

	p1After, err := env.productRepo.FindByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), p1After.StockQuantity)
}

func TestCheckout_InsufficientStockRollsBack(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 0)
	p1 := env.createProduct(t, seller.ID, 100, 10)
	p2 := env.createProduct(t, seller.ID, 50, 1)

	buyer := env.createUser(t, model.RoleUser)
	env.addToCart(t, buyer.ID, p1.ID, 2)
	env.addToCart(t, buyer.ID, p2.ID, 5)

	_, err := env.orders.Checkout(ctx, buyer.ID, &dto.CheckoutRequest{})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// nothing committed: stock untouched, cart intact, no orders
	p1After, err := env.productRepo.FindByID(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), p1After.StockQuantity)

	cart, err := env.carts.List(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Len(t, cart, 2)

	orders, err := env.orders.ListByUser(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	buyer := env.createUser(t, model.RoleUser)

	_, err := env.orders.Checkout(ctx, buyer.ID, &dto.CheckoutRequest{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelivered_SettlesPerSeller(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	sellerA := env.createVerifiedSeller(t, 0)
	sellerB := env.createVerifiedSeller(t, 0)
	pa := env.createProduct(t, sellerA.ID, 100, 10)
	pb := env.createProduct(t, sellerB.ID, 50, 10)

	buyer := env.createUser(t, model.RoleUser)
	env.addToCart(t, buyer.ID, pa.ID, 2)
	env.addToCart(t, buyer.ID, pb.ID, 1)

	order, err := env.orders.Checkout(ctx, buyer.ID, &dto.CheckoutRequest{})
	require.NoError(t, err)

	env.deliver(t, order.ID)

	assert.Equal(t, int64(200), env.sellerWallet(t, sellerA.ID))
	assert.Equal(t, int64(50), env.sellerWallet(t, sellerB.ID))

	items, err := env.orders.GetItems(ctx, order.ID)
	require.NoError(t, err)
	for _, item := range items {
		assert.True(t, item.IsPayoutProcessed)
	}
}

func TestDelivered_RetriggerCreditsOnce(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 0)
	product := env.createProduct(t, seller.ID, 100, 10)

	buyer := env.createUser(t, model.RoleUser)
	env.addToCart(t, buyer.ID, product.ID, 2)

	order, err := env.orders.Checkout(ctx, buyer.ID, &dto.CheckoutRequest{})
	require.NoError(t, err)

	env.deliver(t, order.ID)
	require.Equal(t, int64(200), env.sellerWallet(t, seller.ID))

	// second Delivered call passes the transition table (same-status no-op)
	// but settles nothing
	_, err = env.orders.UpdateStatus(ctx, "admin", true, order.ID, model.OrderDelivered)
	require.NoError(t, err)

	assert.Equal(t, int64(200), env.sellerWallet(t, seller.ID))
}

func TestDelivered_AdminProductCreditsNobody(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// admin-owned product, no seller ref
	product := env.createProduct(t, "", 300, 10)

	buyer := env.createUser(t, model.RoleUser)
	env.addToCart(t, buyer.ID, product.ID, 1)

	order, err := env.orders.Checkout(ctx, buyer.ID, &dto.CheckoutRequest{})
	require.NoError(t, err)

	env.deliver(t, order.ID)

	items, err := env.orders.GetItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsPayoutProcessed, "settled with nothing to credit")
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 0)
	product := env.createProduct(t, seller.ID, 100, 10)

	buyer := env.createUser(t, model.RoleUser)
	env.addToCart(t, buyer.ID, product.ID, 1)

	order, err := env.orders.Checkout(ctx, buyer.ID, &dto.CheckoutRequest{})
	require.NoError(t, err)

	// skipping straight to Delivered is not allowed from Pending
	_, err = env.orders.UpdateStatus(ctx, "admin", true, order.ID, model.OrderDelivered)
	require.ErrorIs(t, err, ErrInvalidState)

	env.deliver(t, order.ID)

	// and a delivered order cannot go backwards
	_, err = env.orders.UpdateStatus(ctx, "admin", true, order.ID, model.OrderPending)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = env.orders.UpdateStatus(ctx, "admin", true, order.ID, "Unknown")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_Scoping(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 0)
	product := env.createProduct(t, seller.ID, 100, 10)

	buyer := env.createUser(t, model.RoleUser)
	stranger := env.createUser(t, model.RoleUser)
	env.addToCart(t, buyer.ID, product.ID, 1)

	order, err := env.orders.Checkout(ctx, buyer.ID, &dto.CheckoutRequest{})
	require.NoError(t, err)

	// a bystander cannot touch the order
	_, err = env.orders.UpdateStatus(ctx, stranger.ID, false, order.ID, model.OrderProcessing)
	require.ErrorIs(t, err, ErrForbidden)

	// the owner can only cancel
	_, err = env.orders.UpdateStatus(ctx, buyer.ID, false, order.ID, model.OrderProcessing)
	require.ErrorIs(t, err, ErrForbidden)

	// a seller with a line item may progress the order
	_, err = env.orders.UpdateStatus(ctx, seller.UserID, false, order.ID, model.OrderProcessing)
	require.NoError(t, err)

	// missing order is a not-found, not an authz error
	_, err = env.orders.UpdateStatus(ctx, buyer.ID, false, "missing", model.OrderCancelled)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus_OwnerCancel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 0)
	product := env.createProduct(t, seller.ID, 100, 10)

	buyer := env.createUser(t, model.RoleUser)
	env.addToCart(t, buyer.ID, product.ID, 1)

	order, err := env.orders.Checkout(ctx, buyer.ID, &dto.CheckoutRequest{})
	require.NoError(t, err)

	updated, err := env.orders.UpdateStatus(ctx, buyer.ID, false, order.ID, model.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCancelled, updated.Status)
}

func TestReturns_OnlyDeliveredOrders(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	seller := env.createVerifiedSeller(t, 0)
	product := env.createProduct(t, seller.ID, 100, 10)

	buyer := env.createUser(t, model.RoleUser)
	env.addToCart(t, buyer.ID, product.ID, 1)

	order, err := env.orders.Checkout(ctx, buyer.ID, &dto.CheckoutRequest{})
	require.NoError(t, err)

	err = env.orders.RequestReturn(ctx, buyer.ID, order.ID, "damaged")
	require.ErrorIs(t, err, ErrInvalidState)

	env.deliver(t, order.ID)

	require.NoError(t, env.orders.RequestReturn(ctx, buyer.ID, order.ID, "damaged"))

	// repeated request is rejected
	err = env.orders.RequestReturn(ctx, buyer.ID, order.ID, "damaged again")
	require.ErrorIs(t, err, ErrInvalidState)

	require.NoError(t, env.orders.ResolveReturn(ctx, order.ID, model.ReturnApproved))

	stored, err := env.orders.Get(ctx, buyer.ID, false, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReturnApproved, stored.ReturnStatus)
	assert.Equal(t, "damaged", stored.ReturnReason)
}
