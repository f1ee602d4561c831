package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"marketplace-api/internal/client"
	"marketplace-api/internal/config"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubMailer struct {
	sent []string
	err  error
}

func (m *stubMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

type testEnv struct {
	db *gorm.DB

	userRepo    repository.UserRepository
	sellerRepo  repository.SellerRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	payoutRepo  repository.PayoutRepository
	settingRepo repository.SettingRepository

	mailer *stubMailer

	auth     AuthService
	sellers  SellerService
	products ProductService
	carts    CartService
	orders   OrderService
	payouts  PayoutService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, client.Migrate(db))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	env := &testEnv{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		sellerRepo:  repository.NewSellerRepository(db),
		productRepo: repository.NewProductRepository(db),
		orderRepo:   repository.NewOrderRepository(db),
		cartRepo:    repository.NewCartRepository(db),
		payoutRepo:  repository.NewPayoutRepository(db),
		settingRepo: repository.NewSettingRepository(db),
		mailer:      &stubMailer{},
	}

	reviewRepo := repository.NewReviewRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)

	env.auth = NewAuthService(env.userRepo, &config.JWT{Secret: "test-secret", TTLHours: 1})
	env.sellers = NewSellerService(env.sellerRepo, env.userRepo, env.productRepo, env.payoutRepo, env.mailer, log)
	env.products = NewProductService(db, env.productRepo, reviewRepo, categoryRepo, env.sellerRepo)
	env.carts = NewCartService(env.cartRepo, wishlistRepo, env.productRepo)
	env.orders = NewOrderService(db, env.orderRepo, env.cartRepo, env.productRepo, env.sellerRepo, log)
	env.payouts = NewPayoutService(db, env.payoutRepo, env.sellerRepo, env.settingRepo, &config.Payout{MinAmount: 10000}, log)

	return env
}

func (e *testEnv) createUser(t *testing.T, role model.Role) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, e.userRepo.Create(context.Background(), user))

	return user
}

func (e *testEnv) createVerifiedSeller(t *testing.T, wallet int64) *model.Seller {
	t.Helper()

	user := e.createUser(t, model.RoleSeller)
	seller := &model.Seller{
		ID:                 uuid.NewString(),
		UserID:             user.ID,
		StoreName:          "Store " + user.ID[:8],
		VerificationStatus: model.VerificationVerified,
		IsVerified:         true,
		AccountNumber:      "0001",
		WalletBalance:      wallet,
	}
	require.NoError(t, e.sellerRepo.Create(context.Background(), seller))

	return seller
}

func (e *testEnv) createProduct(t *testing.T, sellerID string, price, stock int64) *model.Product {
	t.Helper()

	product := &model.Product{
		ID:            uuid.NewString(),
		SellerID:      sellerID,
		Title:         "Product " + uuid.NewString()[:8],
		Price:         price,
		StockQuantity: stock,
		InStock:       true,
	}
	require.NoError(t, e.productRepo.Create(context.Background(), product))

	return product
}

func (e *testEnv) addToCart(t *testing.T, userID, productID string, quantity int64) {
	t.Helper()

	require.NoError(t, e.cartRepo.Upsert(context.Background(), &model.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}))
}

func (e *testEnv) sellerWallet(t *testing.T, sellerID string) int64 {
	t.Helper()

	seller, err := e.sellerRepo.FindByID(context.Background(), sellerID)
	require.NoError(t, err)

	return seller.WalletBalance
}

// deliver walks an order from Pending to Delivered as an admin.
func (e *testEnv) deliver(t *testing.T, orderID string) {
	t.Helper()
	ctx := context.Background()

	for _, status := range []model.OrderStatus{
		model.OrderProcessing, model.OrderShipped, model.OrderDelivered,
	} {
		_, err := e.orders.UpdateStatus(ctx, "admin", true, orderID, status)
		require.NoError(t, err)
	}
}
