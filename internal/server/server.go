package server

import (
	"marketplace-api/internal/handler"
	mw "marketplace-api/internal/middleware"
	"marketplace-api/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo      *echo.Echo
	jwtSecret string

	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	sellerHandler  *handler.SellerHandler
	adminHandler   *handler.AdminHandler
}

func NewServer(
	jwtSecret string,
	authService service.AuthService,
	productService service.ProductService,
	cartService service.CartService,
	orderService service.OrderService,
	sellerService service.SellerService,
	payoutService service.PayoutService,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:           e,
		jwtSecret:      jwtSecret,
		authHandler:    handler.NewAuthHandler(authService),
		productHandler: handler.NewProductHandler(productService),
		cartHandler:    handler.NewCartHandler(cartService),
		orderHandler:   handler.NewOrderHandler(orderService),
		sellerHandler:  handler.NewSellerHandler(sellerService, payoutService, productService),
		adminHandler:   handler.NewAdminHandler(sellerService, payoutService, orderService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.POST("/auth/register", s.authHandler.Register)
	api.POST("/auth/login", s.authHandler.Login)

	// public catalog
	api.GET("/products", s.productHandler.List)
	api.GET("/products/:id", s.productHandler.Get)
	api.GET("/products/:id/reviews", s.productHandler.ListReviews)
	api.GET("/categories", s.productHandler.ListCategories)

	auth := api.Group("", mw.Auth(s.jwtSecret))

	auth.GET("/users/me", s.authHandler.Me)

	auth.POST("/products", s.productHandler.Create)
	auth.PUT("/products/:id", s.productHandler.Update)
	auth.DELETE("/products/:id", s.productHandler.Delete)
	auth.PATCH("/products/:id/stock", s.productHandler.UpdateStock)
	auth.POST("/products/:id/reviews", s.productHandler.AddReview)

	auth.GET("/cart", s.cartHandler.List)
	auth.POST("/cart", s.cartHandler.Add)
	auth.PUT("/cart/:id", s.cartHandler.Update)
	auth.DELETE("/cart/:id", s.cartHandler.Remove)

	auth.GET("/wishlist", s.cartHandler.ListWishlist)
	auth.POST("/wishlist", s.cartHandler.AddToWishlist)
	auth.DELETE("/wishlist/:id", s.cartHandler.RemoveFromWishlist)

	auth.POST("/orders/checkout", s.orderHandler.Checkout)
	auth.GET("/orders", s.orderHandler.List)
	auth.GET("/orders/:id", s.orderHandler.Get)
	auth.PATCH("/orders/:id/status", s.orderHandler.UpdateStatus)
	auth.POST("/orders/:id/return", s.orderHandler.RequestReturn)

	// -------- seller --------
	seller := auth.Group("/seller")
	seller.POST("/apply", s.sellerHandler.Apply)
	seller.GET("/dashboard", s.sellerHandler.Dashboard)
	seller.GET("/payouts", s.sellerHandler.ListPayouts)
	seller.POST("/request-payout", s.sellerHandler.RequestPayout)
	seller.GET("/products", s.sellerHandler.ListProducts)
	seller.GET("/low-stock", s.sellerHandler.ListLowStock)

	// -------- admin --------
	admin := auth.Group("/admin", mw.RequireAdmin())
	admin.GET("/sellers", s.adminHandler.ListSellers)
	admin.PATCH("/verify-seller/:id", s.adminHandler.VerifySeller)
	admin.GET("/payouts", s.adminHandler.ListPayouts)
	admin.PATCH("/payouts/:id", s.adminHandler.ResolvePayout)
	admin.GET("/orders", s.adminHandler.ListOrders)
	admin.PATCH("/returns/:id", s.adminHandler.ResolveReturn)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
