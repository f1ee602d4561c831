package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace-api/internal/client"
	"marketplace-api/internal/config"
	"marketplace-api/internal/logging"
	"marketplace-api/internal/repository"
	"marketplace-api/internal/server"
	"marketplace-api/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format)

	db := client.InitMysqlClient(cfg.DatabaseURL)
	mailer := client.NewMailer(&cfg.SMTP)

	userRepo := repository.NewUserRepository(db)
	sellerRepo := repository.NewSellerRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	authService := service.NewAuthService(userRepo, &cfg.JWT)
	sellerService := service.NewSellerService(sellerRepo, userRepo, productRepo, payoutRepo, mailer, log)
	productService := service.NewProductService(db, productRepo, reviewRepo, categoryRepo, sellerRepo)
	cartService := service.NewCartService(cartRepo, wishlistRepo, productRepo)
	orderService := service.NewOrderService(db, orderRepo, cartRepo, productRepo, sellerRepo, log)
	payoutService := service.NewPayoutService(db, payoutRepo, sellerRepo, settingRepo, &cfg.Payout, log)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(
		cfg.JWT.Secret,
		authService,
		productService,
		cartService,
		orderService,
		sellerService,
		payoutService,
	)

	log.Info("starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
		os.Exit(1)
	}
}
