// One-shot bootstrap: seeds categories and platform settings. Run it once
// against a fresh database; reruns are no-ops thanks to on-conflict guards.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"marketplace-api/internal/client"
	"marketplace-api/internal/config"
	"marketplace-api/internal/model"
	"marketplace-api/internal/repository"

	"github.com/caarlos0/env/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)
	ctx := context.Background()

	categoryRepo := repository.NewCategoryRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	categories := []model.Category{
		{ID: uuid.NewString(), Name: "Electronics", Slug: "electronics"},
		{ID: uuid.NewString(), Name: "Fashion", Slug: "fashion"},
		{ID: uuid.NewString(), Name: "Home & Kitchen", Slug: "home-kitchen"},
		{ID: uuid.NewString(), Name: "Books", Slug: "books"},
		{ID: uuid.NewString(), Name: "Sports", Slug: "sports"},
	}
	if err := categoryRepo.Seed(ctx, categories); err != nil {
		fmt.Printf("Failed to seed categories: %v\n", err)
		os.Exit(1)
	}

	minPayout := strconv.FormatInt(cfg.Payout.MinAmount, 10)
	if err := settingRepo.Upsert(ctx, "min_payout_amount", minPayout); err != nil {
		fmt.Printf("Failed to seed settings: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Seed complete")
}
