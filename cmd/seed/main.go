package main

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopease-next/internal/config"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
	"github.com/shopease-next/internal/service"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, models.ParseLogLevel(cfg.Database.LogLevel)); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	categories := service.NewCategoryService(repository.NewCategoryRepository(models.DB))
	products := service.NewProductService(repository.NewProductRepository(models.DB), 0)

	categoryIDs := make(map[string]uint, len(categorySeeds))
	for _, seed := range categorySeeds {
		category, err := categories.UpsertBySlug(ctx, &models.Category{
			Slug:        seed.slug,
			Name:        seed.name,
			Description: seed.description,
			Icon:        seed.icon,
		})
		if err != nil {
			stdLog.Fatalf("Failed to upsert category %s: %v", seed.slug, err)
		}
		categoryIDs[seed.slug] = category.ID
	}
	stdLog.Printf("Categories ready: %d", len(categoryIDs))

	created := 0
	for i, seed := range productSeeds {
		categoryID, ok := categoryIDs[seed.category]
		if !ok {
			stdLog.Printf("Skip product %s: unknown category %s", seed.name, seed.category)
			continue
		}
		price, err := models.ParseMoney(seed.price)
		if err != nil {
			stdLog.Fatalf("Invalid price for product %s: %v", seed.name, err)
		}
		isNew, err := products.UpsertBySlug(ctx, &models.Product{
			CategoryID:  categoryID,
			Slug:        slugify(seed.name),
			Name:        seed.name,
			Description: seed.description,
			Price:       price,
			Image:       seed.image,
			Stock:       seed.stock,
			Rating:      seed.rating,
			IsActive:    true,
			SortOrder:   len(productSeeds) - i,
		})
		if err != nil {
			stdLog.Fatalf("Failed to upsert product %s: %v", seed.name, err)
		}
		if isNew {
			created++
		}
	}
	stdLog.Printf("Products ready: %d (created %d)", len(productSeeds), created)
}

func slugify(name string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
