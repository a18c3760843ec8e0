package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/queue"
	"github.com/shopease-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusLog{},
		&models.Review{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, slug, price string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: 1,
		Slug:       slug,
		Name:       "Product " + slug,
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		Stock:      10,
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if !active {
		if err := db.Model(product).Update("is_active", false).Error; err != nil {
			t.Fatalf("deactivate product failed: %v", err)
		}
		product.IsActive = false
	}
	return product
}

type recordingNotifier struct {
	mu       sync.Mutex
	payloads []queue.OrderStatusChangedPayload
	err      error
}

func (n *recordingNotifier) EnqueueOrderStatusChanged(_ context.Context, payload queue.OrderStatusChangedPayload, _ ...asynq.Option) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, payload)
	return n.err
}

func (n *recordingNotifier) snapshot() []queue.OrderStatusChangedPayload {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]queue.OrderStatusChangedPayload(nil), n.payloads...)
}

type commerceFixture struct {
	db       *gorm.DB
	catalog  *ProductService
	cart     *CartService
	orders   *OrderService
	checkout *CheckoutService
	reviews  *ReviewService
	notifier *recordingNotifier
}

func newCommerceFixture(t *testing.T) *commerceFixture {
	t.Helper()
	db := openServiceTestDB(t)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	catalog := NewProductService(productRepo, 0)
	notifier := &recordingNotifier{}
	orders := NewOrderService(orderRepo, productRepo, notifier)
	return &commerceFixture{
		db:       db,
		catalog:  catalog,
		cart:     NewCartService(cartRepo, catalog),
		orders:   orders,
		checkout: NewCheckoutService(cartRepo, orderRepo, orders),
		reviews:  NewReviewService(reviewRepo, catalog),
		notifier: notifier,
	}
}

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time failed: %v", err)
	}
	return parsed
}
