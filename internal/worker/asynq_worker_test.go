package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/provider"
	"github.com/shopease-next/internal/queue"
	"github.com/shopease-next/internal/repository"
	"github.com/shopease-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.OrderStatusLog{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	orderRepo := repository.NewOrderRepository(db)
	orders := service.NewOrderService(orderRepo, repository.NewProductRepository(db), nil)
	return NewConsumer(&provider.Container{OrderService: orders}), db
}

func TestHandleOrderStatusChangedRecordsHistoryOnce(t *testing.T) {
	consumer, db := setupWorkerTest(t)
	task, err := queue.NewOrderStatusChangedTask(queue.OrderStatusChangedPayload{
		OrderID:    7,
		OrderNo:    "SE20260101000000123456",
		UserID:     3,
		FromStatus: constants.OrderStatusPending,
		ToStatus:   constants.OrderStatusProcessing,
		ChangedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := consumer.handleOrderStatusChanged(context.Background(), task); err != nil {
			t.Fatalf("handle task #%d failed: %v", i+1, err)
		}
	}

	var count int64
	if err := db.Model(&models.OrderStatusLog{}).Where("order_id = ?", 7).Count(&count).Error; err != nil {
		t.Fatalf("count logs failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("redelivered task must not duplicate history, got %d rows", count)
	}
}

func TestHandleOrderStatusChangedInvalidPayload(t *testing.T) {
	consumer, _ := setupWorkerTest(t)

	err := consumer.handleOrderStatusChanged(context.Background(), asynq.NewTask(queue.TaskOrderStatusChanged, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}

	empty := asynq.NewTask(queue.TaskOrderStatusChanged, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderStatusChanged(context.Background(), empty); err != nil {
		t.Fatalf("payload without order id should be dropped, got %v", err)
	}
}

func TestNewServiceRequiresQueue(t *testing.T) {
	if _, err := NewService(nil, &Consumer{}); err == nil {
		t.Fatalf("expected error when queue config is missing")
	}
}

func TestServiceLifecycleGuards(t *testing.T) {
	var svc *Service
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop on nil service: %v", err)
	}
	if err := (&Service{}).Start(context.Background()); err == nil {
		t.Fatalf("expected error when starting an uninitialized worker")
	}
}
