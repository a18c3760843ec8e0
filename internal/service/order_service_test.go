package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/events"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
)

func TestCheckoutBuildsPendingOrderAndClearsCart(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	product := createTestProduct(t, f.db, "widget", "10.00", true)

	if _, err := f.cart.AddItem(ctx, 11, product.ID, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	order, err := f.checkout.Checkout(ctx, 11, "1 Main St")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if got := order.TotalAmount.StringFixed(2); got != "20.00" {
		t.Fatalf("expected total 20.00, got %s", got)
	}
	if !strings.HasPrefix(order.OrderNo, "SE") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}

	view, err := f.cart.GetCart(ctx, 11)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("cart must be cleared after checkout, got %+v", view.Items)
	}

	payloads := f.notifier.snapshot()
	if len(payloads) != 1 || payloads[0].FromStatus != "" || payloads[0].ToStatus != constants.OrderStatusPending {
		t.Fatalf("unexpected notifications: %+v", payloads)
	}
}

func TestCheckoutFailureLeavesCartUntouched(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	product := createTestProduct(t, f.db, "lamp", "15.00", true)

	if _, err := f.checkout.Checkout(ctx, 12, "addr"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	if _, err := f.cart.AddItem(ctx, 12, product.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if _, err := f.checkout.Checkout(ctx, 12, "  "); !errors.Is(err, ErrShippingAddressRequired) {
		t.Fatalf("expected ErrShippingAddressRequired, got %v", err)
	}

	if err := f.db.Model(product).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := f.checkout.Checkout(ctx, 12, "addr"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	var count int64
	if err := f.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("no order should be written, got %d", count)
	}
	view, err := f.cart.GetCart(ctx, 12)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 1 {
		t.Fatalf("cart must be unchanged, got %+v", view.Items)
	}
	if len(f.notifier.snapshot()) != 0 {
		t.Fatalf("failed checkout must not notify")
	}
}

func TestCreateOrderDirect(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	a := createTestProduct(t, f.db, "a", "19.99", true)
	b := createTestProduct(t, f.db, "b", "0.01", true)

	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{
		UserID:          21,
		Items:           []OrderLine{{ProductID: a.ID, Quantity: 3}, {ProductID: b.ID, Quantity: 1}},
		ShippingAddress: "Somewhere",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if got := order.TotalAmount.StringFixed(2); got != "59.98" {
		t.Fatalf("expected total 59.98, got %s", got)
	}

	stored, err := f.orders.GetOrderByUser(ctx, 21, order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(stored.Items) != 2 || stored.Items[0].ProductName != a.Name {
		t.Fatalf("unexpected stored items: %+v", stored.Items)
	}
	if _, err := f.orders.GetOrderByUser(ctx, 22, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user must not see order, got %v", err)
	}
}

func TestCreateOrderRejectsOverflowingQuantity(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	product := createTestProduct(t, f.db, "coin", "10.00", true)

	_, err := f.orders.CreateOrder(ctx, CreateOrderInput{
		UserID:          23,
		Items:           []OrderLine{{ProductID: product.ID, Quantity: math.MaxInt}, {ProductID: product.ID, Quantity: math.MaxInt}},
		ShippingAddress: "addr",
	})
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	var count int64
	if err := f.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("no order should be written, got %d", count)
	}
}

func TestTransitionStatusFollowsLifecycle(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	product := createTestProduct(t, f.db, "box", "5.00", true)
	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{
		UserID:          31,
		Items:           []OrderLine{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "addr",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := f.orders.TransitionStatus(ctx, order.ID, constants.OrderStatusShipped); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("pending -> shipped must fail, got %v", err)
	}
	stored, _ := f.orders.GetOrderForAdmin(ctx, order.ID)
	if stored.Status != constants.OrderStatusPending {
		t.Fatalf("failed transition must not change status, got %s", stored.Status)
	}

	if _, err := f.orders.TransitionStatus(ctx, order.ID, "Processing"); err != nil {
		t.Fatalf("pending -> processing failed: %v", err)
	}
	updated, err := f.orders.TransitionStatus(ctx, order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("processing -> shipped failed: %v", err)
	}
	if updated.Status != constants.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", updated.Status)
	}

	if _, err := f.orders.TransitionStatus(ctx, order.ID, "lost"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}
	if _, err := f.orders.TransitionStatus(ctx, 99999, constants.OrderStatusShipped); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	if _, err := f.orders.TransitionStatus(ctx, order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("shipped -> cancelled failed: %v", err)
	}
	if _, err := f.orders.TransitionStatus(ctx, order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancelled -> delivered must fail, got %v", err)
	}
	stored, _ = f.orders.GetOrderForAdmin(ctx, order.ID)
	if stored.Status != constants.OrderStatusCancelled {
		t.Fatalf("cancelled order must stay cancelled, got %s", stored.Status)
	}

	payloads := f.notifier.snapshot()
	if len(payloads) != 4 {
		t.Fatalf("expected 4 notifications, got %d", len(payloads))
	}
	if payloads[2].FromStatus != constants.OrderStatusProcessing || payloads[2].ToStatus != constants.OrderStatusShipped {
		t.Fatalf("unexpected shipped notification: %+v", payloads[2])
	}
	if payloads[3].ToStatus != constants.OrderStatusCancelled {
		t.Fatalf("unexpected last notification: %+v", payloads[3])
	}
}

func TestTransitionStatusStaleReadLoses(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	product := createTestProduct(t, f.db, "race", "1.00", true)
	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{
		UserID:          41,
		Items:           []OrderLine{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "addr",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	stale, err := f.orders.GetOrderForAdmin(ctx, order.ID)
	if err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if _, err := f.orders.TransitionStatus(ctx, order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := f.orders.applyTransition(ctx, stale, constants.OrderStatusProcessing); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("stale transition must lose, got %v", err)
	}
	current, _ := f.orders.GetOrderForAdmin(ctx, order.ID)
	if current.Status != constants.OrderStatusCancelled || current.CanceledAt == nil {
		t.Fatalf("unexpected final order: status=%s canceled_at=%v", current.Status, current.CanceledAt)
	}
}

func TestCancelOrderByOwner(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	product := createTestProduct(t, f.db, "cup", "3.00", true)
	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{
		UserID:          51,
		Items:           []OrderLine{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "addr",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := f.orders.CancelOrder(ctx, 52, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("non-owner cancel must be not found, got %v", err)
	}
	cancelled, err := f.orders.CancelOrder(ctx, 51, order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if _, err := f.orders.CancelOrder(ctx, 51, order.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second cancel must fail, got %v", err)
	}
}

func TestListOrdersAndHistory(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	product := createTestProduct(t, f.db, "tea", "2.00", true)
	var last *models.Order
	for i := 0; i < 3; i++ {
		order, err := f.orders.CreateOrder(ctx, CreateOrderInput{
			UserID:          61,
			Items:           []OrderLine{{ProductID: product.ID, Quantity: i + 1}},
			ShippingAddress: "addr",
		})
		if err != nil {
			t.Fatalf("create order failed: %v", err)
		}
		last = order
	}
	if _, err := f.orders.TransitionStatus(ctx, last.ID, constants.OrderStatusProcessing); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	orders, total, err := f.orders.ListOrdersByUser(ctx, repository.OrderListFilter{UserID: 61, Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(orders) != 2 || orders[0].ID != last.ID {
		t.Fatalf("unexpected list result: total=%d len=%d", total, len(orders))
	}
	processing, total, err := f.orders.ListOrdersForAdmin(ctx, repository.OrderListFilter{Status: "PROCESSING"})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if total != 1 || processing[0].ID != last.ID {
		t.Fatalf("unexpected admin filter result: %+v", processing)
	}
	if _, _, err := f.orders.ListOrdersForAdmin(ctx, repository.OrderListFilter{Status: "bogus"}); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}

	for _, payload := range f.notifier.snapshot() {
		if payload.OrderID != last.ID {
			continue
		}
		if _, err := f.orders.RecordStatusChange(ctx, payload); err != nil {
			t.Fatalf("record status change failed: %v", err)
		}
		written, err := f.orders.RecordStatusChange(ctx, payload)
		if err != nil {
			t.Fatalf("replay status change failed: %v", err)
		}
		if written {
			t.Fatalf("replayed status change must not be written twice")
		}
	}
	history, err := f.orders.ListStatusHistory(ctx, 61, last.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(history))
	}
	if history[0].ToStatus != constants.OrderStatusPending || history[1].ToStatus != constants.OrderStatusProcessing {
		t.Fatalf("unexpected history: %+v", history)
	}
	if _, err := f.orders.ListStatusHistory(ctx, 62, last.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user history must be not found, got %v", err)
	}
}

func TestNotifierFailureDoesNotFailTransition(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	f.notifier.err = errors.New("redis down")
	product := createTestProduct(t, f.db, "nb", "7.00", true)
	order, err := f.orders.CreateOrder(ctx, CreateOrderInput{
		UserID:          71,
		Items:           []OrderLine{{ProductID: product.ID, Quantity: 1}},
		ShippingAddress: "addr",
	})
	if err != nil {
		t.Fatalf("create order must succeed when enqueue fails: %v", err)
	}
	if _, err := f.orders.TransitionStatus(ctx, order.ID, constants.OrderStatusProcessing); err != nil {
		t.Fatalf("transition must succeed when enqueue fails: %v", err)
	}
}

type recordingPublisher struct {
	events []events.OrderEvent
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event events.OrderEvent) error {
	p.events = append(p.events, event)
	return nil
}

func TestInlineStatusHandlingWithoutQueue(t *testing.T) {
	db := openServiceTestDB(t)
	productRepo := repository.NewProductRepository(db)
	orders := NewOrderService(repository.NewOrderRepository(db), productRepo, nil)
	publisher := &recordingPublisher{}
	orders.SetEventPublisher(publisher)
	ctx := context.Background()
	product := createTestProduct(t, db, "inline", "4.50", true)

	order, err := orders.CreateOrder(ctx, CreateOrderInput{
		UserID:          81,
		Items:           []OrderLine{{ProductID: product.ID, Quantity: 2}},
		ShippingAddress: "addr",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := orders.TransitionStatus(ctx, order.ID, constants.OrderStatusProcessing); err != nil {
		t.Fatalf("transition failed: %v", err)
	}

	history, err := orders.ListStatusHistory(ctx, 81, order.ID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 2 || history[0].FromStatus != "" || history[1].FromStatus != constants.OrderStatusPending {
		t.Fatalf("unexpected history: %+v", history)
	}
	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(publisher.events))
	}
	if publisher.events[0].Type != constants.OrderEventCreated {
		t.Fatalf("first event must be created, got %s", publisher.events[0].Type)
	}
	if key := publisher.events[1].RoutingKey(); key != "order.status_changed.processing" {
		t.Fatalf("unexpected routing key: %s", key)
	}
}
