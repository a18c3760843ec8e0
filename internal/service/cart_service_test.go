package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/models"
)

func TestCartAddItemMergesSameProduct(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	product := createTestProduct(t, f.db, "mug", "10.00", true)

	if _, err := f.cart.AddItem(ctx, 7, product.ID, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	view, err := f.cart.AddItem(ctx, 7, product.ID, 2)
	if err != nil {
		t.Fatalf("add item again failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 merged item, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", view.Items[0].Quantity)
	}
	if view.TotalQuantity != 3 {
		t.Fatalf("expected total quantity 3, got %d", view.TotalQuantity)
	}
	if got := view.Subtotal.StringFixed(2); got != "30.00" {
		t.Fatalf("expected subtotal 30.00, got %s", got)
	}
}

func TestCartAddItemRejectsInvalidInput(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	product := createTestProduct(t, f.db, "pen", "1.50", true)
	inactive := createTestProduct(t, f.db, "old", "3.00", false)

	if _, err := f.cart.AddItem(ctx, 1, product.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := f.cart.AddItem(ctx, 1, product.ID, -2); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for negative quantity, got %v", err)
	}
	if _, err := f.cart.AddItem(ctx, 1, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := f.cart.AddItem(ctx, 1, inactive.ID, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound for inactive product, got %v", err)
	}

	view, err := f.cart.GetCart(ctx, 1)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("rejected adds must not change cart, got %+v", view.Items)
	}
}

func TestCartSetQuantityAndRemove(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	first := createTestProduct(t, f.db, "a", "2.25", true)
	second := createTestProduct(t, f.db, "b", "4.00", true)

	if _, err := f.cart.AddItem(ctx, 3, first.ID, 1); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	view, err := f.cart.AddItem(ctx, 3, second.ID, 1)
	if err != nil {
		t.Fatalf("add second failed: %v", err)
	}
	firstItemID := view.Items[0].ID
	secondItemID := view.Items[1].ID

	view, err = f.cart.SetItemQuantity(ctx, 3, firstItemID, 4)
	if err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if view.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", view.Items[0].Quantity)
	}
	if got := view.Subtotal.StringFixed(2); got != "13.00" {
		t.Fatalf("expected subtotal 13.00, got %s", got)
	}

	if _, err := f.cart.SetItemQuantity(ctx, 3, firstItemID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := f.cart.SetItemQuantity(ctx, 3, 9999, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
	if _, err := f.cart.SetItemQuantity(ctx, 4, firstItemID, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("another user's item must be not found, got %v", err)
	}

	view, err = f.cart.RemoveItem(ctx, 3, secondItemID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].ProductID != first.ID {
		t.Fatalf("unexpected items after remove: %+v", view.Items)
	}
	if _, err := f.cart.RemoveItem(ctx, 3, secondItemID); err != nil {
		t.Fatalf("removing an absent item should succeed, got %v", err)
	}

	view, err = f.cart.Clear(ctx, 3)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(view.Items) != 0 || !view.Subtotal.IsZero() {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func TestCartViewMarksUnavailableProducts(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	kept := createTestProduct(t, f.db, "kept", "5.00", true)
	dropped := createTestProduct(t, f.db, "dropped", "8.00", true)

	if _, err := f.cart.AddItem(ctx, 9, kept.ID, 2); err != nil {
		t.Fatalf("add kept failed: %v", err)
	}
	if _, err := f.cart.AddItem(ctx, 9, dropped.ID, 1); err != nil {
		t.Fatalf("add dropped failed: %v", err)
	}
	if err := f.db.Model(dropped).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	view, err := f.cart.GetCart(ctx, 9)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(view.Items))
	}
	if !view.Items[0].Available || view.Items[1].Available {
		t.Fatalf("unexpected availability: %+v", view.Items)
	}
	if got := view.Subtotal.StringFixed(2); got != "10.00" {
		t.Fatalf("expected subtotal 10.00, got %s", got)
	}
}

func TestCartQuantityStaysWithinLimit(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()
	product := createTestProduct(t, f.db, "bolt", "0.10", true)

	if _, err := f.cart.AddItem(ctx, 11, product.ID, math.MaxInt); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for huge quantity, got %v", err)
	}
	view, err := f.cart.AddItem(ctx, 11, product.ID, constants.MaxItemQuantity)
	if err != nil {
		t.Fatalf("add up to limit failed: %v", err)
	}
	itemID := view.Items[0].ID
	if _, err := f.cart.AddItem(ctx, 11, product.ID, 1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity past the limit, got %v", err)
	}
	if _, err := f.cart.SetItemQuantity(ctx, 11, itemID, constants.MaxItemQuantity+1); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity on set past the limit, got %v", err)
	}

	view, err = f.cart.GetCart(ctx, 11)
	if err != nil {
		t.Fatalf("cart must stay readable: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != constants.MaxItemQuantity {
		t.Fatalf("unexpected cart after refused adds: %+v", view.Items)
	}
	if _, err := f.cart.RemoveItem(ctx, 11, itemID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
}

func TestCartRemoveItemWithoutCart(t *testing.T) {
	f := newCommerceFixture(t)
	ctx := context.Background()

	view, err := f.cart.RemoveItem(ctx, 55, 1)
	if err != nil {
		t.Fatalf("remove on missing cart should succeed, got %v", err)
	}
	if view.UserID != 55 || len(view.Items) != 0 || !view.Subtotal.IsZero() {
		t.Fatalf("expected empty view, got %+v", view)
	}
	var count int64
	if err := f.db.Model(&models.Cart{}).Where("user_id = ?", 55).Count(&count).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("remove must not create a cart, got %d rows", count)
	}
}
