package service

import (
	"errors"
	"math"
	"testing"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/models"

	"github.com/shopspring/decimal"
)

func testProduct(id uint, name, price string) *models.Product {
	return &models.Product{
		ID:       id,
		Name:     name,
		Price:    models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		IsActive: true,
	}
}

func TestBuildOrderSnapshotsPricesAndTotals(t *testing.T) {
	products := map[uint]*models.Product{
		1: testProduct(1, "Widget", "10.00"),
		2: testProduct(2, "Gadget", "0.10"),
	}
	lines := []OrderLine{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
		{ProductID: 1, Quantity: 1},
	}
	order, err := BuildOrder(5, lines, products, "  221B Baker Street ")
	if err != nil {
		t.Fatalf("build order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.ShippingAddress != "221B Baker Street" {
		t.Fatalf("unexpected address: %q", order.ShippingAddress)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected duplicate lines merged into 2 items, got %d", len(order.Items))
	}
	if order.Items[0].Quantity != 3 || order.Items[0].ProductName != "Widget" {
		t.Fatalf("unexpected first item: %+v", order.Items[0])
	}
	if got := order.Items[1].TotalPrice.StringFixed(2); got != "0.30" {
		t.Fatalf("expected line total 0.30, got %s", got)
	}
	if got := order.TotalAmount.StringFixed(2); got != "30.30" {
		t.Fatalf("expected total 30.30, got %s", got)
	}

	products[1].Price = models.NewMoneyFromDecimal(decimal.NewFromInt(99))
	if got := order.Items[0].UnitPrice.StringFixed(2); got != "10.00" {
		t.Fatalf("order item price must be a snapshot, got %s", got)
	}
}

func TestBuildOrderRejections(t *testing.T) {
	products := map[uint]*models.Product{1: testProduct(1, "Widget", "10.00")}
	cases := []struct {
		name    string
		lines   []OrderLine
		address string
		want    error
	}{
		{name: "empty", lines: nil, address: "x", want: ErrEmptyCart},
		{name: "no address", lines: []OrderLine{{ProductID: 1, Quantity: 1}}, address: "   ", want: ErrShippingAddressRequired},
		{name: "zero quantity", lines: []OrderLine{{ProductID: 1, Quantity: 0}}, address: "x", want: ErrInvalidQuantity},
		{name: "unknown product", lines: []OrderLine{{ProductID: 2, Quantity: 1}}, address: "x", want: ErrProductNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order, err := BuildOrder(1, tc.lines, products, tc.address)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if order != nil {
				t.Fatalf("expected nil order on error")
			}
		})
	}
}

func TestGenerateOrderNoFormat(t *testing.T) {
	no := generateOrderNo(mustParseTime(t, "2026-03-04T05:06:07Z"))
	if len(no) != 2+14+6 {
		t.Fatalf("unexpected order no length: %s", no)
	}
	if no[:16] != "SE20260304050607" {
		t.Fatalf("unexpected order no prefix: %s", no)
	}
}

func TestBuildOrderBoundsMergedQuantity(t *testing.T) {
	products := map[uint]*models.Product{1: testProduct(1, "Widget", "10.00")}

	cases := []struct {
		name  string
		lines []OrderLine
	}{
		{"overflowing duplicates", []OrderLine{{ProductID: 1, Quantity: math.MaxInt}, {ProductID: 1, Quantity: math.MaxInt}}},
		{"single line over limit", []OrderLine{{ProductID: 1, Quantity: constants.MaxItemQuantity + 1}}},
		{"merged over limit", []OrderLine{{ProductID: 1, Quantity: constants.MaxItemQuantity}, {ProductID: 1, Quantity: 1}}},
	}
	for _, tc := range cases {
		if _, err := BuildOrder(1, tc.lines, products, "addr"); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("%s: expected ErrInvalidQuantity, got %v", tc.name, err)
		}
	}

	order, err := BuildOrder(1, []OrderLine{{ProductID: 1, Quantity: constants.MaxItemQuantity}}, products, "addr")
	if err != nil {
		t.Fatalf("quantity at the limit must be accepted: %v", err)
	}
	if got := order.TotalAmount.StringFixed(2); got != "9990.00" {
		t.Fatalf("expected total 9990.00, got %s", got)
	}
}
