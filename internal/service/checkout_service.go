package service

import (
	"context"

	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"

	"gorm.io/gorm"
)

// CheckoutService 购物车结算：读取购物车、生成订单、清空购物车在同一事务内完成
type CheckoutService struct {
	cartRepo     repository.CartRepository
	orderRepo    repository.OrderRepository
	orderService *OrderService
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(cartRepo repository.CartRepository, orderRepo repository.OrderRepository, orderService *OrderService) *CheckoutService {
	return &CheckoutService{
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		orderService: orderService,
	}
}

// Checkout 将用户购物车转换为订单
// 任一步骤失败时订单不会写入，购物车保持不变
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, shippingAddress string) (*models.Order, error) {
	var order *models.Order
	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		cart, err := cartRepo.GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return ErrEmptyCart
		}
		lines := make([]OrderLine, 0, len(cart.Items))
		for _, item := range cart.Items {
			lines = append(lines, OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
		}
		created, err := s.orderService.placeOrder(ctx, tx, userID, lines, shippingAddress)
		if err != nil {
			return err
		}
		if err := cartRepo.ClearItems(ctx, cart.ID); err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	logger.FromContext(ctx).Infow("cart_checked_out", "user_id", userID, "order_id", order.ID, "order_no", order.OrderNo)
	s.orderService.notifyStatusChanged(ctx, order, "")
	return order, nil
}
