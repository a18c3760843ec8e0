package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/events"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/queue"
	"github.com/shopease-next/internal/repository"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// OrderStatusNotifier 订单状态变更通知（由异步队列客户端实现）
type OrderStatusNotifier interface {
	EnqueueOrderStatusChanged(ctx context.Context, payload queue.OrderStatusChangedPayload, opts ...asynq.Option) error
}

// OrderEventPublisher 订单事件外发
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event events.OrderEvent) error
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	notifier    OrderStatusNotifier
	publisher   OrderEventPublisher
	now         func() time.Time
}

// CreateOrderInput 直接下单输入
type CreateOrderInput struct {
	UserID          uint
	Items           []OrderLine
	ShippingAddress string
}

// NewOrderService 创建订单服务
// notifier 为 nil 时状态变更在请求内同步处理
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, notifier OrderStatusNotifier) *OrderService {
	s := &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    notifier,
		publisher:   events.NopPublisher{},
		now:         time.Now,
	}
	if notifier == nil {
		s.notifier = inlineStatusNotifier{orders: s}
	}
	return s
}

// SetEventPublisher 设置订单事件外发通道
func (s *OrderService) SetEventPublisher(publisher OrderEventPublisher) {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	s.publisher = publisher
}

// inlineStatusNotifier 未启用异步队列时直接处理状态变更
type inlineStatusNotifier struct {
	orders *OrderService
}

func (n inlineStatusNotifier) EnqueueOrderStatusChanged(ctx context.Context, payload queue.OrderStatusChangedPayload, _ ...asynq.Option) error {
	return n.orders.HandleStatusChanged(ctx, payload)
}

// CreateOrder 按指定商品直接下单
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	var order *models.Order
	err := s.orderRepo.Transaction(ctx, func(tx *gorm.DB) error {
		created, err := s.placeOrder(ctx, tx, input.UserID, input.Items, input.ShippingAddress)
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	s.notifyStatusChanged(ctx, order, "")
	return order, nil
}

// placeOrder 在事务内解析商品价格、构建并写入订单
// 价格直接读取数据库，不使用目录缓存
func (s *OrderService) placeOrder(ctx context.Context, tx *gorm.DB, userID uint, lines []OrderLine, shippingAddress string) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	products, err := s.productRepo.WithTx(tx).ListByIDs(ctx, orderLineProductIDs(lines))
	if err != nil {
		return nil, err
	}
	snapshot := make(map[uint]*models.Product, len(products))
	for i := range products {
		if products[i].IsActive {
			snapshot[products[i].ID] = &products[i]
		}
	}

	order, err := BuildOrder(userID, lines, snapshot, shippingAddress)
	if err != nil {
		return nil, err
	}
	order.OrderNo = generateOrderNo(s.now())
	items := order.Items
	order.Items = nil
	if err := s.orderRepo.WithTx(tx).Create(ctx, order, items); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", userID,
		"total_amount", order.TotalAmount.StringFixed(2),
	)
	return order, nil
}

// TransitionStatus 管理端更新订单状态
func (s *OrderService) TransitionStatus(ctx context.Context, orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.applyTransition(ctx, order, targetStatus)
}

// CancelOrder 用户取消自己的订单
func (s *OrderService) CancelOrder(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.applyTransition(ctx, order, constants.OrderStatusCancelled)
}

// applyTransition 校验并执行状态流转
// 更新以当前状态为条件，并发流转中落败的一方返回 ErrInvalidTransition
func (s *OrderService) applyTransition(ctx context.Context, order *models.Order, targetStatus string) (*models.Order, error) {
	target := NormalizeOrderStatus(targetStatus)
	if !IsKnownOrderStatus(target) {
		return nil, ErrInvalidOrderStatus
	}
	from := order.Status
	if !CanTransition(from, target) {
		logger.FromContext(ctx).Warnw("order_transition_rejected",
			"order_id", order.ID,
			"from", from,
			"to", target,
			"terminal", IsTerminalOrderStatus(from),
		)
		return nil, ErrInvalidTransition
	}

	now := s.now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	if target == constants.OrderStatusCancelled {
		updates["canceled_at"] = now
	}
	affected, err := s.orderRepo.UpdateStatusFrom(ctx, order.ID, from, target, updates)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if affected == 0 {
		logger.FromContext(ctx).Warnw("order_status_transition_lost",
			"order_id", order.ID,
			"from_status", from,
			"to_status", target,
		)
		return nil, ErrInvalidTransition
	}

	order.Status = target
	order.UpdatedAt = now
	if target == constants.OrderStatusCancelled {
		order.CanceledAt = &now
	}
	logger.FromContext(ctx).Infow("order_status_changed",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"from_status", from,
		"to_status", target,
	)
	s.notifyStatusChanged(ctx, order, from)
	return order, nil
}

// notifyStatusChanged 投递状态变更任务，失败只记录日志
func (s *OrderService) notifyStatusChanged(ctx context.Context, order *models.Order, fromStatus string) {
	if s.notifier == nil || order == nil {
		return
	}
	changedAt := order.UpdatedAt
	if changedAt.IsZero() {
		changedAt = s.now()
	}
	payload := queue.OrderStatusChangedPayload{
		OrderID:    order.ID,
		OrderNo:    order.OrderNo,
		UserID:     order.UserID,
		FromStatus: fromStatus,
		ToStatus:   order.Status,
		ChangedAt:  changedAt.UTC(),
	}
	if err := s.notifier.EnqueueOrderStatusChanged(ctx, payload); err != nil {
		logger.FromContext(ctx).Warnw("order_status_enqueue_failed",
			"order_id", order.ID,
			"to_status", order.Status,
			"error", err,
		)
	}
}

// HandleStatusChanged 处理状态变更：写入历史并外发事件
// 重复投递时历史不会重复写入，事件仍会再次发送，由下游按 message id 去重
func (s *OrderService) HandleStatusChanged(ctx context.Context, payload queue.OrderStatusChangedPayload) error {
	written, err := s.RecordStatusChange(ctx, payload)
	if err != nil {
		return err
	}
	event := events.NewOrderEvent(payload.OrderID, payload.OrderNo, payload.UserID, payload.FromStatus, payload.ToStatus, payload.ChangedAt)
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.FromContext(ctx).Warnw("order_event_publish_failed",
			"order_id", payload.OrderID,
			"routing_key", event.RoutingKey(),
			"error", err,
		)
		return err
	}
	logger.FromContext(ctx).Debugw("order_status_change_handled",
		"order_id", payload.OrderID,
		"to_status", payload.ToStatus,
		"history_written", written,
	)
	return nil
}

// RecordStatusChange 记录订单状态变更历史
// 同一变更重复投递时不重复写入
func (s *OrderService) RecordStatusChange(ctx context.Context, payload queue.OrderStatusChangedPayload) (bool, error) {
	if payload.OrderID == 0 {
		return false, ErrOrderNotFound
	}
	logs, err := s.orderRepo.ListStatusLogs(ctx, payload.OrderID)
	if err != nil {
		return false, wrapStoreErr(err)
	}
	for _, existing := range logs {
		if existing.FromStatus == payload.FromStatus &&
			existing.ToStatus == payload.ToStatus &&
			existing.ChangedAt.Equal(payload.ChangedAt) {
			return false, nil
		}
	}
	entry := &models.OrderStatusLog{
		OrderID:    payload.OrderID,
		FromStatus: payload.FromStatus,
		ToStatus:   payload.ToStatus,
		ChangedAt:  payload.ChangedAt,
	}
	if err := s.orderRepo.CreateStatusLog(ctx, entry); err != nil {
		return false, wrapStoreErr(err)
	}
	return true, nil
}

// GetOrderByUser 获取用户订单详情
func (s *OrderService) GetOrderByUser(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 获取用户订单列表
func (s *OrderService) ListOrdersByUser(ctx context.Context, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		filter.Status = NormalizeOrderStatus(filter.Status)
		if !IsKnownOrderStatus(filter.Status) {
			return nil, 0, ErrInvalidOrderStatus
		}
	}
	orders, total, err := s.orderRepo.ListByUser(ctx, filter)
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}
	return orders, total, nil
}

// ListOrdersForAdmin 管理端订单列表
func (s *OrderService) ListOrdersForAdmin(ctx context.Context, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		filter.Status = NormalizeOrderStatus(filter.Status)
		if !IsKnownOrderStatus(filter.Status) {
			return nil, 0, ErrInvalidOrderStatus
		}
	}
	filter.OrderNo = strings.TrimSpace(filter.OrderNo)
	orders, total, err := s.orderRepo.ListAdmin(ctx, filter)
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}
	return orders, total, nil
}

// GetOrderForAdmin 管理端订单详情
func (s *OrderService) GetOrderForAdmin(ctx context.Context, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListStatusHistory 获取用户订单的状态变更历史
func (s *OrderService) ListStatusHistory(ctx context.Context, userID, orderID uint) ([]models.OrderStatusLog, error) {
	if _, err := s.GetOrderByUser(ctx, userID, orderID); err != nil {
		return nil, err
	}
	logs, err := s.orderRepo.ListStatusLogs(ctx, orderID)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return logs, nil
}

func generateOrderNo(now time.Time) string {
	return fmt.Sprintf("SE%s%s", now.Format("20060102150405"), randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
