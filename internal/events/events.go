package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopease-next/internal/constants"
)

// OrderEvent 对外发布的订单事件
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	UserID     uint      `json:"user_id"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOrderEvent 根据状态变化构建订单事件，原状态为空视为创建事件
func NewOrderEvent(orderID uint, orderNo string, userID uint, fromStatus, toStatus string, occurredAt time.Time) OrderEvent {
	eventType := constants.OrderEventStatusChanged
	if fromStatus == "" {
		eventType = constants.OrderEventCreated
	}
	return OrderEvent{
		Type:       eventType,
		OrderID:    orderID,
		OrderNo:    orderNo,
		UserID:     userID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		OccurredAt: occurredAt.UTC(),
	}
}

// RoutingKey 事件路由键，例如 order.status_changed.shipped
func (e OrderEvent) RoutingKey() string {
	if e.ToStatus == "" {
		return e.Type
	}
	return e.Type + "." + e.ToStatus
}

// Encode 序列化事件
func (e OrderEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher 订单事件发布接口
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
	Close() error
}

// NopPublisher 未启用外发时使用
type NopPublisher struct{}

// PublishOrderEvent 丢弃事件
func (NopPublisher) PublishOrderEvent(context.Context, OrderEvent) error { return nil }

// Close 无操作
func (NopPublisher) Close() error { return nil }
