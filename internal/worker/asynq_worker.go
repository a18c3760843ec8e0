package worker

import (
	"context"
	"fmt"

	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/provider"
	"github.com/shopease-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusChanged, c.handleOrderStatusChanged)
}

// handleOrderStatusChanged 写入状态历史并外发订单事件，失败时交由 asynq 重试
func (c *Consumer) handleOrderStatusChanged(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_changed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusChangedPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_changed_unmarshal_failed", "error", err)
		return fmt.Errorf("decode order status payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.OrderID == 0 || payload.ToStatus == "" {
		logger.Debugw("worker_order_status_changed_skip_invalid_payload",
			"order_id", payload.OrderID,
			"to_status", payload.ToStatus,
		)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_status_changed_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderService.HandleStatusChanged(ctx, payload); err != nil {
		logger.Warnw("worker_order_status_changed_failed",
			"order_id", payload.OrderID,
			"order_no", payload.OrderNo,
			"from_status", payload.FromStatus,
			"to_status", payload.ToStatus,
			"error", err,
		)
		return err
	}
	return nil
}
