package queue

import (
	"encoding/json"
	"time"

	"github.com/shopease-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusChanged 订单状态变更任务（含创建）
	TaskOrderStatusChanged = constants.TaskOrderStatusChanged
)

// OrderStatusChangedPayload 订单状态变更任务载荷
// FromStatus 为空表示订单刚创建
type OrderStatusChangedPayload struct {
	OrderID    uint      `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	UserID     uint      `json:"user_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedAt  time.Time `json:"changed_at"`
}

// NewOrderStatusChangedTask 创建订单状态变更任务
func NewOrderStatusChangedTask(payload OrderStatusChangedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusChanged, body), nil
}

// ParseOrderStatusChangedPayload 解析订单状态变更任务载荷
func ParseOrderStatusChangedPayload(task *asynq.Task) (OrderStatusChangedPayload, error) {
	var payload OrderStatusChangedPayload
	if task == nil {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
