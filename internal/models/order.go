package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（创建后仅状态可变）
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID          uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status          string         `gorm:"index;not null" json:"status"`                              // 订单状态
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 订单总额
	ShippingAddress string         `gorm:"type:varchar(500);not null" json:"shipping_address"`        // 收货地址
	CanceledAt      *time.Time     `gorm:"index" json:"canceled_at"`                                  // 取消时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderStatusLog 订单状态变更记录（由后台任务写入）
type OrderStatusLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID    uint      `gorm:"index;not null" json:"order_id"`                          // 订单ID
	FromStatus string    `gorm:"type:varchar(20);not null;default:''" json:"from_status"` // 原状态（创建时为空）
	ToStatus   string    `gorm:"type:varchar(20);not null" json:"to_status"`              // 新状态
	ChangedAt  time.Time `gorm:"index;not null" json:"changed_at"`                        // 变更时间
	CreatedAt  time.Time `json:"created_at"`                                              // 记录时间
}

// TableName 指定表名
func (OrderStatusLog) TableName() string {
	return "order_status_logs"
}
