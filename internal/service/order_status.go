package service

import (
	"strings"

	"github.com/shopease-next/internal/constants"
)

// orderStatusTransitions 订单状态流转图
// delivered 与 cancelled 为终态；不允许原地流转
var orderStatusTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

// orderStatusOrder 状态展示顺序
var orderStatusOrder = []string{
	constants.OrderStatusPending,
	constants.OrderStatusProcessing,
	constants.OrderStatusShipped,
	constants.OrderStatusDelivered,
	constants.OrderStatusCancelled,
}

// NormalizeOrderStatus 统一状态字符串格式
func NormalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// IsKnownOrderStatus 判断是否为合法订单状态
func IsKnownOrderStatus(status string) bool {
	_, ok := orderStatusTransitions[status]
	return ok
}

// CanTransition 判断订单状态能否从 from 流转到 to
func CanTransition(from, to string) bool {
	nexts, ok := orderStatusTransitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}

// IsTerminalOrderStatus 判断是否为终态
func IsTerminalOrderStatus(status string) bool {
	nexts, ok := orderStatusTransitions[status]
	return ok && len(nexts) == 0
}

// NextStatuses 返回当前状态可流转的目标状态
func NextStatuses(from string) []string {
	nexts := orderStatusTransitions[from]
	result := make([]string, 0, len(nexts))
	for _, status := range orderStatusOrder {
		if nexts[status] {
			result = append(result, status)
		}
	}
	return result
}
