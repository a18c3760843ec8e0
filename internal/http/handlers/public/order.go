package public

import (
	"strings"

	handlershared "github.com/shopease-next/internal/http/handlers/shared"
	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/repository"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 订单项请求
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"max=999"`
}

// CreateOrderRequest 直接下单请求
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"dive"`
	ShippingAddress string             `json:"shipping_address"`
}

// CheckoutRequest 购物车结算请求
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

// OrderHistoryResponse 订单状态历史
type OrderHistoryResponse struct {
	OrderID      uint        `json:"order_id"`
	Status       string      `json:"status"`
	NextStatuses []string    `json:"next_statuses"`
	History      interface{} `json:"history"`
}

// CreateOrder 按指定商品直接下单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	lines := make([]service.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	order, err := h.OrderService.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		UserID:          uid,
		Items:           lines,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Success(c, order)
}

// Checkout 购物车结算下单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.CheckoutService.Checkout(c.Request.Context(), uid, req.ShippingAddress)
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}
	response.Success(c, order)
}

// ListOrders 获取订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListOrdersByUser(c.Request.Context(), repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	})
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.order_id_invalid", nil)
		return
	}
	order, err := h.OrderService.GetOrderByUser(c.Request.Context(), uid, orderID)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, order)
}

// GetOrderHistory 获取订单状态历史
func (h *Handler) GetOrderHistory(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.order_id_invalid", nil)
		return
	}
	order, err := h.OrderService.GetOrderByUser(c.Request.Context(), uid, orderID)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	history, err := h.OrderService.ListStatusHistory(c.Request.Context(), uid, orderID)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}
	response.Success(c, OrderHistoryResponse{
		OrderID:      order.ID,
		Status:       order.Status,
		NextStatuses: service.NextStatuses(order.Status),
		History:      history,
	})
}

// CancelOrder 用户取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.order_id_invalid", nil)
		return
	}
	order, err := h.OrderService.CancelOrder(c.Request.Context(), uid, orderID)
	if err != nil {
		respondOrderUpdateError(c, err)
		return
	}
	response.Success(c, order)
}
