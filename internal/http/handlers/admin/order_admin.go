package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/shopease-next/internal/http/handlers/shared"
	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminOrderDetail 管理端订单详情返回
type AdminOrderDetail struct {
	models.Order
	UserEmail    string   `json:"user_email,omitempty"`
	UserName     string   `json:"user_name,omitempty"`
	NextStatuses []string `json:"next_statuses"`
}

// AdminUpdateOrderStatusRequest 管理端更新订单状态请求
type AdminUpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			userID = uint(parsed)
		}
	}

	orders, total, err := h.OrderService.ListOrdersForAdmin(c.Request.Context(), repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondWithMappedError(c, err, adminOrderErrorRules, "error.order_fetch_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.order_id_invalid", nil)
		return
	}
	order, err := h.OrderService.GetOrderForAdmin(c.Request.Context(), orderID)
	if err != nil {
		respondWithMappedError(c, err, adminOrderErrorRules, "error.order_fetch_failed")
		return
	}
	detail := AdminOrderDetail{
		Order:        *order,
		NextStatuses: service.NextStatuses(order.Status),
	}
	if user, err := h.UserAuthService.GetUserByID(c.Request.Context(), order.UserID); err == nil {
		detail.UserEmail = user.Email
		detail.UserName = user.Name
	}
	response.Success(c, detail)
}

// AdminUpdateOrderStatus 管理端更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.order_id_invalid", nil)
		return
	}
	var req AdminUpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.TransitionStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		respondWithMappedError(c, err, adminOrderErrorRules, "error.order_update_failed")
		return
	}
	handlershared.RequestLog(c).Infow("admin_order_status_updated",
		"operator_id", operatorID,
		"order_id", order.ID,
		"status", order.Status,
	)
	response.Success(c, order)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
