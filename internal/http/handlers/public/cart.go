package public

import (
	handlershared "github.com/shopease-next/internal/http/handlers/shared"
	"github.com/shopease-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"max=999"`
}

// UpdateCartItemRequest 修改购物车项数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"max=999"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCart(c.Request.Context(), uid)
	if err != nil {
		respondWithMappedError(c, err, storeErrorRules, response.CodeInternal, "error.cart_fetch_failed")
		return
	}
	response.Success(c, cart)
}

// AddCartItem 加入购物车，同一商品累加数量
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	cart, err := h.CartService.AddItem(c.Request.Context(), uid, req.ProductID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// UpdateCartItem 修改购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := handlershared.ParseUintParam(c, "item_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	cart, err := h.CartService.SetItemQuantity(c.Request.Context(), uid, itemID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := handlershared.ParseUintParam(c, "item_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
		return
	}
	cart, err := h.CartService.RemoveItem(c.Request.Context(), uid, itemID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.Clear(c.Request.Context(), uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}
