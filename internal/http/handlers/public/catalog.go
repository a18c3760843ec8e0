package public

import (
	"strings"

	handlershared "github.com/shopease-next/internal/http/handlers/shared"
	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	categorySlug := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListPublic(c.Request.Context(), categorySlug, search, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, storeErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	product, err := h.ProductService.GetPublic(c.Request.Context(), productID)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
		}, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, storeErrorRules, response.CodeInternal, "error.category_fetch_failed")
		return
	}
	response.Success(c, categories)
}
