package public

import (
	"strconv"
	"time"

	handlershared "github.com/shopease-next/internal/http/handlers/shared"
	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// UpdateReviewRequest 更新评价请求，未传字段保持不变
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// ReviewAuthorResponse 评价作者的公开信息
type ReviewAuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ReviewResponse 评价返回数据，作者只暴露 ID 与名称
type ReviewResponse struct {
	ID        uint                  `json:"id"`
	ProductID uint                  `json:"product_id"`
	UserID    uint                  `json:"user_id"`
	Rating    int                   `json:"rating"`
	Comment   string                `json:"comment"`
	User      *ReviewAuthorResponse `json:"user,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func toReviewResponse(review *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
	if review.User != nil {
		resp.User = &ReviewAuthorResponse{ID: review.User.ID, Name: review.User.Name}
	}
	return resp
}

// ListReviews 获取评价列表
func (h *Handler) ListReviews(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	filter := repository.ReviewListFilter{Page: page, PageSize: pageSize}
	if raw := c.Query("product_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.ProductID = uint(parsed)
		}
	}
	if raw := c.Query("user_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.UserID = uint(parsed)
		}
	}
	reviews, total, err := h.ReviewService.ListReviews(c.Request.Context(), filter)
	if err != nil {
		respondReviewError(c, err, "error.review_fetch_failed")
		return
	}
	items := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, toReviewResponse(&reviews[i]))
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// GetReview 获取评价详情
func (h *Handler) GetReview(c *gin.Context) {
	reviewID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.review_id_invalid", nil)
		return
	}
	review, err := h.ReviewService.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		respondReviewError(c, err, "error.review_fetch_failed")
		return
	}
	response.Success(c, toReviewResponse(review))
}

// CreateReview 创建评价
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	review, err := h.ReviewService.CreateReview(c.Request.Context(), service.CreateReviewInput{
		ProductID: req.ProductID,
		UserID:    uid,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondReviewError(c, err, "error.review_save_failed")
		return
	}
	response.Success(c, toReviewResponse(review))
}

// UpdateReview 更新评价
func (h *Handler) UpdateReview(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	reviewID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.review_id_invalid", nil)
		return
	}
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	review, err := h.ReviewService.UpdateReview(c.Request.Context(), reviewID, service.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondReviewError(c, err, "error.review_save_failed")
		return
	}
	response.Success(c, toReviewResponse(review))
}

// DeleteReview 删除评价
func (h *Handler) DeleteReview(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}
	reviewID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.review_id_invalid", nil)
		return
	}
	if err := h.ReviewService.DeleteReview(c.Request.Context(), reviewID); err != nil {
		respondReviewError(c, err, "error.review_save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
