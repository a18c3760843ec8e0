package admin

import (
	handlershared "github.com/shopease-next/internal/http/handlers/shared"
	"github.com/shopease-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AdminDeleteReview 管理端删除评价
func (h *Handler) AdminDeleteReview(c *gin.Context) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	reviewID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.review_id_invalid", nil)
		return
	}
	if err := h.ReviewService.DeleteReview(c.Request.Context(), reviewID); err != nil {
		respondWithMappedError(c, err, adminReviewErrorRules, "error.review_save_failed")
		return
	}
	handlershared.RequestLog(c).Infow("admin_review_deleted", "operator_id", operatorID, "review_id", reviewID)
	response.Success(c, gin.H{"deleted": true})
}
