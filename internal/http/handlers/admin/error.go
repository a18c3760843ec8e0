package admin

import (
	"errors"

	handlershared "github.com/shopease-next/internal/http/handlers/shared"
	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

type mappedHandlerError struct {
	target error
	code   int
	key    string
}

var adminOrderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrInvalidOrderStatus, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, key: "error.order_transition_invalid"},
	{target: service.ErrStoreUnavailable, code: response.CodeUnavailable, key: "error.store_unavailable"},
}

var adminReviewErrorRules = []mappedHandlerError{
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, key: "error.review_not_found"},
	{target: service.ErrStoreUnavailable, code: response.CodeUnavailable, key: "error.store_unavailable"},
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, fallbackKey, err)
}
