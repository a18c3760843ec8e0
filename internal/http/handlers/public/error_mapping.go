package public

import (
	"errors"

	handlershared "github.com/shopease-next/internal/http/handlers/shared"
	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/i18n"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var storeErrorRules = []mappedHandlerError{
	{target: service.ErrStoreUnavailable, code: response.CodeUnavailable, key: "error.store_unavailable"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.cart_quantity_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrShippingAddressRequired, code: response.CodeBadRequest, key: "error.shipping_address_required"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.cart_quantity_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeBadRequest, key: "error.product_not_found"},
}

var orderQueryErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrInvalidOrderStatus, code: response.CodeBadRequest, key: "error.order_status_invalid"},
}

var orderTransitionErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidTransition, code: response.CodeConflict, key: "error.order_transition_invalid"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidRating, code: response.CodeBadRequest, key: "error.review_rating_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, key: "error.review_not_found"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrInvalidName, code: response.CodeBadRequest, key: "error.name_invalid"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.password_incorrect"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
	{target: service.ErrAuthMethodMismatch, code: response.CodeBadRequest, key: "error.auth_method_mismatch"},
	{target: service.ErrFederatedLoginDisabled, code: response.CodeBadRequest, key: "error.federated_login_disabled"},
	{target: service.ErrFederatedTokenInvalid, code: response.CodeUnauthorized, key: "error.federated_token_invalid"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(cartErrorRules, storeErrorRules), response.CodeInternal, "error.cart_update_failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(orderCreateErrorRules, storeErrorRules), response.CodeInternal, "error.order_create_failed")
}

func respondOrderQueryError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(orderQueryErrorRules, storeErrorRules), response.CodeInternal, "error.order_fetch_failed")
}

func respondOrderUpdateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(orderQueryErrorRules, orderTransitionErrorRules, storeErrorRules), response.CodeInternal, "error.order_update_failed")
}

func respondReviewError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(reviewErrorRules, storeErrorRules), response.CodeInternal, fallbackKey)
}

// respondAuthError 密码策略错误需要带参数的文案，单独处理
func respondAuthError(c *gin.Context, err error, fallbackKey string) {
	var policyErr service.PasswordPolicyError
	if errors.As(err, &policyErr) {
		locale := i18n.ResolveLocale(c)
		msg := i18n.Sprintf(locale, policyErr.Key(), policyErr.Args()...)
		handlershared.RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	if errors.Is(err, service.ErrWeakPassword) {
		respondError(c, response.CodeBadRequest, "error.password_weak", nil)
		return
	}
	respondWithMappedError(c, err, concatMappedHandlerErrors(authErrorRules, storeErrorRules), response.CodeInternal, fallbackKey)
}
