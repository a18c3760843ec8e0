package service

import (
	"errors"
	"fmt"
)

// ErrNotFound 资源不存在（订单、评价、购物车项、用户均以此为根）
var ErrNotFound = errors.New("not found")

// 购物车与下单
var (
	ErrInvalidQuantity         = errors.New("quantity must be between 1 and 999")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrProductNotFound         = errors.New("product not found")
	ErrCartItemNotFound        = fmt.Errorf("cart item %w", ErrNotFound)
	ErrShippingAddressRequired = errors.New("shipping address is required")
)

// 订单状态
var (
	ErrOrderNotFound      = fmt.Errorf("order %w", ErrNotFound)
	ErrInvalidOrderStatus = errors.New("unknown order status")
	ErrInvalidTransition  = errors.New("order status transition not allowed")
)

// 评价
var (
	ErrInvalidRating  = errors.New("rating must be an integer between 1 and 5")
	ErrReviewNotFound = fmt.Errorf("review %w", ErrNotFound)
)

// 用户与认证
var (
	ErrUserNotFound           = fmt.Errorf("user %w", ErrNotFound)
	ErrInvalidEmail           = errors.New("invalid email")
	ErrInvalidName            = errors.New("invalid name")
	ErrEmailExists            = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidPassword        = errors.New("current password is incorrect")
	ErrWeakPassword           = errors.New("password does not satisfy policy")
	ErrUserDisabled           = errors.New("user disabled")
	ErrInvalidToken           = errors.New("invalid token")
	ErrFederatedLoginDisabled = errors.New("federated login disabled")
	ErrFederatedTokenInvalid  = errors.New("federated identity token invalid")
	ErrAuthMethodMismatch     = errors.New("account uses a different sign-in method")
)

// ErrStoreUnavailable 存储不可用
var ErrStoreUnavailable = errors.New("store unavailable")

// wrapStoreErr 将持久化层错误统一包装为 ErrStoreUnavailable，业务错误原样返回
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound,
		ErrInvalidQuantity,
		ErrEmptyCart,
		ErrProductNotFound,
		ErrShippingAddressRequired,
		ErrInvalidOrderStatus,
		ErrInvalidTransition,
		ErrInvalidRating,
		ErrStoreUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
