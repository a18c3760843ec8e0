package i18n

import "github.com/shopease-next/internal/constants"

var messages = map[string]map[string]string{
	constants.LocaleEnUS: {
		"error.bad_request":               "Invalid request",
		"error.unauthorized":              "Please sign in first",
		"error.forbidden":                 "You do not have permission to perform this action",
		"error.token_invalid":             "Session expired, please sign in again",
		"error.too_many_requests":         "Too many attempts, please try again later",
		"error.internal":                  "Internal server error",
		"error.user_id_invalid":           "Invalid user",
		"error.user_id_type_invalid":      "Invalid user context",
		"error.user_not_found":            "User not found",
		"error.user_disabled":             "This account has been disabled",
		"error.email_invalid":             "Invalid email address",
		"error.name_invalid":              "Name is required",
		"error.email_exists":              "This email is already registered",
		"error.invalid_credentials":       "Incorrect email or password",
		"error.auth_method_mismatch":      "This account uses a different sign-in method",
		"error.federated_login_disabled":  "This sign-in method is not available",
		"error.federated_token_invalid":   "Identity verification failed",
		"error.password_weak":             "Password is too weak",
		"error.password_min_length":       "Password must be at least %d characters",
		"error.password_require_upper":    "Password must contain an uppercase letter",
		"error.password_require_lower":    "Password must contain a lowercase letter",
		"error.password_require_number":   "Password must contain a number",
		"error.password_require_special":  "Password must contain a special character",
		"error.login_failed":              "Sign-in failed",
		"error.register_failed":           "Registration failed",
		"error.password_incorrect":        "Current password is incorrect",
		"error.password_change_failed":    "Failed to change password",
		"error.logout_failed":             "Failed to sign out",
		"error.product_not_found":         "Product not found",
		"error.product_id_invalid":        "Invalid product",
		"error.product_fetch_failed":      "Failed to load products",
		"error.category_fetch_failed":     "Failed to load categories",
		"error.cart_quantity_invalid":     "Quantity must be between 1 and 999",
		"error.cart_item_not_found":       "Cart item not found",
		"error.cart_item_invalid":         "Invalid cart item",
		"error.cart_empty":                "Your cart is empty",
		"error.cart_fetch_failed":         "Failed to load cart",
		"error.cart_update_failed":        "Failed to update cart",
		"error.shipping_address_required": "Shipping address is required",
		"error.order_id_invalid":          "Invalid order",
		"error.order_not_found":           "Order not found",
		"error.order_status_invalid":      "Unknown order status",
		"error.order_transition_invalid":  "Order status cannot be changed this way",
		"error.order_create_failed":       "Failed to create order",
		"error.order_fetch_failed":        "Failed to load orders",
		"error.order_update_failed":       "Failed to update order",
		"error.review_id_invalid":         "Invalid review",
		"error.review_not_found":          "Review not found",
		"error.review_rating_invalid":     "Rating must be between 1 and 5",
		"error.review_save_failed":        "Failed to save review",
		"error.review_fetch_failed":       "Failed to load reviews",
		"error.store_unavailable":         "Service temporarily unavailable",
		"error.request_timeout":           "Request timed out",
		"error.route_not_found":           "Resource not found",
	},
	constants.LocaleZhCN: {
		"error.bad_request":               "请求参数错误",
		"error.unauthorized":              "请先登录",
		"error.forbidden":                 "无权执行该操作",
		"error.token_invalid":             "登录已失效，请重新登录",
		"error.too_many_requests":         "尝试次数过多，请稍后再试",
		"error.internal":                  "服务器内部错误",
		"error.user_id_invalid":           "用户无效",
		"error.user_id_type_invalid":      "用户上下文无效",
		"error.user_not_found":            "用户不存在",
		"error.user_disabled":             "账号已被禁用",
		"error.email_invalid":             "邮箱格式不正确",
		"error.name_invalid":              "请填写姓名",
		"error.email_exists":              "该邮箱已注册",
		"error.invalid_credentials":       "邮箱或密码错误",
		"error.auth_method_mismatch":      "该账号使用其他方式登录",
		"error.federated_login_disabled":  "该登录方式暂不可用",
		"error.federated_token_invalid":   "身份校验失败",
		"error.password_weak":             "密码强度不足",
		"error.password_min_length":       "密码长度至少为 %d 位",
		"error.password_require_upper":    "密码需包含大写字母",
		"error.password_require_lower":    "密码需包含小写字母",
		"error.password_require_number":   "密码需包含数字",
		"error.password_require_special":  "密码需包含特殊字符",
		"error.login_failed":              "登录失败",
		"error.register_failed":           "注册失败",
		"error.password_incorrect":        "当前密码错误",
		"error.password_change_failed":    "修改密码失败",
		"error.logout_failed":             "退出登录失败",
		"error.product_not_found":         "商品不存在",
		"error.product_id_invalid":        "商品无效",
		"error.product_fetch_failed":      "获取商品失败",
		"error.category_fetch_failed":     "获取分类失败",
		"error.cart_quantity_invalid":     "数量需在 1 到 999 之间",
		"error.cart_item_not_found":       "购物车项不存在",
		"error.cart_item_invalid":         "购物车项无效",
		"error.cart_empty":                "购物车为空",
		"error.cart_fetch_failed":         "获取购物车失败",
		"error.cart_update_failed":        "更新购物车失败",
		"error.shipping_address_required": "请填写收货地址",
		"error.order_id_invalid":          "订单无效",
		"error.order_not_found":           "订单不存在",
		"error.order_status_invalid":      "未知的订单状态",
		"error.order_transition_invalid":  "当前订单状态不允许该操作",
		"error.order_create_failed":       "创建订单失败",
		"error.order_fetch_failed":        "获取订单失败",
		"error.order_update_failed":       "更新订单失败",
		"error.review_id_invalid":         "评价无效",
		"error.review_not_found":          "评价不存在",
		"error.review_rating_invalid":     "评分需在 1 到 5 之间",
		"error.review_save_failed":        "保存评价失败",
		"error.review_fetch_failed":       "获取评价失败",
		"error.store_unavailable":         "服务暂时不可用",
		"error.request_timeout":           "请求超时",
		"error.route_not_found":           "资源不存在",
	},
}
