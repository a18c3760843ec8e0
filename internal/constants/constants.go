package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 单个商品的购物车/订单数量上限
const MaxItemQuantity = 999

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 登录方式常量
const (
	AuthProviderLocal  = "local"
	AuthProviderGoogle = "google"
)

// 队列常量
const (
	QueueDefault           = "default"
	TaskOrderStatusChanged = "order:status_changed"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "se"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleZhCN}

// 订单事件类型常量
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
)
