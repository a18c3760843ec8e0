package admin

import "github.com/shopease-next/internal/provider"

// Handler 管理端接口处理器入口
// 路由层已完成 JWT 与 RBAC 校验
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
