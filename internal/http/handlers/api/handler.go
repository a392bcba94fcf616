package api

import "github.com/littlelemon-next/internal/provider"

// Handler 餐厅 API 处理器入口
// 说明：顾客、配送员与经理侧接口统一由该处理器承载，权限由路由层判定。
type Handler struct {
	*provider.Container
}

// New 创建 API 处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
