package constants

// 订单状态常量（派送中 → 已送达，单向流转）
const (
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
)

// 订单状态的旧版数字编码（兼容历史客户端）
const (
	OrderStatusCodeOutForDelivery = 0
	OrderStatusCodeDelivered      = 1
)

// 用户角色常量（每个用户只持有一个角色）
const (
	RoleCustomer     = "customer"
	RoleDeliveryCrew = "delivery_crew"
	RoleManager      = "manager"
	RoleAdmin        = "admin"
)

// 角色分组展示名（对外接口沿用历史分组名）
const (
	GroupNameManager      = "Manager"
	GroupNameDeliveryCrew = "Delivery Crew"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 登录日志状态常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因常量
const (
	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonCaptchaRequired    = "captcha_required"
	LoginLogFailReasonCaptchaInvalid     = "captcha_invalid"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonInternalError      = "internal_error"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin = "login"
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskOrderStatusNotify = "order:status_notify"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ll"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleZhCN, LocaleEnUS}

// ValidRoles 可被分配的角色集合
var ValidRoles = []string{RoleCustomer, RoleDeliveryCrew, RoleManager, RoleAdmin}

// IsValidRole 判断角色是否合法
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// OrderStatusCode 返回订单状态的旧版数字编码
func OrderStatusCode(status string) int {
	if status == OrderStatusDelivered {
		return OrderStatusCodeDelivered
	}
	return OrderStatusCodeOutForDelivery
}
