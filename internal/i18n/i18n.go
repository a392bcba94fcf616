package i18n

import (
	"fmt"
	"strings"

	"github.com/littlelemon-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// 支持的站点语言
const (
	LocaleZH = constants.LocaleZhCN
	LocaleEN = constants.LocaleEnUS
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleZH

var catalogs = map[string]map[string]string{
	LocaleZH: {
		"error.bad_request":      "请求参数无效",
		"error.unauthorized":     "请先登录",
		"error.forbidden":        "无权限执行该操作",
		"error.not_found":        "资源不存在",
		"error.internal":         "服务器内部错误",
		"error.too_many":         "请求过于频繁，请稍后再试",
		"error.context_invalid":  "上下文数据无效",
		"error.context_missing":  "上下文数据缺失",
		"error.auth_header_missing": "缺少认证信息",
		"error.auth_header_invalid": "认证信息格式无效",
		"error.token_invalid":       "登录凭证无效或已过期",
		"error.token_revoked":       "登录凭证已失效，请重新登录",
		"error.jwt_secret_missing":  "服务端签名密钥未配置",
		"error.user_disabled":       "账号已被禁用",
		"error.login_invalid":       "用户名或密码错误",
		"error.login_too_many":      "登录尝试过多，请在 %d 秒后重试",
		"error.rate_limited":        "请求过于频繁，请在 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务暂不可用，请稍后再试",
		"error.login_failed":        "登录失败，请稍后再试",
		"error.register_failed":     "注册失败，请稍后再试",
		"error.username_exists":     "用户名已存在",
		"error.username_invalid":    "用户名格式无效",
		"error.email_exists":        "邮箱已被注册",
		"error.email_invalid":       "邮箱格式无效",
		"error.password_invalid":    "密码错误",
		"error.weak_password":       "密码强度不足",
		"error.password_min_length":      "密码长度不能少于 %d 位",
		"error.password_require_upper":   "密码需要包含大写字母",
		"error.password_require_lower":   "密码需要包含小写字母",
		"error.password_require_number":  "密码需要包含数字",
		"error.password_require_special": "密码需要包含特殊字符",
		"error.captcha_required":        "需要验证码",
		"error.captcha_invalid":         "验证码错误",
		"error.captcha_unavailable":     "验证码未启用",
		"error.captcha_generate_failed": "验证码生成失败",
		"error.category_not_found":    "分类不存在",
		"error.category_invalid":      "分类参数无效",
		"error.category_in_use":       "分类下仍有菜品，无法删除",
		"error.category_fetch_failed": "分类查询失败",
		"error.category_save_failed":  "分类保存失败",
		"error.slug_exists":           "分类标识已存在",
		"error.menu_item_not_found":    "菜品不存在",
		"error.menu_item_unavailable":  "菜品不存在或已下架",
		"error.menu_item_fetch_failed": "菜品查询失败",
		"error.menu_item_save_failed":  "菜品保存失败",
		"error.price_invalid":          "价格无效",
		"error.cart_invalid":      "购物车参数无效",
		"error.cart_empty":        "购物车为空，无法下单",
		"error.cart_fetch_failed": "购物车查询失败",
		"error.cart_save_failed":  "购物车保存失败",
		"error.order_not_found":      "订单不存在",
		"error.order_create_failed":  "订单创建失败",
		"error.order_fetch_failed":   "订单查询失败",
		"error.order_update_failed":  "订单更新失败",
		"error.order_status_invalid": "订单状态流转无效",
		"error.not_delivery_crew":    "目标用户不是配送员",
		"error.not_assigned_crew":    "仅被指派的配送员可操作该订单",
		"error.role_invalid":         "角色无效",
		"error.group_invalid":        "用户组不存在",
		"error.user_not_found":       "用户不存在",
		"error.profile_update_failed": "资料更新失败",
		"msg.register_success":       "注册成功",
		"msg.login_success":          "登录成功",
		"msg.order_placed":           "下单成功",
		"msg.cart_updated":           "购物车已更新",
		"msg.cart_cleared":           "购物车已清空",
		"msg.password_changed":       "密码已修改，请重新登录",
		"msg.role_assigned":          "角色已分配",
		"msg.role_revoked":           "角色已移除",
		"msg.order_status_updated":   "订单状态已更新",
		"msg.order_assigned":         "订单已指派",
		"msg.item_of_the_day_set":    "今日特选已更新",
	},
	LocaleEN: {
		"error.bad_request":      "invalid request parameters",
		"error.unauthorized":     "login required",
		"error.forbidden":        "permission denied",
		"error.not_found":        "resource not found",
		"error.internal":         "internal server error",
		"error.too_many":         "too many requests, please retry later",
		"error.context_invalid":  "invalid context data",
		"error.context_missing":  "missing context data",
		"error.auth_header_missing": "missing authorization header",
		"error.auth_header_invalid": "invalid authorization header",
		"error.token_invalid":       "invalid or expired token",
		"error.token_revoked":       "token has been revoked, please login again",
		"error.jwt_secret_missing":  "server signing secret not configured",
		"error.user_disabled":       "account disabled",
		"error.login_invalid":       "invalid username or password",
		"error.login_too_many":      "too many login attempts, retry in %d seconds",
		"error.rate_limited":        "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable, please retry later",
		"error.login_failed":        "login failed, please retry later",
		"error.register_failed":     "registration failed, please retry later",
		"error.username_exists":     "username already exists",
		"error.username_invalid":    "invalid username format",
		"error.email_exists":        "email already registered",
		"error.email_invalid":       "invalid email format",
		"error.password_invalid":    "wrong password",
		"error.weak_password":       "password too weak",
		"error.password_min_length":      "password must be at least %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a digit",
		"error.password_require_special": "password must contain a special character",
		"error.captcha_required":        "captcha required",
		"error.captcha_invalid":         "invalid captcha",
		"error.captcha_unavailable":     "captcha not enabled",
		"error.captcha_generate_failed": "failed to generate captcha",
		"error.category_not_found":    "category not found",
		"error.category_invalid":      "invalid category payload",
		"error.category_in_use":       "category still has menu items",
		"error.category_fetch_failed": "failed to fetch categories",
		"error.category_save_failed":  "failed to save category",
		"error.slug_exists":           "category slug already exists",
		"error.menu_item_not_found":    "menu item not found",
		"error.menu_item_unavailable":  "menu item not found or inactive",
		"error.menu_item_fetch_failed": "failed to fetch menu items",
		"error.menu_item_save_failed":  "failed to save menu item",
		"error.price_invalid":          "invalid price",
		"error.cart_invalid":      "invalid cart parameters",
		"error.cart_empty":        "cart is empty",
		"error.cart_fetch_failed": "failed to fetch cart",
		"error.cart_save_failed":  "failed to save cart",
		"error.order_not_found":      "order not found",
		"error.order_create_failed":  "failed to create order",
		"error.order_fetch_failed":   "failed to fetch orders",
		"error.order_update_failed":  "failed to update order",
		"error.order_status_invalid": "invalid order status transition",
		"error.not_delivery_crew":    "target user is not delivery crew",
		"error.not_assigned_crew":    "only the assigned delivery crew can update this order",
		"error.role_invalid":         "invalid role",
		"error.group_invalid":        "unknown user group",
		"error.user_not_found":       "user not found",
		"error.profile_update_failed": "failed to update profile",
		"msg.register_success":       "registered",
		"msg.login_success":          "logged in",
		"msg.order_placed":           "order placed",
		"msg.cart_updated":           "cart updated",
		"msg.cart_cleared":           "cart cleared",
		"msg.password_changed":       "password changed, please login again",
		"msg.role_assigned":          "role assigned",
		"msg.role_revoked":           "role revoked",
		"msg.order_status_updated":   "order status updated",
		"msg.order_assigned":         "order assigned",
		"msg.item_of_the_day_set":    "item of the day updated",
	},
}

// NormalizeLocale 归一化语言标识，未知时回退默认语言
func NormalizeLocale(locale string) string {
	normalized := strings.TrimSpace(locale)
	if normalized == "" {
		return DefaultLocale
	}
	lower := strings.ToLower(normalized)
	switch {
	case strings.HasPrefix(lower, "zh"):
		return LocaleZH
	case strings.HasPrefix(lower, "en"):
		return LocaleEN
	default:
		return DefaultLocale
	}
}

// ResolveLocale 从请求解析语言（query 优先于 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := strings.TrimSpace(c.Query("locale")); locale != "" {
		return NormalizeLocale(locale)
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return DefaultLocale
	}
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		return NormalizeLocale(tag)
	}
	return DefaultLocale
}

// T 翻译指定 key，缺失时回退默认语言，仍缺失时返回 key 本身
func T(locale, key string) string {
	normalized := NormalizeLocale(locale)
	if catalog, ok := catalogs[normalized]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if normalized != DefaultLocale {
		if msg, ok := catalogs[DefaultLocale][key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 翻译并格式化指定 key
func Sprintf(locale, key string, args ...interface{}) string {
	format := T(locale, key)
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
