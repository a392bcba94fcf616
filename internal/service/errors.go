package service

import "errors"

// 业务哨兵错误，handler 层统一映射为响应码
var (
	ErrNotFound             = errors.New("资源不存在")
	ErrPermissionDenied     = errors.New("无权限执行该操作")
	ErrInvalidCartItem      = errors.New("购物车参数无效")
	ErrCartEmpty            = errors.New("购物车为空")
	ErrMenuItemNotAvailable = errors.New("菜品不存在或已下架")
	ErrInvalidPrice         = errors.New("价格无效")
	ErrSlugExists           = errors.New("标识已存在")
	ErrCategoryInUse        = errors.New("分类下仍有菜品，无法删除")
	ErrCategoryNotFound     = errors.New("分类不存在")
	ErrInvalidCategory      = errors.New("分类参数无效")
	ErrOrderNotFound        = errors.New("订单不存在")
	ErrOrderStatusInvalid   = errors.New("订单状态流转无效")
	ErrOrderCreateFailed    = errors.New("订单创建失败")
	ErrNotAssignedCrew      = errors.New("仅被指派的配送员可操作该订单")
	ErrNotDeliveryCrew      = errors.New("目标用户不是配送员")
	ErrRoleInvalid          = errors.New("角色无效")
	ErrUsernameExists       = errors.New("用户名已存在")
	ErrEmailExists          = errors.New("邮箱已被注册")
	ErrInvalidEmail         = errors.New("邮箱格式无效")
	ErrInvalidUsername      = errors.New("用户名格式无效")
	ErrInvalidCredentials   = errors.New("用户名或密码错误")
	ErrInvalidPassword      = errors.New("密码错误")
	ErrUserDisabled         = errors.New("账号已被禁用")
	ErrWeakPassword         = errors.New("密码强度不足")
	ErrCaptchaRequired      = errors.New("需要验证码")
	ErrCaptchaInvalid       = errors.New("验证码错误")
	ErrCaptchaNotEnabled    = errors.New("验证码未启用")
)
