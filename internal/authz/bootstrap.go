package authz

import (
	"fmt"

	"github.com/littlelemon-next/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
// 顾客是所有登录用户的基线角色，配送员与经理在此之上扩展，管理员放行全部。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleCustomer,
			Policies: []Policy{
				{Object: "/me", Action: "GET"},
				{Object: "/me", Action: "PUT"},
				{Object: "/me/password", Action: "PUT"},
				{Object: "/categories", Action: "GET"},
				{Object: "/categories/:id", Action: "GET"},
				{Object: "/menu-items", Action: "GET"},
				{Object: "/menu-items/:id", Action: "GET"},
				{Object: "/item-of-the-day", Action: "GET"},
				{Object: "/cart/menu-items", Action: "*"},
				{Object: "/cart/menu-items/:menu_item_id", Action: "DELETE"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders", Action: "POST"},
				{Object: "/orders/:order_id", Action: "GET"},
				{Object: "/orders/:order_id", Action: "PUT"},
				{Object: "/orders/:order_id", Action: "PATCH"},
				{Object: "/orders/:order_id", Action: "DELETE"},
			},
		},
		{
			Role:     constants.RoleDeliveryCrew,
			Inherits: []string{constants.RoleCustomer},
			Policies: []Policy{
				{Object: "/delivery-crew/orders", Action: "GET"},
				{Object: "/delivery-crew/orders/:order_id", Action: "PUT"},
				{Object: "/delivery-crew/orders/:order_id", Action: "PATCH"},
				{Object: "/update-order-status/:order_id", Action: "POST"},
				{Object: "/update-order-status/:order_id", Action: "PATCH"},
			},
		},
		{
			Role:     constants.RoleManager,
			Inherits: []string{constants.RoleCustomer},
			Policies: []Policy{
				{Object: "/menu-items", Action: "*"},
				{Object: "/menu-items/:id", Action: "*"},
				{Object: "/categories", Action: "*"},
				{Object: "/categories/:id", Action: "*"},
				{Object: "/add-category", Action: "POST"},
				{Object: "/update-item-of-the-day/:menu_item_id", Action: "POST"},
				{Object: "/update-item-of-the-day/:menu_item_id", Action: "PATCH"},
				{Object: "/orders/:order_id", Action: "*"},
				{Object: "/assign-order/:order_id/:user_id", Action: "POST"},
				{Object: "/update-order-status/:order_id", Action: "PATCH"},
				{Object: "/groups/manager/users", Action: "*"},
				{Object: "/groups/manager/users/:user_id", Action: "*"},
				{Object: "/groups/delivery-crew/users", Action: "*"},
				{Object: "/groups/delivery-crew/users/:user_id", Action: "*"},
				{Object: "/user-login-logs", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleManager, constants.RoleDeliveryCrew},
			Policies: []Policy{
				{Object: "/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}

	return nil
}
