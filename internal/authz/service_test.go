package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/littlelemon-next/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceRoleWithPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("waiter", "/menu-items/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("waiter", "/api/v1/menu-items/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceRole("waiter", "/api/v1/menu-items/42", "POST")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("waiter", "/orders", "GET"); err != nil {
		t.Fatalf("grant policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("waiter", "/orders", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow before revoke")
	}

	if err := svc.RevokeRolePolicy("waiter", "/orders", "GET"); err != nil {
		t.Fatalf("revoke policy failed: %v", err)
	}

	allow, err = svc.EnforceRole("waiter", "/orders", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("expected deny after revoke")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/orders/:order_id", want: "/orders/:order_id"},
		{in: "/orders/:order_id", want: "/orders/:order_id"},
		{in: "menu-items", want: "/menu-items"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:customer":      true,
		"role:delivery_crew": true,
		"role:manager":       true,
		"role:admin":         true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}
}

func TestBuiltinRoleMatrix(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}

	cases := []struct {
		role   string
		object string
		action string
		allow  bool
	}{
		{role: constants.RoleCustomer, object: "/api/v1/menu-items", action: "GET", allow: true},
		{role: constants.RoleCustomer, object: "/api/v1/menu-items", action: "POST", allow: false},
		{role: constants.RoleCustomer, object: "/api/v1/cart/menu-items", action: "DELETE", allow: true},
		{role: constants.RoleCustomer, object: "/api/v1/cart/menu-items/5", action: "DELETE", allow: true},
		{role: constants.RoleCustomer, object: "/api/v1/orders", action: "POST", allow: true},
		{role: constants.RoleCustomer, object: "/api/v1/orders/7", action: "PUT", allow: true},
		{role: constants.RoleCustomer, object: "/api/v1/orders/7", action: "PATCH", allow: true},
		{role: constants.RoleCustomer, object: "/api/v1/orders/7", action: "DELETE", allow: true},
		{role: constants.RoleCustomer, object: "/api/v1/update-order-status/9", action: "PATCH", allow: false},
		{role: constants.RoleCustomer, object: "/api/v1/groups/manager/users", action: "GET", allow: false},

		{role: constants.RoleDeliveryCrew, object: "/api/v1/delivery-crew/orders", action: "GET", allow: true},
		{role: constants.RoleDeliveryCrew, object: "/api/v1/update-order-status/9", action: "PATCH", allow: true},
		{role: constants.RoleDeliveryCrew, object: "/api/v1/update-order-status/9", action: "POST", allow: true},
		{role: constants.RoleDeliveryCrew, object: "/api/v1/delivery-crew/orders/9", action: "PUT", allow: true},
		{role: constants.RoleDeliveryCrew, object: "/api/v1/menu-items", action: "GET", allow: true},
		{role: constants.RoleDeliveryCrew, object: "/api/v1/menu-items", action: "POST", allow: false},

		{role: constants.RoleManager, object: "/api/v1/menu-items", action: "POST", allow: true},
		{role: constants.RoleManager, object: "/api/v1/update-item-of-the-day/3", action: "PATCH", allow: true},
		{role: constants.RoleManager, object: "/api/v1/update-item-of-the-day/3", action: "POST", allow: true},
		{role: constants.RoleManager, object: "/api/v1/assign-order/5/7", action: "POST", allow: true},
		{role: constants.RoleManager, object: "/api/v1/groups/delivery-crew/users", action: "POST", allow: true},
		{role: constants.RoleManager, object: "/api/v1/user-login-logs", action: "GET", allow: true},

		{role: constants.RoleAdmin, object: "/api/v1/anything/at/all", action: "DELETE", allow: true},
	}

	for _, tc := range cases {
		allow, err := svc.EnforceRole(tc.role, tc.object, tc.action)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", tc.role, tc.action, tc.object, err)
		}
		if allow != tc.allow {
			t.Fatalf("enforce %s %s %s want %v got %v", tc.role, tc.action, tc.object, tc.allow, allow)
		}
	}
}
