package service

import (
	"context"
	"strings"

	"github.com/littlelemon-next/internal/cache"
	"github.com/littlelemon-next/internal/constants"
	"github.com/littlelemon-next/internal/models"
	"github.com/littlelemon-next/internal/repository"
)

// AccountService 账号与角色管理服务（经理侧的分组管理）
type AccountService struct {
	userRepo repository.UserRepository
}

// NewAccountService 创建账号管理服务
func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// ResolveGroupRole 将对外分组名解析为内部角色
func ResolveGroupRole(group string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(group)) {
	case "manager", strings.ToLower(constants.GroupNameManager):
		return constants.RoleManager, true
	case "delivery-crew", "delivery_crew", strings.ToLower(constants.GroupNameDeliveryCrew):
		return constants.RoleDeliveryCrew, true
	default:
		return "", false
	}
}

// ListByRole 按角色列出用户
func (s *AccountService) ListByRole(role string) ([]models.User, error) {
	if !constants.IsValidRole(role) {
		return nil, ErrRoleInvalid
	}
	return s.userRepo.ListByRole(role)
}

// ListUsers 用户列表（带过滤与分页）
func (s *AccountService) ListUsers(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// AssignRole 将用户提升为指定角色
// 管理员账号不允许通过分组接口变更
func (s *AccountService) AssignRole(userID uint, role string) (*models.User, error) {
	if role != constants.RoleManager && role != constants.RoleDeliveryCrew {
		return nil, ErrRoleInvalid
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.Role == constants.RoleAdmin {
		return nil, ErrPermissionDenied
	}
	if user.Role == role {
		return user, nil
	}
	if err := s.userRepo.UpdateRole(userID, role); err != nil {
		return nil, err
	}
	// 角色变化后旧 Token 版本失效，清掉鉴权快照强制回源
	_ = cache.DelUserAuthState(context.Background(), userID)
	user.Role = role
	return user, nil
}

// RevokeRole 将用户从指定角色移出（回退为顾客）
func (s *AccountService) RevokeRole(userID uint, role string) error {
	if role != constants.RoleManager && role != constants.RoleDeliveryCrew {
		return ErrRoleInvalid
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.Role != role {
		return ErrNotFound
	}
	if err := s.userRepo.UpdateRole(userID, constants.RoleCustomer); err != nil {
		return err
	}
	_ = cache.DelUserAuthState(context.Background(), userID)
	return nil
}

// IsDeliveryCrew 判断用户是否为配送员
func (s *AccountService) IsDeliveryCrew(userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return user.Role == constants.RoleDeliveryCrew, nil
}
