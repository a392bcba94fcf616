package api

import (
	"errors"
	"strconv"

	"github.com/littlelemon-next/internal/http/response"
	"github.com/littlelemon-next/internal/models"
	"github.com/littlelemon-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupUserRequest 分组成员操作请求
type GroupUserRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

func resolveGroupParam(c *gin.Context) (string, bool) {
	role, ok := service.ResolveGroupRole(c.Param("group"))
	if !ok {
		respondError(c, response.CodeNotFound, "error.group_invalid", nil)
		return "", false
	}
	return role, true
}

// ListGroupUsers 列出分组成员（经理）
func (h *Handler) ListGroupUsers(c *gin.Context) {
	role, ok := resolveGroupParam(c)
	if !ok {
		return
	}

	users, err := h.AccountService.ListByRole(role)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, groupUserView(&users[i]))
	}
	response.Success(c, views)
}

// AddGroupUser 将用户加入分组（经理）
func (h *Handler) AddGroupUser(c *gin.Context) {
	role, ok := resolveGroupParam(c)
	if !ok {
		return
	}

	var req GroupUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.AccountService.AssignRole(req.UserID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoleInvalid):
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		case errors.Is(err, service.ErrPermissionDenied):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, groupUserView(user))
}

// RemoveGroupUser 将用户移出分组（经理，回退为顾客）
func (h *Handler) RemoveGroupUser(c *gin.Context) {
	role, ok := resolveGroupParam(c)
	if !ok {
		return
	}
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.AccountService.RevokeRole(uint(userID), role); err != nil {
		switch {
		case errors.Is(err, service.ErrRoleInvalid):
			respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, gin.H{"removed": true})
}

func groupUserView(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"display_name": user.DisplayName,
		"role":         user.Role,
	}
}
