package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/littlelemon-next/internal/http/response"
	"github.com/littlelemon-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 添加购物车请求
type CartItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// GetCart 获取当前用户购物车
func (h *Handler) GetCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// AddToCart 添加菜品到购物车（同菜品数量合并）
func (h *Handler) AddToCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.UpsertItem(service.UpsertCartItemInput{
		UserID:     userID,
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
	}); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCartItem):
			respondError(c, response.CodeBadRequest, "error.cart_invalid", nil)
		case errors.Is(err, service.ErrMenuItemNotAvailable):
			respondError(c, response.CodeBadRequest, "error.menu_item_unavailable", nil)
		default:
			respondError(c, response.CodeInternal, "error.cart_save_failed", err)
		}
		return
	}

	items, err := h.CartService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// SetCartItem 直接设置购物车项数量（不合并）
func (h *Handler) SetCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.SetItemQuantity(service.UpsertCartItemInput{
		UserID:     userID,
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
	}); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCartItem):
			respondError(c, response.CodeBadRequest, "error.cart_invalid", nil)
		case errors.Is(err, service.ErrMenuItemNotAvailable):
			respondError(c, response.CodeBadRequest, "error.menu_item_unavailable", nil)
		default:
			respondError(c, response.CodeInternal, "error.cart_save_failed", err)
		}
		return
	}

	items, err := h.CartService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// RemoveCartItem 删除指定菜品的购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	menuItemID, err := strconv.ParseUint(strings.TrimSpace(c.Param("menu_item_id")), 10, 64)
	if err != nil || menuItemID == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_invalid", nil)
		return
	}

	if err := h.CartService.RemoveItem(userID, uint(menuItemID)); err != nil {
		respondError(c, response.CodeInternal, "error.cart_save_failed", err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// ClearCart 清空购物车；携带 menu_item_id 时仅删除该项
func (h *Handler) ClearCart(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if raw := strings.TrimSpace(c.Query("menu_item_id")); raw != "" {
		menuItemID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || menuItemID == 0 {
			respondError(c, response.CodeBadRequest, "error.cart_invalid", nil)
			return
		}
		if err := h.CartService.RemoveItem(userID, uint(menuItemID)); err != nil {
			respondError(c, response.CodeInternal, "error.cart_save_failed", err)
			return
		}
		response.Success(c, gin.H{"removed": true})
		return
	}

	if err := h.CartService.Clear(userID); err != nil {
		respondError(c, response.CodeInternal, "error.cart_save_failed", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
