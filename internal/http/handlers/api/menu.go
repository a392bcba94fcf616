package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/littlelemon-next/internal/constants"
	"github.com/littlelemon-next/internal/http/response"
	"github.com/littlelemon-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MenuItemRequest 创建/更新菜品请求
type MenuItemRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	Featured    *bool  `json:"featured"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func (r MenuItemRequest) toServiceInput() (service.CreateMenuItemInput, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return service.CreateMenuItemInput{}, err
	}
	return service.CreateMenuItemInput{
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Description: r.Description,
		Price:       price,
		Featured:    r.Featured,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}, nil
}

// ListMenuItems 获取菜品列表
// 经理可见全部菜品，其他角色仅见上架菜品
func (h *Handler) ListMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID := c.Query("category_id")
	search := strings.TrimSpace(c.Query("search"))
	var featured *bool
	if raw := strings.TrimSpace(c.Query("featured")); raw != "" {
		value := raw == "true" || raw == "1"
		featured = &value
	}

	role := getUserRole(c)
	list := h.MenuService.ListPublic
	if role == constants.RoleManager || role == constants.RoleAdmin {
		list = h.MenuService.ListAll
	}

	items, total, err := list(categoryID, search, featured, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.menu_item_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, items, pagination)
}

// GetMenuItem 获取菜品详情
func (h *Handler) GetMenuItem(c *gin.Context) {
	item, err := h.MenuService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.menu_item_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.menu_item_fetch_failed", err)
		return
	}
	response.Success(c, item)
}

// GetItemOfTheDay 获取今日特选
func (h *Handler) GetItemOfTheDay(c *gin.Context) {
	item, err := h.MenuService.GetItemOfTheDay()
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.menu_item_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.menu_item_fetch_failed", err)
		return
	}
	response.Success(c, item)
}

// CreateMenuItem 创建菜品（经理）
func (h *Handler) CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.price_invalid", nil)
		return
	}

	item, err := h.MenuService.Create(input)
	if err != nil {
		respondMenuItemWriteError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateMenuItem 更新菜品（经理）
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toServiceInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.price_invalid", nil)
		return
	}

	item, err := h.MenuService.Update(c.Param("id"), input)
	if err != nil {
		respondMenuItemWriteError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteMenuItem 删除菜品（经理）
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	if err := h.MenuService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.menu_item_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.menu_item_save_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// SetItemOfTheDay 设置今日特选（经理）
func (h *Handler) SetItemOfTheDay(c *gin.Context) {
	item, err := h.MenuService.SetItemOfTheDay(c.Param("menu_item_id"))
	if err != nil {
		respondMenuItemWriteError(c, err)
		return
	}
	response.Success(c, item)
}
