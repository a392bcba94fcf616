package api

import (
	"errors"

	"github.com/littlelemon-next/internal/http/response"
	"github.com/littlelemon-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Slug      string `json:"slug" binding:"required"`
	Title     string `json:"title" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// ListCategories 获取分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 获取分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.CategoryService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类（经理）
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Create(service.CreateCategoryInput{
		Slug:      req.Slug,
		Title:     req.Title,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "error.slug_exists", nil)
		case errors.Is(err, service.ErrInvalidCategory):
			respondError(c, response.CodeBadRequest, "error.category_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.category_save_failed", err)
		}
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类（经理）
func (h *Handler) UpdateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Update(c.Param("id"), service.CreateCategoryInput{
		Slug:      req.Slug,
		Title:     req.Title,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
		case errors.Is(err, service.ErrSlugExists):
			respondError(c, response.CodeBadRequest, "error.slug_exists", nil)
		case errors.Is(err, service.ErrInvalidCategory):
			respondError(c, response.CodeBadRequest, "error.category_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.category_save_failed", err)
		}
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（经理，分类下仍有菜品时拒绝）
func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.CategoryService.Delete(c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeBadRequest, "error.category_in_use", nil)
		default:
			respondError(c, response.CodeInternal, "error.category_save_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
