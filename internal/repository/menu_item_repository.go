package repository

import (
	"errors"
	"strings"

	"github.com/littlelemon-next/internal/models"

	"gorm.io/gorm"
)

// MenuItemRepository 菜品数据访问接口
type MenuItemRepository interface {
	List(filter MenuItemListFilter) ([]models.MenuItem, int64, error)
	GetByID(id string) (*models.MenuItem, error)
	GetFeatured() (*models.MenuItem, error)
	ListByIDs(ids []uint) ([]models.MenuItem, error)
	Create(item *models.MenuItem) error
	Update(item *models.MenuItem) error
	Delete(id string) error
	ClearFeatured() error
	SetFeatured(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) MenuItemRepository
}

// GormMenuItemRepository GORM 实现
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository 创建菜品仓库
func NewMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMenuItemRepository) WithTx(tx *gorm.DB) MenuItemRepository {
	if tx == nil {
		return r
	}
	return &GormMenuItemRepository{db: tx}
}

// Transaction 执行事务
func (r *GormMenuItemRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 菜品列表
func (r *GormMenuItemRepository) List(filter MenuItemListFilter) ([]models.MenuItem, int64, error) {
	var items []models.MenuItem

	query := r.db.Model(&models.MenuItem{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"title", "description"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order DESC, created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetByID 根据 ID 获取菜品
func (r *GormMenuItemRepository) GetByID(id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.Preload("Category").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetFeatured 获取当前今日特选菜品
func (r *GormMenuItemRepository) GetFeatured() (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.Preload("Category").Where("featured = ?", true).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByIDs 批量获取菜品
func (r *GormMenuItemRepository) ListByIDs(ids []uint) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return []models.MenuItem{}, nil
	}
	var items []models.MenuItem
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建菜品
func (r *GormMenuItemRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

// Update 更新菜品
// GetByID 预加载的旧分类不随菜品一起保存，否则会把 category_id 重置回去
func (r *GormMenuItemRepository) Update(item *models.MenuItem) error {
	return r.db.Omit("Category").Save(item).Error
}

// Delete 删除菜品
func (r *GormMenuItemRepository) Delete(id string) error {
	return r.db.Delete(&models.MenuItem{}, id).Error
}

// ClearFeatured 取消现有今日特选标记
func (r *GormMenuItemRepository) ClearFeatured() error {
	return r.db.Model(&models.MenuItem{}).Where("featured = ?", true).Update("featured", false).Error
}

// SetFeatured 设置今日特选标记
func (r *GormMenuItemRepository) SetFeatured(id uint) error {
	return r.db.Model(&models.MenuItem{}).Where("id = ?", id).Update("featured", true).Error
}
