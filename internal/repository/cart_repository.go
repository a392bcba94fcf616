package repository

import (
	"errors"

	"github.com/littlelemon-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID uint) ([]models.CartItem, error)
	GetByUserAndMenuItem(userID, menuItemID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteByUserAndMenuItem(userID, menuItemID uint) error
	ClearByUser(userID uint) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项
func (r *GormCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("MenuItem").Where("user_id = ?", userID).Order("updated_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByUserAndMenuItem 获取指定菜品的购物车项
func (r *GormCartRepository) GetByUserAndMenuItem(userID, menuItemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Upsert 添加或更新购物车项（同一菜品只保留一行）
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("user_id = ? AND menu_item_id = ?", item.UserID, item.MenuItemID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":   item.Quantity,
		"unit_price": item.UnitPrice,
		"price":      item.Price,
		"updated_at": item.UpdatedAt,
	}
	return r.db.Model(&existing).Updates(updates).Error
}

// DeleteByUserAndMenuItem 删除购物车项
// 物理删除，软删除的行会继续占用 (user_id, menu_item_id) 唯一索引导致无法再次加购
func (r *GormCartRepository) DeleteByUserAndMenuItem(userID, menuItemID uint) error {
	return r.db.Unscoped().Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).Delete(&models.CartItem{}).Error
}

// ClearByUser 清空购物车（物理删除，原因同上）
func (r *GormCartRepository) ClearByUser(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
