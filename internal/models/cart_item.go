package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项（同一用户同一菜品只保留一行）
type CartItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                        // 主键
	UserID     uint           `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"user_id"`      // 用户ID
	MenuItemID uint           `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"menu_item_id"` // 菜品ID
	Quantity   int            `gorm:"not null" json:"quantity"`                                    // 数量
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`     // 加入时的单价快照
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`          // 小计（单价 × 数量）
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"` // 关联菜品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
