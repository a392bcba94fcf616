package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（结算时从购物车快照生成，生成后不再变更）
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderID    uint           `gorm:"not null;uniqueIndex:idx_order_menu_item" json:"order_id"`     // 订单ID
	MenuItemID uint           `gorm:"not null;uniqueIndex:idx_order_menu_item" json:"menu_item_id"` // 菜品ID
	Title      string         `gorm:"not null" json:"title"`                                        // 菜品名称快照
	Quantity   int            `gorm:"not null" json:"quantity"`                                     // 数量
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`      // 单价快照
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`           // 小计
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
