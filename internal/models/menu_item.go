package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem 菜品表
type MenuItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                  // 分类ID
	Title       string         `gorm:"not null;index" json:"title"`                        // 菜品名称
	Description string         `gorm:"type:varchar(1000)" json:"description"`              // 菜品描述
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 价格（2 位小数）
	Featured    bool           `gorm:"default:false;index" json:"featured"`                // 是否为今日特选
	IsActive    bool           `gorm:"index" json:"is_active"`                             // 是否上架（列默认值会让 gorm 跳过 false 零值，默认上架由服务层决定）
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}
