package models

import (
	"encoding/json"
	"time"

	"github.com/littlelemon-next/internal/constants"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                // 主键
	UserID         uint           `gorm:"index;not null" json:"user_id"`                       // 下单用户ID
	DeliveryCrewID *uint          `gorm:"index" json:"delivery_crew_id,omitempty"`             // 配送员ID（未指派为空）
	Status         string         `gorm:"index;not null" json:"status"`                        // 订单状态（out_for_delivery/delivered）
	Total          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`  // 订单总额（结算时一次性写入）
	PlacedAt       time.Time      `gorm:"index;not null" json:"placed_at"`                     // 下单时间
	DeliveredAt    *time.Time     `gorm:"index" json:"delivered_at,omitempty"`                 // 送达时间
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	// 关联
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`            // 订单项
	User         *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`              // 下单用户
	DeliveryCrew *User       `gorm:"foreignKey:DeliveryCrewID" json:"delivery_crew,omitempty"` // 配送员
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// MarshalJSON 输出时附带旧版数字状态编码，兼容历史客户端
func (o Order) MarshalJSON() ([]byte, error) {
	type orderAlias Order
	return json.Marshal(struct {
		orderAlias
		LegacyStatus int `json:"status_code"`
	}{
		orderAlias:   orderAlias(o),
		LegacyStatus: constants.OrderStatusCode(o.Status),
	})
}
