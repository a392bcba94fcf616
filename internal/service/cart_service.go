package service

import (
	"strconv"
	"time"

	"github.com/littlelemon-next/internal/models"
	"github.com/littlelemon-next/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	MenuItemID uint             `json:"menu_item_id"`
	Quantity   int              `json:"quantity"`
	UnitPrice  models.Money     `json:"unit_price"`
	Price      models.Money     `json:"price"`
	MenuItem   *models.MenuItem `json:"menu_item"`
}

// UpsertCartItemInput 购物车更新输入
type UpsertCartItemInput struct {
	UserID     uint
	MenuItemID uint
	Quantity   int
}

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
	menuRepo repository.MenuItemRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, menuRepo repository.MenuItemRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
	}
}

// ListByUser 获取用户购物车
// 已下架或删除的菜品对应的行会被直接清理
func (s *CartService) ListByUser(userID uint) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		menuItem := item.MenuItem
		if menuItem == nil || menuItem.ID == 0 {
			m, err := s.menuRepo.GetByID(strconv.FormatUint(uint64(item.MenuItemID), 10))
			if err != nil {
				return nil, err
			}
			menuItem = m
		}
		if menuItem == nil || !menuItem.IsActive {
			_ = s.cartRepo.DeleteByUserAndMenuItem(userID, item.MenuItemID)
			continue
		}

		details = append(details, CartItemDetail{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Price:      item.Price,
			MenuItem:   menuItem,
		})
	}
	return details, nil
}

// UpsertItem 添加或更新购物车项
// 同一菜品重复添加时数量合并，单价按当前菜单价重新快照
func (s *CartService) UpsertItem(input UpsertCartItemInput) error {
	if input.UserID == 0 || input.MenuItemID == 0 || input.Quantity <= 0 {
		return ErrInvalidCartItem
	}
	menuItem, err := s.menuRepo.GetByID(strconv.FormatUint(uint64(input.MenuItemID), 10))
	if err != nil {
		return err
	}
	if menuItem == nil || !menuItem.IsActive {
		return ErrMenuItemNotAvailable
	}

	quantity := input.Quantity
	existing, err := s.cartRepo.GetByUserAndMenuItem(input.UserID, input.MenuItemID)
	if err != nil {
		return err
	}
	if existing != nil {
		quantity += existing.Quantity
	}

	now := time.Now()
	unitPrice := menuItem.Price
	item := &models.CartItem{
		UserID:     input.UserID,
		MenuItemID: input.MenuItemID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Price:      unitPrice.MulInt(quantity),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.cartRepo.Upsert(item)
}

// SetItemQuantity 直接设置购物车项数量（不合并）
func (s *CartService) SetItemQuantity(input UpsertCartItemInput) error {
	if input.UserID == 0 || input.MenuItemID == 0 || input.Quantity <= 0 {
		return ErrInvalidCartItem
	}
	menuItem, err := s.menuRepo.GetByID(strconv.FormatUint(uint64(input.MenuItemID), 10))
	if err != nil {
		return err
	}
	if menuItem == nil || !menuItem.IsActive {
		return ErrMenuItemNotAvailable
	}

	now := time.Now()
	unitPrice := menuItem.Price
	item := &models.CartItem{
		UserID:     input.UserID,
		MenuItemID: input.MenuItemID,
		Quantity:   input.Quantity,
		UnitPrice:  unitPrice,
		Price:      unitPrice.MulInt(input.Quantity),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.cartRepo.Upsert(item)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, menuItemID uint) error {
	if userID == 0 || menuItemID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.DeleteByUserAndMenuItem(userID, menuItemID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.ClearByUser(userID)
}
