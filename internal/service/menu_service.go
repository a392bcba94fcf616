package service

import (
	"strconv"
	"strings"

	"github.com/littlelemon-next/internal/models"
	"github.com/littlelemon-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuService 菜品业务服务
type MenuService struct {
	repo         repository.MenuItemRepository
	categoryRepo repository.CategoryRepository
}

// NewMenuService 创建菜品服务
func NewMenuService(repo repository.MenuItemRepository, categoryRepo repository.CategoryRepository) *MenuService {
	return &MenuService{repo: repo, categoryRepo: categoryRepo}
}

// CreateMenuItemInput 创建/更新菜品输入
type CreateMenuItemInput struct {
	CategoryID  uint
	Title       string
	Description string
	Price       decimal.Decimal
	Featured    *bool
	IsActive    *bool
	SortOrder   int
}

// ListPublic 获取上架菜品列表
func (s *MenuService) ListPublic(categoryID, search string, featured *bool, page, pageSize int) ([]models.MenuItem, int64, error) {
	filter := repository.MenuItemListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		Featured:     featured,
		OnlyActive:   true,
		WithCategory: true,
	}
	return s.repo.List(filter)
}

// ListAll 获取全部菜品列表（经理端，含下架）
func (s *MenuService) ListAll(categoryID, search string, featured *bool, page, pageSize int) ([]models.MenuItem, int64, error) {
	filter := repository.MenuItemListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		Featured:     featured,
		OnlyActive:   false,
		WithCategory: true,
	}
	return s.repo.List(filter)
}

// GetByID 获取菜品详情
func (s *MenuService) GetByID(id string) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// GetItemOfTheDay 获取今日特选
func (s *MenuService) GetItemOfTheDay() (*models.MenuItem, error) {
	item, err := s.repo.GetFeatured()
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// Create 创建菜品
func (s *MenuService) Create(input CreateMenuItemInput) (*models.MenuItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrMenuItemNotAvailable
	}
	price := input.Price.Round(2)
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	category, err := s.categoryRepo.GetByID(strconv.FormatUint(uint64(input.CategoryID), 10))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	featured := false
	if input.Featured != nil {
		featured = *input.Featured
	}

	item := models.MenuItem{
		CategoryID:  input.CategoryID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Price:       models.NewMoneyFromDecimal(price),
		Featured:    featured,
		IsActive:    isActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.Create(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update 更新菜品
func (s *MenuService) Update(id string, input CreateMenuItemInput) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrMenuItemNotAvailable
	}
	price := input.Price.Round(2)
	if price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if input.CategoryID != 0 && input.CategoryID != item.CategoryID {
		category, err := s.categoryRepo.GetByID(strconv.FormatUint(uint64(input.CategoryID), 10))
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		item.CategoryID = input.CategoryID
	}

	item.Title = title
	item.Description = strings.TrimSpace(input.Description)
	item.Price = models.NewMoneyFromDecimal(price)
	if input.Featured != nil {
		item.Featured = *input.Featured
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	item.SortOrder = input.SortOrder

	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete 删除菜品
func (s *MenuService) Delete(id string) error {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// SetItemOfTheDay 设置今日特选（同一时刻只保留一个特选菜品）
func (s *MenuService) SetItemOfTheDay(id string) (*models.MenuItem, error) {
	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if !item.IsActive {
		return nil, ErrMenuItemNotAvailable
	}

	if err := s.repo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.ClearFeatured(); err != nil {
			return err
		}
		return txRepo.SetFeatured(item.ID)
	}); err != nil {
		return nil, err
	}

	item.Featured = true
	return item, nil
}
