//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/littlelemon-next/internal/constants"
	"github.com/littlelemon-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.CartItem{},
		&models.MenuItem{},
		&models.Category{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresMenuItemSearch(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	category := &models.Category{Slug: "pg-mains", Title: "Main Courses"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	menuRepo := NewMenuItemRepository(db)
	item := &models.MenuItem{
		CategoryID:  category.ID,
		Title:       "Lemon Herb Chicken",
		Description: "roasted chicken with lemon butter",
		Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(18.00)),
		IsActive:    true,
	}
	if err := menuRepo.Create(item); err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}

	rows, total, err := menuRepo.List(MenuItemListFilter{Page: 1, Search: "Lemon"})
	if err != nil {
		t.Fatalf("menu item search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("menu item search want 1 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = menuRepo.List(MenuItemListFilter{Page: 1, Search: "no-such-dish"})
	if err != nil {
		t.Fatalf("menu item search failed: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("menu item search want 0 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresOrderCreateAndFilter(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	now := time.Now().UTC().Truncate(time.Second)

	user := &models.User{
		Username:     "pg-customer",
		Email:        "pg-customer@littlelemon.local",
		PasswordHash: "x",
		Role:         constants.RoleCustomer,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	crew := &models.User{
		Username:     "pg-crew",
		Email:        "pg-crew@littlelemon.local",
		PasswordHash: "x",
		Role:         constants.RoleDeliveryCrew,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(crew).Error; err != nil {
		t.Fatalf("create crew failed: %v", err)
	}

	orderRepo := NewOrderRepository(db)
	order := &models.Order{
		UserID:   user.ID,
		Status:   constants.OrderStatusOutForDelivery,
		Total:    models.NewMoneyFromDecimal(decimal.NewFromFloat(25.50)),
		PlacedAt: now,
	}
	items := []models.OrderItem{
		{
			MenuItemID: 1,
			Title:      "Lemon Tart",
			Quantity:   2,
			UnitPrice:  models.NewMoneyFromDecimal(decimal.NewFromFloat(6.50)),
			Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(13.00)),
		},
		{
			MenuItemID: 2,
			Title:      "Fresh Lemonade",
			Quantity:   1,
			UnitPrice:  models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)),
			Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)),
		},
	}
	if err := orderRepo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	loaded, err := orderRepo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("order items want 2 got %d", len(loaded.Items))
	}

	crewID := crew.ID
	if err := orderRepo.UpdateFields(order.ID, map[string]interface{}{"delivery_crew_id": crewID}); err != nil {
		t.Fatalf("assign crew failed: %v", err)
	}

	rows, total, err := orderRepo.ListByDeliveryCrew(OrderListFilter{Page: 1, DeliveryCrewID: crewID})
	if err != nil {
		t.Fatalf("list by crew failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("list by crew want 1 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = orderRepo.List(OrderListFilter{Page: 1, Status: constants.OrderStatusDelivered})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("list by status want 0 got total=%d len=%d", total, len(rows))
	}

	email, err := orderRepo.ResolveOwnerEmailByOrderID(order.ID)
	if err != nil {
		t.Fatalf("resolve owner email failed: %v", err)
	}
	if email != "pg-customer@littlelemon.local" {
		t.Fatalf("owner email want pg-customer@littlelemon.local got %s", email)
	}
}
