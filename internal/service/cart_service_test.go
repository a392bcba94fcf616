package service

import (
	"errors"
	"testing"

	"github.com/littlelemon-next/internal/constants"
	"github.com/littlelemon-next/internal/models"
	"github.com/littlelemon-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCartServiceForTest(db *gorm.DB) *CartService {
	return NewCartService(repository.NewCartRepository(db), repository.NewMenuItemRepository(db))
}

func TestUpsertItemMergesQuantityAndResnapshotsPrice(t *testing.T) {
	db := setupServiceTestDB(t)
	_, tart, _ := seedMenuFixture(t, db)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	svc := newCartServiceForTest(db)
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 2}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 3}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var row models.CartItem
	if err := db.Where("user_id = ? AND menu_item_id = ?", customer.ID, tart.ID).First(&row).Error; err != nil {
		t.Fatalf("load cart row failed: %v", err)
	}
	if row.Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", row.Quantity)
	}
	if !row.Price.Decimal.Equal(decimal.NewFromFloat(32.50)) {
		t.Fatalf("price want 32.50 got %s", row.Price)
	}

	// 菜单调价后再次加购，单价按当前价重新快照
	if err := db.Model(&models.MenuItem{}).Where("id = ?", tart.ID).
		Update("price", models.NewMoneyFromDecimal(decimal.NewFromFloat(8.00))).Error; err != nil {
		t.Fatalf("update menu price failed: %v", err)
	}
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert after reprice failed: %v", err)
	}
	if err := db.Where("user_id = ? AND menu_item_id = ?", customer.ID, tart.ID).First(&row).Error; err != nil {
		t.Fatalf("reload cart row failed: %v", err)
	}
	if row.Quantity != 6 {
		t.Fatalf("quantity want 6 got %d", row.Quantity)
	}
	if !row.UnitPrice.Decimal.Equal(decimal.NewFromFloat(8.00)) {
		t.Fatalf("unit price want 8.00 got %s", row.UnitPrice)
	}
	if !row.Price.Decimal.Equal(decimal.NewFromFloat(48.00)) {
		t.Fatalf("price want 48.00 got %s", row.Price)
	}
}

func TestUpsertItemRejectsUnavailableMenuItem(t *testing.T) {
	db := setupServiceTestDB(t)
	category, tart, _ := seedMenuFixture(t, db)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	inactive := &models.MenuItem{
		CategoryID: category.ID,
		Title:      "Iced Tea",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(2.90)),
		IsActive:   false,
	}
	mustCreate(t, db, inactive)

	svc := newCartServiceForTest(db)
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: inactive.ID, Quantity: 1}); !errors.Is(err, ErrMenuItemNotAvailable) {
		t.Fatalf("inactive item want ErrMenuItemNotAvailable got %v", err)
	}
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID + 1000, Quantity: 1}); !errors.Is(err, ErrMenuItemNotAvailable) {
		t.Fatalf("missing item want ErrMenuItemNotAvailable got %v", err)
	}
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 0}); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("zero quantity want ErrInvalidCartItem got %v", err)
	}
}

func TestSetItemQuantityReplaces(t *testing.T) {
	db := setupServiceTestDB(t)
	_, tart, _ := seedMenuFixture(t, db)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	svc := newCartServiceForTest(db)
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 4}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := svc.SetItemQuantity(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 1}); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	var row models.CartItem
	if err := db.Where("user_id = ? AND menu_item_id = ?", customer.ID, tart.ID).First(&row).Error; err != nil {
		t.Fatalf("load cart row failed: %v", err)
	}
	if row.Quantity != 1 {
		t.Fatalf("quantity want 1 got %d", row.Quantity)
	}
	if !row.Price.Decimal.Equal(decimal.NewFromFloat(6.50)) {
		t.Fatalf("price want 6.50 got %s", row.Price)
	}
}

func TestListByUserPrunesUnavailableItems(t *testing.T) {
	db := setupServiceTestDB(t)
	_, tart, salmon := seedMenuFixture(t, db)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	svc := newCartServiceForTest(db)
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert tart failed: %v", err)
	}
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: salmon.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert salmon failed: %v", err)
	}

	if err := db.Model(&models.MenuItem{}).Where("id = ?", salmon.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate menu item failed: %v", err)
	}

	details, err := svc.ListByUser(customer.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("cart details want 1 got %d", len(details))
	}
	if details[0].MenuItemID != tart.ID {
		t.Fatalf("remaining item want %d got %d", tart.ID, details[0].MenuItemID)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", customer.ID).Count(&count).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("stale cart row should be pruned, got %d rows", count)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	db := setupServiceTestDB(t)
	_, tart, salmon := seedMenuFixture(t, db)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	svc := newCartServiceForTest(db)
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert tart failed: %v", err)
	}
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: salmon.ID, Quantity: 1}); err != nil {
		t.Fatalf("upsert salmon failed: %v", err)
	}

	if err := svc.RemoveItem(customer.ID, tart.ID); err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	details, err := svc.ListByUser(customer.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("cart details want 1 got %d", len(details))
	}

	// 删除后的菜品必须能重新加购（唯一索引不应被删除残留占用）
	if err := svc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 2}); err != nil {
		t.Fatalf("re-add after remove failed: %v", err)
	}
	if err := svc.RemoveItem(customer.ID, tart.ID); err != nil {
		t.Fatalf("remove re-added item failed: %v", err)
	}

	if err := svc.Clear(customer.ID); err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	details, err = svc.ListByUser(customer.ID)
	if err != nil {
		t.Fatalf("list cart after clear failed: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("cart should be empty after clear, got %d", len(details))
	}
}
