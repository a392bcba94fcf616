package service

import (
	"errors"
	"strconv"
	"testing"

	"github.com/littlelemon-next/internal/models"
	"github.com/littlelemon-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newMenuServiceForTest(db *gorm.DB) *MenuService {
	return NewMenuService(repository.NewMenuItemRepository(db), repository.NewCategoryRepository(db))
}

func itemID(item *models.MenuItem) string {
	return strconv.FormatUint(uint64(item.ID), 10)
}

func TestMenuCreateValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	category, _, _ := seedMenuFixture(t, db)

	svc := newMenuServiceForTest(db)

	if _, err := svc.Create(CreateMenuItemInput{CategoryID: category.ID, Title: "  ", Price: decimal.NewFromFloat(5)}); !errors.Is(err, ErrMenuItemNotAvailable) {
		t.Fatalf("blank title want ErrMenuItemNotAvailable got %v", err)
	}
	if _, err := svc.Create(CreateMenuItemInput{CategoryID: category.ID, Title: "Bruschetta", Price: decimal.NewFromFloat(-1)}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("negative price want ErrInvalidPrice got %v", err)
	}
	if _, err := svc.Create(CreateMenuItemInput{CategoryID: category.ID + 1000, Title: "Bruschetta", Price: decimal.NewFromFloat(7.5)}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("missing category want ErrCategoryNotFound got %v", err)
	}

	created, err := svc.Create(CreateMenuItemInput{
		CategoryID:  category.ID,
		Title:       " Bruschetta ",
		Description: " grilled bread ",
		Price:       decimal.NewFromFloat(7.555),
	})
	if err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}
	if created.Title != "Bruschetta" {
		t.Fatalf("title should be trimmed, got %q", created.Title)
	}
	if !created.Price.Decimal.Equal(decimal.NewFromFloat(7.56)) {
		t.Fatalf("price should round to 2 decimals, got %s", created.Price)
	}
	if !created.IsActive {
		t.Fatalf("is_active should default to true")
	}
}

func TestMenuUpdateChangesCategory(t *testing.T) {
	db := setupServiceTestDB(t)
	_, tart, _ := seedMenuFixture(t, db)

	drinks := &models.Category{Slug: "drinks", Title: "Drinks"}
	mustCreate(t, db, drinks)

	svc := newMenuServiceForTest(db)
	inactive := false
	updated, err := svc.Update(itemID(tart), CreateMenuItemInput{
		CategoryID: drinks.ID,
		Title:      "Lemon Tart Slice",
		Price:      decimal.NewFromFloat(5.50),
		IsActive:   &inactive,
	})
	if err != nil {
		t.Fatalf("update menu item failed: %v", err)
	}
	if updated.CategoryID != drinks.ID {
		t.Fatalf("category want %d got %d", drinks.ID, updated.CategoryID)
	}
	if updated.Title != "Lemon Tart Slice" {
		t.Fatalf("title want Lemon Tart Slice got %q", updated.Title)
	}
	if updated.IsActive {
		t.Fatalf("is_active should be false after update")
	}

	if _, err := svc.Update("999999", CreateMenuItemInput{Title: "x", Price: decimal.NewFromFloat(1)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing item want ErrNotFound got %v", err)
	}
}

func TestMenuDelete(t *testing.T) {
	db := setupServiceTestDB(t)
	_, tart, _ := seedMenuFixture(t, db)

	svc := newMenuServiceForTest(db)
	if err := svc.Delete(itemID(tart)); err != nil {
		t.Fatalf("delete menu item failed: %v", err)
	}
	if err := svc.Delete(itemID(tart)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted item want ErrNotFound got %v", err)
	}
}

func TestSetItemOfTheDayKeepsSingleFeatured(t *testing.T) {
	db := setupServiceTestDB(t)
	category, tart, salmon := seedMenuFixture(t, db)

	svc := newMenuServiceForTest(db)
	if _, err := svc.SetItemOfTheDay(itemID(tart)); err != nil {
		t.Fatalf("set first item of the day failed: %v", err)
	}
	if _, err := svc.SetItemOfTheDay(itemID(salmon)); err != nil {
		t.Fatalf("set second item of the day failed: %v", err)
	}

	var featuredCount int64
	if err := db.Model(&models.MenuItem{}).Where("featured = ?", true).Count(&featuredCount).Error; err != nil {
		t.Fatalf("count featured failed: %v", err)
	}
	if featuredCount != 1 {
		t.Fatalf("featured count want 1 got %d", featuredCount)
	}

	current, err := svc.GetItemOfTheDay()
	if err != nil {
		t.Fatalf("get item of the day failed: %v", err)
	}
	if current.ID != salmon.ID {
		t.Fatalf("item of the day want %d got %d", salmon.ID, current.ID)
	}

	inactive := &models.MenuItem{
		CategoryID: category.ID,
		Title:      "Iced Tea",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(2.90)),
		IsActive:   false,
	}
	mustCreate(t, db, inactive)
	if _, err := svc.SetItemOfTheDay(itemID(inactive)); !errors.Is(err, ErrMenuItemNotAvailable) {
		t.Fatalf("inactive item want ErrMenuItemNotAvailable got %v", err)
	}
	if _, err := svc.SetItemOfTheDay("999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing item want ErrNotFound got %v", err)
	}
}

func TestListPublicFiltersInactive(t *testing.T) {
	db := setupServiceTestDB(t)
	category, _, salmon := seedMenuFixture(t, db)

	if err := db.Model(&models.MenuItem{}).Where("id = ?", salmon.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate menu item failed: %v", err)
	}

	svc := newMenuServiceForTest(db)
	rows, total, err := svc.ListPublic("", "", nil, 1, 20)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("public list want 1 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = svc.ListAll(strconv.FormatUint(uint64(category.ID), 10), "", nil, 1, 20)
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("manager list want 2 got total=%d len=%d", total, len(rows))
	}
}
