package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/littlelemon-next/internal/constants"
	"github.com/littlelemon-next/internal/models"
	"github.com/littlelemon-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// setupServiceTestDB 初始化内存数据库并挂到 models.DB（结算事务依赖全局连接）。
func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() {
		models.DB = prev
	})
	return db
}

func newOrderServiceForTest(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T failed: %v", value, err)
	}
}

func seedMenuFixture(t *testing.T, db *gorm.DB) (*models.Category, *models.MenuItem, *models.MenuItem) {
	t.Helper()
	category := &models.Category{Slug: "mains", Title: "Main Courses"}
	mustCreate(t, db, category)

	tart := &models.MenuItem{
		CategoryID: category.ID,
		Title:      "Lemon Tart",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(6.50)),
		IsActive:   true,
	}
	mustCreate(t, db, tart)

	salmon := &models.MenuItem{
		CategoryID: category.ID,
		Title:      "Grilled Salmon",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(21.50)),
		IsActive:   true,
	}
	mustCreate(t, db, salmon)
	return category, tart, salmon
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@littlelemon.local",
		PasswordHash: "x",
		Role:         role,
		Status:       constants.UserStatusActive,
	}
	mustCreate(t, db, user)
	return user
}

func TestCheckoutCreatesOrderFromCart(t *testing.T) {
	db := setupServiceTestDB(t)
	_, tart, salmon := seedMenuFixture(t, db)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	mustCreate(t, db, &models.CartItem{
		UserID:     customer.ID,
		MenuItemID: tart.ID,
		Quantity:   2,
		UnitPrice:  tart.Price,
		Price:      tart.Price.MulInt(2),
	})
	mustCreate(t, db, &models.CartItem{
		UserID:     customer.ID,
		MenuItemID: salmon.ID,
		Quantity:   1,
		UnitPrice:  salmon.Price,
		Price:      salmon.Price,
	})

	svc := newOrderServiceForTest(db)
	order, err := svc.Checkout(customer.ID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Status != constants.OrderStatusOutForDelivery {
		t.Fatalf("status want %s got %s", constants.OrderStatusOutForDelivery, order.Status)
	}
	// 总额等于购物车各行小计之和：2*6.50 + 21.50
	if !order.Total.Decimal.Equal(decimal.NewFromFloat(34.50)) {
		t.Fatalf("total want 34.50 got %s", order.Total)
	}
	if len(order.Items) != 2 {
		t.Fatalf("order items want 2 got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.Title == "" {
			t.Fatalf("order item title snapshot should not be empty")
		}
		if !item.Price.Decimal.Equal(item.UnitPrice.MulInt(item.Quantity).Decimal) {
			t.Fatalf("order item price snapshot mismatch: %s != %s * %d", item.Price, item.UnitPrice, item.Quantity)
		}
	}

	var cartCount int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", customer.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("cart should be cleared after checkout, got %d rows", cartCount)
	}
}

func TestCheckoutThenReorderSameItem(t *testing.T) {
	db := setupServiceTestDB(t)
	_, tart, _ := seedMenuFixture(t, db)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	cartSvc := newCartServiceForTest(db)
	orderSvc := newOrderServiceForTest(db)

	if err := cartSvc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 2}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if _, err := orderSvc.Checkout(customer.ID); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 结算清空购物车后同一菜品必须能再次加购
	if err := cartSvc.UpsertItem(UpsertCartItemInput{UserID: customer.ID, MenuItemID: tart.ID, Quantity: 1}); err != nil {
		t.Fatalf("re-add after checkout failed: %v", err)
	}

	order, err := orderSvc.Checkout(customer.ID)
	if err != nil {
		t.Fatalf("second checkout failed: %v", err)
	}
	if !order.Total.Decimal.Equal(decimal.NewFromFloat(6.50)) {
		t.Fatalf("second order total want 6.50 got %s", order.Total)
	}
}

// cartClearFailRepo 在清空购物车时注入失败，用于验证结算事务回滚
type cartClearFailRepo struct {
	repository.CartRepository
}

func (r cartClearFailRepo) WithTx(tx *gorm.DB) repository.CartRepository {
	return cartClearFailRepo{CartRepository: r.CartRepository.WithTx(tx)}
}

func (r cartClearFailRepo) ClearByUser(userID uint) error {
	return errors.New("clear cart failed")
}

func TestCheckoutRollsBackOnCartClearFailure(t *testing.T) {
	db := setupServiceTestDB(t)
	_, tart, _ := seedMenuFixture(t, db)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	mustCreate(t, db, &models.CartItem{
		UserID:     customer.ID,
		MenuItemID: tart.ID,
		Quantity:   1,
		UnitPrice:  tart.Price,
		Price:      tart.Price,
	})

	svc := NewOrderService(
		repository.NewOrderRepository(db),
		cartClearFailRepo{CartRepository: repository.NewCartRepository(db)},
		repository.NewUserRepository(db),
		nil,
	)

	if _, err := svc.Checkout(customer.ID); err == nil {
		t.Fatalf("checkout should fail when cart clear fails")
	}

	var orderCount, itemCount, cartCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if err := db.Model(&models.OrderItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count order items failed: %v", err)
	}
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", customer.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if orderCount != 0 || itemCount != 0 {
		t.Fatalf("rollback should leave no order rows, got orders=%d items=%d", orderCount, itemCount)
	}
	if cartCount != 1 {
		t.Fatalf("cart should survive rollback, got %d rows", cartCount)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	svc := newOrderServiceForTest(db)
	_, err := svc.Checkout(customer.ID)
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty got %v", err)
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("empty cart checkout should not write orders, got %d", orderCount)
	}
}

func TestValidateStatusTransition(t *testing.T) {
	cases := []struct {
		current string
		target  string
		wantErr bool
	}{
		{current: constants.OrderStatusOutForDelivery, target: constants.OrderStatusDelivered, wantErr: false},
		{current: constants.OrderStatusOutForDelivery, target: constants.OrderStatusOutForDelivery, wantErr: false},
		{current: constants.OrderStatusDelivered, target: constants.OrderStatusDelivered, wantErr: false},
		{current: constants.OrderStatusDelivered, target: constants.OrderStatusOutForDelivery, wantErr: true},
		{current: constants.OrderStatusOutForDelivery, target: "cancelled", wantErr: true},
	}
	for _, tc := range cases {
		err := validateStatusTransition(tc.current, tc.target)
		if tc.wantErr && !errors.Is(err, ErrOrderStatusInvalid) {
			t.Fatalf("%s -> %s want ErrOrderStatusInvalid got %v", tc.current, tc.target, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s -> %s want nil got %v", tc.current, tc.target, err)
		}
	}
}

func TestAssignDeliveryCrew(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)
	crew := seedUser(t, db, "marco", constants.RoleDeliveryCrew)

	order := &models.Order{
		UserID: customer.ID,
		Status: constants.OrderStatusOutForDelivery,
		Total:  models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)),
	}
	mustCreate(t, db, order)

	svc := newOrderServiceForTest(db)

	if _, err := svc.AssignDeliveryCrew(order.ID+100, crew.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("missing order want ErrOrderNotFound got %v", err)
	}
	if _, err := svc.AssignDeliveryCrew(order.ID, customer.ID); !errors.Is(err, ErrNotDeliveryCrew) {
		t.Fatalf("non-crew target want ErrNotDeliveryCrew got %v", err)
	}

	updated, err := svc.AssignDeliveryCrew(order.ID, crew.ID)
	if err != nil {
		t.Fatalf("assign crew failed: %v", err)
	}
	if updated.DeliveryCrewID == nil || *updated.DeliveryCrewID != crew.ID {
		t.Fatalf("delivery crew id want %d got %v", crew.ID, updated.DeliveryCrewID)
	}
}

func TestMarkDelivered(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)
	crew := seedUser(t, db, "marco", constants.RoleDeliveryCrew)
	other := seedUser(t, db, "fatima", constants.RoleDeliveryCrew)

	crewID := crew.ID
	order := &models.Order{
		UserID:         customer.ID,
		Status:         constants.OrderStatusOutForDelivery,
		DeliveryCrewID: &crewID,
		Total:          models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)),
	}
	mustCreate(t, db, order)

	svc := newOrderServiceForTest(db)

	if _, err := svc.MarkDelivered(order.ID, other.ID); !errors.Is(err, ErrNotAssignedCrew) {
		t.Fatalf("unassigned crew want ErrNotAssignedCrew got %v", err)
	}

	delivered, err := svc.MarkDelivered(order.ID, crew.ID)
	if err != nil {
		t.Fatalf("mark delivered failed: %v", err)
	}
	if delivered.Status != constants.OrderStatusDelivered {
		t.Fatalf("status want %s got %s", constants.OrderStatusDelivered, delivered.Status)
	}
	if delivered.DeliveredAt == nil {
		t.Fatalf("delivered_at should be set")
	}

	// 重复标记视为幂等，不报错
	if _, err := svc.MarkDelivered(order.ID, crew.ID); err != nil {
		t.Fatalf("repeat mark delivered failed: %v", err)
	}
}

func TestUpdateOrderRejectsBackwardStatus(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	order := &models.Order{
		UserID: customer.ID,
		Status: constants.OrderStatusDelivered,
		Total:  models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)),
	}
	mustCreate(t, db, order)

	svc := newOrderServiceForTest(db)
	backward := constants.OrderStatusOutForDelivery
	if _, err := svc.UpdateOrder(order.ID, UpdateOrderInput{Status: &backward}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("backward transition want ErrOrderStatusInvalid got %v", err)
	}
}

func TestUpdateOrderAssignsCrewAndStatus(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)
	crew := seedUser(t, db, "marco", constants.RoleDeliveryCrew)

	order := &models.Order{
		UserID: customer.ID,
		Status: constants.OrderStatusOutForDelivery,
		Total:  models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)),
	}
	mustCreate(t, db, order)

	svc := newOrderServiceForTest(db)
	status := constants.OrderStatusDelivered
	crewID := crew.ID
	updated, err := svc.UpdateOrder(order.ID, UpdateOrderInput{Status: &status, DeliveryCrewID: &crewID})
	if err != nil {
		t.Fatalf("update order failed: %v", err)
	}
	if updated.Status != constants.OrderStatusDelivered {
		t.Fatalf("status want %s got %s", constants.OrderStatusDelivered, updated.Status)
	}
	if updated.DeliveryCrewID == nil || *updated.DeliveryCrewID != crew.ID {
		t.Fatalf("delivery crew id want %d got %v", crew.ID, updated.DeliveryCrewID)
	}
	if updated.DeliveredAt == nil {
		t.Fatalf("delivered_at should be set")
	}
}

func TestDeleteOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := seedUser(t, db, "maria", constants.RoleCustomer)

	order := &models.Order{
		UserID: customer.ID,
		Status: constants.OrderStatusOutForDelivery,
		Total:  models.NewMoneyFromDecimal(decimal.NewFromFloat(10.00)),
	}
	mustCreate(t, db, order)

	svc := newOrderServiceForTest(db)
	if err := svc.DeleteOrder(order.ID); err != nil {
		t.Fatalf("delete order failed: %v", err)
	}
	if err := svc.DeleteOrder(order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("deleted order want ErrOrderNotFound got %v", err)
	}
}
