package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/littlelemon-next/internal/constants"
	"github.com/littlelemon-next/internal/http/response"
	"github.com/littlelemon-next/internal/models"
	"github.com/littlelemon-next/internal/provider"
	"github.com/littlelemon-next/internal/repository"
	"github.com/littlelemon-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// setupOrderHandlerTest 初始化内存数据库与订单处理器
func setupOrderHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	orderService := service.NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
	return New(&provider.Container{OrderService: orderService}), db
}

func seedHandlerUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@littlelemon.local",
		PasswordHash: "x",
		Role:         role,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func seedHandlerOrder(t *testing.T, db *gorm.DB, userID uint) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:   userID,
		Status:   constants.OrderStatusOutForDelivery,
		Total:    models.NewMoneyFromDecimal(decimal.NewFromFloat(28.00)),
		PlacedAt: time.Now(),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

// invokeOrderHandler 以指定身份调用订单处理器并解析统一响应
func invokeOrderHandler(t *testing.T, handle gin.HandlerFunc, method string, userID uint, role string, orderID uint, body interface{}) *response.Response {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	path := "/api/v1/orders/" + strconv.FormatUint(uint64(orderID), 10)
	req := httptest.NewRequest(method, path, nil)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	c.Params = gin.Params{{Key: "order_id", Value: strconv.FormatUint(uint64(orderID), 10)}}
	c.Set("user_id", userID)
	c.Set("user_role", role)

	handle(c)

	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response failed: %v (%s)", err, w.Body.String())
	}
	return &envelope
}

func TestUpdateOrderOwnerCannotChangeStatusOrCrew(t *testing.T) {
	handler, db := setupOrderHandlerTest(t)
	owner := seedHandlerUser(t, db, "zhangsan", constants.RoleCustomer)
	crew := seedHandlerUser(t, db, "rider", constants.RoleDeliveryCrew)
	order := seedHandlerOrder(t, db, owner.ID)

	envelope := invokeOrderHandler(t, handler.UpdateOrder, "PUT", owner.ID, constants.RoleCustomer, order.ID, gin.H{
		"status": constants.OrderStatusDelivered,
	})
	if envelope.StatusCode != response.CodeForbidden {
		t.Fatalf("owner status change want %d got %d", response.CodeForbidden, envelope.StatusCode)
	}

	envelope = invokeOrderHandler(t, handler.UpdateOrder, "PATCH", owner.ID, constants.RoleCustomer, order.ID, gin.H{
		"delivery_crew_id": crew.ID,
	})
	if envelope.StatusCode != response.CodeForbidden {
		t.Fatalf("owner crew assignment want %d got %d", response.CodeForbidden, envelope.StatusCode)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusOutForDelivery || stored.DeliveryCrewID != nil {
		t.Fatalf("order should be untouched, got status %q crew %v", stored.Status, stored.DeliveryCrewID)
	}

	// 不带受限字段的更新对下单用户放行
	envelope = invokeOrderHandler(t, handler.UpdateOrder, "PUT", owner.ID, constants.RoleCustomer, order.ID, gin.H{})
	if envelope.StatusCode != response.CodeOK {
		t.Fatalf("owner no-op update want %d got %d", response.CodeOK, envelope.StatusCode)
	}
}

func TestUpdateOrderManagerSetsStatusAndCrew(t *testing.T) {
	handler, db := setupOrderHandlerTest(t)
	owner := seedHandlerUser(t, db, "zhangsan", constants.RoleCustomer)
	crew := seedHandlerUser(t, db, "rider", constants.RoleDeliveryCrew)
	manager := seedHandlerUser(t, db, "boss", constants.RoleManager)
	order := seedHandlerOrder(t, db, owner.ID)

	envelope := invokeOrderHandler(t, handler.UpdateOrder, "PUT", manager.ID, constants.RoleManager, order.ID, gin.H{
		"status":           constants.OrderStatusDelivered,
		"delivery_crew_id": crew.ID,
	})
	if envelope.StatusCode != response.CodeOK {
		t.Fatalf("manager update want %d got %d", response.CodeOK, envelope.StatusCode)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusDelivered {
		t.Fatalf("status want delivered got %q", stored.Status)
	}
	if stored.DeliveryCrewID == nil || *stored.DeliveryCrewID != crew.ID {
		t.Fatalf("delivery crew want %d got %v", crew.ID, stored.DeliveryCrewID)
	}
}

func TestDeleteOrderLimitedToOwner(t *testing.T) {
	handler, db := setupOrderHandlerTest(t)
	owner := seedHandlerUser(t, db, "zhangsan", constants.RoleCustomer)
	stranger := seedHandlerUser(t, db, "lisi", constants.RoleCustomer)
	order := seedHandlerOrder(t, db, owner.ID)

	envelope := invokeOrderHandler(t, handler.DeleteOrder, "DELETE", stranger.ID, constants.RoleCustomer, order.ID, nil)
	if envelope.StatusCode != response.CodeNotFound {
		t.Fatalf("stranger delete want %d got %d", response.CodeNotFound, envelope.StatusCode)
	}
	if _, err := handler.OrderService.GetOrder(order.ID); err != nil {
		t.Fatalf("order should survive stranger delete: %v", err)
	}

	envelope = invokeOrderHandler(t, handler.DeleteOrder, "DELETE", owner.ID, constants.RoleCustomer, order.ID, nil)
	if envelope.StatusCode != response.CodeOK {
		t.Fatalf("owner delete want %d got %d", response.CodeOK, envelope.StatusCode)
	}
	if _, err := handler.OrderService.GetOrder(order.ID); !errors.Is(err, service.ErrOrderNotFound) {
		t.Fatalf("deleted order want ErrOrderNotFound got %v", err)
	}
}
