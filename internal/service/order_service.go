package service

import (
	"time"

	"github.com/littlelemon-next/internal/constants"
	"github.com/littlelemon-next/internal/logger"
	"github.com/littlelemon-next/internal/models"
	"github.com/littlelemon-next/internal/queue"
	"github.com/littlelemon-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// UpdateOrderInput 经理更新订单输入
type UpdateOrderInput struct {
	Status         *string
	DeliveryCrewID *uint
}

// Checkout 购物车结算为订单
// 整个流程在单个事务内完成：读取购物车、汇总金额、落订单与订单项、清空购物车。
// 购物车为空时不产生任何写入。
func (s *OrderService) Checkout(userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}

	var created *models.Order
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cartItems, err := cartRepo.ListByUser(userID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrCartEmpty
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(cartItems))
		now := time.Now()
		for _, line := range cartItems {
			total = total.Add(line.Price.Decimal)
			title := ""
			if line.MenuItem != nil {
				title = line.MenuItem.Title
			}
			items = append(items, models.OrderItem{
				MenuItemID: line.MenuItemID,
				Title:      title,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				Price:      line.Price,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}

		order := &models.Order{
			UserID:    userID,
			Status:    constants.OrderStatusOutForDelivery,
			Total:     models.NewMoneyFromDecimal(total),
			PlacedAt:  now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}

		if err := cartRepo.ClearByUser(userID); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyStatus(created.ID, created.Status)

	return s.orderRepo.GetByID(created.ID)
}

// GetOrderByUser 获取用户自己的订单详情
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrder 获取订单详情（经理端）
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrNotFound
	}
	return s.orderRepo.ListByUser(filter)
}

// ListOrders 订单列表（经理端，全量）
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// ListOrdersByDeliveryCrew 配送员名下订单列表
func (s *OrderService) ListOrdersByDeliveryCrew(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.DeliveryCrewID == 0 {
		return nil, 0, ErrNotFound
	}
	return s.orderRepo.ListByDeliveryCrew(filter)
}

// UpdateOrder 经理更新订单（状态与配送员指派）
func (s *OrderService) UpdateOrder(orderID uint, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	updates := map[string]interface{}{}
	notifiedStatus := ""

	if input.DeliveryCrewID != nil {
		crew, err := s.userRepo.GetByID(*input.DeliveryCrewID)
		if err != nil {
			return nil, err
		}
		if crew == nil {
			return nil, ErrNotFound
		}
		if crew.Role != constants.RoleDeliveryCrew {
			return nil, ErrNotDeliveryCrew
		}
		updates["delivery_crew_id"] = *input.DeliveryCrewID
	}

	if input.Status != nil {
		target := *input.Status
		if err := validateStatusTransition(order.Status, target); err != nil {
			return nil, err
		}
		if target != order.Status {
			updates["status"] = target
			if target == constants.OrderStatusDelivered {
				now := time.Now()
				updates["delivered_at"] = now
			}
			notifiedStatus = target
		}
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.orderRepo.UpdateFields(orderID, updates); err != nil {
			return nil, err
		}
	}
	if notifiedStatus != "" {
		s.notifyStatus(orderID, notifiedStatus)
	}

	return s.orderRepo.GetByID(orderID)
}

// AssignDeliveryCrew 将订单指派给配送员
// 目标用户必须持有配送员角色，否则拒绝指派
func (s *OrderService) AssignDeliveryCrew(orderID, crewUserID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	crew, err := s.userRepo.GetByID(crewUserID)
	if err != nil {
		return nil, err
	}
	if crew == nil {
		return nil, ErrNotFound
	}
	if crew.Role != constants.RoleDeliveryCrew {
		return nil, ErrNotDeliveryCrew
	}

	updates := map[string]interface{}{
		"delivery_crew_id": crewUserID,
		"updated_at":       time.Now(),
	}
	if err := s.orderRepo.UpdateFields(orderID, updates); err != nil {
		return nil, err
	}

	s.notifyStatus(orderID, order.Status)

	return s.orderRepo.GetByID(orderID)
}

// MarkDelivered 配送员将订单标记为已送达
// 仅被指派到该订单的配送员可操作，且状态只能由派送中前进到已送达
func (s *OrderService) MarkDelivered(orderID, crewUserID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.DeliveryCrewID == nil || *order.DeliveryCrewID != crewUserID {
		return nil, ErrNotAssignedCrew
	}
	if err := validateStatusTransition(order.Status, constants.OrderStatusDelivered); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       constants.OrderStatusDelivered,
		"delivered_at": now,
		"updated_at":   now,
	}
	if err := s.orderRepo.UpdateFields(orderID, updates); err != nil {
		return nil, err
	}

	s.notifyStatus(orderID, constants.OrderStatusDelivered)

	return s.orderRepo.GetByID(orderID)
}

// DeleteOrder 删除订单（经理端）
func (s *OrderService) DeleteOrder(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.Delete(orderID)
}

// validateStatusTransition 校验订单状态流转（单向：派送中 → 已送达）
func validateStatusTransition(current, target string) error {
	if target != constants.OrderStatusOutForDelivery && target != constants.OrderStatusDelivered {
		return ErrOrderStatusInvalid
	}
	if current == target {
		return nil
	}
	if current == constants.OrderStatusOutForDelivery && target == constants.OrderStatusDelivered {
		return nil
	}
	return ErrOrderStatusInvalid
}

func (s *OrderService) notifyStatus(orderID uint, status string) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusNotify(queue.OrderStatusNotifyPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_notify_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}
