package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/littlelemon-next/internal/constants"
	"github.com/littlelemon-next/internal/http/response"
	"github.com/littlelemon-next/internal/repository"
	"github.com/littlelemon-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderRequest 经理更新订单请求
type UpdateOrderRequest struct {
	Status         *string `json:"status"`
	DeliveryCrewID *uint   `json:"delivery_crew_id"`
}

// normalizeStatusInput 归一化状态入参，兼容历史数字编码
func normalizeStatusInput(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.OrderStatusOutForDelivery, strconv.Itoa(constants.OrderStatusCodeOutForDelivery):
		return constants.OrderStatusOutForDelivery, true
	case constants.OrderStatusDelivered, strconv.Itoa(constants.OrderStatusCodeDelivered):
		return constants.OrderStatusDelivered, true
	default:
		return "", false
	}
}

func parseOrderID(c *gin.Context, param string) (uint, bool) {
	orderID, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(orderID), true
}

// ListOrders 获取订单列表
// 顾客仅见自己的订单，经理可见全量并支持过滤
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, ok := normalizeStatusInput(raw)
		if !ok {
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
			return
		}
		filter.Status = status
	}

	role := getUserRole(c)
	var (
		orders interface{}
		total  int64
		err    error
	)
	if role == constants.RoleManager || role == constants.RoleAdmin {
		if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
			if id, perr := strconv.ParseUint(raw, 10, 64); perr == nil {
				filter.UserID = uint(id)
			}
		}
		orders, total, err = h.OrderService.ListOrders(filter)
	} else {
		filter.UserID = userID
		orders, total, err = h.OrderService.ListOrdersByUser(filter)
	}
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// PlaceOrder 购物车结算下单
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.Checkout(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, response.CodeBadRequest, "error.cart_empty", nil)
		default:
			respondError(c, response.CodeInternal, "error.order_create_failed", err)
		}
		return
	}
	response.Success(c, order)
}

// GetOrder 获取订单详情
// 顾客仅能查看自己的订单，经理可查看任意订单
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c, "order_id")
	if !ok {
		return
	}

	role := getUserRole(c)
	var order interface{}
	var err error
	if role == constants.RoleManager || role == constants.RoleAdmin {
		order, err = h.OrderService.GetOrder(orderID)
	} else {
		order, err = h.OrderService.GetOrderByUser(orderID, userID)
	}
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}

// ensureOrderOwnership 校验非经理角色只能操作自己的订单
func (h *Handler) ensureOrderOwnership(c *gin.Context, orderID uint) bool {
	role := getUserRole(c)
	if role == constants.RoleManager || role == constants.RoleAdmin {
		return true
	}
	userID, ok := getUserID(c)
	if !ok {
		return false
	}
	if _, err := h.OrderService.GetOrderByUser(orderID, userID); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return false
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return false
	}
	return true
}

// UpdateOrder 更新订单
// 经理可改状态与配送员指派；下单用户仅能更新自己的订单，且状态与指派字段不可动
func (h *Handler) UpdateOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c, "order_id")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	input := service.UpdateOrderInput{DeliveryCrewID: req.DeliveryCrewID}
	if req.Status != nil {
		status, ok := normalizeStatusInput(*req.Status)
		if !ok {
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
			return
		}
		input.Status = &status
	}

	role := getUserRole(c)
	if role != constants.RoleManager && role != constants.RoleAdmin {
		if !h.ensureOrderOwnership(c, orderID) {
			return
		}
		if input.Status != nil || input.DeliveryCrewID != nil {
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
			return
		}
	}

	order, err := h.OrderService.UpdateOrder(orderID, input)
	if err != nil {
		respondOrderUpdateError(c, err)
		return
	}
	response.Success(c, order)
}

// PatchOrder 经理部分更新订单
func (h *Handler) PatchOrder(c *gin.Context) {
	h.UpdateOrder(c)
}

// DeleteOrder 删除订单（下单用户可删自己的订单，经理不受限制）
func (h *Handler) DeleteOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c, "order_id")
	if !ok {
		return
	}
	if !h.ensureOrderOwnership(c, orderID) {
		return
	}

	if err := h.OrderService.DeleteOrder(orderID); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_update_failed", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
