package api

import (
	"strconv"

	"github.com/littlelemon-next/internal/constants"
	"github.com/littlelemon-next/internal/http/response"
	"github.com/littlelemon-next/internal/repository"
	"github.com/littlelemon-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListDeliveryOrders 获取配送员名下订单列表
func (h *Handler) ListDeliveryOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:           page,
		PageSize:       pageSize,
		DeliveryCrewID: userID,
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := normalizeStatusInput(raw)
		if !ok {
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
			return
		}
		filter.Status = status
	}

	orders, total, err := h.OrderService.ListOrdersByDeliveryCrew(filter)
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

// UpdateOrderStatus 更新订单状态
// 配送员仅能推进被指派给自己的订单（派送中 → 已送达），经理不受指派限制
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c, "order_id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	status, valid := normalizeStatusInput(req.Status)
	if !valid {
		respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		return
	}

	role := getUserRole(c)
	if role == constants.RoleManager || role == constants.RoleAdmin {
		order, err := h.OrderService.UpdateOrder(orderID, service.UpdateOrderInput{Status: &status})
		if err != nil {
			respondOrderUpdateError(c, err)
			return
		}
		response.Success(c, order)
		return
	}

	if status != constants.OrderStatusDelivered {
		respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
		return
	}
	order, err := h.OrderService.MarkDelivered(orderID, userID)
	if err != nil {
		respondOrderUpdateError(c, err)
		return
	}
	response.Success(c, order)
}

// AssignOrder 将订单指派给配送员（经理）
// 目标用户必须持有配送员角色
func (h *Handler) AssignOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c, "order_id")
	if !ok {
		return
	}
	crewID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || crewID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	order, assignErr := h.OrderService.AssignDeliveryCrew(orderID, uint(crewID))
	if assignErr != nil {
		respondOrderUpdateError(c, assignErr)
		return
	}
	response.Success(c, order)
}
