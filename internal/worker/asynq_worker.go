package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/littlelemon-next/internal/logger"
	"github.com/littlelemon-next/internal/provider"
	"github.com/littlelemon-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
}

// handleOrderStatusNotify 订单状态变更通知
// 当前投递渠道为结构化日志，外部通知网关接入后在此替换发送实现
func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_notify_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}

	receiverEmail, err := c.OrderRepo.ResolveOwnerEmailByOrderID(order.ID)
	if err != nil {
		logger.Warnw("worker_order_status_notify_resolve_receiver_failed", "order_id", order.ID, "error", err)
		return err
	}
	if strings.TrimSpace(receiverEmail) == "" {
		logger.Debugw("worker_order_status_notify_skip_empty_receiver", "order_id", order.ID)
		return nil
	}

	logger.Infow("order_status_notify",
		"order_id", order.ID,
		"user_id", order.UserID,
		"status", status,
		"total", order.Total,
		"receiver_email", receiverEmail,
	)
	return nil
}
