package worker

import (
	"context"
	"testing"

	"github.com/littlelemon-next/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleOrderStatusNotifyInvalidJSON(t *testing.T) {
	consumer := NewConsumer(nil)
	task := asynq.NewTask(queue.TaskOrderStatusNotify, []byte("{not-json"))

	if err := consumer.handleOrderStatusNotify(context.Background(), task); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}

func TestHandleOrderStatusNotifyZeroOrderID(t *testing.T) {
	consumer := NewConsumer(nil)
	task, err := queue.NewOrderStatusNotifyTask(queue.OrderStatusNotifyPayload{OrderID: 0})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}

	if err := consumer.handleOrderStatusNotify(context.Background(), task); err != nil {
		t.Fatalf("zero order id should be skipped, got %v", err)
	}
}

func TestHandleOrderStatusNotifyNilTask(t *testing.T) {
	consumer := NewConsumer(nil)
	if err := consumer.handleOrderStatusNotify(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
}
