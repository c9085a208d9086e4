package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/martshift/dashboard-service/internal/catalog"
	catalogdto "github.com/martshift/dashboard-service/internal/catalog/dto"
	"github.com/martshift/dashboard-service/internal/metrics"
	"github.com/martshift/dashboard-service/internal/model"
	"github.com/martshift/dashboard-service/internal/order"
	"github.com/martshift/dashboard-service/pkg/broker"
	"github.com/martshift/dashboard-service/pkg/logger"
)

// OrderListener ingests OrderCreated events from the POS topic: it records
// the order row the dashboard reads and deducts sold stock from the catalog.
type OrderListener struct {
	consumer *broker.KafkaConsumer
	repo     order.Repository
	catalog  catalog.UseCase
	metrics  *metrics.Metrics
	logger   logger.ZapLogger
}

func NewOrderListener(consumer *broker.KafkaConsumer, repo order.Repository, catalogUC catalog.UseCase, m *metrics.Metrics, log logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		repo:     repo,
		catalog:  catalogUC,
		metrics:  m,
		logger:   log,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting order Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID          string             `json:"id"`
	TotalAmount int64              `json:"total_amount"`
	Source      string             `json:"source"`
	Items       []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("Processing OrderCreated event", zap.String("order_id", event.Payload.ID))

	createdAt := event.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	source := event.Payload.Source
	if source == "" {
		source = "pos"
	}

	o := &model.Order{
		ID:          event.Payload.ID,
		TotalAmount: event.Payload.TotalAmount,
		ItemCount:   len(event.Payload.Items),
		Source:      source,
		CreatedAt:   createdAt,
	}
	if err := l.repo.Create(ctx, o); err != nil {
		l.logger.Error("Failed to record order", zap.String("order_id", o.ID), zap.Error(err))
		return
	}
	if l.metrics != nil {
		l.metrics.OrdersIngested.Inc()
	}

	for _, item := range event.Payload.Items {
		input := &catalogdto.AdjustStockInput{
			ProductID:     item.ProductID,
			StockChange:   -item.Quantity,
			Reason:        "Order sale",
			ReferenceID:   event.Payload.ID,
			ReferenceType: "sale",
			UserID:        "system",
		}
		if _, err := l.catalog.AdjustStock(ctx, input); err != nil {
			l.logger.Error("Failed to deduct stock for order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
		}
	}
}
