package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type EventType string

const (
	OrderPlacedEventName          EventType = "order.placed"
	OrderRefundRequestedEventName EventType = "order.refund_requested"
)

type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	OccuredAt time.Time `json:"occured_at"`
}

// OrderPlacedEvent 訂單結帳完成事件，提供出貨/通知等下游服務消費
type OrderPlacedEvent struct {
	BaseEvent
	OrderID       uint   `json:"order_id"`
	UserID        uint   `json:"user_id"`
	RefCode       string `json:"ref_code"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
}

// OrderRefundRequestedEvent 退款申請事件
type OrderRefundRequestedEvent struct {
	BaseEvent
	OrderID uint   `json:"order_id"`
	RefCode string `json:"ref_code"`
	Email   string `json:"email"`
}

// IOrderEventProducer 訂單事件發布介面
type IOrderEventProducer interface {
	ProduceOrderPlacedEvent(ctx context.Context, order *model.Order, payment *model.Payment) error
	ProduceRefundRequestedEvent(ctx context.Context, order *model.Order, email string) error
	Close() error
}

// 以userID當key做分區，同一使用者的事件保序
// topic: 由writer創建時設置
type OrderEventProducer struct {
	writer *kafka.Writer
}

func NewOrderEventProducer(brokers []string, topic string) *OrderEventProducer {
	return &OrderEventProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *OrderEventProducer) ProduceOrderPlacedEvent(ctx context.Context, order *model.Order, payment *model.Payment) error {
	event := OrderPlacedEvent{
		BaseEvent: BaseEvent{
			EventID:   uuid.New().String(),
			EventType: OrderPlacedEventName,
			OccuredAt: time.Now(),
		},
		OrderID:       order.OrderID,
		UserID:        order.UserID,
		RefCode:       order.RefCode,
		Amount:        payment.Amount.String(),
		PaymentMethod: payment.Method,
	}

	return p.produce(ctx, order.UserID, event.EventType, event)
}

func (p *OrderEventProducer) ProduceRefundRequestedEvent(ctx context.Context, order *model.Order, email string) error {
	event := OrderRefundRequestedEvent{
		BaseEvent: BaseEvent{
			EventID:   uuid.New().String(),
			EventType: OrderRefundRequestedEventName,
			OccuredAt: time.Now(),
		},
		OrderID: order.OrderID,
		RefCode: order.RefCode,
		Email:   email,
	}

	return p.produce(ctx, order.UserID, event.EventType, event)
}

func (p *OrderEventProducer) produce(ctx context.Context, userID uint, eventType EventType, payload interface{}) error {
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(userID), 10)),
		Value: eventBytes,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte(eventType),
			},
		},
	})
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)
