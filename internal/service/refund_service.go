package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// IRefundService 退款申請介面
type IRefundService interface {
	RequestRefund(ctx context.Context, refCode, email, reason string) (*model.Refund, error)
	GetRefundsByOrder(ctx context.Context, orderID uint) ([]model.Refund, error)
}

type RefundService struct {
	store         db.Store
	eventProducer producer.IOrderEventProducer
}

func NewRefundService(store db.Store, eventProducer producer.IOrderEventProducer) *RefundService {
	return &RefundService{store: store, eventProducer: eventProducer}
}

// RequestRefund 以訂單編號申請退款
// 訂單標記refund_requested並留下申請紀錄，重複申請會累積多筆紀錄
// 錯誤:
//   - ErrOrderNotFound: 編號查無訂單，不建立任何紀錄
func (s *RefundService) RequestRefund(ctx context.Context, refCode, email, reason string) (*model.Refund, error) {
	var refund *model.Refund
	var order *model.Order
	err := s.store.ExecTx(ctx, func(tx db.Store) error {
		var err error
		order, err = tx.GetOrderByRefCode(ctx, refCode)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.SetRefundRequested(ctx, order.OrderID, true); err != nil {
			return err
		}

		refund = &model.Refund{
			OrderID: order.OrderID,
			Reason:  reason,
			Email:   email,
		}
		return tx.CreateRefund(ctx, refund)
	})
	if err != nil {
		return nil, err
	}

	go func(o model.Order, email string) {
		if err := s.eventProducer.ProduceRefundRequestedEvent(context.Background(), &o, email); err != nil {
			log.Warn().Err(err).Uint("order_id", o.OrderID).Msg("produce refund requested event failed")
		}
	}(*order, email)

	return refund, nil
}

func (s *RefundService) GetRefundsByOrder(ctx context.Context, orderID uint) ([]model.Refund, error) {
	return s.store.GetRefundsByOrderID(ctx, orderID)
}

var _ IRefundService = (*RefundService)(nil)
