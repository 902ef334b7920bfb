package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/gateway"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderMismatch      = errors.New("no open order matches gateway reference")
	ErrGatewayUnavailable = gateway.ErrGatewayUnavailable
)

// AddressInput 結帳時的收件地址
type AddressInput struct {
	StreetAddress string
	ApartmentAddr string
	Country       string
	Zip           string
}

// GatewayOrder 外部金流扣款單資訊，回給前端發起付款
type GatewayOrder struct {
	GatewayOrderRef string          `json:"gateway_order_ref"`
	AmountMinor     int64           `json:"amount_minor"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}

// ICheckoutService 結帳操作介面
// 結帳是單向轉換，結帳後訂單不再回到購物車狀態
type ICheckoutService interface {
	RecordCashOnDelivery(ctx context.Context, userID uint, addr AddressInput) (*model.Order, error)
	InitiateGatewayOrder(ctx context.Context, userID uint) (*GatewayOrder, error)
	RecordGatewayPayment(ctx context.Context, gatewayOrderRef, gatewayPaymentID string) (*model.Order, error)
}

type CheckoutService struct {
	store         db.Store
	gateway       gateway.IPaymentGateway
	eventProducer producer.IOrderEventProducer
	currency      string
}

func NewCheckoutService(store db.Store, gw gateway.IPaymentGateway, eventProducer producer.IOrderEventProducer, currency string) *CheckoutService {
	return &CheckoutService{
		store:         store,
		gateway:       gw,
		eventProducer: eventProducer,
		currency:      currency,
	}
}

// RecordCashOnDelivery 貨到付款結帳
// 地址同時作為收件與帳單地址
// 錯誤:
//   - ErrNoActiveOrder: 沒有購物車
func (s *CheckoutService) RecordCashOnDelivery(ctx context.Context, userID uint, addr AddressInput) (*model.Order, error) {
	var orderID uint
	var payment *model.Payment
	err := s.store.ExecTx(ctx, func(tx db.Store) error {
		order, err := tx.GetOpenOrderByUserID(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveOrder
		}
		if err != nil {
			return err
		}

		address := &model.Address{
			UserID:        userID,
			StreetAddress: addr.StreetAddress,
			ApartmentAddr: addr.ApartmentAddr,
			Country:       addr.Country,
			Zip:           addr.Zip,
			AddressType:   model.AddressTypeShipping,
			Default:       true,
		}
		if err := tx.CreateAddress(ctx, address); err != nil {
			return err
		}
		if err := tx.SetOrderAddresses(ctx, order.OrderID, address.AddressID, address.AddressID); err != nil {
			return err
		}

		payment = &model.Payment{
			UserID: userID,
			Amount: order.GetTotal(), // 以結帳當下金額入帳
			Method: model.PaymentMethodCOD,
		}
		orderID = order.OrderID
		return s.finalize(ctx, tx, order, payment)
	})
	if err != nil {
		return nil, err
	}

	return s.reloadAndPublish(ctx, orderID, payment)
}

// InitiateGatewayOrder 建立外部金流扣款單
// 遠端呼叫不在資料庫交易內，避免交易跨網路邊界
// 錯誤:
//   - ErrNoActiveOrder: 沒有購物車
//   - ErrGatewayUnavailable: 金流方呼叫失敗，不重試
func (s *CheckoutService) InitiateGatewayOrder(ctx context.Context, userID uint) (*GatewayOrder, error) {
	order, err := s.store.GetOpenOrderByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveOrder
	}
	if err != nil {
		return nil, err
	}

	total := order.GetTotal()
	amountMinor := total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	gatewayRef, err := s.gateway.CreateOrder(ctx, amountMinor, s.currency)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetGatewayOrderRef(ctx, order.OrderID, gatewayRef); err != nil {
		return nil, err
	}

	return &GatewayOrder{
		GatewayOrderRef: gatewayRef,
		AmountMinor:     amountMinor,
		Amount:          total,
		Currency:        s.currency,
	}, nil
}

// RecordGatewayPayment 金流callback入帳
// 只比對未結帳訂單，重複callback或單號不符都會被擋下
// 錯誤:
//   - ErrOrderMismatch: 沒有未結帳訂單匹配該金流單號
func (s *CheckoutService) RecordGatewayPayment(ctx context.Context, gatewayOrderRef, gatewayPaymentID string) (*model.Order, error) {
	var orderID uint
	var payment *model.Payment
	err := s.store.ExecTx(ctx, func(tx db.Store) error {
		order, err := tx.GetOpenOrderByGatewayRef(ctx, gatewayOrderRef)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderMismatch
		}
		if err != nil {
			return err
		}

		payment = &model.Payment{
			UserID:           order.UserID,
			Amount:           order.GetTotal(),
			Method:           model.PaymentMethodGateway,
			GatewayPaymentID: &gatewayPaymentID,
		}
		orderID = order.OrderID
		return s.finalize(ctx, tx, order, payment)
	})
	if err != nil {
		return nil, err
	}

	return s.reloadAndPublish(ctx, orderID, payment)
}

// 結帳: 建立付款、訂單標記已結帳、明細全部標記已結帳
// 必須在呼叫端交易內執行
func (s *CheckoutService) finalize(ctx context.Context, tx db.Store, order *model.Order, payment *model.Payment) error {
	if err := tx.CreatePayment(ctx, payment); err != nil {
		return err
	}
	if err := tx.MarkOrderOrdered(ctx, order.OrderID, payment.PaymentID, time.Now()); err != nil {
		return err
	}
	return tx.MarkOrderItemsOrdered(ctx, order.OrderID)
}

func (s *CheckoutService) reloadAndPublish(ctx context.Context, orderID uint, payment *model.Payment) (*model.Order, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// 次要事件發布，失敗只記錄，不影響結帳結果
	go func(o model.Order, p model.Payment) {
		if err := s.eventProducer.ProduceOrderPlacedEvent(context.Background(), &o, &p); err != nil {
			log.Warn().Err(err).Uint("order_id", o.OrderID).Msg("produce order placed event failed")
		}
	}(*order, *payment)

	return order, nil
}

var _ ICheckoutService = (*CheckoutService)(nil)
