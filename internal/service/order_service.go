package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// IOrderService 訂單查詢與金額計算介面
type IOrderService interface {
	ComputeTotal(order *model.Order) decimal.Decimal
	GetOrder(ctx context.Context, orderID uint) (*model.Order, error)
	GetOrderByRefCode(ctx context.Context, refCode string) (*model.Order, error)
	GetUserOrders(ctx context.Context, userID uint) ([]model.Order, error)
}

type OrderService struct {
	store db.Store
}

func NewOrderService(store db.Store) *OrderService {
	return &OrderService{store: store}
}

/*
計算訂單總金額
Σ(數量 x 單價) - 折價券折扣，空訂單為零
*/
func (o *OrderService) ComputeTotal(order *model.Order) decimal.Decimal {
	return order.GetTotal()
}

func (o *OrderService) GetOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := o.store.GetOrderByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (o *OrderService) GetOrderByRefCode(ctx context.Context, refCode string) (*model.Order, error) {
	order, err := o.store.GetOrderByRefCode(ctx, refCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetUserOrders 使用者已結帳訂單，結帳時間新到舊
func (o *OrderService) GetUserOrders(ctx context.Context, userID uint) ([]model.Order, error) {
	return o.store.GetOrderedOrdersByUserID(ctx, userID)
}

var _ IOrderService = (*OrderService)(nil)
