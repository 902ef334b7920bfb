package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrNoActiveOrder     = errors.New("no active order")
	ErrItemNotInCart     = errors.New("item is not in cart")
)

// ICartService 購物車操作介面
// 購物車即使用者唯一一張未結帳訂單
type ICartService interface {
	AddItem(ctx context.Context, userID uint, slug string) (*model.Order, error)
	RemoveItem(ctx context.Context, userID uint, slug string) (*model.Order, error)
	DecrementItem(ctx context.Context, userID uint, slug string) (*model.Order, error)
	GetOpenOrder(ctx context.Context, userID uint) (*model.Order, error)
}

type CartService struct {
	store db.Store
}

func NewCartService(store db.Store) *CartService {
	return &CartService{store: store}
}

// AddItem 加入商品到購物車
// 整個操作在單一交易內，同使用者並發請求不會產生重複購物車或遺失數量
// 錯誤:
//   - ErrProductNotFound: 商品不存在
//   - ErrOutOfStock: 商品無庫存
//   - ErrInsufficientStock: 加購數量超過庫存
func (s *CartService) AddItem(ctx context.Context, userID uint, slug string) (*model.Order, error) {
	var result *model.Order
	err := s.store.ExecTx(ctx, func(tx db.Store) error {
		product, err := tx.GetProductBySlug(ctx, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}
		if product.Stock == 0 {
			return ErrOutOfStock
		}

		order, err := s.getOrCreateOpenOrder(ctx, tx, userID)
		if err != nil {
			return err
		}

		item, err := tx.GetOpenOrderItem(ctx, userID, product.ProductID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if item != nil {
			// 數量上限為庫存
			if item.Quantity >= int(product.Stock) {
				return ErrInsufficientStock
			}
			if err := tx.IncrementOrderItemQuantity(ctx, item.ItemID, 1); err != nil {
				return err
			}
		} else {
			newItem := &model.OrderItem{
				OrderID:   order.OrderID,
				UserID:    userID,
				ProductID: product.ProductID,
				Quantity:  1,
			}
			if err := tx.CreateOrderItem(ctx, newItem); err != nil {
				return err
			}
		}

		result, err = tx.GetOpenOrderByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveItem 從購物車整條移除商品，不是減一
// 錯誤:
//   - ErrNoActiveOrder: 沒有購物車
//   - ErrItemNotInCart: 商品不在購物車內
func (s *CartService) RemoveItem(ctx context.Context, userID uint, slug string) (*model.Order, error) {
	var result *model.Order
	err := s.store.ExecTx(ctx, func(tx db.Store) error {
		item, err := s.getOpenItemBySlug(ctx, tx, userID, slug)
		if err != nil {
			return err
		}

		if err := tx.HardDeleteOrderItem(ctx, item.ItemID); err != nil {
			return err
		}

		result, err = tx.GetOpenOrderByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DecrementItem 購物車商品數量減一，數量為一時整條移除
// 錯誤同 RemoveItem
func (s *CartService) DecrementItem(ctx context.Context, userID uint, slug string) (*model.Order, error) {
	var result *model.Order
	err := s.store.ExecTx(ctx, func(tx db.Store) error {
		item, err := s.getOpenItemBySlug(ctx, tx, userID, slug)
		if err != nil {
			return err
		}

		if item.Quantity > 1 {
			if err := tx.IncrementOrderItemQuantity(ctx, item.ItemID, -1); err != nil {
				return err
			}
		} else {
			if err := tx.HardDeleteOrderItem(ctx, item.ItemID); err != nil {
				return err
			}
		}

		result, err = tx.GetOpenOrderByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetOpenOrder 取得購物車
// 錯誤:
//   - ErrNoActiveOrder: 沒有購物車
func (s *CartService) GetOpenOrder(ctx context.Context, userID uint) (*model.Order, error) {
	order, err := s.store.GetOpenOrderByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveOrder
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// 取得或建立未結帳訂單
// 先查詢再建立的競態由 partial unique index 擋下，
// 同時建立的另一個請求會因 constraint 失敗
func (s *CartService) getOrCreateOpenOrder(ctx context.Context, tx db.Store, userID uint) (*model.Order, error) {
	order, err := tx.GetOpenOrderByUserID(ctx, userID)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order = &model.Order{
		UserID:      userID,
		RefCode:     util.GenerateRefCode(),
		OrderedDate: time.Now(),
	}
	if err := tx.CreateOrder(ctx, order); err != nil {
		// 另一個請求搶先建立，改讀它的
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return tx.GetOpenOrderByUserID(ctx, userID)
		}
		return nil, err
	}
	return order, nil
}

func (s *CartService) getOpenItemBySlug(ctx context.Context, tx db.Store, userID uint, slug string) (*model.OrderItem, error) {
	_, err := tx.GetOpenOrderByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveOrder
	}
	if err != nil {
		return nil, err
	}

	product, err := tx.GetProductBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	item, err := tx.GetOpenOrderItem(ctx, userID, product.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotInCart
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

var _ ICartService = (*CartService)(nil)
