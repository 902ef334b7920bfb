package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"gorm.io/gorm"
)

var ErrCouponNotFound = errors.New("coupon not found")

// ICouponService 折價券操作介面
type ICouponService interface {
	ApplyCoupon(ctx context.Context, userID uint, code string) (*model.Order, error)
}

type CouponService struct {
	store db.Store
}

func NewCouponService(store db.Store) *CouponService {
	return &CouponService{store: store}
}

// ApplyCoupon 折價券掛上購物車
// 解析得到的折價券一律接受，不檢查效期或使用次數
// 錯誤:
//   - ErrCouponNotFound: 代碼不存在
//   - ErrNoActiveOrder: 沒有購物車
func (s *CouponService) ApplyCoupon(ctx context.Context, userID uint, code string) (*model.Order, error) {
	var result *model.Order
	err := s.store.ExecTx(ctx, func(tx db.Store) error {
		coupon, err := tx.GetCouponByCode(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCouponNotFound
		}
		if err != nil {
			return err
		}

		order, err := tx.GetOpenOrderByUserID(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveOrder
		}
		if err != nil {
			return err
		}

		if err := tx.SetOrderCoupon(ctx, order.OrderID, coupon.CouponID); err != nil {
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

var _ ICouponService = (*CouponService)(nil)
