package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

type CouponRepo struct {
	db *DbDao
}

func NewCouponRepo(db *DbDao) *CouponRepo {
	return &CouponRepo{db: db}
}

// Create - 創建折價券
func (s *CouponRepo) CreateCoupon(ctx context.Context, coupon *model.Coupon) error {
	return s.db.WithContext(ctx).Create(coupon).Error
}

// Read - 根據代碼查詢折價券
func (s *CouponRepo) GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := s.db.WithContext(ctx).First(&coupon, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Read - 查詢所有折價券
func (s *CouponRepo) GetAllCoupons(ctx context.Context) ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := s.db.WithContext(ctx).Find(&coupons).Error
	return coupons, err
}

// Delete - 硬刪除折價券
func (s *CouponRepo) HardDeleteCoupon(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&model.Coupon{}, id).Error
}
