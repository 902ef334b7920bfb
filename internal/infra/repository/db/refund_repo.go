package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

type RefundRepo struct {
	db *DbDao
}

func NewRefundRepo(db *DbDao) *RefundRepo {
	return &RefundRepo{db: db}
}

// Create - 創建退款申請
func (s *RefundRepo) CreateRefund(ctx context.Context, refund *model.Refund) error {
	return s.db.WithContext(ctx).Create(refund).Error
}

// Read - 根據訂單ID查詢退款申請
func (s *RefundRepo) GetRefundsByOrderID(ctx context.Context, orderID uint) ([]model.Refund, error) {
	var refunds []model.Refund
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&refunds).Error
	return refunds, err
}

// Update - 批次核准退款申請
func (s *RefundRepo) AcceptRefundsByOrderIDs(ctx context.Context, orderIDs []uint) error {
	return s.db.WithContext(ctx).Model(&model.Refund{}).
		Where("order_id IN ?", orderIDs).
		Update("accepted", true).Error
}

// 根據條件分頁查詢退款申請
func (s *RefundRepo) GetRefundsPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Refund, int64, error) {
	var refunds []model.Refund
	var total int64

	offset := (page - 1) * pageSize
	query := s.db.WithContext(ctx).Model(&model.Refund{})

	for key, value := range condition {
		query = query.Where(key+" = ?", value)
	}

	query.Count(&total)

	err := query.Offset(offset).Limit(pageSize).Find(&refunds).Error

	return refunds, total, err
}
