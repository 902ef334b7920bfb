package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

type PaymentRepo struct {
	db *DbDao
}

func NewPaymentRepo(db *DbDao) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// Create - 創建付款紀錄
func (s *PaymentRepo) CreatePayment(ctx context.Context, payment *model.Payment) error {
	return s.db.WithContext(ctx).Create(payment).Error
}

// Read - 根據ID查詢付款紀錄
func (s *PaymentRepo) GetPaymentByID(ctx context.Context, id uint) (*model.Payment, error) {
	var payment model.Payment
	err := s.db.WithContext(ctx).First(&payment, "payment_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// 根據條件分頁查詢付款紀錄
func (s *PaymentRepo) GetPaymentsPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Payment, int64, error) {
	var payments []model.Payment
	var total int64

	offset := (page - 1) * pageSize
	query := s.db.WithContext(ctx).Model(&model.Payment{})

	for key, value := range condition {
		query = query.Where(key+" = ?", value)
	}

	query.Count(&total)

	err := query.Offset(offset).Limit(pageSize).Find(&payments).Error

	return payments, total, err
}
