package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

type ReviewRepo struct {
	db *DbDao
}

func NewReviewRepo(db *DbDao) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create - 創建商品評論
func (s *ReviewRepo) CreateReview(ctx context.Context, review *model.ProductReview) error {
	return s.db.WithContext(ctx).Create(review).Error
}

// Read - 查詢商品已核准評論
func (s *ReviewRepo) GetApprovedReviewsByProductID(ctx context.Context, productID uint) ([]model.ProductReview, error) {
	var reviews []model.ProductReview
	err := s.db.WithContext(ctx).
		Where("product_id = ? AND approved = true", productID).
		Find(&reviews).Error
	return reviews, err
}

// Update - 批次核准評論
func (s *ReviewRepo) ApproveReviewsBatch(ctx context.Context, reviewIDs []uint) error {
	return s.db.WithContext(ctx).Model(&model.ProductReview{}).
		Where("review_id IN ?", reviewIDs).
		Update("approved", true).Error
}

// 根據條件分頁查詢評論
func (s *ReviewRepo) GetReviewsPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.ProductReview, int64, error) {
	var reviews []model.ProductReview
	var total int64

	offset := (page - 1) * pageSize
	query := s.db.WithContext(ctx).Model(&model.ProductReview{})

	for key, value := range condition {
		query = query.Where(key+" = ?", value)
	}

	query.Count(&total)

	err := query.Offset(offset).Limit(pageSize).Find(&reviews).Error

	return reviews, total, err
}
