package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// IAdminService 後台管理操作介面
type IAdminService interface {
	ListOrders(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Order, int64, error)
	ListOrderItems(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.OrderItem, int64, error)
	ListAddresses(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Address, int64, error)
	ListPayments(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Payment, int64, error)
	ListRefunds(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Refund, int64, error)
	ListReviews(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.ProductReview, int64, error)
	ListUsers(ctx context.Context, page, pageSize int) ([]model.User, int64, error)
	ListProducts(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Product, int64, error)

	GrantRefunds(ctx context.Context, orderIDs []uint) error
	UpdateDelivery(ctx context.Context, orderID uint, beingDelivered, received bool) error

	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	UpdateStock(ctx context.Context, productID, stock uint) error
	MarkOutOfStock(ctx context.Context, productIDs []uint) error
	DeleteProduct(ctx context.Context, productID uint) error

	ApproveReviews(ctx context.Context, reviewIDs []uint) error
	CreateCoupon(ctx context.Context, coupon *model.Coupon) error
}

type AdminService struct {
	store        db.Store
	productCache redis_repo.IProductCacheRepository
}

func NewAdminService(store db.Store, productCache redis_repo.IProductCacheRepository) *AdminService {
	return &AdminService{store: store, productCache: productCache}
}

func (s *AdminService) ListOrders(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Order, int64, error) {
	return s.store.GetOrdersPaginatedWithCondition(ctx, page, pageSize, condition)
}

func (s *AdminService) ListOrderItems(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.OrderItem, int64, error) {
	return s.store.GetOrderItemsPaginatedWithCondition(ctx, page, pageSize, condition)
}

func (s *AdminService) ListAddresses(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Address, int64, error) {
	return s.store.GetAddressesPaginatedWithCondition(ctx, page, pageSize, condition)
}

func (s *AdminService) ListPayments(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Payment, int64, error) {
	return s.store.GetPaymentsPaginatedWithCondition(ctx, page, pageSize, condition)
}

func (s *AdminService) ListRefunds(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Refund, int64, error) {
	return s.store.GetRefundsPaginatedWithCondition(ctx, page, pageSize, condition)
}

func (s *AdminService) ListReviews(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.ProductReview, int64, error) {
	return s.store.GetReviewsPaginatedWithCondition(ctx, page, pageSize, condition)
}

func (s *AdminService) ListUsers(ctx context.Context, page, pageSize int) ([]model.User, int64, error) {
	return s.store.GetUsersPaginated(ctx, page, pageSize)
}

func (s *AdminService) ListProducts(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Product, int64, error) {
	return s.store.GetProductsPaginatedWithCondition(ctx, page, pageSize, condition)
}

// GrantRefunds 批次核准退款
// 訂單標記refund_granted並清掉refund_requested，申請紀錄標記accepted
func (s *AdminService) GrantRefunds(ctx context.Context, orderIDs []uint) error {
	if len(orderIDs) == 0 {
		return nil
	}
	return s.store.ExecTx(ctx, func(tx db.Store) error {
		if err := tx.GrantRefundBatch(ctx, orderIDs); err != nil {
			return err
		}
		return tx.AcceptRefundsByOrderIDs(ctx, orderIDs)
	})
}

func (s *AdminService) UpdateDelivery(ctx context.Context, orderID uint, beingDelivered, received bool) error {
	err := s.store.UpdateDeliveryFlags(ctx, orderID, beingDelivered, received)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	return err
}

func (s *AdminService) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.store.CreateProduct(ctx, product)
}

func (s *AdminService) UpdateProduct(ctx context.Context, product *model.Product) error {
	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return err
	}
	s.invalidateProductCache(ctx, product.Slug)
	return nil
}

func (s *AdminService) UpdateStock(ctx context.Context, productID, stock uint) error {
	product, err := s.store.GetProductByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	if err := s.store.UpdateStock(ctx, productID, stock); err != nil {
		return err
	}
	s.invalidateProductCache(ctx, product.Slug)
	return nil
}

// MarkOutOfStock 批次把商品庫存歸零
func (s *AdminService) MarkOutOfStock(ctx context.Context, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}

	slugs := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		product, err := s.store.GetProductByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		slugs = append(slugs, product.Slug)
	}

	if err := s.store.ZeroStockBatch(ctx, productIDs); err != nil {
		return err
	}
	for _, slug := range slugs {
		s.invalidateProductCache(ctx, slug)
	}
	return nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, productID uint) error {
	product, err := s.store.GetProductByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	if err := s.store.HardDeleteProduct(ctx, productID); err != nil {
		return err
	}
	s.invalidateProductCache(ctx, product.Slug)
	return nil
}

func (s *AdminService) ApproveReviews(ctx context.Context, reviewIDs []uint) error {
	if len(reviewIDs) == 0 {
		return nil
	}
	return s.store.ApproveReviewsBatch(ctx, reviewIDs)
}

func (s *AdminService) CreateCoupon(ctx context.Context, coupon *model.Coupon) error {
	return s.store.CreateCoupon(ctx, coupon)
}

// 快取失效失敗只記錄，TTL到期後會自行修復
func (s *AdminService) invalidateProductCache(ctx context.Context, slug string) {
	if err := s.productCache.DeleteProduct(ctx, slug); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("product cache invalidate failed")
	}
}

var _ IAdminService = (*AdminService)(nil)
