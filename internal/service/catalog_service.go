package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ICatalogService 商品目錄查詢介面
type ICatalogService interface {
	ListProducts(ctx context.Context, category string) ([]model.Product, error)
	GetProductDetail(ctx context.Context, slug string) (*model.Product, error)
	GetProductReviews(ctx context.Context, productID uint) ([]model.ProductReview, error)
	AddReview(ctx context.Context, review *model.ProductReview) error
}

/*
商品目錄讀多寫少，商品明細走 cache aside
快取未命中時用singleflight合併同slug的並發回源查詢
*/
type CatalogService struct {
	store        db.Store
	productCache redis_repo.IProductCacheRepository
	sf           singleflight.Group
}

func NewCatalogService(store db.Store, productCache redis_repo.IProductCacheRepository) *CatalogService {
	return &CatalogService{store: store, productCache: productCache}
}

// ListProducts 商品列表，category非空時過濾分類（不分大小寫）
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	if category != "" {
		return s.store.GetProductsByCategory(ctx, category)
	}
	return s.store.GetAllProducts(ctx)
}

// GetProductDetail 商品明細
// 快取異常只記錄並回源資料庫，不影響讀取
// 錯誤:
//   - ErrProductNotFound: slug不存在
func (s *CatalogService) GetProductDetail(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.productCache.GetProduct(ctx, slug)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, redis_repo.ErrCacheMiss) {
		log.Warn().Err(err).Str("slug", slug).Msg("product cache read failed")
	}

	result, err, _ := s.sf.Do(slug, func() (interface{}, error) {
		product, err := s.store.GetProductBySlug(ctx, slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		if err != nil {
			return nil, err
		}

		if err := s.productCache.SetProduct(ctx, product); err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("product cache write failed")
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Product), nil
}

// GetProductReviews 商品已審核評論
func (s *CatalogService) GetProductReviews(ctx context.Context, productID uint) ([]model.ProductReview, error) {
	return s.store.GetApprovedReviewsByProductID(ctx, productID)
}

// AddReview 新增評論，需審核後才會對外顯示
// 錯誤:
//   - ErrInvalidRating: 評分不在1~5
//   - ErrProductNotFound: 商品不存在
func (s *CatalogService) AddReview(ctx context.Context, review *model.ProductReview) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidRating
	}

	_, err := s.store.GetProductByID(ctx, review.ProductID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	review.Approved = false
	return s.store.CreateReview(ctx, review)
}

var _ ICatalogService = (*CatalogService)(nil)
