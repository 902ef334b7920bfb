package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

type ProductCacheError error

var ErrCacheMiss ProductCacheError = errors.New("product cache miss")

// IProductCacheRepository 定義 Redis 商品快取操作的介面
type IProductCacheRepository interface {
	// GetProduct 取得快取商品，未命中回傳 ErrCacheMiss
	GetProduct(ctx context.Context, slug string) (*model.Product, error)

	// SetProduct 寫入快取商品
	SetProduct(ctx context.Context, product *model.Product) error

	// DeleteProduct 使快取失效
	DeleteProduct(ctx context.Context, slug string) error
}

/*
redis 專注商品目錄讀取快取
商品寫入走db，由上層負責讓快取失效
結構:

	product:{slug}:info -> json(model.Product)，帶TTL
*/
type ProductCacheRepo struct {
	productCache *redis.Client
	ttl          time.Duration
}

func NewProductCacheRepo(productCache *redis.Client, ttl time.Duration) *ProductCacheRepo {
	return &ProductCacheRepo{productCache: productCache, ttl: ttl}
}

func generateProductInfoKey(slug string) string {
	return fmt.Sprintf("product:%s:info", slug)
}

// 取得快取商品
// 錯誤:
//   - ErrCacheMiss: 快取未命中
//   - err: 其他錯誤
func (s *ProductCacheRepo) GetProduct(ctx context.Context, slug string) (*model.Product, error) {
	redisKey := generateProductInfoKey(slug)
	val, err := s.productCache.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, fmt.Errorf("invalid cached product %s: %w", slug, err)
	}
	return &product, nil
}

func (s *ProductCacheRepo) SetProduct(ctx context.Context, product *model.Product) error {
	redisKey := generateProductInfoKey(product.Slug)
	bytes, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.productCache.Set(ctx, redisKey, bytes, s.ttl).Err()
}

func (s *ProductCacheRepo) DeleteProduct(ctx context.Context, slug string) error {
	redisKey := generateProductInfoKey(slug)
	return s.productCache.Del(ctx, redisKey).Err()
}

var _ IProductCacheRepository = (*ProductCacheRepo)(nil)
