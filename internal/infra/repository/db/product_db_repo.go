package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

type ProductDBRepo struct {
	db *DbDao
}

func NewProductDBRepo(db *DbDao) *ProductDBRepo {
	return &ProductDBRepo{db: db}
}

func (s *ProductDBRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *ProductDBRepo) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "product_id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductDBRepo) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductDBRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Find(&products).Error
	return products, err
}

// Read - 依分類查詢，分類不分大小寫
func (s *ProductDBRepo) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("LOWER(category) = LOWER(?)", category).Find(&products).Error
	return products, err
}

// Read - 查詢有庫存的商品
func (s *ProductDBRepo) GetProductsInStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("stock > 0").Find(&products).Error
	return products, err
}

// Update - 更新商品
func (s *ProductDBRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// Update - 更新庫存
func (s *ProductDBRepo) UpdateStock(ctx context.Context, id uint, stock uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		// 先鎖定記錄
		var product model.Product
		if err := tx.WithContext(ctx).Set("gorm:for_update", true).
			Where("product_id = ?", id).
			First(&product).Error; err != nil {
			return err
		}

		return tx.WithContext(ctx).Model(&model.Product{}).
			Where("product_id = ?", id).
			Update("stock", stock).Error
	})
}

// Update - 批次將商品標記為無庫存 (stock = 0)
func (s *ProductDBRepo) ZeroStockBatch(ctx context.Context, productIDs []uint) error {
	return s.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id IN ?", productIDs).
		Update("stock", 0).Error
}

// Delete - 硬刪除商品
func (s *ProductDBRepo) HardDeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&model.Product{}, id).Error
}

// 根據條件分頁查詢商品
func (s *ProductDBRepo) GetProductsPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	offset := (page - 1) * pageSize
	query := s.db.WithContext(ctx).Model(&model.Product{})

	// 應用條件
	for key, value := range condition {
		query = query.Where(key+" = ?", value)
	}

	// 計算總數
	query.Count(&total)

	// 分頁查詢
	err := query.Offset(offset).Limit(pageSize).Find(&products).Error

	return products, total, err
}

// 批量創建商品
func (s *ProductDBRepo) CreateProductsBatch(ctx context.Context, products []model.Product) error {
	return s.db.WithContext(ctx).Create(&products).Error
}
