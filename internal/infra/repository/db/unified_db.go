package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

// Store 統一的資料庫介面
// ExecTx 內所有操作共用同一個交易
type Store interface {
	GetDB() *gorm.DB
	InitMigrate() error
	ExecTx(ctx context.Context, fn func(Store) error) error

	IProductRepository
	IOrderRepository
	ICouponRepository
	IPaymentRepository
	IRefundRepository
	IAddressRepository
	IReviewRepository
	IUserRepository
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID uint) (*model.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	GetProductsInStock(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	UpdateStock(ctx context.Context, id uint, stock uint) error
	ZeroStockBatch(ctx context.Context, productIDs []uint) error
	HardDeleteProduct(ctx context.Context, id uint) error
	GetProductsPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Product, int64, error)
	CreateProductsBatch(ctx context.Context, products []model.Product) error
}

// IOrderRepository Order 與 OrderItem 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	GetOrderByRefCode(ctx context.Context, refCode string) (*model.Order, error)
	GetOpenOrderByUserID(ctx context.Context, userID uint) (*model.Order, error)
	GetOpenOrderByGatewayRef(ctx context.Context, gatewayRef string) (*model.Order, error)
	GetOrderedOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	UpdateOrder(ctx context.Context, order *model.Order) error
	SetOrderCoupon(ctx context.Context, orderID, couponID uint) error
	SetOrderAddresses(ctx context.Context, orderID, shippingAddrID, billingAddrID uint) error
	SetGatewayOrderRef(ctx context.Context, orderID uint, gatewayRef string) error
	MarkOrderOrdered(ctx context.Context, orderID, paymentID uint, orderedDate time.Time) error
	MarkOrderItemsOrdered(ctx context.Context, orderID uint) error
	SetRefundRequested(ctx context.Context, orderID uint, requested bool) error
	GrantRefundBatch(ctx context.Context, orderIDs []uint) error
	UpdateDeliveryFlags(ctx context.Context, orderID uint, beingDelivered, received bool) error
	HardDeleteOrder(ctx context.Context, id uint) error
	GetOrdersPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Order, int64, error)
	GetOpenOrderItem(ctx context.Context, userID, productID uint) (*model.OrderItem, error)
	CreateOrderItem(ctx context.Context, item *model.OrderItem) error
	UpdateOrderItemQuantity(ctx context.Context, itemID uint, quantity int) error
	IncrementOrderItemQuantity(ctx context.Context, itemID uint, delta int) error
	HardDeleteOrderItem(ctx context.Context, itemID uint) error
	GetOrderItemsPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.OrderItem, int64, error)
}

// ICouponRepository Coupon 相關操作介面
type ICouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *model.Coupon) error
	GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error)
	GetAllCoupons(ctx context.Context) ([]model.Coupon, error)
	HardDeleteCoupon(ctx context.Context, id uint) error
}

// IPaymentRepository Payment 相關操作介面
type IPaymentRepository interface {
	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetPaymentByID(ctx context.Context, id uint) (*model.Payment, error)
	GetPaymentsPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Payment, int64, error)
}

// IRefundRepository Refund 相關操作介面
type IRefundRepository interface {
	CreateRefund(ctx context.Context, refund *model.Refund) error
	GetRefundsByOrderID(ctx context.Context, orderID uint) ([]model.Refund, error)
	AcceptRefundsByOrderIDs(ctx context.Context, orderIDs []uint) error
	GetRefundsPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Refund, int64, error)
}

// IAddressRepository Address 相關操作介面
type IAddressRepository interface {
	CreateAddress(ctx context.Context, address *model.Address) error
	GetAddressesByUserID(ctx context.Context, userID uint) ([]model.Address, error)
	GetAddressesPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Address, int64, error)
}

// IReviewRepository ProductReview 相關操作介面
type IReviewRepository interface {
	CreateReview(ctx context.Context, review *model.ProductReview) error
	GetApprovedReviewsByProductID(ctx context.Context, productID uint) ([]model.ProductReview, error)
	ApproveReviewsBatch(ctx context.Context, reviewIDs []uint) error
	GetReviewsPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.ProductReview, int64, error)
}

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUsersPaginated(ctx context.Context, page, pageSize int) ([]model.User, int64, error)
}

// StoreImpl 統一資料庫實現
type StoreImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*ProductDBRepo
	*OrderRepo
	*CouponRepo
	*PaymentRepo
	*RefundRepo
	*AddressRepo
	*ReviewRepo
	*UserRepo
}

// NewStore 創建新的統一資料庫實例
func NewStore(db *gorm.DB) *StoreImpl {
	dbDao := NewDbDao(db)
	return &StoreImpl{
		db:            db,
		dbDao:         dbDao,
		ProductDBRepo: NewProductDBRepo(dbDao),
		OrderRepo:     NewOrderRepo(dbDao),
		CouponRepo:    NewCouponRepo(dbDao),
		PaymentRepo:   NewPaymentRepo(dbDao),
		RefundRepo:    NewRefundRepo(dbDao),
		AddressRepo:   NewAddressRepo(dbDao),
		ReviewRepo:    NewReviewRepo(dbDao),
		UserRepo:      NewUserRepo(dbDao),
	}
}

func (u *StoreImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

// GetDB 獲取資料庫連接
func (u *StoreImpl) GetDB() *gorm.DB {
	return u.db
}

// ExecTx 在單一交易內執行 fn，fn 收到的 Store 所有操作都在該交易中
func (u *StoreImpl) ExecTx(ctx context.Context, fn func(Store) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

var (
	_ Store              = (*StoreImpl)(nil)
	_ IProductRepository = (*StoreImpl)(nil)
	_ IOrderRepository   = (*StoreImpl)(nil)
	_ ICouponRepository  = (*StoreImpl)(nil)
	_ IRefundRepository  = (*StoreImpl)(nil)
)
