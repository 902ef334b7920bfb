package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"gorm.io/gorm"
)

// fakeStore 記憶體版Store，只實作service會用到的方法
// 沒覆寫到的方法走embedded nil interface，誤用會直接panic
type fakeStore struct {
	db.Store
	mu sync.Mutex

	nextID    uint
	products  map[uint]*model.Product
	slugIndex map[string]uint
	orders    map[uint]*model.Order
	items     map[uint]*model.OrderItem
	coupons   map[string]*model.Coupon
	payments  map[uint]*model.Payment
	refunds   []*model.Refund
	addresses map[uint]*model.Address
	reviews   map[uint]*model.ProductReview
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  make(map[uint]*model.Product),
		slugIndex: make(map[string]uint),
		orders:    make(map[uint]*model.Order),
		items:     make(map[uint]*model.OrderItem),
		coupons:   make(map[string]*model.Coupon),
		payments:  make(map[uint]*model.Payment),
		addresses: make(map[uint]*model.Address),
		reviews:   make(map[uint]*model.ProductReview),
	}
}

func (f *fakeStore) genID() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) addProduct(product *model.Product) *model.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if product.ProductID == 0 {
		product.ProductID = f.genID()
	}
	f.products[product.ProductID] = product
	f.slugIndex[product.Slug] = product.ProductID
	return product
}

func (f *fakeStore) addCoupon(coupon *model.Coupon) *model.Coupon {
	f.mu.Lock()
	defer f.mu.Unlock()
	if coupon.CouponID == 0 {
		coupon.CouponID = f.genID()
	}
	f.coupons[coupon.Code] = coupon
	return coupon
}

// ExecTx fake不提供隔離性，直接在自己身上執行
func (f *fakeStore) ExecTx(ctx context.Context, fn func(db.Store) error) error {
	return fn(f)
}

func (f *fakeStore) GetProductByID(ctx context.Context, productID uint) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *product
	return &clone, nil
}

func (f *fakeStore) GetProductBySlug(ctx context.Context, slug string) (*model.Product, error) {
	f.mu.Lock()
	id, ok := f.slugIndex[slug]
	f.mu.Unlock()
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.GetProductByID(ctx, id)
}

func (f *fakeStore) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Product
	for _, product := range f.products {
		result = append(result, *product)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProductID < result[j].ProductID
	})
	return result, nil
}

func (f *fakeStore) GetProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Product
	for _, product := range f.products {
		if strings.EqualFold(product.Category, category) {
			result = append(result, *product)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProductID < result[j].ProductID
	})
	return result, nil
}

func (f *fakeStore) ApproveReviewsBatch(ctx context.Context, reviewIDs []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range reviewIDs {
		if review, ok := f.reviews[id]; ok {
			review.Approved = true
		}
	}
	return nil
}

func (f *fakeStore) ZeroStockBatch(ctx context.Context, productIDs []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range productIDs {
		if product, ok := f.products[id]; ok {
			product.Stock = 0
		}
	}
	return nil
}

func (f *fakeStore) CreateOrder(ctx context.Context, order *model.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.orders {
		if existing.UserID == order.UserID && !existing.Ordered {
			return gorm.ErrDuplicatedKey
		}
	}
	order.OrderID = f.genID()
	clone := *order
	f.orders[order.OrderID] = &clone
	return nil
}

func (f *fakeStore) getOrderLocked(orderID uint) (*model.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.loadOrderLocked(order), nil
}

// 組出帶明細與關聯的訂單副本，模擬Preload
func (f *fakeStore) loadOrderLocked(order *model.Order) *model.Order {
	clone := *order
	clone.Items = nil
	for _, item := range f.items {
		if item.OrderID != order.OrderID {
			continue
		}
		itemClone := *item
		if product, ok := f.products[item.ProductID]; ok {
			productClone := *product
			itemClone.Product = &productClone
		}
		clone.Items = append(clone.Items, itemClone)
	}
	sort.Slice(clone.Items, func(i, j int) bool {
		return clone.Items[i].ItemID < clone.Items[j].ItemID
	})
	if order.CouponID != nil {
		for _, coupon := range f.coupons {
			if coupon.CouponID == *order.CouponID {
				couponClone := *coupon
				clone.Coupon = &couponClone
			}
		}
	}
	return &clone
}

func (f *fakeStore) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getOrderLocked(id)
}

func (f *fakeStore) GetOrderByRefCode(ctx context.Context, refCode string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.RefCode == refCode {
			return f.loadOrderLocked(order), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) GetOpenOrderByUserID(ctx context.Context, userID uint) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.UserID == userID && !order.Ordered {
			return f.loadOrderLocked(order), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) GetOpenOrderByGatewayRef(ctx context.Context, gatewayRef string) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if !order.Ordered && order.GatewayOrderRef != nil && *order.GatewayOrderRef == gatewayRef {
			return f.loadOrderLocked(order), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) GetOrderedOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Order
	for _, order := range f.orders {
		if order.UserID == userID && order.Ordered {
			result = append(result, *f.loadOrderLocked(order))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].OrderedDate.After(result[j].OrderedDate)
	})
	return result, nil
}

func (f *fakeStore) SetOrderCoupon(ctx context.Context, orderID, couponID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.CouponID = &couponID
	return nil
}

func (f *fakeStore) SetOrderAddresses(ctx context.Context, orderID, shippingAddrID, billingAddrID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.ShippingAddrID = &shippingAddrID
	order.BillingAddrID = &billingAddrID
	return nil
}

func (f *fakeStore) SetGatewayOrderRef(ctx context.Context, orderID uint, gatewayRef string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.GatewayOrderRef = &gatewayRef
	return nil
}

func (f *fakeStore) MarkOrderOrdered(ctx context.Context, orderID, paymentID uint, orderedDate time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok || order.Ordered {
		return gorm.ErrRecordNotFound
	}
	order.Ordered = true
	order.OrderedDate = orderedDate
	order.PaymentID = &paymentID
	return nil
}

func (f *fakeStore) MarkOrderItemsOrdered(ctx context.Context, orderID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.OrderID == orderID {
			item.Ordered = true
		}
	}
	return nil
}

func (f *fakeStore) SetRefundRequested(ctx context.Context, orderID uint, requested bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.RefundRequested = requested
	return nil
}

func (f *fakeStore) GrantRefundBatch(ctx context.Context, orderIDs []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range orderIDs {
		if order, ok := f.orders[id]; ok {
			order.RefundRequested = false
			order.RefundGranted = true
		}
	}
	return nil
}

func (f *fakeStore) GetOpenOrderItem(ctx context.Context, userID, productID uint) (*model.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.UserID == userID && item.ProductID == productID && !item.Ordered {
			clone := *item
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) CreateOrderItem(ctx context.Context, item *model.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID && !existing.Ordered {
			return gorm.ErrDuplicatedKey
		}
	}
	item.ItemID = f.genID()
	clone := *item
	f.items[item.ItemID] = &clone
	return nil
}

func (f *fakeStore) IncrementOrderItemQuantity(ctx context.Context, itemID uint, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity += delta
	return nil
}

func (f *fakeStore) HardDeleteOrderItem(ctx context.Context, itemID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, itemID)
	return nil
}

func (f *fakeStore) GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	coupon, ok := f.coupons[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *coupon
	return &clone, nil
}

func (f *fakeStore) CreatePayment(ctx context.Context, payment *model.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment.PaymentID = f.genID()
	clone := *payment
	f.payments[payment.PaymentID] = &clone
	return nil
}

func (f *fakeStore) CreateAddress(ctx context.Context, address *model.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	address.AddressID = f.genID()
	clone := *address
	f.addresses[address.AddressID] = &clone
	return nil
}

func (f *fakeStore) CreateRefund(ctx context.Context, refund *model.Refund) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	refund.RefundID = f.genID()
	clone := *refund
	f.refunds = append(f.refunds, &clone)
	return nil
}

func (f *fakeStore) GetRefundsByOrderID(ctx context.Context, orderID uint) ([]model.Refund, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.Refund
	for _, refund := range f.refunds {
		if refund.OrderID == orderID {
			result = append(result, *refund)
		}
	}
	return result, nil
}

func (f *fakeStore) AcceptRefundsByOrderIDs(ctx context.Context, orderIDs []uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idSet := make(map[uint]bool, len(orderIDs))
	for _, id := range orderIDs {
		idSet[id] = true
	}
	for _, refund := range f.refunds {
		if idSet[refund.OrderID] {
			refund.Accepted = true
		}
	}
	return nil
}

func (f *fakeStore) CreateReview(ctx context.Context, review *model.ProductReview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	review.ReviewID = f.genID()
	clone := *review
	f.reviews[review.ReviewID] = &clone
	return nil
}

func (f *fakeStore) GetApprovedReviewsByProductID(ctx context.Context, productID uint) ([]model.ProductReview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []model.ProductReview
	for _, review := range f.reviews {
		if review.ProductID == productID && review.Approved {
			result = append(result, *review)
		}
	}
	return result, nil
}

// fakeProductCache 記憶體版商品快取
type fakeProductCache struct {
	mu       sync.Mutex
	data     map[string]*model.Product
	getErr   error
	hits     int
	misses   int
	deletes  int
	setCalls int
}

func (f *fakeProductCache) GetProduct(ctx context.Context, slug string) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	product, ok := f.data[slug]
	if !ok {
		f.misses++
		return nil, redis_repo.ErrCacheMiss
	}
	f.hits++
	clone := *product
	return &clone, nil
}

func (f *fakeProductCache) SetProduct(ctx context.Context, product *model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	clone := *product
	f.data[product.Slug] = &clone
	return nil
}

func (f *fakeProductCache) DeleteProduct(ctx context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	delete(f.data, slug)
	return nil
}

// fakeEventProducer 記錄發出的事件
type fakeEventProducer struct {
	mu           sync.Mutex
	placedEvents []uint
	refundEvents []uint
}

func (f *fakeEventProducer) ProduceOrderPlacedEvent(ctx context.Context, order *model.Order, payment *model.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.placedEvents = append(f.placedEvents, order.OrderID)
	return nil
}

func (f *fakeEventProducer) ProduceRefundRequestedEvent(ctx context.Context, order *model.Order, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refundEvents = append(f.refundEvents, order.OrderID)
	return nil
}

func (f *fakeEventProducer) Close() error {
	return nil
}

// fakeGateway 固定回傳同一個金流單號
type fakeGateway struct {
	mu          sync.Mutex
	orderRef    string
	failNext    error
	lastAmount  int64
	lastCurrncy string
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return "", err
	}
	f.lastAmount = amountMinor
	f.lastCurrncy = currency
	return f.orderRef, nil
}
