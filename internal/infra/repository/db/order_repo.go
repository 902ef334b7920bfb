package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create - 創建訂單
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").Preload("Coupon").Preload("Payment").
		First(&order, "order_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 根據參照碼查詢訂單
func (s *OrderRepo) GetOrderByRefCode(ctx context.Context, refCode string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").Preload("Coupon").Preload("Payment").
		First(&order, "ref_code = ?", refCode).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 查詢使用者未結帳訂單(購物車)
func (s *OrderRepo) GetOpenOrderByUserID(ctx context.Context, userID uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").Preload("Coupon").
		First(&order, "user_id = ? AND ordered = false", userID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 根據外部金流單號查詢未結帳訂單
// 只比對未結帳訂單，結帳後同一單號不會再被匹配
func (s *OrderRepo) GetOpenOrderByGatewayRef(ctx context.Context, gatewayRef string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").Preload("Coupon").
		First(&order, "gateway_order_ref = ? AND ordered = false", gatewayRef).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 查詢使用者已結帳訂單，依結帳時間新到舊
func (s *OrderRepo) GetOrderedOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").Preload("Coupon").Preload("Payment").
		Where("user_id = ? AND ordered = true", userID).
		Order("ordered_date DESC").
		Find(&orders).Error
	return orders, err
}

// Update - 更新訂單
func (s *OrderRepo) UpdateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Save(order).Error
}

// Update - 設定訂單折價券
func (s *OrderRepo) SetOrderCoupon(ctx context.Context, orderID, couponID uint) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("coupon_id", couponID).Error
}

// Update - 設定訂單收件/帳單地址
func (s *OrderRepo) SetOrderAddresses(ctx context.Context, orderID, shippingAddrID, billingAddrID uint) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"shipping_addr_id": shippingAddrID,
			"billing_addr_id":  billingAddrID,
		}).Error
}

// Update - 記錄外部金流單號
func (s *OrderRepo) SetGatewayOrderRef(ctx context.Context, orderID uint, gatewayRef string) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("gateway_order_ref", gatewayRef).Error
}

// Update - 訂單結帳，掛上付款並標記為已結帳
// 單向轉換，已結帳訂單不會再回到購物車狀態
func (s *OrderRepo) MarkOrderOrdered(ctx context.Context, orderID, paymentID uint, orderedDate time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ? AND ordered = false", orderID).
		Updates(map[string]interface{}{
			"ordered":      true,
			"ordered_date": orderedDate,
			"payment_id":   paymentID,
		}).Error
}

// Update - 訂單明細全部標記為已結帳
func (s *OrderRepo) MarkOrderItemsOrdered(ctx context.Context, orderID uint) error {
	return s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("order_id = ?", orderID).
		Update("ordered", true).Error
}

// Update - 設定退款申請旗標
func (s *OrderRepo) SetRefundRequested(ctx context.Context, orderID uint, requested bool) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("refund_requested", requested).Error
}

// Update - 批次核准退款
func (s *OrderRepo) GrantRefundBatch(ctx context.Context, orderIDs []uint) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id IN ?", orderIDs).
		Updates(map[string]interface{}{
			"refund_requested": false,
			"refund_granted":   true,
		}).Error
}

// Update - 更新配送狀態
func (s *OrderRepo) UpdateDeliveryFlags(ctx context.Context, orderID uint, beingDelivered, received bool) error {
	return s.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"being_delivered": beingDelivered,
			"received":        received,
		}).Error
}

// Delete - 硬刪除訂單
func (s *OrderRepo) HardDeleteOrder(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Unscoped().Where("order_id = ?", id).Delete(&model.Order{}).Error
}

// 根據條件分頁查詢訂單
func (s *OrderRepo) GetOrdersPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	offset := (page - 1) * pageSize
	query := s.db.WithContext(ctx).Model(&model.Order{})

	// 應用條件
	for key, value := range condition {
		query = query.Where(key+" = ?", value)
	}

	// 計算總數
	query.Count(&total)

	// 分頁查詢
	err := query.Preload("Items.Product").Preload("Coupon").Preload("Payment").
		Offset(offset).Limit(pageSize).
		Find(&orders).Error

	return orders, total, err
}

// Read - 查詢使用者對單一商品的未結帳明細
func (s *OrderRepo) GetOpenOrderItem(ctx context.Context, userID, productID uint) (*model.OrderItem, error) {
	var item model.OrderItem
	err := s.db.WithContext(ctx).
		First(&item, "user_id = ? AND product_id = ? AND ordered = false", userID, productID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create - 新增訂單明細
func (s *OrderRepo) CreateOrderItem(ctx context.Context, item *model.OrderItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// Update - 更新訂單明細數量
func (s *OrderRepo) UpdateOrderItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	return s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("item_id = ?", itemID).
		Update("quantity", quantity).Error
}

// Update - 原子增減訂單明細數量，並發下不會遺失更新
func (s *OrderRepo) IncrementOrderItemQuantity(ctx context.Context, itemID uint, delta int) error {
	return s.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("item_id = ?", itemID).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

// Delete - 硬刪除訂單明細
func (s *OrderRepo) HardDeleteOrderItem(ctx context.Context, itemID uint) error {
	return s.db.WithContext(ctx).Unscoped().Where("item_id = ?", itemID).Delete(&model.OrderItem{}).Error
}

// 根據條件分頁查詢訂單明細
func (s *OrderRepo) GetOrderItemsPaginatedWithCondition(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.OrderItem, int64, error) {
	var items []model.OrderItem
	var total int64

	offset := (page - 1) * pageSize
	query := s.db.WithContext(ctx).Model(&model.OrderItem{})

	for key, value := range condition {
		query = query.Where(key+" = ?", value)
	}

	query.Count(&total)

	err := query.Preload("Product").Offset(offset).Limit(pageSize).Find(&items).Error

	return items, total, err
}
