package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentMethodCOD     = "cod"     // 貨到付款
	PaymentMethodGateway = "gateway" // 外部金流
)

const (
	AddressTypeShipping = "S"
	AddressTypeBilling  = "B"
)

// 一個使用者同時間只能有一個未結帳訂單(購物車)
// 由 partial unique index 保證，不靠先查詢再建立
type Order struct {
	OrderID         uint        `gorm:"primaryKey" json:"order_id"`
	UserID          uint        `gorm:"not null;uniqueIndex:idx_orders_open_user,where:ordered = false" json:"user_id"`
	RefCode         string      `gorm:"not null;type:varchar(20);unique" json:"ref_code"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"` // 一對多，級聯刪除
	Ordered         bool        `gorm:"not null;default:false" json:"ordered"`
	OrderedDate     time.Time   `gorm:"not null" json:"ordered_date"`
	CouponID        *uint       `gorm:"null" json:"coupon_id,omitempty"`
	Coupon          *Coupon     `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
	ShippingAddrID  *uint       `gorm:"null" json:"shipping_addr_id,omitempty"`
	ShippingAddr    *Address    `gorm:"foreignKey:ShippingAddrID" json:"shipping_addr,omitempty"`
	BillingAddrID   *uint       `gorm:"null" json:"billing_addr_id,omitempty"`
	BillingAddr     *Address    `gorm:"foreignKey:BillingAddrID" json:"billing_addr,omitempty"`
	PaymentID       *uint       `gorm:"null" json:"payment_id,omitempty"`
	Payment         *Payment    `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
	GatewayOrderRef *string     `gorm:"null;type:varchar(64);uniqueIndex" json:"gateway_order_ref,omitempty"`
	RefundRequested bool        `gorm:"not null;default:false" json:"refund_requested"`
	RefundGranted   bool        `gorm:"not null;default:false" json:"refund_granted"`
	BeingDelivered  bool        `gorm:"not null;default:false" json:"being_delivered"`
	Received        bool        `gorm:"not null;default:false" json:"received"`
	BaseModel
}

// 同一個使用者對同一個商品最多只有一條未結帳明細
type OrderItem struct {
	ItemID    uint     `gorm:"primaryKey" json:"item_id"`
	OrderID   uint     `gorm:"not null;index" json:"order_id"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_order_items_open_line,where:ordered = false" json:"user_id"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_order_items_open_line,where:ordered = false" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Ordered   bool     `gorm:"not null;default:false" json:"ordered"`
	BaseModel
}

// Subtotal 明細小計 = 數量 x 單價
func (i OrderItem) Subtotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// GetTotal 訂單總金額 = Σ(明細小計) - 折扣，折扣不做零元下限
func (o Order) GetTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	if o.Coupon != nil {
		total = total.Sub(o.Coupon.Discount)
	}
	return total
}

type Coupon struct {
	CouponID uint            `gorm:"primaryKey" json:"coupon_id"`
	Code     string          `gorm:"not null;type:varchar(50);unique" json:"code"`
	Discount decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"discount"`
	BaseModel
}

type Payment struct {
	PaymentID        uint            `gorm:"primaryKey" json:"payment_id"`
	UserID           uint            `gorm:"not null" json:"user_id"`
	Amount           decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"amount"`
	Method           string          `gorm:"not null;type:varchar(20)" json:"method"` // cod | gateway
	GatewayPaymentID *string         `gorm:"null;type:varchar(64)" json:"gateway_payment_id,omitempty"`
	BaseModel
}

type Refund struct {
	RefundID uint   `gorm:"primaryKey" json:"refund_id"`
	OrderID  uint   `gorm:"not null;index" json:"order_id"`
	Reason   string `gorm:"not null;type:text" json:"reason"`
	Email    string `gorm:"not null;type:varchar(100)" json:"email"`
	Accepted bool   `gorm:"not null;default:false" json:"accepted"`
	BaseModel
}

type Address struct {
	AddressID     uint   `gorm:"primaryKey" json:"address_id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	StreetAddress string `gorm:"not null;type:varchar(255)" json:"street_address"`
	ApartmentAddr string `gorm:"not null;type:varchar(255)" json:"apartment_address"`
	Country       string `gorm:"not null;type:varchar(50)" json:"country"`
	Zip           string `gorm:"not null;type:varchar(20)" json:"zip"`
	AddressType   string `gorm:"not null;type:varchar(1)" json:"address_type"` // S: shipping, B: billing
	Default       bool   `gorm:"not null;default:false" json:"default"`
	BaseModel
}
