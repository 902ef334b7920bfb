package dto

import "time"

// ProductDTO 商品資料傳輸對象
type ProductDTO struct {
	ProductID   uint   `json:"product_id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Stock       uint   `json:"stock"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type OrderItemDTO struct {
	ItemID   uint       `json:"item_id"`
	Product  ProductDTO `json:"product"`
	Quantity int        `json:"quantity"`
	Subtotal string     `json:"subtotal"`
}

type OrderDTO struct {
	OrderID         uint           `json:"order_id"`
	RefCode         string         `json:"ref_code"`
	Items           []OrderItemDTO `json:"items"`
	CouponCode      string         `json:"coupon_code,omitempty"`
	Total           string         `json:"total"`
	Ordered         bool           `json:"ordered"`
	OrderedDate     time.Time      `json:"ordered_date"`
	RefundRequested bool           `json:"refund_requested"`
	RefundGranted   bool           `json:"refund_granted"`
	BeingDelivered  bool           `json:"being_delivered"`
	Received        bool           `json:"received"`
}

type ReviewDTO struct {
	ReviewID  uint      `json:"review_id"`
	ProductID uint      `json:"product_id"`
	UserID    uint      `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type AddReviewDTO struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ProductDetailDTO 商品明細加上已審核評論
type ProductDetailDTO struct {
	ProductDTO
	Reviews []ReviewDTO `json:"reviews"`
}

type CheckoutDTO struct {
	StreetAddress string `json:"street_address"`
	ApartmentAddr string `json:"apartment_address"`
	Country       string `json:"country"`
	Zip           string `json:"zip"`
}

type ApplyCouponDTO struct {
	Code string `json:"code"`
}

type RefundRequestDTO struct {
	RefCode string `json:"ref_code"`
	Email   string `json:"email"`
	Reason  string `json:"reason"`
}

type RefundDTO struct {
	RefundID uint   `json:"refund_id"`
	OrderID  uint   `json:"order_id"`
	Reason   string `json:"reason"`
	Email    string `json:"email"`
	Accepted bool   `json:"accepted"`
}

// GatewayCallbackDTO 金流方付款完成callback
type GatewayCallbackDTO struct {
	GatewayOrderRef  string `json:"gateway_order_ref"`
	GatewayPaymentID string `json:"gateway_payment_id"`
}

type CreateProductDTO struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Stock       uint   `json:"stock"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type UpdateStockDTO struct {
	Stock uint `json:"stock"`
}

type MarkOutOfStockDTO struct {
	ProductIDs []uint `json:"product_ids"`
}

type GrantRefundsDTO struct {
	OrderIDs []uint `json:"order_ids"`
}

type ApproveReviewsDTO struct {
	ReviewIDs []uint `json:"review_ids"`
}

type CreateCouponDTO struct {
	Code     string `json:"code"`
	Discount string `json:"discount"`
}

type UpdateDeliveryDTO struct {
	BeingDelivered bool `json:"being_delivered"`
	Received       bool `json:"received"`
}

// PagedDTO 分頁回應
type PagedDTO struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
