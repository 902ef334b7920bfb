package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID   uint            `gorm:"primaryKey" json:"product_id"`
	Slug        string          `gorm:"not null;type:varchar(100);unique" json:"slug"`
	Title       string          `gorm:"not null;type:varchar(100)" json:"title"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Stock       uint            `gorm:"not null;type:int" json:"stock"`
	Category    string          `gorm:"not null;type:varchar(50)" json:"category"`
	Description string          `gorm:"not null;type:text" json:"description"`
	OrderItems  []OrderItem     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"` // 一對多，級聯刪除
	BaseModel                   // CreatedAt, UpdatedAt, DeletedAt
}

type ProductReview struct {
	ReviewID  uint   `gorm:"primaryKey" json:"review_id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	UserID    uint   `gorm:"not null" json:"user_id"`
	Rating    int    `gorm:"not null" json:"rating"` // 1~5
	Comment   string `gorm:"not null;type:text" json:"comment"`
	Approved  bool   `gorm:"not null;default:false" json:"approved"`
	BaseModel
}
