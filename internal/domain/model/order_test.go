package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGetTotalEmptyOrder(t *testing.T) {
	order := Order{}
	assert.True(t, order.GetTotal().Equal(decimal.Zero))
}

func TestGetTotalSumsSubtotals(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{Quantity: 2, Product: &Product{Price: decimal.NewFromInt(100)}},
			{Quantity: 1, Product: &Product{Price: decimal.RequireFromString("49.90")}},
		},
	}
	assert.True(t, order.GetTotal().Equal(decimal.RequireFromString("249.90")))
}

func TestGetTotalAppliesCouponDiscount(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{Quantity: 2, Product: &Product{Price: decimal.NewFromInt(100)}},
		},
		Coupon: &Coupon{Discount: decimal.NewFromInt(20)},
	}
	assert.True(t, order.GetTotal().Equal(decimal.NewFromInt(180)))
}

func TestGetTotalDiscountCanExceedSubtotal(t *testing.T) {
	// 折扣大於小計時總額為負，不做零元下限
	order := Order{
		Items: []OrderItem{
			{Quantity: 1, Product: &Product{Price: decimal.NewFromInt(10)}},
		},
		Coupon: &Coupon{Discount: decimal.NewFromInt(50)},
	}
	assert.True(t, order.GetTotal().Equal(decimal.NewFromInt(-40)))
}

func TestSubtotalWithoutProduct(t *testing.T) {
	item := OrderItem{Quantity: 3}
	assert.True(t, item.Subtotal().Equal(decimal.Zero))
}
