package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type CartServiceTestSuite struct {
	suite.Suite
	store       *fakeStore
	cartService *CartService
	shirt       *model.Product
	mug         *model.Product
	soldOut     *model.Product
}

func (suite *CartServiceTestSuite) SetupTest() {
	suite.store = newFakeStore()
	suite.cartService = NewCartService(suite.store)

	suite.shirt = suite.store.addProduct(&model.Product{
		Slug:     "basic-shirt",
		Title:    "Basic Shirt",
		Price:    decimal.NewFromInt(100),
		Stock:    10,
		Category: "shirt",
	})
	suite.mug = suite.store.addProduct(&model.Product{
		Slug:     "coffee-mug",
		Title:    "Coffee Mug",
		Price:    decimal.NewFromInt(50),
		Stock:    2,
		Category: "kitchen",
	})
	suite.soldOut = suite.store.addProduct(&model.Product{
		Slug:     "sold-out-cap",
		Title:    "Cap",
		Price:    decimal.NewFromInt(30),
		Stock:    0,
		Category: "hat",
	})
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func (suite *CartServiceTestSuite) TestAddItemCreatesOpenOrder() {
	t := suite.T()

	order, err := suite.cartService.AddItem(context.Background(), 1, "basic-shirt")

	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.False(t, order.Ordered)
	assert.Len(t, order.RefCode, 20)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 1, order.Items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestAddItemRepeatedAccumulatesQuantity() {
	t := suite.T()

	// 同商品加N次只會有一條明細，數量N
	var order *model.Order
	var err error
	for i := 0; i < 3; i++ {
		order, err = suite.cartService.AddItem(context.Background(), 1, "basic-shirt")
		assert.NoError(t, err)
	}

	assert.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestAddItemDifferentProducts() {
	t := suite.T()

	_, err := suite.cartService.AddItem(context.Background(), 1, "basic-shirt")
	assert.NoError(t, err)
	order, err := suite.cartService.AddItem(context.Background(), 1, "coffee-mug")
	assert.NoError(t, err)

	assert.Len(t, order.Items, 2)
}

func (suite *CartServiceTestSuite) TestAddItemUnknownProduct() {
	t := suite.T()

	_, err := suite.cartService.AddItem(context.Background(), 1, "no-such-product")

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func (suite *CartServiceTestSuite) TestAddItemOutOfStock() {
	t := suite.T()

	_, err := suite.cartService.AddItem(context.Background(), 1, "sold-out-cap")

	assert.ErrorIs(t, err, ErrOutOfStock)
	// 失敗的加購不會留下購物車
	_, err = suite.cartService.GetOpenOrder(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoActiveOrder)
}

func (suite *CartServiceTestSuite) TestAddItemInsufficientStock() {
	t := suite.T()

	// 庫存2，第三次加購被擋
	_, err := suite.cartService.AddItem(context.Background(), 1, "coffee-mug")
	assert.NoError(t, err)
	_, err = suite.cartService.AddItem(context.Background(), 1, "coffee-mug")
	assert.NoError(t, err)
	_, err = suite.cartService.AddItem(context.Background(), 1, "coffee-mug")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	order, err := suite.cartService.GetOpenOrder(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestRemoveItemDeletesWholeLine() {
	t := suite.T()

	for i := 0; i < 3; i++ {
		_, err := suite.cartService.AddItem(context.Background(), 1, "basic-shirt")
		assert.NoError(t, err)
	}

	order, err := suite.cartService.RemoveItem(context.Background(), 1, "basic-shirt")

	assert.NoError(t, err)
	assert.Len(t, order.Items, 0)
}

func (suite *CartServiceTestSuite) TestRemoveItemWithoutOrder() {
	t := suite.T()

	_, err := suite.cartService.RemoveItem(context.Background(), 1, "basic-shirt")

	assert.ErrorIs(t, err, ErrNoActiveOrder)
}

func (suite *CartServiceTestSuite) TestRemoveItemNotInCart() {
	t := suite.T()

	_, err := suite.cartService.AddItem(context.Background(), 1, "basic-shirt")
	assert.NoError(t, err)

	_, err = suite.cartService.RemoveItem(context.Background(), 1, "coffee-mug")

	assert.ErrorIs(t, err, ErrItemNotInCart)
}

func (suite *CartServiceTestSuite) TestDecrementItem() {
	t := suite.T()

	_, err := suite.cartService.AddItem(context.Background(), 1, "basic-shirt")
	assert.NoError(t, err)
	_, err = suite.cartService.AddItem(context.Background(), 1, "basic-shirt")
	assert.NoError(t, err)

	order, err := suite.cartService.DecrementItem(context.Background(), 1, "basic-shirt")

	assert.NoError(t, err)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 1, order.Items[0].Quantity)
}

func (suite *CartServiceTestSuite) TestDecrementItemToZeroRemovesLine() {
	t := suite.T()

	_, err := suite.cartService.AddItem(context.Background(), 1, "basic-shirt")
	assert.NoError(t, err)

	order, err := suite.cartService.DecrementItem(context.Background(), 1, "basic-shirt")

	assert.NoError(t, err)
	assert.Len(t, order.Items, 0)
}

func (suite *CartServiceTestSuite) TestCartsAreIsolatedPerUser() {
	t := suite.T()

	_, err := suite.cartService.AddItem(context.Background(), 1, "basic-shirt")
	assert.NoError(t, err)
	_, err = suite.cartService.AddItem(context.Background(), 2, "coffee-mug")
	assert.NoError(t, err)

	orderA, err := suite.cartService.GetOpenOrder(context.Background(), 1)
	assert.NoError(t, err)
	orderB, err := suite.cartService.GetOpenOrder(context.Background(), 2)
	assert.NoError(t, err)

	assert.NotEqual(t, orderA.OrderID, orderB.OrderID)
	assert.Equal(t, "basic-shirt", orderA.Items[0].Product.Slug)
	assert.Equal(t, "coffee-mug", orderB.Items[0].Product.Slug)
}
