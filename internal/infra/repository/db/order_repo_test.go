package db

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderRepoTestSuite struct {
	suite.Suite
	dbDao       *DbDao
	orderRepo   *OrderRepo
	productRepo *ProductDBRepo
	paymentRepo *PaymentRepo
	testProduct *model.Product
}

func (suite *OrderRepoTestSuite) SetupSuite() {
	db, err := GetDbConn("lab_storefront", "localhost", "5432", "royce", "password")
	assert.NoError(suite.T(), err)
	suite.dbDao = NewDbDao(db)
	err = suite.dbDao.InitMigrate()
	assert.NoError(suite.T(), err)
	suite.orderRepo = NewOrderRepo(suite.dbDao)
	suite.productRepo = NewProductDBRepo(suite.dbDao)
	suite.paymentRepo = NewPaymentRepo(suite.dbDao)
}

func (suite *OrderRepoTestSuite) SetupTest() {
	suite.testProduct = &model.Product{
		Slug:        "test-shirt-" + util.GenerateRefCode(),
		Title:       "Test Shirt",
		Price:       decimal.NewFromInt(100),
		Stock:       10,
		Category:    "shirt",
		Description: "test",
	}
	err := suite.productRepo.CreateProduct(context.Background(), suite.testProduct)
	assert.NoError(suite.T(), err)
}

func (suite *OrderRepoTestSuite) TearDownTest() {
	suite.dbDao.Exec("DELETE FROM order_items")
	suite.dbDao.Exec("DELETE FROM orders")
	suite.dbDao.Exec("DELETE FROM payments")
	suite.dbDao.Exec("DELETE FROM products")
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) createOpenOrder(userID uint) *model.Order {
	order := &model.Order{
		UserID:      userID,
		RefCode:     util.GenerateRefCode(),
		OrderedDate: time.Now(),
	}
	err := suite.orderRepo.CreateOrder(context.Background(), order)
	assert.NoError(suite.T(), err)
	return order
}

func (suite *OrderRepoTestSuite) TestCreateOrder() {
	t := suite.T()

	order := suite.createOpenOrder(1)

	assert.NotZero(t, order.OrderID)
	assert.False(t, order.Ordered)
}

func (suite *OrderRepoTestSuite) TestOnlyOneOpenOrderPerUser() {
	t := suite.T()

	suite.createOpenOrder(1)

	// 同使用者第二張未結帳訂單違反 partial unique index
	err := suite.orderRepo.CreateOrder(context.Background(), &model.Order{
		UserID:      1,
		RefCode:     util.GenerateRefCode(),
		OrderedDate: time.Now(),
	})
	assert.Error(t, err)
}

func (suite *OrderRepoTestSuite) TestGetOpenOrderByUserID() {
	t := suite.T()

	created := suite.createOpenOrder(1)

	order, err := suite.orderRepo.GetOpenOrderByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, created.OrderID, order.OrderID)

	_, err = suite.orderRepo.GetOpenOrderByUserID(context.Background(), 99)
	assert.Error(t, err)
}

func (suite *OrderRepoTestSuite) TestIncrementOrderItemQuantity() {
	t := suite.T()

	order := suite.createOpenOrder(1)
	item := &model.OrderItem{
		OrderID:   order.OrderID,
		UserID:    1,
		ProductID: suite.testProduct.ProductID,
		Quantity:  1,
	}
	err := suite.orderRepo.CreateOrderItem(context.Background(), item)
	assert.NoError(t, err)

	err = suite.orderRepo.IncrementOrderItemQuantity(context.Background(), item.ItemID, 2)
	assert.NoError(t, err)

	got, err := suite.orderRepo.GetOpenOrderItem(context.Background(), 1, suite.testProduct.ProductID)
	assert.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}

func (suite *OrderRepoTestSuite) TestMarkOrderOrderedIsOneWay() {
	t := suite.T()

	order := suite.createOpenOrder(1)
	payment := &model.Payment{
		UserID: 1,
		Amount: decimal.NewFromInt(100),
		Method: model.PaymentMethodCOD,
	}
	err := suite.paymentRepo.CreatePayment(context.Background(), payment)
	assert.NoError(t, err)

	err = suite.orderRepo.MarkOrderOrdered(context.Background(), order.OrderID, payment.PaymentID, time.Now())
	assert.NoError(t, err)

	// 結帳後就不是購物車了
	_, err = suite.orderRepo.GetOpenOrderByUserID(context.Background(), 1)
	assert.Error(t, err)

	orders, err := suite.orderRepo.GetOrderedOrdersByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.True(t, orders[0].Ordered)
}

func (suite *OrderRepoTestSuite) TestGetOpenOrderByGatewayRef() {
	t := suite.T()

	order := suite.createOpenOrder(1)
	err := suite.orderRepo.SetGatewayOrderRef(context.Background(), order.OrderID, "gw_abc")
	assert.NoError(t, err)

	got, err := suite.orderRepo.GetOpenOrderByGatewayRef(context.Background(), "gw_abc")
	assert.NoError(t, err)
	assert.Equal(t, order.OrderID, got.OrderID)

	// 結帳後同一金流單號不再匹配
	payment := &model.Payment{UserID: 1, Amount: decimal.NewFromInt(0), Method: model.PaymentMethodGateway}
	err = suite.paymentRepo.CreatePayment(context.Background(), payment)
	assert.NoError(t, err)
	err = suite.orderRepo.MarkOrderOrdered(context.Background(), order.OrderID, payment.PaymentID, time.Now())
	assert.NoError(t, err)

	_, err = suite.orderRepo.GetOpenOrderByGatewayRef(context.Background(), "gw_abc")
	assert.Error(t, err)
}

func (suite *OrderRepoTestSuite) TestGrantRefundBatch() {
	t := suite.T()

	order := suite.createOpenOrder(1)
	err := suite.orderRepo.SetRefundRequested(context.Background(), order.OrderID, true)
	assert.NoError(t, err)

	err = suite.orderRepo.GrantRefundBatch(context.Background(), []uint{order.OrderID})
	assert.NoError(t, err)

	got, err := suite.orderRepo.GetOrderByID(context.Background(), order.OrderID)
	assert.NoError(t, err)
	assert.True(t, got.RefundGranted)
	assert.False(t, got.RefundRequested)
}
