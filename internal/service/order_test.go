package service

import (
	"context"
	"testing"

	"ecostore-api/internal/apperror"
	"ecostore-api/internal/dbtest"
	"ecostore-api/internal/dto"
	"ecostore-api/internal/model"
	"ecostore-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderFixture struct {
	db   *gorm.DB
	user *model.User
	svc  OrderService
	repo repository.OrderRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	db := dbtest.Open(t)
	orderRepo := repository.NewOrderRepository(db)
	return &orderFixture{
		db:   db,
		user: dbtest.CreateUser(t, db, "ana@example.com", "abc"),
		svc:  NewOrderService(db, repository.NewUserRepository(db), orderRepo, zap.NewNop()),
		repo: orderRepo,
	}
}

func (f *orderFixture) load(t *testing.T, orderID uint) *model.Order {
	var order model.Order
	require.NoError(t, f.db.First(&order, orderID).Error)
	return &order
}

func TestAddOrder_DelimitedProducts(t *testing.T) {
	f := newOrderFixture(t)

	resp, err := f.svc.AddOrder(context.Background(), f.user.ID, &dto.AddOrderRequest{
		TransactionID: "T1",
		Amount:        "19.99",
		Products:      dto.Products{Names: "soap,brush,", IsString: true},
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.False(t, resp.Error)
	assert.NotZero(t, resp.OrderID)
	assert.Equal(t, "T1", resp.TransactionID)
	assert.Equal(t, "Card", resp.PaymentMethod)
	assert.Equal(t, "Order placed successfully via Card", resp.Msg)

	order := f.load(t, resp.OrderID)
	assert.Equal(t, 2, order.ProductCount)
	assert.Equal(t, "soap,brush,", order.ProductNames)
	assert.Equal(t, int64(1999), order.AmountMinor)
	assert.Equal(t, "USD", order.CurrencyCode)
	assert.Equal(t, model.TransactionStatusSettled, order.TransactionStatus)
	assert.Equal(t, model.OrderStateConfirmed, order.State)
	require.NotNil(t, order.UserID)
	assert.Equal(t, f.user.ID, *order.UserID)
}

func TestAddOrder_ProductDetailsCount(t *testing.T) {
	f := newOrderFixture(t)

	resp, err := f.svc.AddOrder(context.Background(), f.user.ID, &dto.AddOrderRequest{
		TransactionID:  "T2",
		Amount:         "5",
		ProductDetails: dto.ProductDetails{{Name: "soap"}, {Name: "brush"}, {Name: "towel"}},
	})
	require.NoError(t, err)

	order := f.load(t, resp.OrderID)
	assert.Equal(t, 3, order.ProductCount)
	assert.Equal(t, "soap,brush,towel", order.ProductNames)
}

func TestCountProducts(t *testing.T) {
	assert.Equal(t, 2, CountProducts("soap,brush,"))
	assert.Equal(t, 2, CountProducts("soap,brush"))
	assert.Equal(t, 1, CountProducts("soap,,"))
	assert.Equal(t, 0, CountProducts(""))
	assert.Equal(t, 0, CountProducts(","))
}

func TestAddOrder_PayPalFields(t *testing.T) {
	f := newOrderFixture(t)

	resp, err := f.svc.AddOrder(context.Background(), f.user.ID, &dto.AddOrderRequest{
		TransactionID:    "T3",
		Amount:           "10.00",
		Products:         dto.Products{Names: "soap,", IsString: true},
		PaymentMethod:    "PayPalAccount",
		PaypalPayerEmail: "buyer@example.com",
		PaypalPayerID:    "PAYER1",
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", resp.PaypalEmail)
	assert.Equal(t, "Order placed successfully via PayPalAccount", resp.Msg)

	order := f.load(t, resp.OrderID)
	assert.Equal(t, model.PaymentMethodPayPal, order.PaymentMethod)
	require.NotNil(t, order.PayPal.PayerEmail)
	assert.Equal(t, "buyer@example.com", *order.PayPal.PayerEmail)
	require.NotNil(t, order.PayPal.PayerID)
	assert.Nil(t, order.PayPal.CaptureID)
}

func TestAddOrder_NonPayPalIgnoresPayPalFields(t *testing.T) {
	f := newOrderFixture(t)

	resp, err := f.svc.AddOrder(context.Background(), f.user.ID, &dto.AddOrderRequest{
		TransactionID:    "T4",
		Amount:           "10.00",
		PaymentMethod:    "Card",
		PaypalPayerEmail: "buyer@example.com",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.PaypalEmail)

	order := f.load(t, resp.OrderID)
	assert.Nil(t, order.PayPal.PayerEmail)
	assert.Nil(t, order.PayPal.PayerID)
}

func TestAddOrder_UserDoesNotExist(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.AddOrder(context.Background(), 999, &dto.AddOrderRequest{TransactionID: "T1", Amount: "1"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "User does not exist", apperror.PublicMessage(err))
}

func TestAddOrder_Validation(t *testing.T) {
	f := newOrderFixture(t)

	tests := []struct {
		name string
		req  dto.AddOrderRequest
		msg  string
	}{
		{"missing transaction id", dto.AddOrderRequest{Amount: "1"}, "transaction_id is required"},
		{"missing amount", dto.AddOrderRequest{TransactionID: "T"}, "amount is required"},
		{"bad amount", dto.AddOrderRequest{TransactionID: "T", Amount: "1.234"}, `amount "1.234" is invalid`},
		{"bad status", dto.AddOrderRequest{TransactionID: "T", Amount: "1", TransactionStatus: "captured"}, `transaction_status "captured" is invalid`},
		{"bad currency", dto.AddOrderRequest{TransactionID: "T", Amount: "1", CurrencyCode: "dollars"}, `currency_code "dollars" is invalid`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddOrder(context.Background(), f.user.ID, &tt.req)
			require.Error(t, err)
			assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
			assert.Equal(t, tt.msg, apperror.PublicMessage(err))
		})
	}
}

func TestAddOrder_ReconcilesChargedOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	email := "gateway@example.com"
	charged := &model.Order{
		Reference:         "ref-1",
		UserID:            &f.user.ID,
		TransactionID:     "BT-1",
		AmountMinor:       1999,
		PaymentMethod:     model.PaymentMethodPayPal,
		TransactionStatus: model.TransactionStatusSettlementPending,
		State:             model.OrderStateConfirmed,
		PayPal:            model.PayPalDetails{PayerEmail: &email},
	}
	require.NoError(t, f.repo.Create(ctx, nil, charged))

	resp, err := f.svc.AddOrder(ctx, f.user.ID, &dto.AddOrderRequest{
		TransactionID:    "BT-1",
		Amount:           "19.99",
		Products:         dto.Products{Names: "soap,brush,", IsString: true},
		PaymentMethod:    "PayPalAccount",
		PaypalPayerEmail: "client@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, charged.ID, resp.OrderID)
	assert.Equal(t, "gateway@example.com", resp.PaypalEmail)

	order := f.load(t, resp.OrderID)
	assert.Equal(t, 2, order.ProductCount)
	assert.Equal(t, model.TransactionStatusSettlementPending, order.TransactionStatus)

	var count int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListOrders(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	first, err := f.svc.AddOrder(ctx, f.user.ID, &dto.AddOrderRequest{TransactionID: "T1", Amount: "1.50"})
	require.NoError(t, err)
	second, err := f.svc.AddOrder(ctx, f.user.ID, &dto.AddOrderRequest{TransactionID: "T2", Amount: "2"})
	require.NoError(t, err)

	orders, err := f.svc.ListOrders(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.OrderID, orders[0].ID)
	assert.Equal(t, first.OrderID, orders[1].ID)
	assert.Equal(t, "1.50", orders[1].Amount)
	assert.Equal(t, "$1.50 USD", orders[1].FormattedAmount)
	assert.False(t, orders[1].IsPaypal)
}
