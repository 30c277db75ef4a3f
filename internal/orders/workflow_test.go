package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/internal/catalog"
	"github.com/renewbay/renewbay-backend/pkg/db"
	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	pkgerrors "github.com/renewbay/renewbay-backend/pkg/errors"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

func setupWorkflow(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := setupOrdersTestDB(t)
	catalogRepo := catalog.NewRepository(conn)
	svc, err := NewService(NewRepository(conn), db.FromConn(conn), catalogRepo, catalog.NewAdjuster(catalogRepo))
	require.NoError(t, err)
	return svc, conn
}

func seedCatalogProduct(t *testing.T, conn *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:      name,
		Category:  enums.ProductCategoryPhone,
		Condition: enums.ProductConditionGood,
		Price:     decimal.NewFromInt(price),
		Stock:     stock,
		CreatedBy: "system",
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestCreateOrder_snapshotsCart(t *testing.T) {
	svc, conn := setupWorkflow(t)
	ctx := context.Background()

	phone := seedCatalogProduct(t, conn, "Refurb Phone", 250, 10)
	pad := seedCatalogProduct(t, conn, "Refurb Tablet", 150, 3)

	dto, err := svc.Create(ctx, "Buyer@Example.com", CreateOrderInput{
		Cart:   map[uint]int{phone.ID: 2, pad.ID: 1},
		Method: enums.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", dto.Email)
	assert.Equal(t, enums.OrderStatusPendingApproval.String(), dto.Status)
	assert.Equal(t, "650.00", dto.Total)
	require.Len(t, dto.Items, 2)

	// The payment record lands in the same transaction.
	var payment models.Payment
	require.NoError(t, conn.First(&payment, "order_id = ?", dto.OrderID).Error)
	assert.Equal(t, enums.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, "650", payment.Amount.String())

	// Checkout must not touch stock; only approval does.
	var stored models.Product
	require.NoError(t, conn.First(&stored, "id = ?", phone.ID).Error)
	assert.Equal(t, 10, stored.Stock)
}

func TestCreateOrder_codPaymentStaysPending(t *testing.T) {
	svc, conn := setupWorkflow(t)

	phone := seedCatalogProduct(t, conn, "COD Phone", 100, 5)
	dto, err := svc.Create(context.Background(), "cod@example.com", CreateOrderInput{
		Cart:   map[uint]int{phone.ID: 1},
		Method: enums.PaymentMethodCOD,
	})
	require.NoError(t, err)

	var payment models.Payment
	require.NoError(t, conn.First(&payment, "order_id = ?", dto.OrderID).Error)
	assert.Equal(t, enums.PaymentStatusPending, payment.Status)
}

func TestCreateOrder_skipsVanishedProducts(t *testing.T) {
	svc, conn := setupWorkflow(t)

	phone := seedCatalogProduct(t, conn, "Only Real Item", 120, 5)
	dto, err := svc.Create(context.Background(), "buyer@example.com", CreateOrderInput{
		Cart:   map[uint]int{phone.ID: 1, 99999: 4},
		Method: enums.PaymentMethodUPI,
	})
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, phone.ID, dto.Items[0].ProductID)
	assert.Equal(t, "120.00", dto.Total)
}

func TestCreateOrder_rejectsEmptyAndUnavailableCarts(t *testing.T) {
	svc, _ := setupWorkflow(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "buyer@example.com", CreateOrderInput{
		Cart:   map[uint]int{},
		Method: enums.PaymentMethodCard,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Create(ctx, "buyer@example.com", CreateOrderInput{
		Cart:   map[uint]int{424242: 1},
		Method: enums.PaymentMethodCard,
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestApprove_decrementsStockOnce(t *testing.T) {
	svc, conn := setupWorkflow(t)
	ctx := context.Background()

	phone := seedCatalogProduct(t, conn, "Approved Phone", 200, 10)
	dto, err := svc.Create(ctx, "buyer@example.com", CreateOrderInput{
		Cart:   map[uint]int{phone.ID: 3},
		Method: enums.PaymentMethodCard,
	})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, dto.OrderID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusApproved.String(), approved.Status)

	var stored models.Product
	require.NoError(t, conn.First(&stored, "id = ?", phone.ID).Error)
	assert.Equal(t, 7, stored.Stock)

	// Re-approval is a no-op: same result, stock untouched.
	again, err := svc.Approve(ctx, dto.OrderID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusApproved.String(), again.Status)

	require.NoError(t, conn.First(&stored, "id = ?", phone.ID).Error)
	assert.Equal(t, 7, stored.Stock)
}

func TestApprove_clampsOversoldStock(t *testing.T) {
	svc, conn := setupWorkflow(t)
	ctx := context.Background()

	phone := seedCatalogProduct(t, conn, "Oversold Phone", 200, 2)
	dto, err := svc.Create(ctx, "buyer@example.com", CreateOrderInput{
		Cart:   map[uint]int{phone.ID: 5},
		Method: enums.PaymentMethodCard,
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, dto.OrderID)
	require.NoError(t, err)

	var stored models.Product
	require.NoError(t, conn.First(&stored, "id = ?", phone.ID).Error)
	assert.Equal(t, 0, stored.Stock)
}

func TestDecline_leavesStockAlone(t *testing.T) {
	svc, conn := setupWorkflow(t)
	ctx := context.Background()

	phone := seedCatalogProduct(t, conn, "Declined Phone", 200, 6)
	dto, err := svc.Create(ctx, "buyer@example.com", CreateOrderInput{
		Cart:   map[uint]int{phone.ID: 2},
		Method: enums.PaymentMethodCard,
	})
	require.NoError(t, err)

	declined, err := svc.Decline(ctx, dto.OrderID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDeclined.String(), declined.Status)

	var stored models.Product
	require.NoError(t, conn.First(&stored, "id = ?", phone.ID).Error)
	assert.Equal(t, 6, stored.Stock)

	// Terminal orders cannot be approved afterwards.
	_, err = svc.Approve(ctx, dto.OrderID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestDecline_terminalOrderConflicts(t *testing.T) {
	svc, conn := setupWorkflow(t)
	ctx := context.Background()

	phone := seedCatalogProduct(t, conn, "Twice Declined", 90, 1)
	dto, err := svc.Create(ctx, "buyer@example.com", CreateOrderInput{
		Cart:   map[uint]int{phone.ID: 1},
		Method: enums.PaymentMethodCOD,
	})
	require.NoError(t, err)

	_, err = svc.Decline(ctx, dto.OrderID)
	require.NoError(t, err)

	_, err = svc.Decline(ctx, dto.OrderID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestApproveAndDecline_missingOrder(t *testing.T) {
	svc, _ := setupWorkflow(t)
	ctx := context.Background()

	_, err := svc.Approve(ctx, "ORD-missing")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	_, err = svc.Decline(ctx, "ORD-missing")
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListCustomerOrders_onlyOwnApproved(t *testing.T) {
	svc, conn := setupWorkflow(t)
	ctx := context.Background()

	phone := seedCatalogProduct(t, conn, "Visible Phone", 100, 20)

	mineApproved, err := svc.Create(ctx, "mine@example.com", CreateOrderInput{
		Cart: map[uint]int{phone.ID: 1}, Method: enums.PaymentMethodCard,
	})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, mineApproved.OrderID)
	require.NoError(t, err)

	minePending, err := svc.Create(ctx, "mine@example.com", CreateOrderInput{
		Cart: map[uint]int{phone.ID: 1}, Method: enums.PaymentMethodCard,
	})
	require.NoError(t, err)

	theirs, err := svc.Create(ctx, "theirs@example.com", CreateOrderInput{
		Cart: map[uint]int{phone.ID: 1}, Method: enums.PaymentMethodCard,
	})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, theirs.OrderID)
	require.NoError(t, err)

	list, err := svc.ListCustomerOrders(ctx, "mine@example.com", pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mineApproved.OrderID, list[0].OrderID)
	assert.NotEqual(t, minePending.OrderID, list[0].OrderID)
}

func TestOrderDetail_includesPayment(t *testing.T) {
	svc, conn := setupWorkflow(t)
	ctx := context.Background()

	phone := seedCatalogProduct(t, conn, "Detail Phone", 300, 4)
	dto, err := svc.Create(ctx, "detail@example.com", CreateOrderInput{
		Cart:   map[uint]int{phone.ID: 1},
		Method: enums.PaymentMethodUPI,
		Details: "upi://buyer",
	})
	require.NoError(t, err)

	detail, err := svc.OrderDetail(ctx, dto.OrderID)
	require.NoError(t, err)
	assert.Equal(t, dto.OrderID, detail.Order.OrderID)
	require.NotNil(t, detail.Payment)
	assert.Equal(t, "300.00", detail.Payment.Amount)
	assert.Equal(t, enums.PaymentStatusSuccess.String(), detail.Payment.Status)
}
