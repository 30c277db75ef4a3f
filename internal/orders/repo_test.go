package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	"github.com/renewbay/renewbay-backend/pkg/ids"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  order_id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending_approval',
  total NUMERIC NOT NULL,
  payment_id TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  created_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id TEXT NOT NULL,
  product_id INTEGER NOT NULL,
  qty INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  created_at DATETIME
);`
	payments := `
CREATE TABLE IF NOT EXISTS payments (
  payment_id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL UNIQUE,
  amount NUMERIC NOT NULL,
  method TEXT NOT NULL,
  details TEXT,
  status TEXT NOT NULL,
  created_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  brand TEXT,
  category TEXT NOT NULL DEFAULT 'other',
  condition TEXT NOT NULL DEFAULT 'good',
  price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  warranty_months INTEGER NOT NULL DEFAULT 3,
  image_path TEXT,
  description TEXT,
  slug TEXT,
  featured INTEGER NOT NULL DEFAULT 0,
  created_by TEXT NOT NULL DEFAULT 'system',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	require.NoError(t, db.Exec(payments).Error)
	require.NoError(t, db.Exec(products).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, email string, status enums.OrderStatus, items ...models.OrderItem) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderID:       ids.New(ids.PrefixOrder),
		Email:         email,
		Status:        status,
		Total:         decimal.NewFromInt(100),
		PaymentID:     ids.New(ids.PrefixPayment),
		PaymentMethod: enums.PaymentMethodCard,
	}
	for i := range items {
		items[i].OrderID = order.OrderID
	}
	order.Items = items
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryUpdateStatusIf(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, "buyer@example.com", enums.OrderStatusPendingApproval)

	affected, err := repo.UpdateStatusIf(ctx, order.OrderID, enums.OrderStatusPendingApproval, enums.OrderStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Second swap must miss: the stored status no longer matches.
	affected, err = repo.UpdateStatusIf(ctx, order.OrderID, enums.OrderStatusPendingApproval, enums.OrderStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	stored, err := repo.FindByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusApproved, stored.Status)
}

func TestRepositoryUpdateStatusIf_missingOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	affected, err := repo.UpdateStatusIf(context.Background(), "ORD-nope", enums.OrderStatusPendingApproval, enums.OrderStatusDeclined)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestRepositoryFindByID_preloadsItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := seedOrder(t, db, "buyer@example.com", enums.OrderStatusPendingApproval,
		models.OrderItem{ProductID: 1, Qty: 2, Price: decimal.NewFromInt(40)},
		models.OrderItem{ProductID: 2, Qty: 1, Price: decimal.NewFromInt(20)},
	)

	stored, err := repo.FindByID(context.Background(), order.OrderID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
}

func TestRepositoryList_filters(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedOrder(t, db, "a@example.com", enums.OrderStatusPendingApproval)
	seedOrder(t, db, "a@example.com", enums.OrderStatusApproved)
	seedOrder(t, db, "b@example.com", enums.OrderStatusDeclined)

	all, err := repo.List(ctx, Filters{}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byEmail, err := repo.List(ctx, Filters{Email: "A@example.com"}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byEmail, 2)

	byStatus, err := repo.List(ctx, Filters{Status: enums.OrderStatusDeclined}, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "b@example.com", byStatus[0].Email)
}

func TestRepositoryListByEmailAndStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	seedOrder(t, db, "mine@example.com", enums.OrderStatusApproved)
	seedOrder(t, db, "mine@example.com", enums.OrderStatusPendingApproval)
	seedOrder(t, db, "theirs@example.com", enums.OrderStatusApproved)

	list, err := repo.ListByEmailAndStatus(context.Background(), "mine@example.com", enums.OrderStatusApproved, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "mine@example.com", list[0].Email)
	assert.Equal(t, enums.OrderStatusApproved, list[0].Status)
}

func TestRepositoryFindPayment(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, "pay@example.com", enums.OrderStatusPendingApproval)
	payment := &models.Payment{
		PaymentID: order.PaymentID,
		OrderID:   order.OrderID,
		Amount:    order.Total,
		Method:    order.PaymentMethod,
		Status:    enums.PaymentStatusSuccess,
	}
	require.NoError(t, repo.CreatePayment(ctx, payment))

	stored, err := repo.FindPayment(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentID, stored.PaymentID)
	assert.Equal(t, enums.PaymentStatusSuccess, stored.Status)
}
