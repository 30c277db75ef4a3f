package sellrequests

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/internal/catalog"
	"github.com/renewbay/renewbay-backend/pkg/db"
	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	pkgerrors "github.com/renewbay/renewbay-backend/pkg/errors"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

func setupSellRequestsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	sellRequests := `
CREATE TABLE IF NOT EXISTS sell_requests (
  req_id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  device TEXT NOT NULL,
  brand TEXT,
  condition TEXT NOT NULL DEFAULT 'good',
  expected_price NUMERIC NOT NULL,
  description TEXT,
  image_path TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
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
	require.NoError(t, conn.Exec(sellRequests).Error)
	require.NoError(t, conn.Exec(products).Error)
	return conn
}

func setupService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := setupSellRequestsTestDB(t)
	svc, err := NewService(NewRepository(conn), db.FromConn(conn), catalog.NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func createPending(t *testing.T, svc Service) *SellRequestDTO {
	t.Helper()

	dto, err := svc.Create(context.Background(), "seller@example.com", CreateSellRequestInput{
		Device:        "Galaxy S21",
		Brand:         "Samsung",
		Condition:     enums.ProductConditionLikeNew,
		ExpectedPrice: decimal.NewFromInt(180),
		Description:   "one owner, boxed",
	})
	require.NoError(t, err)
	return dto
}

func TestCreateSellRequest(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name  string
			email string
			input CreateSellRequestInput
		}{
			{"missingEmail", "", CreateSellRequestInput{Device: "Phone"}},
			{"blankDevice", "s@example.com", CreateSellRequestInput{Device: "  "}},
			{"negativePrice", "s@example.com", CreateSellRequestInput{Device: "Phone", ExpectedPrice: decimal.NewFromInt(-1)}},
			{"badCondition", "s@example.com", CreateSellRequestInput{Device: "Phone", Condition: "mint"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(ctx, tc.email, tc.input)
				typed := pkgerrors.As(err)
				require.NotNil(t, typed)
				assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
			})
		}
	})

	t.Run("pendingByDefault", func(t *testing.T) {
		dto := createPending(t, svc)
		assert.Equal(t, enums.SellRequestStatusPending.String(), dto.Status)
		assert.Equal(t, "seller@example.com", dto.Email)
		assert.Equal(t, "180.00", dto.ExpectedPrice)
	})
}

func TestReject(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	dto := createPending(t, svc)

	rejected, err := svc.Reject(ctx, dto.ReqID)
	require.NoError(t, err)
	assert.Equal(t, enums.SellRequestStatusRejected.String(), rejected.Status)

	_, err = svc.Reject(ctx, dto.ReqID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	_, err = svc.Reject(ctx, "SR-missing")
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestConvert_createsProductAndFlipsStatus(t *testing.T) {
	svc, conn := setupService(t)
	ctx := context.Background()

	dto := createPending(t, svc)

	conversion, err := svc.Convert(ctx, dto.ReqID, ConvertInput{
		Price:      decimal.NewFromInt(220),
		Stock:      1,
		StaffEmail: "staff@renewbay.example",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.SellRequestStatusConverted.String(), conversion.Request.Status)
	require.NotZero(t, conversion.ProductID)

	var product models.Product
	require.NoError(t, conn.First(&product, "id = ?", conversion.ProductID).Error)
	assert.Equal(t, "Galaxy S21", product.Name)
	assert.Equal(t, "Samsung", product.Brand)
	assert.Equal(t, enums.ProductConditionLikeNew, product.Condition)
	assert.Equal(t, "220", product.Price.String())
	assert.Equal(t, 1, product.Stock)
	assert.Equal(t, models.DefaultWarrantyMonths, product.WarrantyMonths)
	assert.Equal(t, "staff@renewbay.example", product.CreatedBy)
	assert.NotEmpty(t, product.Slug)
}

func TestConvert_terminalRequestYieldsNoSecondProduct(t *testing.T) {
	svc, conn := setupService(t)
	ctx := context.Background()

	dto := createPending(t, svc)

	_, err := svc.Convert(ctx, dto.ReqID, ConvertInput{Price: decimal.NewFromInt(200), Stock: 1})
	require.NoError(t, err)

	_, err = svc.Convert(ctx, dto.ReqID, ConvertInput{Price: decimal.NewFromInt(250), Stock: 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConvert_rejectedRequestConflicts(t *testing.T) {
	svc, conn := setupService(t)
	ctx := context.Background()

	dto := createPending(t, svc)
	_, err := svc.Reject(ctx, dto.ReqID)
	require.NoError(t, err)

	_, err = svc.Convert(ctx, dto.ReqID, ConvertInput{Price: decimal.NewFromInt(200), Stock: 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	var count int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConvert_validation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	dto := createPending(t, svc)

	_, err := svc.Convert(ctx, dto.ReqID, ConvertInput{Price: decimal.NewFromInt(-5)})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Convert(ctx, dto.ReqID, ConvertInput{Price: decimal.NewFromInt(5), Stock: -1})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Convert(ctx, "SR-missing", ConvertInput{Price: decimal.NewFromInt(5)})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListRequests(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	first := createPending(t, svc)
	second := createPending(t, svc)
	_, err := svc.Reject(ctx, second.ReqID)
	require.NoError(t, err)

	pending, err := svc.ListRequests(ctx, enums.SellRequestStatusPending, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ReqID, pending[0].ReqID)

	all, err := svc.ListRequests(ctx, "", pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.ListRequests(ctx, "limbo", pagination.Params{Limit: 10})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestListCustomerRequests(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	createPending(t, svc)
	_, err := svc.Create(ctx, "other@example.com", CreateSellRequestInput{
		Device:        "ThinkPad",
		ExpectedPrice: decimal.NewFromInt(90),
	})
	require.NoError(t, err)

	list, err := svc.ListCustomerRequests(ctx, "seller@example.com", pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "seller@example.com", list[0].Email)

	_, err = svc.ListCustomerRequests(ctx, " ", pagination.Params{Limit: 10})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
