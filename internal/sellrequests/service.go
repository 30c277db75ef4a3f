package sellrequests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/internal/catalog"
	"github.com/renewbay/renewbay-backend/pkg/db"
	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	pkgerrors "github.com/renewbay/renewbay-backend/pkg/errors"
	"github.com/renewbay/renewbay-backend/pkg/ids"
	"github.com/renewbay/renewbay-backend/pkg/metrics"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

// Service exposes the sell-back intake and conversion workflow.
type Service interface {
	Create(ctx context.Context, email string, input CreateSellRequestInput) (*SellRequestDTO, error)
	Reject(ctx context.Context, reqID string) (*SellRequestDTO, error)
	Convert(ctx context.Context, reqID string, input ConvertInput) (*ConversionDTO, error)
	ListRequests(ctx context.Context, status enums.SellRequestStatus, params pagination.Params) ([]SellRequestDTO, error)
	ListCustomerRequests(ctx context.Context, email string, params pagination.Params) ([]SellRequestDTO, error)
	GetRequest(ctx context.Context, reqID string) (*SellRequestDTO, error)
}

// CreateSellRequestInput is the validated customer intake payload.
type CreateSellRequestInput struct {
	Device        string
	Brand         string
	Condition     enums.ProductCondition
	ExpectedPrice decimal.Decimal
	Description   string
	ImagePath     string
}

// ConvertInput carries the staff pricing decision for a conversion.
type ConvertInput struct {
	Price          decimal.Decimal
	Stock          int
	WarrantyMonths int
	StaffEmail     string
}

var errLostStatusRace = errors.New("sell request status changed concurrently")

type service struct {
	repo     Repository
	dbClient *db.Client
	products catalog.Repository
}

// NewService constructs a sell requests service instance.
func NewService(repo Repository, dbClient *db.Client, products catalog.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sell request repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if products == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, dbClient: dbClient, products: products}, nil
}

// Create records a pending sell-back offer.
func (s *service) Create(ctx context.Context, email string, input CreateSellRequestInput) (*SellRequestDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.Device) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device is required")
	}
	if input.ExpectedPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expected_price cannot be negative")
	}
	if input.Condition != "" && !input.Condition.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid condition")
	}

	request := &models.SellRequest{
		ReqID:         ids.New(ids.PrefixSellRequest),
		Email:         email,
		Device:        strings.TrimSpace(input.Device),
		Brand:         strings.TrimSpace(input.Brand),
		Condition:     input.Condition,
		ExpectedPrice: input.ExpectedPrice,
		Description:   input.Description,
		ImagePath:     input.ImagePath,
		Status:        enums.SellRequestStatusPending,
	}
	if request.Condition == "" {
		request.Condition = enums.ProductConditionGood
	}

	err := s.repo.Create(ctx, request)
	metrics.RecordTransition("sellrequests", "create", err == nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create sell request")
	}
	return toSellRequestDTO(request), nil
}

// Reject flips a pending request to rejected.
func (s *service) Reject(ctx context.Context, reqID string) (*SellRequestDTO, error) {
	affected, err := s.repo.UpdateStatusIf(ctx, reqID, enums.SellRequestStatusPending, enums.SellRequestStatusRejected)
	metrics.RecordTransition("sellrequests", "reject", err == nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to reject sell request")
	}
	if affected == 0 {
		request, err := s.loadRequest(ctx, reqID)
		if err != nil {
			return nil, err
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("sell request is already %s", request.Status))
	}

	request, err := s.loadRequest(ctx, reqID)
	if err != nil {
		return nil, err
	}
	return toSellRequestDTO(request), nil
}

// Convert turns a pending request into a catalog listing. The status swap
// and the product insert share one transaction, so a terminal request can
// never yield a second product and a crash cannot leave one without the
// other.
func (s *service) Convert(ctx context.Context, reqID string, input ConvertInput) (*ConversionDTO, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	request, err := s.loadRequest(ctx, reqID)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("sell request is already %s", request.Status))
	}

	createdBy := strings.TrimSpace(input.StaffEmail)
	if createdBy == "" {
		createdBy = "system"
	}
	warranty := input.WarrantyMonths
	if warranty <= 0 {
		warranty = models.DefaultWarrantyMonths
	}

	product := &models.Product{
		Name:           request.Device,
		Brand:          request.Brand,
		Category:       enums.ProductCategoryOther,
		Condition:      request.Condition,
		Price:          input.Price,
		Stock:          input.Stock,
		WarrantyMonths: warranty,
		ImagePath:      request.ImagePath,
		Description:    request.Description,
		CreatedBy:      createdBy,
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.repo.WithTx(tx).UpdateStatusIf(ctx, reqID, enums.SellRequestStatusPending, enums.SellRequestStatusConverted)
		if err != nil {
			return err
		}
		if affected == 0 {
			return errLostStatusRace
		}
		productsTx := s.products.WithTx(tx)
		created, err := productsTx.Create(ctx, product)
		if err != nil {
			return err
		}
		slug := catalog.Slugify(created.Name, created.ID)
		if _, err := productsTx.Update(ctx, created.ID, map[string]any{"slug": slug}); err != nil {
			return err
		}
		product.Slug = slug
		return nil
	})
	metrics.RecordTransition("sellrequests", "convert", err == nil)
	if err != nil {
		if errors.Is(err, errLostStatusRace) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "sell request is no longer pending")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to convert sell request")
	}

	request.Status = enums.SellRequestStatusConverted
	return &ConversionDTO{
		Request:   *toSellRequestDTO(request),
		ProductID: product.ID,
	}, nil
}

func (s *service) ListRequests(ctx context.Context, status enums.SellRequestStatus, params pagination.Params) ([]SellRequestDTO, error) {
	if status != "" && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sell request status")
	}
	requests, err := s.repo.List(ctx, status, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list sell requests")
	}
	return toSellRequestDTOs(requests), nil
}

func (s *service) ListCustomerRequests(ctx context.Context, email string, params pagination.Params) ([]SellRequestDTO, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	requests, err := s.repo.ListByEmail(ctx, email, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list sell requests")
	}
	return toSellRequestDTOs(requests), nil
}

func (s *service) GetRequest(ctx context.Context, reqID string) (*SellRequestDTO, error) {
	request, err := s.loadRequest(ctx, reqID)
	if err != nil {
		return nil, err
	}
	return toSellRequestDTO(request), nil
}

func (s *service) loadRequest(ctx context.Context, reqID string) (*models.SellRequest, error) {
	request, err := s.repo.FindByID(ctx, reqID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sell request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load sell request")
	}
	return request, nil
}
