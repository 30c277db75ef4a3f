package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
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

// Service exposes the checkout and order approval workflow.
type Service interface {
	Create(ctx context.Context, email string, input CreateOrderInput) (*OrderDTO, error)
	Approve(ctx context.Context, orderID string) (*OrderDTO, error)
	Decline(ctx context.Context, orderID string) (*OrderDTO, error)
	ListOrders(ctx context.Context, filters Filters, params pagination.Params) ([]OrderDTO, error)
	ListCustomerOrders(ctx context.Context, email string, params pagination.Params) ([]OrderDTO, error)
	OrderDetail(ctx context.Context, orderID string) (*OrderDetailDTO, error)
}

// CreateOrderInput is the validated checkout payload. Cart maps product id
// to quantity.
type CreateOrderInput struct {
	Cart    map[uint]int
	Method  enums.PaymentMethod
	Details string
}

type productReader interface {
	FindByID(ctx context.Context, id uint) (*models.Product, error)
}

type service struct {
	repo     Repository
	dbClient *db.Client
	products productReader
	stock    catalog.StockAdjuster
}

// NewService constructs an orders service instance.
func NewService(repo Repository, dbClient *db.Client, products productReader, stock catalog.StockAdjuster) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock adjuster required")
	}
	return &service{repo: repo, dbClient: dbClient, products: products, stock: stock}, nil
}

// Create snapshots the cart into an order plus payment record inside one
// transaction. Product ids that no longer exist are skipped.
func (s *service) Create(ctx context.Context, email string, input CreateOrderInput) (*OrderDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Cart) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if !input.Method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	for _, qty := range input.Cart {
		if qty <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantities must be positive")
		}
	}

	// Deterministic line order regardless of map iteration.
	productIDs := make([]uint, 0, len(input.Cart))
	for id := range input.Cart {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	orderID := ids.New(ids.PrefixOrder)
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(productIDs))
	for _, productID := range productIDs {
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load cart product")
		}
		qty := input.Cart[productID]
		items = append(items, models.OrderItem{
			OrderID:   orderID,
			ProductID: productID,
			Qty:       qty,
			Price:     product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no products in cart are available")
	}

	paymentStatus := enums.PaymentStatusSuccess
	if input.Method == enums.PaymentMethodCOD {
		paymentStatus = enums.PaymentStatusPending
	}

	order := &models.Order{
		OrderID:       orderID,
		Email:         email,
		Status:        enums.OrderStatusPendingApproval,
		Total:         total,
		PaymentID:     ids.New(ids.PrefixPayment),
		PaymentMethod: input.Method,
		Items:         items,
	}
	payment := &models.Payment{
		PaymentID: order.PaymentID,
		OrderID:   orderID,
		Amount:    total,
		Method:    input.Method,
		Details:   input.Details,
		Status:    paymentStatus,
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}
		return repo.CreatePayment(ctx, payment)
	})
	metrics.RecordTransition("orders", "create", err == nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create order")
	}

	return toOrderDTO(order), nil
}

// Approve flips a pending order to approved and decrements stock for each
// snapshot line, all in one transaction. Approving an already approved
// order is a no-op so stock can never be decremented twice.
func (s *service) Approve(ctx context.Context, orderID string) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == enums.OrderStatusApproved {
		return toOrderDTO(order), nil
	}
	if order.Status == enums.OrderStatusDeclined {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already declined")
	}

	var swapped bool
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		affected, err := s.repo.WithTx(tx).UpdateStatusIf(ctx, orderID, enums.OrderStatusPendingApproval, enums.OrderStatusApproved)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Lost the race; a concurrent transition already landed.
			return nil
		}
		swapped = true
		for _, item := range order.Items {
			if err := s.stock.AdjustStock(ctx, tx, item.ProductID, -item.Qty); err != nil {
				return err
			}
		}
		return nil
	})
	metrics.RecordTransition("orders", "approve", err == nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to approve order")
	}

	if !swapped {
		order, err = s.loadOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if order.Status == enums.OrderStatusApproved {
			return toOrderDTO(order), nil
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already declined")
	}

	order.Status = enums.OrderStatusApproved
	return toOrderDTO(order), nil
}

// Decline flips a pending order to declined. Stock is untouched.
func (s *service) Decline(ctx context.Context, orderID string) (*OrderDTO, error) {
	affected, err := s.repo.UpdateStatusIf(ctx, orderID, enums.OrderStatusPendingApproval, enums.OrderStatusDeclined)
	metrics.RecordTransition("orders", "decline", err == nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to decline order")
	}
	if affected == 0 {
		order, err := s.loadOrder(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order is already %s", order.Status))
	}

	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderDTO(order), nil
}

func (s *service) ListOrders(ctx context.Context, filters Filters, params pagination.Params) ([]OrderDTO, error) {
	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	orders, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list orders")
	}
	return toOrderDTOs(orders), nil
}

// ListCustomerOrders returns only the caller's approved orders; pending and
// declined orders stay out of the customer view.
func (s *service) ListCustomerOrders(ctx context.Context, email string, params pagination.Params) ([]OrderDTO, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	orders, err := s.repo.ListByEmailAndStatus(ctx, email, enums.OrderStatusApproved, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list orders")
	}
	return toOrderDTOs(orders), nil
}

func (s *service) OrderDetail(ctx context.Context, orderID string) (*OrderDetailDTO, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	detail := &OrderDetailDTO{Order: *toOrderDTO(order)}
	payment, err := s.repo.FindPayment(ctx, orderID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load payment")
		}
	} else {
		detail.Payment = toPaymentDTO(payment)
	}
	return detail, nil
}

func (s *service) loadOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load order")
	}
	return order, nil
}
