package orders

import (
	"time"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
)

// OrderDTO is the API shape of an order with its snapshot lines.
type OrderDTO struct {
	OrderID       string         `json:"order_id"`
	Email         string         `json:"email"`
	Status        string         `json:"status"`
	Total         string         `json:"total"`
	PaymentID     string         `json:"payment_id"`
	PaymentMethod string         `json:"payment_method"`
	Items         []OrderItemDTO `json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
}

// OrderItemDTO is one snapshot line of an order.
type OrderItemDTO struct {
	ProductID uint   `json:"product_id"`
	Qty       int    `json:"qty"`
	Price     string `json:"price"`
}

// PaymentDTO is the simulated gateway record attached to an order.
type PaymentDTO struct {
	PaymentID string    `json:"payment_id"`
	OrderID   string    `json:"order_id"`
	Amount    string    `json:"amount"`
	Method    string    `json:"method"`
	Details   string    `json:"details,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderDetailDTO is the staff view: order, lines, and payment together.
type OrderDetailDTO struct {
	Order   OrderDTO    `json:"order"`
	Payment *PaymentDTO `json:"payment,omitempty"`
}

func toOrderDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			Price:     item.Price.StringFixed(2),
		})
	}
	return &OrderDTO{
		OrderID:       order.OrderID,
		Email:         order.Email,
		Status:        order.Status.String(),
		Total:         order.Total.StringFixed(2),
		PaymentID:     order.PaymentID,
		PaymentMethod: order.PaymentMethod.String(),
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}

func toOrderDTOs(orders []models.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *toOrderDTO(&orders[i]))
	}
	return dtos
}

func toPaymentDTO(payment *models.Payment) *PaymentDTO {
	if payment == nil {
		return nil
	}
	return &PaymentDTO{
		PaymentID: payment.PaymentID,
		OrderID:   payment.OrderID,
		Amount:    payment.Amount.StringFixed(2),
		Method:    payment.Method.String(),
		Details:   payment.Details,
		Status:    payment.Status.String(),
		CreatedAt: payment.CreatedAt,
	}
}
