package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/renewbay/renewbay-backend/pkg/enums"
)

// Order is created at checkout with a snapshot total; items and total are
// immutable afterwards and only the status moves, forward only.
type Order struct {
	OrderID       string              `gorm:"column:order_id;primaryKey"`
	Email         string              `gorm:"column:email;index;not null"`
	Status        enums.OrderStatus   `gorm:"column:status;not null;default:pending_approval"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(12,2);not null"`
	PaymentID     string              `gorm:"column:payment_id;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;not null"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}

// OrderItem is a snapshot line: price is captured at checkout and never
// re-reads the live catalog.
type OrderItem struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   string          `gorm:"column:order_id;index;not null"`
	ProductID uint            `gorm:"column:product_id;not null"`
	Qty       int             `gorm:"column:qty;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
