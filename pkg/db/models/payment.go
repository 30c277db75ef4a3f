package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/renewbay/renewbay-backend/pkg/enums"
)

// Payment records the simulated gateway outcome for an order. One per
// order, created alongside it, immutable thereafter.
type Payment struct {
	PaymentID string              `gorm:"column:payment_id;primaryKey"`
	OrderID   string              `gorm:"column:order_id;uniqueIndex;not null"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Method    enums.PaymentMethod `gorm:"column:method;not null"`
	Details   string              `gorm:"column:details"`
	Status    enums.PaymentStatus `gorm:"column:status;not null"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
}
