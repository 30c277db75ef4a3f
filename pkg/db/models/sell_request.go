package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/renewbay/renewbay-backend/pkg/enums"
)

// SellRequest is a customer sell-back offer. Once converted or rejected it
// is terminal; conversion produces a catalog Product in the same transaction.
type SellRequest struct {
	ReqID         string                  `gorm:"column:req_id;primaryKey"`
	Email         string                  `gorm:"column:email;index;not null"`
	Device        string                  `gorm:"column:device;not null"`
	Brand         string                  `gorm:"column:brand"`
	Condition     enums.ProductCondition  `gorm:"column:condition;not null;default:good"`
	ExpectedPrice decimal.Decimal         `gorm:"column:expected_price;type:numeric(12,2);not null"`
	Description   string                  `gorm:"column:description"`
	ImagePath     string                  `gorm:"column:image_path"`
	Status        enums.SellRequestStatus `gorm:"column:status;not null;default:pending"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
}
