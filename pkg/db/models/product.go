package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/enums"
)

// DefaultWarrantyMonths is injected when a stored row predates the
// warranty_months column.
const DefaultWarrantyMonths = 3

// Product is a certified pre-owned catalog listing. Stock is mutated only
// through the catalog's atomic clamp adjustment.
type Product struct {
	ID             uint                   `gorm:"column:id;primaryKey;autoIncrement"`
	Name           string                 `gorm:"column:name;not null"`
	Brand          string                 `gorm:"column:brand"`
	Category       enums.ProductCategory  `gorm:"column:category;not null;default:other"`
	Condition      enums.ProductCondition `gorm:"column:condition;not null;default:good"`
	Price          decimal.Decimal        `gorm:"column:price;type:numeric(12,2);not null"`
	Stock          int                    `gorm:"column:stock;not null;default:0"`
	WarrantyMonths int                    `gorm:"column:warranty_months;not null;default:3"`
	ImagePath      string                 `gorm:"column:image_path"`
	Description    string                 `gorm:"column:description"`
	Slug           string                 `gorm:"column:slug;index"`
	Featured       bool                   `gorm:"column:featured;not null;default:false"`
	CreatedBy      string                 `gorm:"column:created_by;not null;default:system"`
	CreatedAt      time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// AfterFind backfills defaults for rows written before the columns existed,
// so every load returns the normalized shape.
func (p *Product) AfterFind(_ *gorm.DB) error {
	if p.WarrantyMonths <= 0 {
		p.WarrantyMonths = DefaultWarrantyMonths
	}
	if p.CreatedBy == "" {
		p.CreatedBy = "system"
	}
	if p.Category == "" {
		p.Category = enums.ProductCategoryOther
	}
	if p.Condition == "" {
		p.Condition = enums.ProductConditionGood
	}
	return nil
}
