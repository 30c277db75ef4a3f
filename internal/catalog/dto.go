package catalog

import (
	"time"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
)

// ProductDTO is the API shape of a catalog listing.
type ProductDTO struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Brand          string    `json:"brand,omitempty"`
	Category       string    `json:"category"`
	Condition      string    `json:"condition"`
	Price          string    `json:"price"`
	Stock          int       `json:"stock"`
	WarrantyMonths int       `json:"warranty_months"`
	ImagePath      string    `json:"image_path,omitempty"`
	Description    string    `json:"description,omitempty"`
	Slug           string    `json:"slug,omitempty"`
	Featured       bool      `json:"featured"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	return &ProductDTO{
		ID:             product.ID,
		Name:           product.Name,
		Brand:          product.Brand,
		Category:       product.Category.String(),
		Condition:      product.Condition.String(),
		Price:          product.Price.StringFixed(2),
		Stock:          product.Stock,
		WarrantyMonths: product.WarrantyMonths,
		ImagePath:      product.ImagePath,
		Description:    product.Description,
		Slug:           product.Slug,
		Featured:       product.Featured,
		CreatedBy:      product.CreatedBy,
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}

func toProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *toProductDTO(&products[i]))
	}
	return dtos
}
