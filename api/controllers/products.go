package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/renewbay/renewbay-backend/api/middleware"
	"github.com/renewbay/renewbay-backend/api/responses"
	"github.com/renewbay/renewbay-backend/api/validators"
	"github.com/renewbay/renewbay-backend/internal/catalog"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	pkgerrors "github.com/renewbay/renewbay-backend/pkg/errors"
	"github.com/renewbay/renewbay-backend/pkg/logger"
)

// ListProducts serves the public catalog with optional filters.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := catalog.Filters{
			Query: strings.TrimSpace(r.URL.Query().Get("q")),
			Brand: strings.TrimSpace(r.URL.Query().Get("brand")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			filters.Category = category
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("condition")); raw != "" {
			condition, err := enums.ParseProductCondition(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition"))
				return
			}
			filters.Condition = condition
		}

		products, err := svc.ListProducts(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ListFeaturedProducts serves the storefront spotlight strip.
func ListFeaturedProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 8, 1, 50)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		products, err := svc.ListFeatured(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ListCategories serves the category chips for browse surfaces.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// GetProduct serves one listing by id.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	Name           string `json:"name" validate:"required"`
	Brand          string `json:"brand,omitempty"`
	Category       string `json:"category,omitempty"`
	Condition      string `json:"condition,omitempty"`
	Price          string `json:"price" validate:"required"`
	Stock          int    `json:"stock" validate:"min=0"`
	WarrantyMonths int    `json:"warranty_months,omitempty" validate:"omitempty,min=1"`
	ImagePath      string `json:"image_path,omitempty"`
	Description    string `json:"description,omitempty"`
	Featured       bool   `json:"featured,omitempty"`
}

func (req createProductRequest) toInput() (catalog.CreateProductInput, error) {
	input := catalog.CreateProductInput{
		Name:           req.Name,
		Brand:          req.Brand,
		Stock:          req.Stock,
		WarrantyMonths: req.WarrantyMonths,
		ImagePath:      req.ImagePath,
		Description:    req.Description,
		Featured:       req.Featured,
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	input.Price = price

	if req.Category != "" {
		category, err := enums.ParseProductCategory(req.Category)
		if err != nil {
			return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = category
	}
	if req.Condition != "" {
		condition, err := enums.ParseProductCondition(req.Condition)
		if err != nil {
			return catalog.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		input.Condition = condition
	}
	return input, nil
}

// CreateProduct handles staff listing creation.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), middleware.EmailFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Name           *string `json:"name,omitempty"`
	Brand          *string `json:"brand,omitempty"`
	Category       *string `json:"category,omitempty"`
	Condition      *string `json:"condition,omitempty"`
	Price          *string `json:"price,omitempty"`
	Stock          *int    `json:"stock,omitempty" validate:"omitempty,min=0"`
	WarrantyMonths *int    `json:"warranty_months,omitempty" validate:"omitempty,min=1"`
	ImagePath      *string `json:"image_path,omitempty"`
	Description    *string `json:"description,omitempty"`
	Featured       *bool   `json:"featured,omitempty"`
}

func (req updateProductRequest) toInput() (catalog.UpdateProductInput, error) {
	input := catalog.UpdateProductInput{
		Name:           req.Name,
		Brand:          req.Brand,
		Stock:          req.Stock,
		WarrantyMonths: req.WarrantyMonths,
		ImagePath:      req.ImagePath,
		Description:    req.Description,
		Featured:       req.Featured,
	}

	if req.Price != nil {
		price, err := decimal.NewFromString(strings.TrimSpace(*req.Price))
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}
	if req.Category != nil {
		category, err := enums.ParseProductCategory(*req.Category)
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	if req.Condition != nil {
		condition, err := enums.ParseProductCondition(*req.Condition)
		if err != nil {
			return catalog.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		input.Condition = &condition
	}
	return input, nil
}

// UpdateProduct handles staff partial updates.
func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

type adjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// AdjustProductStock applies a clamped stock delta to one listing.
func AdjustProductStock(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.AdjustStock(r.Context(), id, payload.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func productIDParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
	}
	return uint(id), nil
}
