package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/renewbay/renewbay-backend/api/middleware"
	"github.com/renewbay/renewbay-backend/api/responses"
	"github.com/renewbay/renewbay-backend/api/validators"
	"github.com/renewbay/renewbay-backend/internal/sellrequests"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	pkgerrors "github.com/renewbay/renewbay-backend/pkg/errors"
	"github.com/renewbay/renewbay-backend/pkg/logger"
)

type createSellRequestRequest struct {
	Device        string `json:"device" validate:"required"`
	Brand         string `json:"brand,omitempty"`
	Condition     string `json:"condition,omitempty"`
	ExpectedPrice string `json:"expected_price,omitempty"`
	Description   string `json:"description,omitempty"`
	ImagePath     string `json:"image_path,omitempty"`
}

// CreateSellRequest opens a trade-in request for the authenticated customer.
func CreateSellRequest(svc sellrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createSellRequestRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := sellrequests.CreateSellRequestInput{
			Device:      payload.Device,
			Brand:       payload.Brand,
			Description: payload.Description,
			ImagePath:   payload.ImagePath,
		}
		if payload.Condition != "" {
			condition, err := enums.ParseProductCondition(payload.Condition)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition"))
				return
			}
			input.Condition = condition
		}
		if raw := strings.TrimSpace(payload.ExpectedPrice); raw != "" {
			price, err := decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid expected price"))
				return
			}
			input.ExpectedPrice = price
		}

		request, err := svc.Create(r.Context(), middleware.EmailFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// ListMySellRequests serves the authenticated customer's trade-in requests.
func ListMySellRequests(svc sellrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListCustomerRequests(r.Context(), middleware.EmailFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListSellRequests serves the staff trade-in queue with an optional status filter.
func ListSellRequests(svc sellrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status enums.SellRequestStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err = enums.ParseSellRequestStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
		}

		list, err := svc.ListRequests(r.Context(), status, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// GetSellRequest serves one trade-in request by id.
func GetSellRequest(svc sellrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID, err := sellRequestIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		request, err := svc.GetRequest(r.Context(), reqID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}

// RejectSellRequest closes a pending trade-in request without a purchase.
func RejectSellRequest(svc sellrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID, err := sellRequestIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		request, err := svc.Reject(r.Context(), reqID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}

type convertSellRequestRequest struct {
	Price          string `json:"price" validate:"required"`
	Stock          int    `json:"stock" validate:"min=0"`
	WarrantyMonths int    `json:"warranty_months,omitempty" validate:"omitempty,min=1"`
}

// ConvertSellRequest turns a pending trade-in into a catalog listing.
func ConvertSellRequest(svc sellrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID, err := sellRequestIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload convertSellRequestRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := decimal.NewFromString(strings.TrimSpace(payload.Price))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}

		conversion, err := svc.Convert(r.Context(), reqID, sellrequests.ConvertInput{
			Price:          price,
			Stock:          payload.Stock,
			WarrantyMonths: payload.WarrantyMonths,
			StaffEmail:     middleware.EmailFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, conversion)
	}
}

func sellRequestIDParam(r *http.Request) (string, error) {
	reqID := strings.TrimSpace(chi.URLParam(r, "requestID"))
	if reqID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid sell request id")
	}
	return reqID, nil
}
