package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/renewbay/renewbay-backend/api/middleware"
	"github.com/renewbay/renewbay-backend/api/responses"
	"github.com/renewbay/renewbay-backend/api/validators"
	"github.com/renewbay/renewbay-backend/internal/repairs"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	pkgerrors "github.com/renewbay/renewbay-backend/pkg/errors"
	"github.com/renewbay/renewbay-backend/pkg/logger"
)

type createRepairRequest struct {
	DeviceType    string `json:"device_type,omitempty"`
	Device        string `json:"device" validate:"required"`
	Issue         string `json:"issue,omitempty"`
	ImagePath     string `json:"image_path,omitempty"`
	PreferredTime string `json:"preferred_time,omitempty"`
}

// CreateRepairTicket opens a repair ticket for the authenticated customer.
func CreateRepairTicket(svc repairs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createRepairRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.Create(r.Context(), middleware.EmailFromContext(r.Context()), repairs.CreateTicketInput{
			DeviceType:    payload.DeviceType,
			Device:        payload.Device,
			Issue:         payload.Issue,
			ImagePath:     payload.ImagePath,
			PreferredTime: payload.PreferredTime,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ticket)
	}
}

// ListMyRepairTickets serves the authenticated customer's tickets.
func ListMyRepairTickets(svc repairs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tickets, err := svc.ListCustomerTickets(r.Context(), middleware.EmailFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tickets)
	}
}

// ListRepairTickets serves the staff repair queue with optional filters.
func ListRepairTickets(svc repairs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := repairs.Filters{Email: strings.TrimSpace(r.URL.Query().Get("email"))}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseRepairStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			filters.Status = status
		}

		tickets, err := svc.ListTickets(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tickets)
	}
}

// GetRepairTicket serves one ticket by id.
func GetRepairTicket(svc repairs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, err := ticketIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ticket, err := svc.GetTicket(r.Context(), ticketID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ticket)
	}
}

type setRepairStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetRepairStatus moves a ticket to a new lifecycle status.
func SetRepairStatus(svc repairs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, err := ticketIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setRepairStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseRepairStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		ticket, err := svc.SetStatus(r.Context(), ticketID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ticket)
	}
}

type scheduleRepairRequest struct {
	ScheduledTime string `json:"scheduled_time" validate:"required"`
	Notes         string `json:"notes,omitempty"`
}

// ScheduleRepair books a slot for a ticket and records optional staff notes.
func ScheduleRepair(svc repairs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, err := ticketIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload scheduleRepairRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.Schedule(r.Context(), ticketID, payload.ScheduledTime, payload.Notes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ticket)
	}
}

type contactRepairRequest struct {
	Contacted bool `json:"contacted"`
}

// SetRepairContacted flips the customer-contacted flag on a ticket.
func SetRepairContacted(svc repairs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, err := ticketIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload contactRepairRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.SetContacted(r.Context(), ticketID, payload.Contacted)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ticket)
	}
}

type assignRepairRequest struct {
	Assignee string `json:"assignee" validate:"required"`
}

// AssignRepair records which staff member owns a ticket.
func AssignRepair(svc repairs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, err := ticketIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignRepairRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.Assign(r.Context(), ticketID, payload.Assignee)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ticket)
	}
}

func ticketIDParam(r *http.Request) (string, error) {
	ticketID := strings.TrimSpace(chi.URLParam(r, "ticketID"))
	if ticketID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid ticket id")
	}
	return ticketID, nil
}
