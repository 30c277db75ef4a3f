package repairs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
	"github.com/renewbay/renewbay-backend/pkg/enums"
	pkgerrors "github.com/renewbay/renewbay-backend/pkg/errors"
	"github.com/renewbay/renewbay-backend/pkg/ids"
	"github.com/renewbay/renewbay-backend/pkg/metrics"
	"github.com/renewbay/renewbay-backend/pkg/pagination"
)

// Service exposes the repair ticket lifecycle.
type Service interface {
	Create(ctx context.Context, email string, input CreateTicketInput) (*TicketDTO, error)
	SetStatus(ctx context.Context, ticketID string, status enums.RepairStatus) (*TicketDTO, error)
	Schedule(ctx context.Context, ticketID, scheduledTime, notes string) (*TicketDTO, error)
	SetContacted(ctx context.Context, ticketID string, contacted bool) (*TicketDTO, error)
	Assign(ctx context.Context, ticketID, assignee string) (*TicketDTO, error)
	ListTickets(ctx context.Context, filters Filters, params pagination.Params) ([]TicketDTO, error)
	ListCustomerTickets(ctx context.Context, email string, params pagination.Params) ([]TicketDTO, error)
	GetTicket(ctx context.Context, ticketID string) (*TicketDTO, error)
}

// CreateTicketInput is the validated intake payload for a repair request.
type CreateTicketInput struct {
	DeviceType    string
	Device        string
	Issue         string
	ImagePath     string
	PreferredTime string
}

type service struct {
	repo Repository
}

// NewService constructs a repairs service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repairs repository required")
	}
	return &service{repo: repo}, nil
}

// Create opens a ticket in in_progress with nothing scheduled or assigned.
func (s *service) Create(ctx context.Context, email string, input CreateTicketInput) (*TicketDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if strings.TrimSpace(input.Device) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device is required")
	}

	ticket := &models.RepairTicket{
		Ticket:        ids.New(ids.PrefixRepair),
		Email:         email,
		DeviceType:    strings.TrimSpace(input.DeviceType),
		Device:        strings.TrimSpace(input.Device),
		Issue:         input.Issue,
		ImagePath:     input.ImagePath,
		PreferredTime: input.PreferredTime,
		Status:        enums.RepairStatusInProgress,
		Contacted:     false,
	}
	err := s.repo.Create(ctx, ticket)
	metrics.RecordTransition("repairs", "create", err == nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to create repair ticket")
	}
	return toTicketDTO(ticket), nil
}

// SetStatus moves the ticket forward. Terminal tickets stay put.
func (s *service) SetStatus(ctx context.Context, ticketID string, status enums.RepairStatus) (*TicketDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid repair status")
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == status {
		return toTicketDTO(ticket), nil
	}
	if ticket.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("ticket is already %s", ticket.Status))
	}

	updated, err := s.applyUpdates(ctx, ticketID, map[string]any{"status": status})
	metrics.RecordTransition("repairs", "status:"+status.String(), err == nil)
	return updated, err
}

// Schedule stamps a visit time and moves an intake ticket to scheduled.
// Notes accumulate under staff_notes rather than replacing earlier entries.
func (s *service) Schedule(ctx context.Context, ticketID, scheduledTime, notes string) (*TicketDTO, error) {
	if strings.TrimSpace(scheduledTime) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scheduled_time is required")
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("ticket is already %s", ticket.Status))
	}

	updates := map[string]any{"scheduled_time": scheduledTime}
	if ticket.Status == enums.RepairStatusInProgress {
		updates["status"] = enums.RepairStatusScheduled
	}
	if _, err := s.applyUpdates(ctx, ticketID, updates); err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		if _, err := s.repo.AppendNotes(ctx, ticketID, trimmed); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to append notes")
		}
	}
	metrics.RecordTransition("repairs", "schedule", true)
	return s.GetTicket(ctx, ticketID)
}

func (s *service) SetContacted(ctx context.Context, ticketID string, contacted bool) (*TicketDTO, error) {
	return s.applyUpdates(ctx, ticketID, map[string]any{"contacted": contacted})
}

func (s *service) Assign(ctx context.Context, ticketID, assignee string) (*TicketDTO, error) {
	return s.applyUpdates(ctx, ticketID, map[string]any{"assigned_to": strings.TrimSpace(assignee)})
}

func (s *service) ListTickets(ctx context.Context, filters Filters, params pagination.Params) ([]TicketDTO, error) {
	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid repair status")
	}
	tickets, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list repair tickets")
	}
	return toTicketDTOs(tickets), nil
}

func (s *service) ListCustomerTickets(ctx context.Context, email string, params pagination.Params) ([]TicketDTO, error) {
	if strings.TrimSpace(email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	tickets, err := s.repo.ListByEmail(ctx, email, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list repair tickets")
	}
	return toTicketDTOs(tickets), nil
}

func (s *service) GetTicket(ctx context.Context, ticketID string) (*TicketDTO, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	return toTicketDTO(ticket), nil
}

func (s *service) applyUpdates(ctx context.Context, ticketID string, updates map[string]any) (*TicketDTO, error) {
	affected, err := s.repo.Update(ctx, ticketID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to update repair ticket")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "repair ticket not found")
	}
	return s.GetTicket(ctx, ticketID)
}

func (s *service) loadTicket(ctx context.Context, ticketID string) (*models.RepairTicket, error) {
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "repair ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load repair ticket")
	}
	return ticket, nil
}
