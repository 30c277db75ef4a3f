package repairs

import (
	"time"

	"github.com/renewbay/renewbay-backend/pkg/db/models"
)

// TicketDTO is the API shape of a repair ticket.
type TicketDTO struct {
	Ticket        string    `json:"ticket"`
	Email         string    `json:"email"`
	DeviceType    string    `json:"device_type,omitempty"`
	Device        string    `json:"device"`
	Issue         string    `json:"issue,omitempty"`
	ImagePath     string    `json:"image_path,omitempty"`
	PreferredTime string    `json:"preferred_time,omitempty"`
	ScheduledTime string    `json:"scheduled_time,omitempty"`
	Status        string    `json:"status"`
	Contacted     bool      `json:"contacted"`
	StaffNotes    string    `json:"staff_notes,omitempty"`
	AssignedTo    string    `json:"assigned_to,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toTicketDTO(ticket *models.RepairTicket) *TicketDTO {
	if ticket == nil {
		return nil
	}
	return &TicketDTO{
		Ticket:        ticket.Ticket,
		Email:         ticket.Email,
		DeviceType:    ticket.DeviceType,
		Device:        ticket.Device,
		Issue:         ticket.Issue,
		ImagePath:     ticket.ImagePath,
		PreferredTime: ticket.PreferredTime,
		ScheduledTime: ticket.ScheduledTime,
		Status:        ticket.Status.String(),
		Contacted:     ticket.Contacted,
		StaffNotes:    ticket.StaffNotes,
		AssignedTo:    ticket.AssignedTo,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}

func toTicketDTOs(tickets []models.RepairTicket) []TicketDTO {
	dtos := make([]TicketDTO, 0, len(tickets))
	for i := range tickets {
		dtos = append(dtos, *toTicketDTO(&tickets[i]))
	}
	return dtos
}
