package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/renewbay/renewbay-backend/pkg/enums"
)

// RepairTicket is customer-created and staff-driven afterwards. StaffNotes
// accumulates: schedule notes append with a newline, never replace.
type RepairTicket struct {
	Ticket        string             `gorm:"column:ticket;primaryKey"`
	Email         string             `gorm:"column:email;index;not null"`
	DeviceType    string             `gorm:"column:device_type"`
	Device        string             `gorm:"column:device;not null"`
	Issue         string             `gorm:"column:issue"`
	ImagePath     string             `gorm:"column:image_path"`
	PreferredTime string             `gorm:"column:preferred_time"`
	ScheduledTime string             `gorm:"column:scheduled_time"`
	Status        enums.RepairStatus `gorm:"column:status;not null;default:in_progress"`
	Contacted     bool               `gorm:"column:contacted;not null;default:false"`
	StaffNotes    string             `gorm:"column:staff_notes"`
	AssignedTo    string             `gorm:"column:assigned_to"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// AfterFind backfills the status for rows stored before the column existed.
func (r *RepairTicket) AfterFind(_ *gorm.DB) error {
	if r.Status == "" {
		r.Status = enums.RepairStatusInProgress
	}
	return nil
}
