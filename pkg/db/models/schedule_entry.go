package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/enums"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

// ScheduleEntry records a staff member's availability status on a calendar
// day, independent of any branch. At most one entry exists per (staff, date);
// writes go through an update-or-create upsert.
type ScheduleEntry struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RotationStaffID uuid.UUID            `gorm:"column:rotation_staff_id;type:uuid;not null;uniqueIndex:idx_schedule_entry_day"`
	Date            types.Date           `gorm:"column:date;type:date;not null;uniqueIndex:idx_schedule_entry_day"`
	Status          enums.ScheduleStatus `gorm:"column:status;not null"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
