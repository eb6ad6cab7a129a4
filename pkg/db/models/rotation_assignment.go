package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/enums"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

// RotationAssignment books a rotation staff member into a branch on a
// calendar day. The unique index over (rotation_staff_id, date) backs the
// single-branch-per-day invariant at the storage layer; the reconciler
// enforces it pre-flight.
type RotationAssignment struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RotationStaffID uuid.UUID            `gorm:"column:rotation_staff_id;type:uuid;not null;uniqueIndex:idx_rotation_assignment_day"`
	BranchID        uuid.UUID            `gorm:"column:branch_id;type:uuid;not null"`
	Date            types.Date           `gorm:"column:date;type:date;not null;uniqueIndex:idx_rotation_assignment_day"`
	Level           enums.BranchLevel    `gorm:"column:level;not null;default:1"`
	ScheduleStatus  enums.ScheduleStatus `gorm:"column:schedule_status;not null"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
