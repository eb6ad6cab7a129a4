package models

import (
	"time"

	"github.com/google/uuid"
)

// BranchStaff is a permanent staff member attached to a single branch.
type BranchStaff struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BranchID   uuid.UUID  `gorm:"column:branch_id;type:uuid;not null"`
	PositionID uuid.UUID  `gorm:"column:position_id;type:uuid;not null"`
	FirstName  string     `gorm:"column:first_name;not null"`
	LastName   string     `gorm:"column:last_name;not null"`
	Phone      *string    `gorm:"column:phone"`
	HiredAt    *time.Time `gorm:"column:hired_at"`
	Active     bool       `gorm:"column:active;not null;default:true"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
