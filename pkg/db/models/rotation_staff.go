package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/enums"
)

// RotationStaff is a floating staff member scheduled across branches.
type RotationStaff struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FirstName  string           `gorm:"column:first_name;not null"`
	LastName   string           `gorm:"column:last_name;not null"`
	PositionID uuid.UUID        `gorm:"column:position_id;type:uuid;not null"`
	SkillLevel enums.SkillLevel `gorm:"column:skill_level;not null"`
	ZoneID     *uuid.UUID       `gorm:"column:zone_id;type:uuid"`
	Phone      *string          `gorm:"column:phone"`
	Active     bool             `gorm:"column:active;not null;default:true"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
