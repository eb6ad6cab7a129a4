package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medrota/clinicrota-backend/pkg/enums"
)

// EffectiveBranch pairs a rotation staff member with a branch they may work
// at, ranked by level. At most one row exists per (staff, branch) pair.
type EffectiveBranch struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RotationStaffID uuid.UUID         `gorm:"column:rotation_staff_id;type:uuid;not null;uniqueIndex:idx_effective_branch_pair"`
	BranchID        uuid.UUID         `gorm:"column:branch_id;type:uuid;not null;uniqueIndex:idx_effective_branch_pair"`
	Level           enums.BranchLevel `gorm:"column:level;not null;default:1"`
	CommuteMinutes  *int              `gorm:"column:commute_minutes"`
	TransitCount    *int              `gorm:"column:transit_count"`
	TravelCost      *decimal.Decimal  `gorm:"column:travel_cost;type:numeric(10,2)"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
