package staff

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
)

// StaffDTO exposes rotation staff data in API responses.
type StaffDTO struct {
	ID         uuid.UUID        `json:"id"`
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	PositionID uuid.UUID        `json:"position_id"`
	SkillLevel enums.SkillLevel `json:"skill_level"`
	ZoneID     *uuid.UUID       `json:"zone_id,omitempty"`
	Phone      *string          `json:"phone,omitempty"`
	Active     bool             `json:"active"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// CreateStaffDTO holds creation-time data for a rotation staff member.
type CreateStaffDTO struct {
	FirstName  string
	LastName   string
	PositionID uuid.UUID
	SkillLevel enums.SkillLevel
	ZoneID     *uuid.UUID
	Phone      *string
}

// UpdateStaffDTO captures the mutable staff fields; nil means unchanged.
type UpdateStaffDTO struct {
	FirstName  *string
	LastName   *string
	PositionID *uuid.UUID
	SkillLevel *enums.SkillLevel
	ZoneID     *uuid.UUID
	Phone      *string
	Active     *bool
}

// EffectiveBranchDTO exposes a staff/branch permission row.
type EffectiveBranchDTO struct {
	ID              uuid.UUID         `json:"id"`
	RotationStaffID uuid.UUID         `json:"rotation_staff_id"`
	BranchID        uuid.UUID         `json:"branch_id"`
	Level           enums.BranchLevel `json:"level"`
	CommuteMinutes  *int              `json:"commute_minutes,omitempty"`
	TransitCount    *int              `json:"transit_count,omitempty"`
	TravelCost      *decimal.Decimal  `json:"travel_cost,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// SetEffectiveBranchDTO upserts the permission row for a (staff, branch) pair.
type SetEffectiveBranchDTO struct {
	BranchID       uuid.UUID
	Level          enums.BranchLevel
	CommuteMinutes *int
	TransitCount   *int
	TravelCost     *decimal.Decimal
}

// FromModel maps the persisted staff row into a DTO.
func FromModel(m *models.RotationStaff) *StaffDTO {
	if m == nil {
		return nil
	}
	return &StaffDTO{
		ID:         m.ID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		PositionID: m.PositionID,
		SkillLevel: m.SkillLevel,
		ZoneID:     m.ZoneID,
		Phone:      m.Phone,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// EffectiveBranchFromModel maps the permission row into a DTO.
func EffectiveBranchFromModel(m *models.EffectiveBranch) *EffectiveBranchDTO {
	if m == nil {
		return nil
	}
	return &EffectiveBranchDTO{
		ID:              m.ID,
		RotationStaffID: m.RotationStaffID,
		BranchID:        m.BranchID,
		Level:           m.Level,
		CommuteMinutes:  m.CommuteMinutes,
		TransitCount:    m.TransitCount,
		TravelCost:      m.TravelCost,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
