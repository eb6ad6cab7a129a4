package assignments

import (
	"time"

	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

// AssignmentDTO exposes a rotation assignment in API responses.
type AssignmentDTO struct {
	ID              uuid.UUID            `json:"id"`
	RotationStaffID uuid.UUID            `json:"rotation_staff_id"`
	BranchID        uuid.UUID            `json:"branch_id"`
	Date            types.Date           `json:"date"`
	Level           enums.BranchLevel    `json:"level"`
	ScheduleStatus  enums.ScheduleStatus `json:"schedule_status"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// CellInput identifies one calendar cell as seen from a branch.
type CellInput struct {
	RotationStaffID uuid.UUID
	BranchID        uuid.UUID
	Date            types.Date
}

// AssignInput creates an assignment with an explicit status.
type AssignInput struct {
	RotationStaffID uuid.UUID
	BranchID        uuid.UUID
	Date            types.Date
	Status          enums.ScheduleStatus
}

// ListFilter narrows assignment listings.
type ListFilter struct {
	BranchID        *uuid.UUID
	RotationStaffID *uuid.UUID
	From            *types.Date
	To              *types.Date
}

// Outcome describes what a calendar mutation did.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeDeleted Outcome = "deleted"
	OutcomeNoop    Outcome = "noop"
)

// MutationResult is the API-facing summary of one calendar mutation.
type MutationResult struct {
	Outcome             Outcome        `json:"outcome"`
	NoopReason          string         `json:"noop_reason,omitempty"`
	ConflictingBranchID *uuid.UUID     `json:"conflicting_branch_id,omitempty"`
	Assignment          *AssignmentDTO `json:"assignment,omitempty"`
}

// CandidateDTO is an eligible staff member offered for assignment.
type CandidateDTO struct {
	RotationStaffID uuid.UUID         `json:"rotation_staff_id"`
	FirstName       string            `json:"first_name"`
	LastName        string            `json:"last_name"`
	PositionID      uuid.UUID         `json:"position_id"`
	SkillLevel      enums.SkillLevel  `json:"skill_level"`
	Level           enums.BranchLevel `json:"level"`
}

// FromModel maps the persisted assignment into a DTO.
func FromModel(m *models.RotationAssignment) *AssignmentDTO {
	if m == nil {
		return nil
	}
	return &AssignmentDTO{
		ID:              m.ID,
		RotationStaffID: m.RotationStaffID,
		BranchID:        m.BranchID,
		Date:            m.Date,
		Level:           m.Level,
		ScheduleStatus:  m.ScheduleStatus,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
