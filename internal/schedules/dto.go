package schedules

import (
	"time"

	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

// EntryDTO exposes a schedule entry in API responses.
type EntryDTO struct {
	ID              uuid.UUID            `json:"id"`
	RotationStaffID uuid.UUID            `json:"rotation_staff_id"`
	Date            types.Date           `json:"date"`
	Status          enums.ScheduleStatus `json:"status"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// SetEntryDTO upserts the entry for a (staff, date) pair.
type SetEntryDTO struct {
	RotationStaffID uuid.UUID
	Date            types.Date
	Status          enums.ScheduleStatus
}

// CycleOutcome describes what a cycle click did to the cell.
type CycleOutcome string

const (
	CycleOutcomeCreated CycleOutcome = "created"
	CycleOutcomeUpdated CycleOutcome = "updated"
	CycleOutcomeNoop    CycleOutcome = "noop"
)

// CycleResult is the API-facing summary of one cycle click.
type CycleResult struct {
	Outcome    CycleOutcome `json:"outcome"`
	NoopReason string       `json:"noop_reason,omitempty"`
	Entry      *EntryDTO    `json:"entry,omitempty"`
}

// ListFilter narrows schedule listings to a staff member and/or date range.
type ListFilter struct {
	RotationStaffID *uuid.UUID
	From            *types.Date
	To              *types.Date
}

// FromModel maps the persisted entry into a DTO.
func FromModel(m *models.ScheduleEntry) *EntryDTO {
	if m == nil {
		return nil
	}
	return &EntryDTO{
		ID:              m.ID,
		RotationStaffID: m.RotationStaffID,
		Date:            m.Date,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
