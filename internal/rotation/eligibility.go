package rotation

import (
	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

// EligibilityOptions carries optional narrowing filters.
type EligibilityOptions struct {
	PositionID *uuid.UUID
}

// Candidate is an eligible staff member together with the level of their
// effective-branch pairing, which seeds the assignment level on creation.
type Candidate struct {
	Staff models.RotationStaff
	Level enums.BranchLevel
}

// EligibleCandidates returns the staff who may be booked into the branch on
// the given day, preserving the input staff order. A staff member qualifies
// only when an effective-branch row exists for the branch AND an explicit
// schedule entry marks them working on that day; an absent entry excludes,
// it is not a default-allow. The result is a pure query: no mutation, and an
// empty slice rather than an error.
func EligibleCandidates(
	branchID uuid.UUID,
	date types.Date,
	staff []models.RotationStaff,
	effective []models.EffectiveBranch,
	schedules []models.ScheduleEntry,
	opts EligibilityOptions,
) []Candidate {
	levelByStaff := make(map[uuid.UUID]enums.BranchLevel, len(effective))
	for _, eb := range effective {
		if eb.BranchID == branchID {
			levelByStaff[eb.RotationStaffID] = eb.Level
		}
	}

	workingStaff := make(map[uuid.UUID]bool, len(schedules))
	for _, entry := range schedules {
		if entry.Date.Equal(date) && entry.Status == enums.ScheduleStatusWorking {
			workingStaff[entry.RotationStaffID] = true
		}
	}

	var out []Candidate
	for _, s := range staff {
		level, permitted := levelByStaff[s.ID]
		if !permitted {
			continue
		}
		if !workingStaff[s.ID] {
			continue
		}
		if opts.PositionID != nil && s.PositionID != *opts.PositionID {
			continue
		}
		out = append(out, Candidate{Staff: s, Level: level})
	}
	return out
}

// EligibleStaff is EligibleCandidates stripped to the staff projection.
func EligibleStaff(
	branchID uuid.UUID,
	date types.Date,
	staff []models.RotationStaff,
	effective []models.EffectiveBranch,
	schedules []models.ScheduleEntry,
	opts EligibilityOptions,
) []models.RotationStaff {
	candidates := EligibleCandidates(branchID, date, staff, effective, schedules, opts)
	if candidates == nil {
		return nil
	}
	out := make([]models.RotationStaff, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Staff)
	}
	return out
}

// effectiveLevel looks up the effective-branch pairing for (staff, branch).
func effectiveLevel(staffID, branchID uuid.UUID, effective []models.EffectiveBranch) (enums.BranchLevel, bool) {
	for _, eb := range effective {
		if eb.RotationStaffID == staffID && eb.BranchID == branchID {
			return eb.Level, true
		}
	}
	return 0, false
}
