package rotation

import (
	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/types"
)

// AssignableResult is the outcome of an exclusivity check. When OK is false
// the conflicting branch is exposed so callers can name it in user-facing
// messages.
type AssignableResult struct {
	OK                      bool
	ConflictingBranchID     uuid.UUID
	ConflictingAssignmentID uuid.UUID
}

// CheckAssignable reports whether the staff member can be booked into the
// branch on the given day without breaking the single-branch-per-day
// invariant. An assignment at the same branch does not conflict (that cell is
// simply already taken); one at any other branch does. Branch capacity is not
// a concern at this layer.
func CheckAssignable(staffID, branchID uuid.UUID, date types.Date, snap *Snapshot) AssignableResult {
	existing := snap.Find(staffID, date)
	if existing == nil || existing.BranchID == branchID {
		return AssignableResult{OK: true}
	}
	return AssignableResult{
		OK:                      false,
		ConflictingBranchID:     existing.BranchID,
		ConflictingAssignmentID: existing.ID,
	}
}
