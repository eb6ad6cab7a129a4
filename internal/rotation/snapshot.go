package rotation

import (
	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

type cellKey struct {
	staffID uuid.UUID
	day     string
}

// Snapshot is the full-month, all-branch view of rotation assignments that
// exclusivity checks run against. It is an explicit value handed to the
// reconciler by callers and replaced wholesale after reloads; the guard never
// consults shared mutable state.
type Snapshot struct {
	assignments []models.RotationAssignment
	byCell      map[cellKey]*models.RotationAssignment
}

// NewSnapshot indexes the provided assignments. Assignments for every branch
// in the period must be included, not just the branch in view; conflict
// detection is only correct against the global set.
func NewSnapshot(assignments []models.RotationAssignment) *Snapshot {
	s := &Snapshot{
		assignments: make([]models.RotationAssignment, len(assignments)),
		byCell:      make(map[cellKey]*models.RotationAssignment, len(assignments)),
	}
	copy(s.assignments, assignments)
	for i := range s.assignments {
		a := &s.assignments[i]
		s.byCell[cellKey{staffID: a.RotationStaffID, day: a.Date.String()}] = a
	}
	return s
}

// Find returns the assignment for a staff member on a day, if any. At most
// one can exist across all branches.
func (s *Snapshot) Find(staffID uuid.UUID, date types.Date) *models.RotationAssignment {
	if s == nil {
		return nil
	}
	return s.byCell[cellKey{staffID: staffID, day: date.String()}]
}

// ForBranch returns the assignments held by a single branch, preserving the
// snapshot's input order.
func (s *Snapshot) ForBranch(branchID uuid.UUID) []models.RotationAssignment {
	if s == nil {
		return nil
	}
	var out []models.RotationAssignment
	for _, a := range s.assignments {
		if a.BranchID == branchID {
			out = append(out, a)
		}
	}
	return out
}

// Len reports how many assignments the snapshot holds.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.assignments)
}
