package rotation

import (
	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

// CellState classifies a (staff, date) calendar cell from the point of view
// of the branch being displayed, in priority order of interpretation.
type CellState int

const (
	// CellConflictingElsewhere: an assignment exists at a different branch.
	// Read-only for the branch in view.
	CellConflictingElsewhere CellState = iota
	// CellAssignedHere: the branch in view holds the assignment.
	CellAssignedHere
	// CellUnassigned: no branch holds the staff member on this day.
	CellUnassigned
)

// Cell is a resolved calendar cell.
type Cell struct {
	State               CellState
	Assignment          *models.RotationAssignment
	ConflictingBranchID uuid.UUID
}

// ResolveCell interprets the snapshot for one (staff, date) cell as seen from
// branchID.
func ResolveCell(staffID, branchID uuid.UUID, date types.Date, snap *Snapshot) Cell {
	existing := snap.Find(staffID, date)
	if existing == nil {
		return Cell{State: CellUnassigned}
	}
	if existing.BranchID == branchID {
		return Cell{State: CellAssignedHere, Assignment: existing}
	}
	return Cell{State: CellConflictingElsewhere, Assignment: existing, ConflictingBranchID: existing.BranchID}
}

// EffectKind enumerates the persistence effects the reconciler can request.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectCreate
	EffectUpdate
	EffectDelete
)

// NoopReason explains an EffectNone outcome.
type NoopReason int

const (
	NoopNone NoopReason = iota
	// NoopPastDate: mutation attempted on a historical date; silently
	// rejected rather than erroring.
	NoopPastDate
	// NoopConflict: the cell is held by another branch; the conflict is
	// surfaced and no transition happens.
	NoopConflict
	// NoopNothingToDo: the request resolves to the state the cell is
	// already in.
	NoopNothingToDo
)

// CreateSpec describes an assignment to create.
type CreateSpec struct {
	StaffID  uuid.UUID
	BranchID uuid.UUID
	Date     types.Date
	Level    enums.BranchLevel
	Status   enums.ScheduleStatus
}

// Effect is the single persistence action (or deliberate inaction) the caller
// should apply. The reconciler itself never touches storage: callers apply
// the effect remotely and reload the snapshot, so a failed write leaves local
// state untouched.
type Effect struct {
	Kind                EffectKind
	Reason              NoopReason
	Create              *CreateSpec
	AssignmentID        uuid.UUID
	Status              enums.ScheduleStatus
	ConflictingBranchID uuid.UUID
}

// Reconciler validates calendar mutations against eligibility and
// exclusivity and plans the resulting persistence effect.
type Reconciler struct {
	today func() types.Date
}

// Option configures the reconciler.
type Option func(*Reconciler)

// WithToday overrides the clock used for the past-date guard.
func WithToday(today func() types.Date) Option {
	return func(r *Reconciler) {
		if today != nil {
			r.today = today
		}
	}
}

// NewReconciler builds a reconciler with a local-midnight today clock.
func NewReconciler(opts ...Option) *Reconciler {
	r := &Reconciler{
		today: func() types.Date { return types.Today(nil) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// CycleRequest is a primary-click interaction on a calendar cell.
type CycleRequest struct {
	StaffID   uuid.UUID
	BranchID  uuid.UUID
	Date      types.Date
	Snapshot  *Snapshot
	Effective []models.EffectiveBranch
}

// Cycle advances a cell one step. Past dates are a no-op regardless of
// state. A cell held by another branch is a no-op that names the conflicting
// branch. An unassigned cell becomes a working assignment, guarded by
// eligibility and exclusivity at creation time only. An assigned cell moves
// to the next status in the rotation variant; reaching off deletes the
// assignment rather than storing it.
func (r *Reconciler) Cycle(req CycleRequest) (Effect, error) {
	if req.Date.Before(r.today()) {
		return Effect{Kind: EffectNone, Reason: NoopPastDate}, nil
	}

	cell := ResolveCell(req.StaffID, req.BranchID, req.Date, req.Snapshot)
	switch cell.State {
	case CellConflictingElsewhere:
		return Effect{
			Kind:                EffectNone,
			Reason:              NoopConflict,
			ConflictingBranchID: cell.ConflictingBranchID,
		}, nil

	case CellAssignedHere:
		next := NotAssignedCycle(&cell.Assignment.ScheduleStatus)
		if next == enums.ScheduleStatusOff {
			return Effect{Kind: EffectDelete, AssignmentID: cell.Assignment.ID}, nil
		}
		return Effect{Kind: EffectUpdate, AssignmentID: cell.Assignment.ID, Status: next}, nil

	default:
		return r.planCreate(req.StaffID, req.BranchID, req.Date, enums.ScheduleStatusWorking, req.Snapshot, req.Effective)
	}
}

// AssignRequest is an explicit assignment (context menu / direct selection)
// that bypasses the cycle.
type AssignRequest struct {
	StaffID  uuid.UUID
	BranchID uuid.UUID
	Date     types.Date
	Status   enums.ScheduleStatus
	// ScheduleStatus is the staff member's branch-independent schedule
	// entry for the day, when one exists.
	ScheduleStatus *enums.ScheduleStatus
	Snapshot       *Snapshot
	Effective      []models.EffectiveBranch
}

// Assign creates an assignment with an explicit status. Unlike Cycle,
// conflicts here are hard errors (the caller asked for a specific outcome),
// and creation is additionally blocked while the staff member's schedule
// entry for the day says off.
func (r *Reconciler) Assign(req AssignRequest) (Effect, error) {
	if req.Date.Before(r.today()) {
		return Effect{Kind: EffectNone, Reason: NoopPastDate}, nil
	}

	status := req.Status
	if status == "" {
		status = enums.ScheduleStatusWorking
	}
	if !status.IsValid() || status == enums.ScheduleStatusOff {
		return Effect{}, pkgerrors.New(pkgerrors.CodeValidation, "assignment status must be working, leave, or sick_leave")
	}

	if req.ScheduleStatus != nil && *req.ScheduleStatus == enums.ScheduleStatusOff {
		return Effect{}, pkgerrors.New(pkgerrors.CodeValidation, "staff is off on this date; set a working status first")
	}

	cell := ResolveCell(req.StaffID, req.BranchID, req.Date, req.Snapshot)
	switch cell.State {
	case CellConflictingElsewhere:
		return Effect{}, exclusivityError(cell.ConflictingBranchID)
	case CellAssignedHere:
		if cell.Assignment.ScheduleStatus == status {
			return Effect{Kind: EffectNone, Reason: NoopNothingToDo}, nil
		}
		return Effect{Kind: EffectUpdate, AssignmentID: cell.Assignment.ID, Status: status}, nil
	default:
		return r.planCreate(req.StaffID, req.BranchID, req.Date, status, req.Snapshot, req.Effective)
	}
}

// SetStatusRequest targets an existing assignment with a direct status.
type SetStatusRequest struct {
	StaffID  uuid.UUID
	BranchID uuid.UUID
	Date     types.Date
	Status   enums.ScheduleStatus
	Snapshot *Snapshot
}

// SetStatus updates an assigned cell to an explicit status, deleting the
// assignment when the requested status is off.
func (r *Reconciler) SetStatus(req SetStatusRequest) (Effect, error) {
	if req.Date.Before(r.today()) {
		return Effect{Kind: EffectNone, Reason: NoopPastDate}, nil
	}
	if !req.Status.IsValid() {
		return Effect{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid schedule status")
	}

	cell := ResolveCell(req.StaffID, req.BranchID, req.Date, req.Snapshot)
	switch cell.State {
	case CellConflictingElsewhere:
		return Effect{}, exclusivityError(cell.ConflictingBranchID)
	case CellUnassigned:
		return Effect{}, pkgerrors.New(pkgerrors.CodeNotFound, "no assignment for staff on this date")
	default:
		if req.Status == enums.ScheduleStatusOff {
			return Effect{Kind: EffectDelete, AssignmentID: cell.Assignment.ID}, nil
		}
		if cell.Assignment.ScheduleStatus == req.Status {
			return Effect{Kind: EffectNone, Reason: NoopNothingToDo}, nil
		}
		return Effect{Kind: EffectUpdate, AssignmentID: cell.Assignment.ID, Status: req.Status}, nil
	}
}

// UnassignRequest removes an assignment explicitly.
type UnassignRequest struct {
	StaffID  uuid.UUID
	BranchID uuid.UUID
	Date     types.Date
	Snapshot *Snapshot
}

// Unassign deletes the branch's assignment for the cell, if it holds one.
func (r *Reconciler) Unassign(req UnassignRequest) (Effect, error) {
	if req.Date.Before(r.today()) {
		return Effect{Kind: EffectNone, Reason: NoopPastDate}, nil
	}

	cell := ResolveCell(req.StaffID, req.BranchID, req.Date, req.Snapshot)
	switch cell.State {
	case CellConflictingElsewhere:
		return Effect{}, exclusivityError(cell.ConflictingBranchID)
	case CellUnassigned:
		return Effect{Kind: EffectNone, Reason: NoopNothingToDo}, nil
	default:
		return Effect{Kind: EffectDelete, AssignmentID: cell.Assignment.ID}, nil
	}
}

// planCreate re-validates eligibility and exclusivity before planning a
// create. UI callers are expected to offer only eligible staff, but the
// reconciler never trusts caller-side filtering.
func (r *Reconciler) planCreate(
	staffID, branchID uuid.UUID,
	date types.Date,
	status enums.ScheduleStatus,
	snap *Snapshot,
	effective []models.EffectiveBranch,
) (Effect, error) {
	level, permitted := effectiveLevel(staffID, branchID, effective)
	if !permitted {
		return Effect{}, pkgerrors.New(pkgerrors.CodeEligibility, "staff has no effective branch here").
			WithDetails(map[string]any{"branch_id": branchID.String(), "staff_id": staffID.String()})
	}

	if res := CheckAssignable(staffID, branchID, date, snap); !res.OK {
		return Effect{}, exclusivityError(res.ConflictingBranchID)
	}

	return Effect{
		Kind: EffectCreate,
		Create: &CreateSpec{
			StaffID:  staffID,
			BranchID: branchID,
			Date:     date,
			Level:    level,
			Status:   status,
		},
	}, nil
}

func exclusivityError(conflictingBranchID uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeExclusivity, "staff already assigned to another branch on this date").
		WithDetails(map[string]any{"conflicting_branch_id": conflictingBranchID.String()})
}
