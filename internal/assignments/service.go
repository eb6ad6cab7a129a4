package assignments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/internal/rotation"
	"github.com/medrota/clinicrota-backend/internal/schedules"
	"github.com/medrota/clinicrota-backend/internal/staff"
	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
	"github.com/medrota/clinicrota-backend/pkg/logger"
	"github.com/medrota/clinicrota-backend/pkg/metrics"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

type assignmentRepository interface {
	List(ctx context.Context, filter ListFilter) ([]models.RotationAssignment, error)
	ListForStaffDate(ctx context.Context, staffID uuid.UUID, date types.Date) ([]models.RotationAssignment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.RotationAssignment, error)
	Create(ctx context.Context, spec rotation.CreateSpec) (*models.RotationAssignment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ScheduleStatus) (*models.RotationAssignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type effectiveSource interface {
	ListEffectiveBranches(ctx context.Context, staffID uuid.UUID) ([]models.EffectiveBranch, error)
	ListEffectiveForBranch(ctx context.Context, branchID uuid.UUID) ([]models.EffectiveBranch, error)
}

type scheduleSource interface {
	Find(ctx context.Context, staffID uuid.UUID, date types.Date) (*models.ScheduleEntry, error)
	List(ctx context.Context, filter schedules.ListFilter) ([]models.ScheduleEntry, error)
}

type staffSource interface {
	List(ctx context.Context, filter staff.ListFilter) ([]models.RotationStaff, error)
}

type snapshotCache interface {
	Del(ctx context.Context, keys ...string) error
	MonthSnapshotKey(branchID, month string) string
}

// Service drives the rotation calendar: it loads the surrounding state,
// plans mutations through the reconciler, and applies the resulting effects.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]AssignmentDTO, error)
	CycleCell(ctx context.Context, input CellInput) (*MutationResult, error)
	Assign(ctx context.Context, input AssignInput) (*MutationResult, error)
	SetStatus(ctx context.Context, assignmentID uuid.UUID, status enums.ScheduleStatus) (*MutationResult, error)
	Unassign(ctx context.Context, assignmentID uuid.UUID) (*MutationResult, error)
	EligibleStaff(ctx context.Context, branchID uuid.UUID, date types.Date, positionID *uuid.UUID) ([]CandidateDTO, error)
}

type service struct {
	repo       assignmentRepository
	effective  effectiveSource
	schedules  scheduleSource
	staff      staffSource
	cache      snapshotCache
	metrics    *metrics.RotationMetrics
	logg       *logger.Logger
	reconciler *rotation.Reconciler
	locks      *rotation.KeyMutex
}

// Option configures the assignments service.
type Option func(*service)

// WithSnapshotCache attaches a Redis-backed month snapshot cache that gets
// invalidated on every applied effect.
func WithSnapshotCache(cache snapshotCache) Option {
	return func(s *service) { s.cache = cache }
}

// WithMetrics attaches rotation metrics.
func WithMetrics(m *metrics.RotationMetrics) Option {
	return func(s *service) { s.metrics = m }
}

// WithReconciler overrides the reconciler, used by tests to pin the clock.
func WithReconciler(r *rotation.Reconciler) Option {
	return func(s *service) {
		if r != nil {
			s.reconciler = r
		}
	}
}

// NewService builds the calendar service.
func NewService(
	repo assignmentRepository,
	effective effectiveSource,
	scheduleRepo scheduleSource,
	staffRepo staffSource,
	logg *logger.Logger,
	opts ...Option,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignment repository required")
	}
	if effective == nil {
		return nil, fmt.Errorf("effective branch source required")
	}
	if scheduleRepo == nil {
		return nil, fmt.Errorf("schedule source required")
	}
	if staffRepo == nil {
		return nil, fmt.Errorf("staff source required")
	}
	s := &service{
		repo:       repo,
		effective:  effective,
		schedules:  scheduleRepo,
		staff:      staffRepo,
		logg:       logg,
		reconciler: rotation.NewReconciler(),
		locks:      rotation.NewKeyMutex(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]AssignmentDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assignments")
	}
	out := make([]AssignmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) CycleCell(ctx context.Context, input CellInput) (*MutationResult, error) {
	if err := validateCell(input); err != nil {
		return nil, err
	}

	release := s.locks.Lock(input.RotationStaffID, input.Date)
	defer release()
	started := time.Now()
	defer func() { s.metrics.ObserveDuration("cycle", time.Since(started)) }()

	snap, err := s.loadCellSnapshot(ctx, input.RotationStaffID, input.Date)
	if err != nil {
		return nil, err
	}
	effective, err := s.effective.ListEffectiveBranches(ctx, input.RotationStaffID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list effective branches")
	}

	effect, err := s.reconciler.Cycle(rotation.CycleRequest{
		StaffID:   input.RotationStaffID,
		BranchID:  input.BranchID,
		Date:      input.Date,
		Snapshot:  snap,
		Effective: effective,
	})
	if err != nil {
		s.recordRejection(ctx, "cycle", err)
		return nil, err
	}
	return s.applyEffect(ctx, "cycle", input.BranchID, input.Date, effect)
}

func (s *service) Assign(ctx context.Context, input AssignInput) (*MutationResult, error) {
	if err := validateCell(CellInput{
		RotationStaffID: input.RotationStaffID,
		BranchID:        input.BranchID,
		Date:            input.Date,
	}); err != nil {
		return nil, err
	}

	release := s.locks.Lock(input.RotationStaffID, input.Date)
	defer release()
	started := time.Now()
	defer func() { s.metrics.ObserveDuration("assign", time.Since(started)) }()

	snap, err := s.loadCellSnapshot(ctx, input.RotationStaffID, input.Date)
	if err != nil {
		return nil, err
	}
	effective, err := s.effective.ListEffectiveBranches(ctx, input.RotationStaffID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list effective branches")
	}

	var scheduleStatus *enums.ScheduleStatus
	entry, err := s.schedules.Find(ctx, input.RotationStaffID, input.Date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find schedule entry")
	}
	if entry != nil {
		scheduleStatus = &entry.Status
	}

	effect, err := s.reconciler.Assign(rotation.AssignRequest{
		StaffID:        input.RotationStaffID,
		BranchID:       input.BranchID,
		Date:           input.Date,
		Status:         input.Status,
		ScheduleStatus: scheduleStatus,
		Snapshot:       snap,
		Effective:      effective,
	})
	if err != nil {
		s.recordRejection(ctx, "assign", err)
		return nil, err
	}
	return s.applyEffect(ctx, "assign", input.BranchID, input.Date, effect)
}

func (s *service) SetStatus(ctx context.Context, assignmentID uuid.UUID, status enums.ScheduleStatus) (*MutationResult, error) {
	assignment, err := s.findAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	release := s.locks.Lock(assignment.RotationStaffID, assignment.Date)
	defer release()
	started := time.Now()
	defer func() { s.metrics.ObserveDuration("set_status", time.Since(started)) }()

	snap, err := s.loadCellSnapshot(ctx, assignment.RotationStaffID, assignment.Date)
	if err != nil {
		return nil, err
	}

	effect, err := s.reconciler.SetStatus(rotation.SetStatusRequest{
		StaffID:  assignment.RotationStaffID,
		BranchID: assignment.BranchID,
		Date:     assignment.Date,
		Status:   status,
		Snapshot: snap,
	})
	if err != nil {
		s.recordRejection(ctx, "set_status", err)
		return nil, err
	}
	return s.applyEffect(ctx, "set_status", assignment.BranchID, assignment.Date, effect)
}

func (s *service) Unassign(ctx context.Context, assignmentID uuid.UUID) (*MutationResult, error) {
	assignment, err := s.findAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	release := s.locks.Lock(assignment.RotationStaffID, assignment.Date)
	defer release()
	started := time.Now()
	defer func() { s.metrics.ObserveDuration("unassign", time.Since(started)) }()

	snap, err := s.loadCellSnapshot(ctx, assignment.RotationStaffID, assignment.Date)
	if err != nil {
		return nil, err
	}

	effect, err := s.reconciler.Unassign(rotation.UnassignRequest{
		StaffID:  assignment.RotationStaffID,
		BranchID: assignment.BranchID,
		Date:     assignment.Date,
		Snapshot: snap,
	})
	if err != nil {
		s.recordRejection(ctx, "unassign", err)
		return nil, err
	}
	return s.applyEffect(ctx, "unassign", assignment.BranchID, assignment.Date, effect)
}

func (s *service) EligibleStaff(ctx context.Context, branchID uuid.UUID, date types.Date, positionID *uuid.UUID) ([]CandidateDTO, error) {
	if branchID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch id is required")
	}
	if date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}

	effective, err := s.effective.ListEffectiveForBranch(ctx, branchID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list effective branches")
	}
	members, err := s.staff.List(ctx, staff.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rotation staff")
	}
	entries, err := s.schedules.List(ctx, schedules.ListFilter{From: &date, To: &date})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list schedule entries")
	}

	candidates := rotation.EligibleCandidates(branchID, date, members, effective, entries, rotation.EligibilityOptions{
		PositionID: positionID,
	})
	out := make([]CandidateDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, CandidateDTO{
			RotationStaffID: c.Staff.ID,
			FirstName:       c.Staff.FirstName,
			LastName:        c.Staff.LastName,
			PositionID:      c.Staff.PositionID,
			SkillLevel:      c.Staff.SkillLevel,
			Level:           c.Level,
		})
	}
	return out, nil
}

// loadCellSnapshot pulls the staff member's assignments for the day across
// all branches. The exclusivity guard only needs the cell's row set; the
// month-wide feed goes through List.
func (s *service) loadCellSnapshot(ctx context.Context, staffID uuid.UUID, date types.Date) (*rotation.Snapshot, error) {
	rows, err := s.repo.ListForStaffDate(ctx, staffID, date)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignments")
	}
	return rotation.NewSnapshot(rows), nil
}

func (s *service) applyEffect(ctx context.Context, operation string, branchID uuid.UUID, date types.Date, effect rotation.Effect) (*MutationResult, error) {
	switch effect.Kind {
	case rotation.EffectCreate:
		created, err := s.repo.Create(ctx, *effect.Create)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create assignment")
		}
		s.metrics.IncEffect(operation, "create")
		s.invalidateMonth(ctx, branchID, date)
		return &MutationResult{Outcome: OutcomeCreated, Assignment: FromModel(created)}, nil

	case rotation.EffectUpdate:
		updated, err := s.repo.UpdateStatus(ctx, effect.AssignmentID, effect.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update assignment")
		}
		s.metrics.IncEffect(operation, "update")
		s.invalidateMonth(ctx, branchID, date)
		return &MutationResult{Outcome: OutcomeUpdated, Assignment: FromModel(updated)}, nil

	case rotation.EffectDelete:
		if err := s.repo.Delete(ctx, effect.AssignmentID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete assignment")
		}
		s.metrics.IncEffect(operation, "delete")
		s.invalidateMonth(ctx, branchID, date)
		return &MutationResult{Outcome: OutcomeDeleted}, nil

	default:
		s.metrics.IncEffect(operation, "noop")
		result := &MutationResult{Outcome: OutcomeNoop, NoopReason: noopReasonLabel(effect.Reason)}
		if effect.Reason == rotation.NoopConflict {
			s.metrics.IncConflict(operation)
			conflicting := effect.ConflictingBranchID
			result.ConflictingBranchID = &conflicting
		}
		return result, nil
	}
}

// invalidateMonth drops the cached month snapshot for the branch so the next
// feed read rebuilds from the database.
func (s *service) invalidateMonth(ctx context.Context, branchID uuid.UUID, date types.Date) {
	if s.cache == nil {
		return
	}
	month := date.Time().Format("2006-01")
	key := s.cache.MonthSnapshotKey(branchID.String(), month)
	if err := s.cache.Del(ctx, key); err != nil && s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("invalidate snapshot cache: %v", err))
	}
}

func (s *service) recordRejection(ctx context.Context, operation string, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		return
	}
	switch typed.Code() {
	case pkgerrors.CodeEligibility:
		s.metrics.IncRejection(operation, "eligibility")
	case pkgerrors.CodeExclusivity:
		s.metrics.IncRejection(operation, "exclusivity")
		s.metrics.IncConflict(operation)
	case pkgerrors.CodeValidation:
		s.metrics.IncRejection(operation, "validation")
	}
}

func (s *service) findAssignment(ctx context.Context, id uuid.UUID) (*models.RotationAssignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find assignment")
	}
	return assignment, nil
}

func validateCell(input CellInput) error {
	if input.RotationStaffID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "staff id is required")
	}
	if input.BranchID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "branch id is required")
	}
	if input.Date.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	return nil
}

func noopReasonLabel(reason rotation.NoopReason) string {
	switch reason {
	case rotation.NoopPastDate:
		return "past_date"
	case rotation.NoopConflict:
		return "conflict"
	case rotation.NoopNothingToDo:
		return "nothing_to_do"
	default:
		return ""
	}
}
