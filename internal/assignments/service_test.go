package assignments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/internal/rotation"
	"github.com/medrota/clinicrota-backend/internal/schedules"
	"github.com/medrota/clinicrota-backend/internal/staff"
	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

var testToday = types.NewDate(2025, time.June, 1)

type stubAssignmentRepo struct {
	rows    map[uuid.UUID]models.RotationAssignment
	deleted []uuid.UUID
}

func newStubAssignmentRepo() *stubAssignmentRepo {
	return &stubAssignmentRepo{rows: make(map[uuid.UUID]models.RotationAssignment)}
}

func (r *stubAssignmentRepo) List(_ context.Context, _ ListFilter) ([]models.RotationAssignment, error) {
	out := make([]models.RotationAssignment, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *stubAssignmentRepo) ListForStaffDate(_ context.Context, staffID uuid.UUID, date types.Date) ([]models.RotationAssignment, error) {
	var out []models.RotationAssignment
	for _, row := range r.rows {
		if row.RotationStaffID == staffID && row.Date.Equal(date) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubAssignmentRepo) FindByID(_ context.Context, id uuid.UUID) (*models.RotationAssignment, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *stubAssignmentRepo) Create(_ context.Context, spec rotation.CreateSpec) (*models.RotationAssignment, error) {
	row := models.RotationAssignment{
		ID:              uuid.New(),
		RotationStaffID: spec.StaffID,
		BranchID:        spec.BranchID,
		Date:            spec.Date,
		Level:           spec.Level,
		ScheduleStatus:  spec.Status,
	}
	r.rows[row.ID] = row
	return &row, nil
}

func (r *stubAssignmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.ScheduleStatus) (*models.RotationAssignment, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	row.ScheduleStatus = status
	r.rows[id] = row
	return &row, nil
}

func (r *stubAssignmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubEffectiveSource struct {
	rows []models.EffectiveBranch
}

func (s *stubEffectiveSource) ListEffectiveBranches(_ context.Context, staffID uuid.UUID) ([]models.EffectiveBranch, error) {
	var out []models.EffectiveBranch
	for _, row := range s.rows {
		if row.RotationStaffID == staffID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *stubEffectiveSource) ListEffectiveForBranch(_ context.Context, branchID uuid.UUID) ([]models.EffectiveBranch, error) {
	var out []models.EffectiveBranch
	for _, row := range s.rows {
		if row.BranchID == branchID {
			out = append(out, row)
		}
	}
	return out, nil
}

type stubScheduleSource struct {
	entries []models.ScheduleEntry
}

func (s *stubScheduleSource) Find(_ context.Context, staffID uuid.UUID, date types.Date) (*models.ScheduleEntry, error) {
	for i := range s.entries {
		if s.entries[i].RotationStaffID == staffID && s.entries[i].Date.Equal(date) {
			return &s.entries[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubScheduleSource) List(_ context.Context, _ schedules.ListFilter) ([]models.ScheduleEntry, error) {
	return s.entries, nil
}

type stubStaffSource struct {
	rows []models.RotationStaff
}

func (s *stubStaffSource) List(_ context.Context, _ staff.ListFilter) ([]models.RotationStaff, error) {
	return s.rows, nil
}

type stubCache struct {
	deleted []string
}

func (c *stubCache) Del(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}

func (c *stubCache) MonthSnapshotKey(branchID, month string) string {
	return "crota:snapshot:" + branchID + ":" + month
}

type fixture struct {
	svc       Service
	repo      *stubAssignmentRepo
	effective *stubEffectiveSource
	schedules *stubScheduleSource
	cache     *stubCache
	staffID   uuid.UUID
	branchID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	staffID := uuid.New()
	branchID := uuid.New()

	repo := newStubAssignmentRepo()
	effective := &stubEffectiveSource{rows: []models.EffectiveBranch{{
		ID:              uuid.New(),
		RotationStaffID: staffID,
		BranchID:        branchID,
		Level:           enums.BranchLevelPriority,
	}}}
	scheduleSrc := &stubScheduleSource{}
	staffSrc := &stubStaffSource{}
	cache := &stubCache{}

	reconciler := rotation.NewReconciler(rotation.WithToday(func() types.Date { return testToday }))
	svc, err := NewService(repo, effective, scheduleSrc, staffSrc, nil,
		WithReconciler(reconciler),
		WithSnapshotCache(cache),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return &fixture{
		svc:       svc,
		repo:      repo,
		effective: effective,
		schedules: scheduleSrc,
		cache:     cache,
		staffID:   staffID,
		branchID:  branchID,
	}
}

func TestCycleCellCreatesWorkingAssignment(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.CycleCell(context.Background(), CellInput{
		RotationStaffID: f.staffID,
		BranchID:        f.branchID,
		Date:            testToday,
	})
	if err != nil {
		t.Fatalf("CycleCell: %v", err)
	}
	if result.Outcome != OutcomeCreated {
		t.Fatalf("outcome = %q, want %q", result.Outcome, OutcomeCreated)
	}
	if result.Assignment == nil || result.Assignment.ScheduleStatus != enums.ScheduleStatusWorking {
		t.Fatalf("assignment = %+v, want working", result.Assignment)
	}
	if len(f.cache.deleted) != 1 {
		t.Fatalf("cache invalidations = %d, want 1", len(f.cache.deleted))
	}
	want := "crota:snapshot:" + f.branchID.String() + ":2025-06"
	if f.cache.deleted[0] != want {
		t.Fatalf("invalidated key = %q, want %q", f.cache.deleted[0], want)
	}
}

func TestCycleCellRejectsUnpermittedBranch(t *testing.T) {
	f := newFixture(t)
	other := uuid.New()

	_, err := f.svc.CycleCell(context.Background(), CellInput{
		RotationStaffID: f.staffID,
		BranchID:        other,
		Date:            testToday,
	})
	if err == nil {
		t.Fatal("expected eligibility error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeEligibility {
		t.Fatalf("error = %v, want code %s", err, pkgerrors.CodeEligibility)
	}
}

func TestCycleCellConflictIsNoop(t *testing.T) {
	f := newFixture(t)
	branchB := uuid.New()
	f.effective.rows = append(f.effective.rows, models.EffectiveBranch{
		ID:              uuid.New(),
		RotationStaffID: f.staffID,
		BranchID:        branchB,
		Level:           enums.BranchLevelReserved,
	})

	if _, err := f.svc.CycleCell(context.Background(), CellInput{
		RotationStaffID: f.staffID,
		BranchID:        f.branchID,
		Date:            testToday,
	}); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	result, err := f.svc.CycleCell(context.Background(), CellInput{
		RotationStaffID: f.staffID,
		BranchID:        branchB,
		Date:            testToday,
	})
	if err != nil {
		t.Fatalf("CycleCell: %v", err)
	}
	if result.Outcome != OutcomeNoop || result.NoopReason != "conflict" {
		t.Fatalf("result = %+v, want conflict noop", result)
	}
	if result.ConflictingBranchID == nil || *result.ConflictingBranchID != f.branchID {
		t.Fatalf("conflicting branch = %v, want %s", result.ConflictingBranchID, f.branchID)
	}
}

func TestAssignOnHeldCellReturnsExclusivity(t *testing.T) {
	f := newFixture(t)
	branchB := uuid.New()
	f.effective.rows = append(f.effective.rows, models.EffectiveBranch{
		ID:              uuid.New(),
		RotationStaffID: f.staffID,
		BranchID:        branchB,
		Level:           enums.BranchLevelReserved,
	})

	if _, err := f.svc.CycleCell(context.Background(), CellInput{
		RotationStaffID: f.staffID,
		BranchID:        f.branchID,
		Date:            testToday,
	}); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	_, err := f.svc.Assign(context.Background(), AssignInput{
		RotationStaffID: f.staffID,
		BranchID:        branchB,
		Date:            testToday,
		Status:          enums.ScheduleStatusWorking,
	})
	if err == nil {
		t.Fatal("expected exclusivity error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeExclusivity {
		t.Fatalf("error = %v, want code %s", err, pkgerrors.CodeExclusivity)
	}
	details, _ := typed.Details().(map[string]any)
	if got := details["conflicting_branch_id"]; got != f.branchID.String() {
		t.Fatalf("details conflicting_branch_id = %v, want %s", got, f.branchID)
	}
}

func TestAssignBlockedByOffScheduleEntry(t *testing.T) {
	f := newFixture(t)
	f.schedules.entries = []models.ScheduleEntry{{
		ID:              uuid.New(),
		RotationStaffID: f.staffID,
		Date:            testToday,
		Status:          enums.ScheduleStatusOff,
	}}

	_, err := f.svc.Assign(context.Background(), AssignInput{
		RotationStaffID: f.staffID,
		BranchID:        f.branchID,
		Date:            testToday,
		Status:          enums.ScheduleStatusWorking,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("error = %v, want code %s", err, pkgerrors.CodeValidation)
	}
}

func TestSetStatusOffDeletesAssignment(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Assign(context.Background(), AssignInput{
		RotationStaffID: f.staffID,
		BranchID:        f.branchID,
		Date:            testToday,
		Status:          enums.ScheduleStatusLeave,
	})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}

	result, err := f.svc.SetStatus(context.Background(), created.Assignment.ID, enums.ScheduleStatusOff)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if result.Outcome != OutcomeDeleted {
		t.Fatalf("outcome = %q, want %q", result.Outcome, OutcomeDeleted)
	}
	if len(f.repo.rows) != 0 {
		t.Fatalf("assignments remaining = %d, want 0", len(f.repo.rows))
	}
}

func TestSetStatusUnknownAssignmentIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.SetStatus(context.Background(), uuid.New(), enums.ScheduleStatusLeave)
	if err == nil {
		t.Fatal("expected not found error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("error = %v, want code %s", err, pkgerrors.CodeNotFound)
	}
}

func TestUnassignDeletesAssignment(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Assign(context.Background(), AssignInput{
		RotationStaffID: f.staffID,
		BranchID:        f.branchID,
		Date:            testToday,
		Status:          enums.ScheduleStatusWorking,
	})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}

	result, err := f.svc.Unassign(context.Background(), created.Assignment.ID)
	if err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	if result.Outcome != OutcomeDeleted {
		t.Fatalf("outcome = %q, want %q", result.Outcome, OutcomeDeleted)
	}
	if len(f.repo.deleted) != 1 {
		t.Fatalf("deletes = %d, want 1", len(f.repo.deleted))
	}
}

func TestPastDateMutationIsNoop(t *testing.T) {
	f := newFixture(t)
	yesterday := testToday.AddDays(-1)

	result, err := f.svc.CycleCell(context.Background(), CellInput{
		RotationStaffID: f.staffID,
		BranchID:        f.branchID,
		Date:            yesterday,
	})
	if err != nil {
		t.Fatalf("CycleCell: %v", err)
	}
	if result.Outcome != OutcomeNoop || result.NoopReason != "past_date" {
		t.Fatalf("result = %+v, want past_date noop", result)
	}
	if len(f.cache.deleted) != 0 {
		t.Fatalf("cache invalidations = %d, want 0", len(f.cache.deleted))
	}
}

func TestEligibleStaffRequiresWorkingEntry(t *testing.T) {
	f := newFixture(t)
	positionID := uuid.New()
	working := uuid.New()
	idle := uuid.New()

	f.effective.rows = []models.EffectiveBranch{
		{ID: uuid.New(), RotationStaffID: working, BranchID: f.branchID, Level: enums.BranchLevelPriority},
		{ID: uuid.New(), RotationStaffID: idle, BranchID: f.branchID, Level: enums.BranchLevelReserved},
	}
	f.repo.rows = map[uuid.UUID]models.RotationAssignment{}
	staffSrc := []models.RotationStaff{
		{ID: working, FirstName: "Aiko", LastName: "Tanaka", PositionID: positionID, SkillLevel: enums.SkillLevelSenior},
		{ID: idle, FirstName: "Ren", LastName: "Sato", PositionID: positionID, SkillLevel: enums.SkillLevelJunior},
	}
	f.schedules.entries = []models.ScheduleEntry{{
		ID:              uuid.New(),
		RotationStaffID: working,
		Date:            testToday,
		Status:          enums.ScheduleStatusWorking,
	}}

	svc := f.svc.(*service)
	svc.staff = &stubStaffSource{rows: staffSrc}

	candidates, err := f.svc.EligibleStaff(context.Background(), f.branchID, testToday, nil)
	if err != nil {
		t.Fatalf("EligibleStaff: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if candidates[0].RotationStaffID != working {
		t.Fatalf("candidate = %s, want %s", candidates[0].RotationStaffID, working)
	}
	if candidates[0].Level != enums.BranchLevelPriority {
		t.Fatalf("level = %v, want priority", candidates[0].Level)
	}
}
