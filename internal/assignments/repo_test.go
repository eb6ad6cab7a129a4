package assignments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

func setupAssignmentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE rotation_assignments (
  id TEXT PRIMARY KEY,
  rotation_staff_id TEXT NOT NULL,
  branch_id TEXT NOT NULL,
  date DATETIME NOT NULL,
  level INTEGER NOT NULL DEFAULT 1,
  schedule_status TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (rotation_staff_id, date)
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedAssignment(t *testing.T, db *gorm.DB, staffID, branchID uuid.UUID, date types.Date, status enums.ScheduleStatus) *models.RotationAssignment {
	t.Helper()

	assignment := &models.RotationAssignment{
		ID:              uuid.New(),
		RotationStaffID: staffID,
		BranchID:        branchID,
		Date:            date,
		Level:           enums.BranchLevelPriority,
		ScheduleStatus:  status,
	}
	require.NoError(t, db.Create(assignment).Error)
	return assignment
}

func mustDate(t *testing.T, value string) types.Date {
	t.Helper()
	date, err := types.ParseDate(value)
	require.NoError(t, err)
	return date
}

func TestRepositoryListFilters(t *testing.T) {
	db := setupAssignmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	staffA := uuid.New()
	staffB := uuid.New()
	branchX := uuid.New()
	branchY := uuid.New()

	seedAssignment(t, db, staffA, branchX, mustDate(t, "2025-06-01"), enums.ScheduleStatusWorking)
	seedAssignment(t, db, staffA, branchY, mustDate(t, "2025-06-02"), enums.ScheduleStatusLeave)
	seedAssignment(t, db, staffB, branchX, mustDate(t, "2025-06-03"), enums.ScheduleStatusWorking)

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-06-01", all[0].Date.String())

	byBranch, err := repo.List(ctx, ListFilter{BranchID: &branchX})
	require.NoError(t, err)
	assert.Len(t, byBranch, 2)

	byStaff, err := repo.List(ctx, ListFilter{RotationStaffID: &staffA})
	require.NoError(t, err)
	assert.Len(t, byStaff, 2)

	from := mustDate(t, "2025-06-02")
	to := mustDate(t, "2025-06-02")
	ranged, err := repo.List(ctx, ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, branchY, ranged[0].BranchID)
}

func TestRepositoryListForStaffDate(t *testing.T) {
	db := setupAssignmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	staffID := uuid.New()
	day := mustDate(t, "2025-06-05")
	seeded := seedAssignment(t, db, staffID, uuid.New(), day, enums.ScheduleStatusWorking)
	seedAssignment(t, db, staffID, uuid.New(), mustDate(t, "2025-06-06"), enums.ScheduleStatusWorking)
	seedAssignment(t, db, uuid.New(), uuid.New(), day, enums.ScheduleStatusWorking)

	rows, err := repo.ListForStaffDate(ctx, staffID, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, seeded.ID, rows[0].ID)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupAssignmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seeded := seedAssignment(t, db, uuid.New(), uuid.New(), mustDate(t, "2025-06-05"), enums.ScheduleStatusWorking)

	updated, err := repo.UpdateStatus(ctx, seeded.ID, enums.ScheduleStatusSickLeave)
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusSickLeave, updated.ScheduleStatus)

	found, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ScheduleStatusSickLeave, found.ScheduleStatus)
}

func TestRepositoryDelete(t *testing.T) {
	db := setupAssignmentsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seeded := seedAssignment(t, db, uuid.New(), uuid.New(), mustDate(t, "2025-06-05"), enums.ScheduleStatusWorking)

	require.NoError(t, repo.Delete(ctx, seeded.ID))

	_, err := repo.FindByID(ctx, seeded.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, seeded.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
