package rotation

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

func staffMember(positionID uuid.UUID) models.RotationStaff {
	return models.RotationStaff{
		ID:         uuid.New(),
		FirstName:  "Test",
		LastName:   "Staff",
		PositionID: positionID,
		SkillLevel: enums.SkillLevelMid,
	}
}

func workingEntry(staffID uuid.UUID, date types.Date) models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:              uuid.New(),
		RotationStaffID: staffID,
		Date:            date,
		Status:          enums.ScheduleStatusWorking,
	}
}

func TestEligibleStaffRequiresEffectiveBranch(t *testing.T) {
	branchID := uuid.New()
	date := types.NewDate(2025, time.June, 2)
	position := uuid.New()
	member := staffMember(position)

	// Working entry but no effective-branch row: excluded.
	got := EligibleStaff(branchID, date,
		[]models.RotationStaff{member},
		nil,
		[]models.ScheduleEntry{workingEntry(member.ID, date)},
		EligibilityOptions{})
	if len(got) != 0 {
		t.Fatalf("expected exclusion without effective branch, got %d staff", len(got))
	}
}

func TestEligibleStaffRequiresExplicitWorkingEntry(t *testing.T) {
	branchID := uuid.New()
	date := types.NewDate(2025, time.June, 2)
	member := staffMember(uuid.New())
	effective := []models.EffectiveBranch{{
		RotationStaffID: member.ID,
		BranchID:        branchID,
		Level:           enums.BranchLevelPriority,
	}}

	// No schedule entry at all: excluded, not an error.
	if got := EligibleStaff(branchID, date, []models.RotationStaff{member}, effective, nil, EligibilityOptions{}); len(got) != 0 {
		t.Fatalf("absent entry should exclude, got %d staff", len(got))
	}

	// Non-working statuses exclude even with the effective branch present.
	for _, status := range []enums.ScheduleStatus{
		enums.ScheduleStatusLeave,
		enums.ScheduleStatusSickLeave,
		enums.ScheduleStatusOff,
	} {
		schedules := []models.ScheduleEntry{{
			RotationStaffID: member.ID,
			Date:            date,
			Status:          status,
		}}
		if got := EligibleStaff(branchID, date, []models.RotationStaff{member}, effective, schedules, EligibilityOptions{}); len(got) != 0 {
			t.Fatalf("status %s should exclude, got %d staff", status, len(got))
		}
	}
}

func TestEligibleStaffMatchesWorkingEntryOnDate(t *testing.T) {
	branchID := uuid.New()
	date := types.NewDate(2025, time.June, 2)
	member := staffMember(uuid.New())
	effective := []models.EffectiveBranch{{
		RotationStaffID: member.ID,
		BranchID:        branchID,
		Level:           enums.BranchLevelReserved,
	}}

	// Working on another day does not qualify.
	otherDay := workingEntry(member.ID, date.AddDays(1))
	if got := EligibleStaff(branchID, date, []models.RotationStaff{member}, effective, []models.ScheduleEntry{otherDay}, EligibilityOptions{}); len(got) != 0 {
		t.Fatalf("working on a different day should exclude")
	}

	candidates := EligibleCandidates(branchID, date,
		[]models.RotationStaff{member}, effective,
		[]models.ScheduleEntry{workingEntry(member.ID, date)},
		EligibilityOptions{})
	if len(candidates) != 1 {
		t.Fatalf("expected one candidate, got %d", len(candidates))
	}
	if candidates[0].Level != enums.BranchLevelReserved {
		t.Fatalf("candidate should carry the effective-branch level, got %d", candidates[0].Level)
	}
}

func TestEligibleStaffPositionFilter(t *testing.T) {
	branchID := uuid.New()
	date := types.NewDate(2025, time.June, 2)
	nurseRole := uuid.New()
	techRole := uuid.New()
	nurse := staffMember(nurseRole)
	tech := staffMember(techRole)

	effective := []models.EffectiveBranch{
		{RotationStaffID: nurse.ID, BranchID: branchID, Level: enums.BranchLevelPriority},
		{RotationStaffID: tech.ID, BranchID: branchID, Level: enums.BranchLevelPriority},
	}
	schedules := []models.ScheduleEntry{
		workingEntry(nurse.ID, date),
		workingEntry(tech.ID, date),
	}

	got := EligibleStaff(branchID, date,
		[]models.RotationStaff{nurse, tech}, effective, schedules,
		EligibilityOptions{PositionID: &nurseRole})
	if len(got) != 1 || got[0].ID != nurse.ID {
		t.Fatalf("position filter should keep only the nurse, got %d", len(got))
	}
}

func TestEligibleStaffPreservesInputOrder(t *testing.T) {
	branchID := uuid.New()
	date := types.NewDate(2025, time.June, 2)

	var staff []models.RotationStaff
	var effective []models.EffectiveBranch
	var schedules []models.ScheduleEntry
	for i := 0; i < 5; i++ {
		m := staffMember(uuid.New())
		staff = append(staff, m)
		effective = append(effective, models.EffectiveBranch{
			RotationStaffID: m.ID,
			BranchID:        branchID,
			Level:           enums.BranchLevelPriority,
		})
		schedules = append(schedules, workingEntry(m.ID, date))
	}

	got := EligibleStaff(branchID, date, staff, effective, schedules, EligibilityOptions{})
	if len(got) != len(staff) {
		t.Fatalf("expected all %d staff, got %d", len(staff), len(got))
	}
	for i := range staff {
		if got[i].ID != staff[i].ID {
			t.Fatalf("order not preserved at index %d", i)
		}
	}
}
