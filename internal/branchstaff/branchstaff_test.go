package branchstaff

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
)

type stubStaffRepo struct {
	staff *models.BranchStaff
	err   error
}

func (s *stubStaffRepo) Create(ctx context.Context, dto CreateStaffDTO) (*models.BranchStaff, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BranchStaff{
		ID:         uuid.New(),
		BranchID:   dto.BranchID,
		PositionID: dto.PositionID,
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Active:     true,
	}, nil
}

func (s *stubStaffRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BranchStaff, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.staff == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.staff, nil
}

func (s *stubStaffRepo) ListByBranch(ctx context.Context, branchID uuid.UUID, activeOnly bool) ([]models.BranchStaff, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.staff == nil {
		return nil, nil
	}
	return []models.BranchStaff{*s.staff}, nil
}

func (s *stubStaffRepo) Update(ctx context.Context, staff *models.BranchStaff) error {
	return s.err
}

func (s *stubStaffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func TestCreateRequiresBranchAndPosition(t *testing.T) {
	svc, err := NewService(&stubStaffRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateStaffDTO{
		FirstName:  "Yui",
		LastName:   "Tanaka",
		PositionID: uuid.New(),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing branch, got %v", gotErr)
	}

	_, gotErr = svc.Create(context.Background(), CreateStaffDTO{
		FirstName: "Yui",
		LastName:  "Tanaka",
		BranchID:  uuid.New(),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing position, got %v", gotErr)
	}
}

func TestCreateSuccess(t *testing.T) {
	svc, err := NewService(&stubStaffRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	branchID := uuid.New()
	dto, err := svc.Create(context.Background(), CreateStaffDTO{
		BranchID:   branchID,
		PositionID: uuid.New(),
		FirstName:  " Yui ",
		LastName:   "Tanaka",
	})
	if err != nil {
		t.Fatalf("create staff: %v", err)
	}
	if dto.FirstName != "Yui" {
		t.Fatalf("expected trimmed first name, got %q", dto.FirstName)
	}
	if dto.BranchID != branchID {
		t.Fatalf("branch id mismatch")
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, err := NewService(&stubStaffRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	active := false
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdateStaffDTO{Active: &active})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}
