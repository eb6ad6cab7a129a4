package staff

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
)

type stubStaffRepo struct {
	staff     *models.RotationStaff
	effective []models.EffectiveBranch
	err       error

	upserted *SetEffectiveBranchDTO
	deleted  bool
}

func (s *stubStaffRepo) Create(ctx context.Context, dto CreateStaffDTO) (*models.RotationStaff, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.RotationStaff{
		ID:         uuid.New(),
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		PositionID: dto.PositionID,
		SkillLevel: dto.SkillLevel,
		Active:     true,
	}, nil
}

func (s *stubStaffRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.RotationStaff, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.staff == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.staff, nil
}

func (s *stubStaffRepo) List(ctx context.Context, filter ListFilter) ([]models.RotationStaff, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.staff == nil {
		return nil, nil
	}
	return []models.RotationStaff{*s.staff}, nil
}

func (s *stubStaffRepo) Update(ctx context.Context, staff *models.RotationStaff) error {
	return s.err
}

func (s *stubStaffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubStaffRepo) ListEffectiveBranches(ctx context.Context, staffID uuid.UUID) ([]models.EffectiveBranch, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.effective, nil
}

func (s *stubStaffRepo) UpsertEffectiveBranch(ctx context.Context, staffID uuid.UUID, dto SetEffectiveBranchDTO) (*models.EffectiveBranch, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.upserted = &dto
	return &models.EffectiveBranch{
		ID:              uuid.New(),
		RotationStaffID: staffID,
		BranchID:        dto.BranchID,
		Level:           dto.Level,
	}, nil
}

func (s *stubStaffRepo) DeleteEffectiveBranch(ctx context.Context, staffID, branchID uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	if !s.deleted {
		s.deleted = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

func baseStaff() *models.RotationStaff {
	return &models.RotationStaff{
		ID:         uuid.New(),
		FirstName:  "Hana",
		LastName:   "Kobayashi",
		PositionID: uuid.New(),
		SkillLevel: enums.SkillLevelSenior,
		Active:     true,
	}
}

func TestCreateValidatesSkillLevel(t *testing.T) {
	svc, err := NewService(&stubStaffRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateStaffDTO{
		FirstName:  "Hana",
		LastName:   "Kobayashi",
		PositionID: uuid.New(),
		SkillLevel: "grandmaster",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestSetEffectiveBranchValidatesLevel(t *testing.T) {
	repo := &stubStaffRepo{staff: baseStaff()}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.SetEffectiveBranch(context.Background(), repo.staff.ID, SetEffectiveBranchDTO{
		BranchID: uuid.New(),
		Level:    0,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestSetEffectiveBranchUpserts(t *testing.T) {
	repo := &stubStaffRepo{staff: baseStaff()}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	branchID := uuid.New()
	dto, err := svc.SetEffectiveBranch(context.Background(), repo.staff.ID, SetEffectiveBranchDTO{
		BranchID: branchID,
		Level:    enums.BranchLevelReserved,
	})
	if err != nil {
		t.Fatalf("set effective branch: %v", err)
	}
	if dto.BranchID != branchID || dto.Level != enums.BranchLevelReserved {
		t.Fatalf("unexpected row %+v", dto)
	}
	if repo.upserted == nil {
		t.Fatal("repo upsert not called")
	}
}

func TestSetEffectiveBranchRequiresStaff(t *testing.T) {
	svc, err := NewService(&stubStaffRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.SetEffectiveBranch(context.Background(), uuid.New(), SetEffectiveBranchDTO{
		BranchID: uuid.New(),
		Level:    enums.BranchLevelPriority,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestRemoveEffectiveBranchTwiceIsNotFound(t *testing.T) {
	repo := &stubStaffRepo{staff: baseStaff()}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	branchID := uuid.New()
	if err := svc.RemoveEffectiveBranch(context.Background(), repo.staff.ID, branchID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	gotErr := svc.RemoveEffectiveBranch(context.Background(), repo.staff.ID, branchID)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second remove, got %v", gotErr)
	}
}
