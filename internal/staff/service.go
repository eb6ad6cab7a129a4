package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
)

type staffRepository interface {
	Create(ctx context.Context, dto CreateStaffDTO) (*models.RotationStaff, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.RotationStaff, error)
	List(ctx context.Context, filter ListFilter) ([]models.RotationStaff, error)
	Update(ctx context.Context, staff *models.RotationStaff) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListEffectiveBranches(ctx context.Context, staffID uuid.UUID) ([]models.EffectiveBranch, error)
	UpsertEffectiveBranch(ctx context.Context, staffID uuid.UUID, dto SetEffectiveBranchDTO) (*models.EffectiveBranch, error)
	DeleteEffectiveBranch(ctx context.Context, staffID, branchID uuid.UUID) error
}

// Service exposes rotation staff operations.
type Service interface {
	Create(ctx context.Context, input CreateStaffDTO) (*StaffDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StaffDTO, error)
	List(ctx context.Context, filter ListFilter) ([]StaffDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateStaffDTO) (*StaffDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListEffectiveBranches(ctx context.Context, staffID uuid.UUID) ([]EffectiveBranchDTO, error)
	SetEffectiveBranch(ctx context.Context, staffID uuid.UUID, input SetEffectiveBranchDTO) (*EffectiveBranchDTO, error)
	RemoveEffectiveBranch(ctx context.Context, staffID, branchID uuid.UUID) error
}

type service struct {
	repo staffRepository
}

// NewService builds a rotation staff service with the provided repository.
func NewService(repo staffRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("staff repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateStaffDTO) (*StaffDTO, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.FirstName == "" || input.LastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "staff name is required")
	}
	if input.PositionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "position id is required")
	}
	if !input.SkillLevel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid skill level")
	}

	staff, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rotation staff")
	}
	return FromModel(staff), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StaffDTO, error) {
	staff, err := s.findStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(staff), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]StaffDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rotation staff")
	}
	out := make([]StaffDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateStaffDTO) (*StaffDTO, error) {
	staff, err := s.findStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name cannot be empty")
		}
		staff.FirstName = name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last name cannot be empty")
		}
		staff.LastName = name
	}
	if input.PositionID != nil {
		if *input.PositionID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "position id cannot be empty")
		}
		staff.PositionID = *input.PositionID
	}
	if input.SkillLevel != nil {
		if !input.SkillLevel.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid skill level")
		}
		staff.SkillLevel = *input.SkillLevel
	}
	if input.ZoneID != nil {
		staff.ZoneID = input.ZoneID
	}
	if input.Phone != nil {
		staff.Phone = input.Phone
	}
	if input.Active != nil {
		staff.Active = *input.Active
	}

	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rotation staff")
	}
	return FromModel(staff), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findStaff(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete rotation staff")
	}
	return nil
}

func (s *service) ListEffectiveBranches(ctx context.Context, staffID uuid.UUID) ([]EffectiveBranchDTO, error) {
	if _, err := s.findStaff(ctx, staffID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListEffectiveBranches(ctx, staffID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list effective branches")
	}
	out := make([]EffectiveBranchDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *EffectiveBranchFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) SetEffectiveBranch(ctx context.Context, staffID uuid.UUID, input SetEffectiveBranchDTO) (*EffectiveBranchDTO, error) {
	if _, err := s.findStaff(ctx, staffID); err != nil {
		return nil, err
	}
	if input.BranchID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch id is required")
	}
	if !input.Level.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid branch level")
	}

	row, err := s.repo.UpsertEffectiveBranch(ctx, staffID, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert effective branch")
	}
	return EffectiveBranchFromModel(row), nil
}

func (s *service) RemoveEffectiveBranch(ctx context.Context, staffID, branchID uuid.UUID) error {
	if err := s.repo.DeleteEffectiveBranch(ctx, staffID, branchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "effective branch not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete effective branch")
	}
	return nil
}

func (s *service) findStaff(ctx context.Context, id uuid.UUID) (*models.RotationStaff, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rotation staff not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find rotation staff")
	}
	return staff, nil
}
