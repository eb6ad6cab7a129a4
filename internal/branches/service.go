package branches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/pkg/db"
	"github.com/medrota/clinicrota-backend/pkg/db/models"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
)

type branchRepository interface {
	Create(ctx context.Context, dto CreateBranchDTO) (*models.Branch, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Branch, error)
	List(ctx context.Context, activeOnly bool) ([]models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes branch operations.
type Service interface {
	Create(ctx context.Context, input CreateBranchDTO) (*BranchDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BranchDTO, error)
	List(ctx context.Context, activeOnly bool) ([]BranchDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBranchDTO) (*BranchDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo branchRepository
}

// NewService builds a branch service with the provided repository.
func NewService(repo branchRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("branch repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateBranchDTO) (*BranchDTO, error) {
	input.Code = strings.TrimSpace(input.Code)
	input.Name = strings.TrimSpace(input.Name)
	if input.Code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch code is required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch name is required")
	}

	branch, err := s.repo.Create(ctx, input)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "branch code already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create branch")
	}
	return FromModel(branch), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*BranchDTO, error) {
	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find branch")
	}
	return FromModel(branch), nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]BranchDTO, error) {
	rows, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list branches")
	}
	out := make([]BranchDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBranchDTO) (*BranchDTO, error) {
	branch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find branch")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch name cannot be empty")
		}
		branch.Name = name
	}
	if input.Address != nil {
		branch.Address = input.Address
	}
	if input.Phone != nil {
		branch.Phone = input.Phone
	}
	if input.ZoneID != nil {
		branch.ZoneID = input.ZoneID
	}
	if input.Active != nil {
		branch.Active = *input.Active
	}

	if err := s.repo.Update(ctx, branch); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update branch")
	}
	return FromModel(branch), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "branch not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find branch")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete branch")
	}
	return nil
}
