package branchstaff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
)

// StaffDTO exposes permanent branch staff in API responses.
type StaffDTO struct {
	ID         uuid.UUID  `json:"id"`
	BranchID   uuid.UUID  `json:"branch_id"`
	PositionID uuid.UUID  `json:"position_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Phone      *string    `json:"phone,omitempty"`
	HiredAt    *time.Time `json:"hired_at,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateStaffDTO holds creation-time data for a permanent staff member.
type CreateStaffDTO struct {
	BranchID   uuid.UUID
	PositionID uuid.UUID
	FirstName  string
	LastName   string
	Phone      *string
	HiredAt    *time.Time
}

// UpdateStaffDTO captures the mutable staff fields; nil means unchanged.
type UpdateStaffDTO struct {
	PositionID *uuid.UUID
	FirstName  *string
	LastName   *string
	Phone      *string
	HiredAt    *time.Time
	Active     *bool
}

// FromModel maps the persisted staff row into a DTO.
func FromModel(m *models.BranchStaff) *StaffDTO {
	if m == nil {
		return nil
	}
	return &StaffDTO{
		ID:         m.ID,
		BranchID:   m.BranchID,
		PositionID: m.PositionID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Phone:      m.Phone,
		HiredAt:    m.HiredAt,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// Repository handles branch staff persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to branch staff operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, dto CreateStaffDTO) (*models.BranchStaff, error) {
	staff := &models.BranchStaff{
		BranchID:   dto.BranchID,
		PositionID: dto.PositionID,
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Phone:      dto.Phone,
		HiredAt:    dto.HiredAt,
		Active:     true,
	}
	if err := r.db.WithContext(ctx).Create(staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BranchStaff, error) {
	var staff models.BranchStaff
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

// ListByBranch returns the permanent staff attached to one branch.
func (r *Repository) ListByBranch(ctx context.Context, branchID uuid.UUID, activeOnly bool) ([]models.BranchStaff, error) {
	query := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("last_name ASC, first_name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var staff []models.BranchStaff
	if err := query.Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *Repository) Update(ctx context.Context, staff *models.BranchStaff) error {
	if staff == nil {
		return fmt.Errorf("staff is required")
	}
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.BranchStaff{}, "id = ?", id).Error
}

type staffRepository interface {
	Create(ctx context.Context, dto CreateStaffDTO) (*models.BranchStaff, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.BranchStaff, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID, activeOnly bool) ([]models.BranchStaff, error)
	Update(ctx context.Context, staff *models.BranchStaff) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes permanent branch staff operations.
type Service interface {
	Create(ctx context.Context, input CreateStaffDTO) (*StaffDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StaffDTO, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID, activeOnly bool) ([]StaffDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateStaffDTO) (*StaffDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo staffRepository
}

// NewService builds a branch staff service with the provided repository.
func NewService(repo staffRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("branch staff repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateStaffDTO) (*StaffDTO, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.FirstName == "" || input.LastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "staff name is required")
	}
	if input.BranchID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch id is required")
	}
	if input.PositionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "position id is required")
	}

	staff, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create branch staff")
	}
	return FromModel(staff), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StaffDTO, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch staff not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find branch staff")
	}
	return FromModel(staff), nil
}

func (s *service) ListByBranch(ctx context.Context, branchID uuid.UUID, activeOnly bool) ([]StaffDTO, error) {
	rows, err := s.repo.ListByBranch(ctx, branchID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list branch staff")
	}
	out := make([]StaffDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateStaffDTO) (*StaffDTO, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "branch staff not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find branch staff")
	}

	if input.PositionID != nil {
		if *input.PositionID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "position id cannot be empty")
		}
		staff.PositionID = *input.PositionID
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
	if input.Phone != nil {
		staff.Phone = input.Phone
	}
	if input.HiredAt != nil {
		staff.HiredAt = input.HiredAt
	}
	if input.Active != nil {
		staff.Active = *input.Active
	}

	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update branch staff")
	}
	return FromModel(staff), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "branch staff not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find branch staff")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete branch staff")
	}
	return nil
}
