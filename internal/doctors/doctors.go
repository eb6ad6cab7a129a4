package doctors

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

// DoctorDTO exposes roster data in API responses.
type DoctorDTO struct {
	ID         uuid.UUID  `json:"id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Speciality *string    `json:"speciality,omitempty"`
	BranchID   *uuid.UUID `json:"branch_id,omitempty"`
	Email      *string    `json:"email,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateDoctorDTO holds creation-time data for a roster entry.
type CreateDoctorDTO struct {
	FirstName  string
	LastName   string
	Speciality *string
	BranchID   *uuid.UUID
	Email      *string
	Phone      *string
}

// UpdateDoctorDTO captures the mutable roster fields; nil means unchanged.
type UpdateDoctorDTO struct {
	FirstName  *string
	LastName   *string
	Speciality *string
	BranchID   *uuid.UUID
	Email      *string
	Phone      *string
	Active     *bool
}

// FromModel maps the persisted doctor into a DTO.
func FromModel(m *models.Doctor) *DoctorDTO {
	if m == nil {
		return nil
	}
	return &DoctorDTO{
		ID:         m.ID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Speciality: m.Speciality,
		BranchID:   m.BranchID,
		Email:      m.Email,
		Phone:      m.Phone,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// Repository handles doctor persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to doctor operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, dto CreateDoctorDTO) (*models.Doctor, error) {
	doctor := &models.Doctor{
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Speciality: dto.Speciality,
		BranchID:   dto.BranchID,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Active:     true,
	}
	if err := r.db.WithContext(ctx).Create(doctor).Error; err != nil {
		return nil, err
	}
	return doctor, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// List returns doctors, optionally filtered to one branch.
func (r *Repository) List(ctx context.Context, branchID *uuid.UUID, activeOnly bool) ([]models.Doctor, error) {
	query := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC")
	if branchID != nil {
		query = query.Where("branch_id = ?", *branchID)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *Repository) Update(ctx context.Context, doctor *models.Doctor) error {
	if doctor == nil {
		return fmt.Errorf("doctor is required")
	}
	return r.db.WithContext(ctx).Save(doctor).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Doctor{}, "id = ?", id).Error
}

type doctorRepository interface {
	Create(ctx context.Context, dto CreateDoctorDTO) (*models.Doctor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	List(ctx context.Context, branchID *uuid.UUID, activeOnly bool) ([]models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes doctor roster operations.
type Service interface {
	Create(ctx context.Context, input CreateDoctorDTO) (*DoctorDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*DoctorDTO, error)
	List(ctx context.Context, branchID *uuid.UUID, activeOnly bool) ([]DoctorDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateDoctorDTO) (*DoctorDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo doctorRepository
}

// NewService builds a doctor service with the provided repository.
func NewService(repo doctorRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("doctor repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateDoctorDTO) (*DoctorDTO, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if input.FirstName == "" || input.LastName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "doctor name is required")
	}
	if input.Email != nil && !strings.Contains(*input.Email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
	}

	doctor, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create doctor")
	}
	return FromModel(doctor), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*DoctorDTO, error) {
	doctor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "doctor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find doctor")
	}
	return FromModel(doctor), nil
}

func (s *service) List(ctx context.Context, branchID *uuid.UUID, activeOnly bool) ([]DoctorDTO, error) {
	rows, err := s.repo.List(ctx, branchID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list doctors")
	}
	out := make([]DoctorDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateDoctorDTO) (*DoctorDTO, error) {
	doctor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "doctor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find doctor")
	}

	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name cannot be empty")
		}
		doctor.FirstName = name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last name cannot be empty")
		}
		doctor.LastName = name
	}
	if input.Speciality != nil {
		doctor.Speciality = input.Speciality
	}
	if input.BranchID != nil {
		doctor.BranchID = input.BranchID
	}
	if input.Email != nil {
		if !strings.Contains(*input.Email, "@") {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email")
		}
		doctor.Email = input.Email
	}
	if input.Phone != nil {
		doctor.Phone = input.Phone
	}
	if input.Active != nil {
		doctor.Active = *input.Active
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update doctor")
	}
	return FromModel(doctor), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "doctor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find doctor")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete doctor")
	}
	return nil
}
