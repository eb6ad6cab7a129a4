package positions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/pkg/db"
	"github.com/medrota/clinicrota-backend/pkg/db/models"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
)

// PositionDTO exposes position catalog entries in API responses.
type PositionDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePositionDTO holds creation-time data for a catalog entry.
type CreatePositionDTO struct {
	Title       string
	Description *string
}

// UpdatePositionDTO captures the mutable position fields; nil means unchanged.
type UpdatePositionDTO struct {
	Title       *string
	Description *string
}

// FromModel maps the persisted position into a DTO.
func FromModel(m *models.Position) *PositionDTO {
	if m == nil {
		return nil
	}
	return &PositionDTO{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Repository handles position persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to position operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, dto CreatePositionDTO) (*models.Position, error) {
	position := &models.Position{Title: dto.Title, Description: dto.Description}
	if err := r.db.WithContext(ctx).Create(position).Error; err != nil {
		return nil, err
	}
	return position, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Position, error) {
	var position models.Position
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&position).Error; err != nil {
		return nil, err
	}
	return &position, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *Repository) Update(ctx context.Context, position *models.Position) error {
	if position == nil {
		return fmt.Errorf("position is required")
	}
	return r.db.WithContext(ctx).Save(position).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Position{}, "id = ?", id).Error
}

type positionRepository interface {
	Create(ctx context.Context, dto CreatePositionDTO) (*models.Position, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Position, error)
	List(ctx context.Context) ([]models.Position, error)
	Update(ctx context.Context, position *models.Position) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes position catalog operations.
type Service interface {
	Create(ctx context.Context, input CreatePositionDTO) (*PositionDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PositionDTO, error)
	List(ctx context.Context) ([]PositionDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePositionDTO) (*PositionDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo positionRepository
}

// NewService builds a position service with the provided repository.
func NewService(repo positionRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("position repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreatePositionDTO) (*PositionDTO, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "position title is required")
	}

	position, err := s.repo.Create(ctx, input)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "position title already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create position")
	}
	return FromModel(position), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PositionDTO, error) {
	position, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "position not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find position")
	}
	return FromModel(position), nil
}

func (s *service) List(ctx context.Context) ([]PositionDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list positions")
	}
	out := make([]PositionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePositionDTO) (*PositionDTO, error) {
	position, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "position not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find position")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "position title cannot be empty")
		}
		position.Title = title
	}
	if input.Description != nil {
		position.Description = input.Description
	}

	if err := s.repo.Update(ctx, position); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "position title already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update position")
	}
	return FromModel(position), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "position not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find position")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete position")
	}
	return nil
}
