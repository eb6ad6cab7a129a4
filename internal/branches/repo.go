package branches

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
)

// Repository handles branch persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to branch operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new branch row.
func (r *Repository) Create(ctx context.Context, dto CreateBranchDTO) (*models.Branch, error) {
	branch := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(branch).Error; err != nil {
		return nil, err
	}
	return branch, nil
}

// FindByID loads a branch by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

// List returns branches, optionally restricted to active ones.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Branch, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var branches []models.Branch
	if err := query.Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

// Update saves the provided branch.
func (r *Repository) Update(ctx context.Context, branch *models.Branch) error {
	if branch == nil {
		return fmt.Errorf("branch is required")
	}
	return r.db.WithContext(ctx).Save(branch).Error
}

// Delete removes the branch row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Branch{}, "id = ?", id).Error
}
