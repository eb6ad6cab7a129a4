package assignments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/internal/rotation"
	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

// Repository handles rotation assignment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to assignment operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns assignments matching the filter, ordered by date.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.RotationAssignment, error) {
	query := r.db.WithContext(ctx).Order("date ASC")
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.RotationStaffID != nil {
		query = query.Where("rotation_staff_id = ?", *filter.RotationStaffID)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	var assignments []models.RotationAssignment
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListForStaffDate returns the staff member's assignments on one day across
// all branches. The unique day index keeps this to at most one row, but the
// exclusivity guard treats it as a set.
func (r *Repository) ListForStaffDate(ctx context.Context, staffID uuid.UUID, date types.Date) ([]models.RotationAssignment, error) {
	var assignments []models.RotationAssignment
	if err := r.db.WithContext(ctx).
		Where("rotation_staff_id = ? AND date = ?", staffID, date).
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindByID loads an assignment by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RotationAssignment, error) {
	var assignment models.RotationAssignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Create persists the planned assignment.
func (r *Repository) Create(ctx context.Context, spec rotation.CreateSpec) (*models.RotationAssignment, error) {
	assignment := &models.RotationAssignment{
		RotationStaffID: spec.StaffID,
		BranchID:        spec.BranchID,
		Date:            spec.Date,
		Level:           spec.Level,
		ScheduleStatus:  spec.Status,
	}
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

// UpdateStatus moves an existing assignment to the given status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.ScheduleStatus) (*models.RotationAssignment, error) {
	var assignment models.RotationAssignment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error; err != nil {
		return nil, err
	}
	assignment.ScheduleStatus = status
	if err := r.db.WithContext(ctx).Save(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Delete removes the assignment row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RotationAssignment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
