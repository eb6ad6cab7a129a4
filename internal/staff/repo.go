package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
)

// Repository handles rotation staff and effective branch persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to rotation staff operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows staff listings.
type ListFilter struct {
	PositionID *uuid.UUID
	ZoneID     *uuid.UUID
	ActiveOnly bool
}

func (r *Repository) Create(ctx context.Context, dto CreateStaffDTO) (*models.RotationStaff, error) {
	staff := &models.RotationStaff{
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		PositionID: dto.PositionID,
		SkillLevel: dto.SkillLevel,
		ZoneID:     dto.ZoneID,
		Phone:      dto.Phone,
		Active:     true,
	}
	if err := r.db.WithContext(ctx).Create(staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.RotationStaff, error) {
	var staff models.RotationStaff
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.RotationStaff, error) {
	query := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC")
	if filter.PositionID != nil {
		query = query.Where("position_id = ?", *filter.PositionID)
	}
	if filter.ZoneID != nil {
		query = query.Where("zone_id = ?", *filter.ZoneID)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	var staff []models.RotationStaff
	if err := query.Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *Repository) Update(ctx context.Context, staff *models.RotationStaff) error {
	if staff == nil {
		return fmt.Errorf("staff is required")
	}
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.RotationStaff{}, "id = ?", id).Error
}

// ListEffectiveBranches returns the permission rows for one staff member.
func (r *Repository) ListEffectiveBranches(ctx context.Context, staffID uuid.UUID) ([]models.EffectiveBranch, error) {
	var rows []models.EffectiveBranch
	if err := r.db.WithContext(ctx).
		Where("rotation_staff_id = ?", staffID).
		Order("level ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListEffectiveForBranch returns the permission rows pointing at one branch,
// used to build the branch's candidate pool.
func (r *Repository) ListEffectiveForBranch(ctx context.Context, branchID uuid.UUID) ([]models.EffectiveBranch, error) {
	var rows []models.EffectiveBranch
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertEffectiveBranch creates or refreshes the (staff, branch) permission
// row, relying on the unique pair index for conflict detection.
func (r *Repository) UpsertEffectiveBranch(ctx context.Context, staffID uuid.UUID, dto SetEffectiveBranchDTO) (*models.EffectiveBranch, error) {
	row := &models.EffectiveBranch{
		RotationStaffID: staffID,
		BranchID:        dto.BranchID,
		Level:           dto.Level,
		CommuteMinutes:  dto.CommuteMinutes,
		TransitCount:    dto.TransitCount,
		TravelCost:      dto.TravelCost,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "rotation_staff_id"}, {Name: "branch_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"level", "commute_minutes", "transit_count", "travel_cost", "updated_at",
			}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteEffectiveBranch removes the (staff, branch) permission row.
func (r *Repository) DeleteEffectiveBranch(ctx context.Context, staffID, branchID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("rotation_staff_id = ? AND branch_id = ?", staffID, branchID).
		Delete(&models.EffectiveBranch{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
