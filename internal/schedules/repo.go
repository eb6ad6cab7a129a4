package schedules

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

// Repository handles schedule entry persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to schedule operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find returns the entry for one (staff, date) cell, or gorm.ErrRecordNotFound.
func (r *Repository) Find(ctx context.Context, staffID uuid.UUID, date types.Date) (*models.ScheduleEntry, error) {
	var entry models.ScheduleEntry
	if err := r.db.WithContext(ctx).
		Where("rotation_staff_id = ? AND date = ?", staffID, date).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns entries matching the filter, ordered by date.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.ScheduleEntry, error) {
	query := r.db.WithContext(ctx).Order("date ASC")
	if filter.RotationStaffID != nil {
		query = query.Where("rotation_staff_id = ?", *filter.RotationStaffID)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	var entries []models.ScheduleEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Upsert creates or refreshes the entry for a (staff, date) cell, relying on
// the unique day index for conflict detection.
func (r *Repository) Upsert(ctx context.Context, dto SetEntryDTO) (*models.ScheduleEntry, error) {
	entry := &models.ScheduleEntry{
		RotationStaffID: dto.RotationStaffID,
		Date:            dto.Date,
		Status:          dto.Status,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rotation_staff_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(entry).Error
	if err != nil {
		return nil, err
	}
	return entry, nil
}
