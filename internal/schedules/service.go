package schedules

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/medrota/clinicrota-backend/internal/rotation"
	"github.com/medrota/clinicrota-backend/pkg/db/models"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
	"github.com/medrota/clinicrota-backend/pkg/logger"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

type scheduleRepository interface {
	Find(ctx context.Context, staffID uuid.UUID, date types.Date) (*models.ScheduleEntry, error)
	List(ctx context.Context, filter ListFilter) ([]models.ScheduleEntry, error)
	Upsert(ctx context.Context, dto SetEntryDTO) (*models.ScheduleEntry, error)
}

// Service exposes the personal availability sheet.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]EntryDTO, error)
	Set(ctx context.Context, input SetEntryDTO) (*EntryDTO, error)
	// CycleDay advances one sheet cell through the default-off rotation
	// (off -> working -> leave -> sick_leave -> off). Absent cells count
	// as off, so the first interaction yields working. Past cells are
	// read-only and report a noop outcome.
	CycleDay(ctx context.Context, staffID uuid.UUID, date types.Date) (*CycleResult, error)
}

type service struct {
	repo  scheduleRepository
	logg  *logger.Logger
	today func() types.Date
}

// Option configures the schedules service.
type Option func(*service)

// WithToday overrides the clock used for the past-date guard.
func WithToday(today func() types.Date) Option {
	return func(s *service) {
		if today != nil {
			s.today = today
		}
	}
}

// NewService builds a schedules service with the provided repository.
func NewService(repo scheduleRepository, logg *logger.Logger, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("schedule repository required")
	}
	s := &service{
		repo:  repo,
		logg:  logg,
		today: func() types.Date { return types.Today(nil) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]EntryDTO, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list schedule entries")
	}
	out := make([]EntryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Set(ctx context.Context, input SetEntryDTO) (*EntryDTO, error) {
	if input.RotationStaffID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "staff id is required")
	}
	if input.Date.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid schedule status")
	}
	if input.Date.Before(s.today()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "past dates are immutable")
	}

	entry, err := s.repo.Upsert(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert schedule entry")
	}
	return FromModel(entry), nil
}

func (s *service) CycleDay(ctx context.Context, staffID uuid.UUID, date types.Date) (*CycleResult, error) {
	if staffID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "staff id is required")
	}
	if date.Before(s.today()) {
		// Historical cells are read-only; hand the current state back.
		existing, err := s.repo.Find(ctx, staffID, date)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &CycleResult{Outcome: CycleOutcomeNoop, NoopReason: "past dates are read-only"}, nil
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find schedule entry")
		}
		return &CycleResult{
			Outcome:    CycleOutcomeNoop,
			NoopReason: "past dates are read-only",
			Entry:      FromModel(existing),
		}, nil
	}

	var current *enums.ScheduleStatus
	existing, err := s.repo.Find(ctx, staffID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find schedule entry")
	}
	if existing != nil {
		current = &existing.Status
	}

	next := rotation.DefaultOffCycle(current)
	entry, err := s.repo.Upsert(ctx, SetEntryDTO{
		RotationStaffID: staffID,
		Date:            date,
		Status:          next,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert schedule entry")
	}
	outcome := CycleOutcomeUpdated
	if existing == nil {
		outcome = CycleOutcomeCreated
	}
	return &CycleResult{Outcome: outcome, Entry: FromModel(entry)}, nil
}
