package controllers

import (
	"net/http"

	"github.com/medrota/clinicrota-backend/api/responses"
	"github.com/medrota/clinicrota-backend/api/validators"
	"github.com/medrota/clinicrota-backend/internal/schedules"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
	"github.com/medrota/clinicrota-backend/pkg/logger"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

type scheduleSetRequest struct {
	RotationStaffID string `json:"rotation_staff_id" validate:"required"`
	Date            string `json:"date" validate:"required"`
	Status          string `json:"status" validate:"required"`
}

type scheduleCycleRequest struct {
	RotationStaffID string `json:"rotation_staff_id" validate:"required"`
	Date            string `json:"date" validate:"required"`
}

func parseBodyDate(raw string) (types.Date, error) {
	date, err := types.ParseDate(raw)
	if err != nil {
		return types.Date{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "date must be YYYY-MM-DD")
	}
	return date, nil
}

// ScheduleList returns work schedule entries filtered by staff and range.
func ScheduleList(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staffID, err := validators.ParseQueryUUID(r, "rotation_staff_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), schedules.ListFilter{
			RotationStaffID: staffID,
			From:            from,
			To:              to,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ScheduleSet writes one sheet cell to an explicit status.
func ScheduleSet(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload scheduleSetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		staffID, err := validators.PathUUID(payload.RotationStaffID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date, err := parseBodyDate(payload.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseScheduleStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		entry, err := svc.Set(r.Context(), schedules.SetEntryDTO{
			RotationStaffID: staffID,
			Date:            date,
			Status:          status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// ScheduleCycle advances one sheet cell through the default-off rotation.
func ScheduleCycle(svc schedules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload scheduleCycleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		staffID, err := validators.PathUUID(payload.RotationStaffID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date, err := parseBodyDate(payload.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CycleDay(r.Context(), staffID, date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
