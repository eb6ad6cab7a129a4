package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/medrota/clinicrota-backend/api/responses"
	"github.com/medrota/clinicrota-backend/api/validators"
	"github.com/medrota/clinicrota-backend/internal/staff"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
	"github.com/medrota/clinicrota-backend/pkg/logger"
)

type staffCreateRequest struct {
	FirstName  string  `json:"first_name" validate:"required,min=1"`
	LastName   string  `json:"last_name" validate:"required,min=1"`
	PositionID string  `json:"position_id" validate:"required"`
	SkillLevel string  `json:"skill_level" validate:"required"`
	ZoneID     *string `json:"zone_id,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

type staffUpdateRequest struct {
	FirstName  *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName   *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	PositionID *string `json:"position_id,omitempty"`
	SkillLevel *string `json:"skill_level,omitempty"`
	ZoneID     *string `json:"zone_id,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

type effectiveBranchRequest struct {
	BranchID       string           `json:"branch_id" validate:"required"`
	Level          int              `json:"level" validate:"required"`
	CommuteMinutes *int             `json:"commute_minutes,omitempty"`
	TransitCount   *int             `json:"transit_count,omitempty"`
	TravelCost     *decimal.Decimal `json:"travel_cost,omitempty"`
}

func StaffList(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		positionID, err := validators.ParseQueryUUID(r, "position_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		zoneID, err := validators.ParseQueryUUID(r, "zone_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		activeOnly, err := validators.ParseQueryBool(r, "active_only", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), staff.ListFilter{
			PositionID: positionID,
			ZoneID:     zoneID,
			ActiveOnly: activeOnly,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func StaffCreate(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload staffCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		positionID, err := validators.PathUUID(payload.PositionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		zoneID, err := parseOptionalUUID(payload.ZoneID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		skill, err := enums.ParseSkillLevel(payload.SkillLevel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid skill level"))
			return
		}

		member, err := svc.Create(r.Context(), staff.CreateStaffDTO{
			FirstName:  payload.FirstName,
			LastName:   payload.LastName,
			PositionID: positionID,
			SkillLevel: skill,
			ZoneID:     zoneID,
			Phone:      payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, member)
	}
}

func StaffGet(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "staffID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		member, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, member)
	}
}

func StaffUpdate(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "staffID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload staffUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		positionID, err := parseOptionalUUID(payload.PositionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		zoneID, err := parseOptionalUUID(payload.ZoneID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var skill *enums.SkillLevel
		if payload.SkillLevel != nil {
			parsed, err := enums.ParseSkillLevel(*payload.SkillLevel)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid skill level"))
				return
			}
			skill = &parsed
		}

		member, err := svc.Update(r.Context(), id, staff.UpdateStaffDTO{
			FirstName:  payload.FirstName,
			LastName:   payload.LastName,
			PositionID: positionID,
			SkillLevel: skill,
			ZoneID:     zoneID,
			Phone:      payload.Phone,
			Active:     payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, member)
	}
}

func StaffDelete(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "staffID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// EffectiveBranchList returns the branch permissions of one staff member.
func EffectiveBranchList(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staffID, err := validators.PathUUID(chi.URLParam(r, "staffID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListEffectiveBranches(r.Context(), staffID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// EffectiveBranchSet creates or updates a staff/branch permission pairing.
func EffectiveBranchSet(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staffID, err := validators.PathUUID(chi.URLParam(r, "staffID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload effectiveBranchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		branchID, err := validators.PathUUID(payload.BranchID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		level, err := enums.ParseBranchLevel(payload.Level)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid branch level"))
			return
		}

		row, err := svc.SetEffectiveBranch(r.Context(), staffID, staff.SetEffectiveBranchDTO{
			BranchID:       branchID,
			Level:          level,
			CommuteMinutes: payload.CommuteMinutes,
			TransitCount:   payload.TransitCount,
			TravelCost:     payload.TravelCost,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// EffectiveBranchRemove deletes a staff/branch permission pairing.
func EffectiveBranchRemove(svc staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staffID, err := validators.PathUUID(chi.URLParam(r, "staffID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		branchID, err := validators.PathUUID(chi.URLParam(r, "branchID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RemoveEffectiveBranch(r.Context(), staffID, branchID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
