package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medrota/clinicrota-backend/api/responses"
	"github.com/medrota/clinicrota-backend/api/validators"
	"github.com/medrota/clinicrota-backend/internal/branchstaff"
	"github.com/medrota/clinicrota-backend/pkg/logger"
)

type branchStaffCreateRequest struct {
	PositionID string     `json:"position_id" validate:"required"`
	FirstName  string     `json:"first_name" validate:"required,min=1"`
	LastName   string     `json:"last_name" validate:"required,min=1"`
	Phone      *string    `json:"phone,omitempty"`
	HiredAt    *time.Time `json:"hired_at,omitempty"`
}

type branchStaffUpdateRequest struct {
	PositionID *string    `json:"position_id,omitempty"`
	FirstName  *string    `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName   *string    `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Phone      *string    `json:"phone,omitempty"`
	HiredAt    *time.Time `json:"hired_at,omitempty"`
	Active     *bool      `json:"active,omitempty"`
}

// BranchStaffList returns the fixed roster of one branch.
func BranchStaffList(svc branchstaff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := validators.PathUUID(chi.URLParam(r, "branchID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		activeOnly, err := validators.ParseQueryBool(r, "active_only", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListByBranch(r.Context(), branchID, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func BranchStaffCreate(svc branchstaff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := validators.PathUUID(chi.URLParam(r, "branchID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload branchStaffCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		positionID, err := validators.PathUUID(payload.PositionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		member, err := svc.Create(r.Context(), branchstaff.CreateStaffDTO{
			BranchID:   branchID,
			PositionID: positionID,
			FirstName:  payload.FirstName,
			LastName:   payload.LastName,
			Phone:      payload.Phone,
			HiredAt:    payload.HiredAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, member)
	}
}

func BranchStaffUpdate(svc branchstaff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "memberID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload branchStaffUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		positionID, err := parseOptionalUUID(payload.PositionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		member, err := svc.Update(r.Context(), id, branchstaff.UpdateStaffDTO{
			PositionID: positionID,
			FirstName:  payload.FirstName,
			LastName:   payload.LastName,
			Phone:      payload.Phone,
			HiredAt:    payload.HiredAt,
			Active:     payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, member)
	}
}

func BranchStaffDelete(svc branchstaff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "memberID"))
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
