package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medrota/clinicrota-backend/api/responses"
	"github.com/medrota/clinicrota-backend/api/validators"
	"github.com/medrota/clinicrota-backend/internal/doctors"
	"github.com/medrota/clinicrota-backend/pkg/logger"
)

type doctorCreateRequest struct {
	FirstName  string  `json:"first_name" validate:"required,min=1"`
	LastName   string  `json:"last_name" validate:"required,min=1"`
	Speciality *string `json:"speciality,omitempty"`
	BranchID   *string `json:"branch_id,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
}

type doctorUpdateRequest struct {
	FirstName  *string `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName   *string `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Speciality *string `json:"speciality,omitempty"`
	BranchID   *string `json:"branch_id,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

func DoctorList(svc doctors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := validators.ParseQueryUUID(r, "branch_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		activeOnly, err := validators.ParseQueryBool(r, "active_only", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.List(r.Context(), branchID, activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func DoctorCreate(svc doctors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload doctorCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		branchID, err := parseOptionalUUID(payload.BranchID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		doctor, err := svc.Create(r.Context(), doctors.CreateDoctorDTO{
			FirstName:  payload.FirstName,
			LastName:   payload.LastName,
			Speciality: payload.Speciality,
			BranchID:   branchID,
			Email:      payload.Email,
			Phone:      payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, doctor)
	}
}

func DoctorGet(svc doctors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "doctorID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		doctor, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, doctor)
	}
}

func DoctorUpdate(svc doctors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "doctorID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload doctorUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		branchID, err := parseOptionalUUID(payload.BranchID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		doctor, err := svc.Update(r.Context(), id, doctors.UpdateDoctorDTO{
			FirstName:  payload.FirstName,
			LastName:   payload.LastName,
			Speciality: payload.Speciality,
			BranchID:   branchID,
			Email:      payload.Email,
			Phone:      payload.Phone,
			Active:     payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, doctor)
	}
}

func DoctorDelete(svc doctors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "doctorID"))
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
