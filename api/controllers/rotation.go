package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medrota/clinicrota-backend/api/responses"
	"github.com/medrota/clinicrota-backend/api/validators"
	"github.com/medrota/clinicrota-backend/internal/assignments"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
	"github.com/medrota/clinicrota-backend/pkg/logger"
)

type cycleCellRequest struct {
	RotationStaffID string `json:"rotation_staff_id" validate:"required"`
	BranchID        string `json:"branch_id" validate:"required"`
	Date            string `json:"date" validate:"required"`
}

type assignRequest struct {
	RotationStaffID string `json:"rotation_staff_id" validate:"required"`
	BranchID        string `json:"branch_id" validate:"required"`
	Date            string `json:"date" validate:"required"`
	Status          string `json:"status,omitempty"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignmentList returns rotation assignments for the calendar feed.
func AssignmentList(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := validators.ParseQueryUUID(r, "branch_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
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
		list, err := svc.List(r.Context(), assignments.ListFilter{
			BranchID:        branchID,
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

// CycleCell is the primary-click interaction on a calendar cell.
func CycleCell(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cycleCellRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := parseCellInput(payload.RotationStaffID, payload.BranchID, payload.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CycleCell(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// Assign creates an assignment with an explicit status.
func Assign(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload assignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := parseCellInput(payload.RotationStaffID, payload.BranchID, payload.Date)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status enums.ScheduleStatus
		if payload.Status != "" {
			status, err = enums.ParseScheduleStatus(payload.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
		}

		result, err := svc.Assign(r.Context(), assignments.AssignInput{
			RotationStaffID: input.RotationStaffID,
			BranchID:        input.BranchID,
			Date:            input.Date,
			Status:          status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AssignmentSetStatus updates an assignment to an explicit status; off
// removes the assignment.
func AssignmentSetStatus(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "assignmentID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload setStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseScheduleStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		result, err := svc.SetStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AssignmentDelete unassigns a staff member from a cell.
func AssignmentDelete(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.PathUUID(chi.URLParam(r, "assignmentID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Unassign(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// EligibleStaff lists candidates assignable to a branch on a date.
func EligibleStaff(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branchID, err := validators.PathUUID(chi.URLParam(r, "branchID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		date, err := validators.RequireQueryDate(r, "date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		positionID, err := validators.ParseQueryUUID(r, "position_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.EligibleStaff(r.Context(), branchID, date, positionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func parseCellInput(staffRaw, branchRaw, dateRaw string) (assignments.CellInput, error) {
	staffID, err := validators.PathUUID(staffRaw)
	if err != nil {
		return assignments.CellInput{}, err
	}
	branchID, err := validators.PathUUID(branchRaw)
	if err != nil {
		return assignments.CellInput{}, err
	}
	date, err := parseBodyDate(dateRaw)
	if err != nil {
		return assignments.CellInput{}, err
	}
	return assignments.CellInput{
		RotationStaffID: staffID,
		BranchID:        branchID,
		Date:            date,
	}, nil
}
