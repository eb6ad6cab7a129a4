package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/internal/assignments"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	pkgerrors "github.com/medrota/clinicrota-backend/pkg/errors"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

type stubAssignmentsService struct {
	listFilter  assignments.ListFilter
	cycleInput  assignments.CellInput
	assignInput assignments.AssignInput
	statusID    uuid.UUID
	status      enums.ScheduleStatus
	unassignID  uuid.UUID

	result *assignments.MutationResult
	err    error
}

func (s *stubAssignmentsService) List(_ context.Context, filter assignments.ListFilter) ([]assignments.AssignmentDTO, error) {
	s.listFilter = filter
	return nil, s.err
}

func (s *stubAssignmentsService) CycleCell(_ context.Context, input assignments.CellInput) (*assignments.MutationResult, error) {
	s.cycleInput = input
	return s.result, s.err
}

func (s *stubAssignmentsService) Assign(_ context.Context, input assignments.AssignInput) (*assignments.MutationResult, error) {
	s.assignInput = input
	return s.result, s.err
}

func (s *stubAssignmentsService) SetStatus(_ context.Context, id uuid.UUID, status enums.ScheduleStatus) (*assignments.MutationResult, error) {
	s.statusID = id
	s.status = status
	return s.result, s.err
}

func (s *stubAssignmentsService) Unassign(_ context.Context, id uuid.UUID) (*assignments.MutationResult, error) {
	s.unassignID = id
	return s.result, s.err
}

func (s *stubAssignmentsService) EligibleStaff(context.Context, uuid.UUID, types.Date, *uuid.UUID) ([]assignments.CandidateDTO, error) {
	return nil, s.err
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeErrorEnvelope(t *testing.T, body *httptest.ResponseRecorder) types.ErrorEnvelope {
	t.Helper()
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(body.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return envelope
}

func TestCycleCellPassesParsedInput(t *testing.T) {
	svc := &stubAssignmentsService{result: &assignments.MutationResult{Outcome: assignments.OutcomeCreated}}
	staffID := uuid.New()
	branchID := uuid.New()

	body := `{"rotation_staff_id":"` + staffID.String() + `","branch_id":"` + branchID.String() + `","date":"2025-06-03"}`
	req := httptest.NewRequest(http.MethodPost, "/rotation/cells/cycle", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	CycleCell(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.cycleInput.RotationStaffID != staffID || svc.cycleInput.BranchID != branchID {
		t.Fatalf("unexpected input: %+v", svc.cycleInput)
	}
	if got := svc.cycleInput.Date.String(); got != "2025-06-03" {
		t.Fatalf("expected date 2025-06-03, got %s", got)
	}
}

func TestCycleCellRejectsBadDate(t *testing.T) {
	svc := &stubAssignmentsService{}
	body := `{"rotation_staff_id":"` + uuid.NewString() + `","branch_id":"` + uuid.NewString() + `","date":"03/06/2025"}`
	req := httptest.NewRequest(http.MethodPost, "/rotation/cells/cycle", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	CycleCell(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	envelope := decodeErrorEnvelope(t, rec)
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("expected validation code, got %s", envelope.Error.Code)
	}
}

func TestAssignSurfacesExclusivityDetails(t *testing.T) {
	conflicting := uuid.New()
	svc := &stubAssignmentsService{
		err: pkgerrors.New(pkgerrors.CodeExclusivity, "staff already assigned elsewhere").
			WithDetails(map[string]any{"conflicting_branch_id": conflicting.String()}),
	}

	body := `{"rotation_staff_id":"` + uuid.NewString() + `","branch_id":"` + uuid.NewString() + `","date":"2025-06-03","status":"working"}`
	req := httptest.NewRequest(http.MethodPost, "/rotation/assignments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	Assign(svc, nil)(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	envelope := decodeErrorEnvelope(t, rec)
	details, ok := envelope.Error.Details.(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", envelope.Error.Details)
	}
	if details["conflicting_branch_id"] != conflicting.String() {
		t.Fatalf("unexpected details: %v", details)
	}
	if svc.assignInput.Status != enums.ScheduleStatusWorking {
		t.Fatalf("expected working status, got %s", svc.assignInput.Status)
	}
}

func TestAssignRejectsUnknownStatus(t *testing.T) {
	svc := &stubAssignmentsService{}
	body := `{"rotation_staff_id":"` + uuid.NewString() + `","branch_id":"` + uuid.NewString() + `","date":"2025-06-03","status":"vacation"}`
	req := httptest.NewRequest(http.MethodPost, "/rotation/assignments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	Assign(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAssignmentSetStatusParsesPathAndBody(t *testing.T) {
	svc := &stubAssignmentsService{result: &assignments.MutationResult{Outcome: assignments.OutcomeUpdated}}
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPatch, "/rotation/assignments/"+id.String(), strings.NewReader(`{"status":"sick_leave"}`))
	req.Header.Set("Content-Type", "application/json")
	req = withURLParam(req, "assignmentID", id.String())
	rec := httptest.NewRecorder()

	AssignmentSetStatus(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.statusID != id {
		t.Fatalf("expected id %s, got %s", id, svc.statusID)
	}
	if svc.status != enums.ScheduleStatusSickLeave {
		t.Fatalf("expected sick_leave, got %s", svc.status)
	}
}

func TestAssignmentDeleteRejectsBadID(t *testing.T) {
	svc := &stubAssignmentsService{}
	req := httptest.NewRequest(http.MethodDelete, "/rotation/assignments/not-a-uuid", nil)
	req = withURLParam(req, "assignmentID", "not-a-uuid")
	rec := httptest.NewRecorder()

	AssignmentDelete(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.unassignID != uuid.Nil {
		t.Fatal("service should not be called with an invalid id")
	}
}

func TestEligibleStaffRequiresDate(t *testing.T) {
	svc := &stubAssignmentsService{}
	branchID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/rotation/branches/"+branchID.String()+"/eligible-staff", nil)
	req = withURLParam(req, "branchID", branchID.String())
	rec := httptest.NewRecorder()

	EligibleStaff(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAssignmentListForwardsFilters(t *testing.T) {
	svc := &stubAssignmentsService{}
	branchID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/rotation/assignments?branch_id="+branchID.String()+"&from=2025-06-01&to=2025-06-30", nil)
	rec := httptest.NewRecorder()

	AssignmentList(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.listFilter.BranchID == nil || *svc.listFilter.BranchID != branchID {
		t.Fatalf("branch filter not forwarded: %+v", svc.listFilter)
	}
	if svc.listFilter.From == nil || svc.listFilter.From.String() != "2025-06-01" {
		t.Fatalf("from filter not forwarded: %+v", svc.listFilter)
	}
	if svc.listFilter.To == nil || svc.listFilter.To.String() != "2025-06-30" {
		t.Fatalf("to filter not forwarded: %+v", svc.listFilter)
	}
}
