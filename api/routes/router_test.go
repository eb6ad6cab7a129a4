package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medrota/clinicrota-backend/internal/assignments"
	"github.com/medrota/clinicrota-backend/internal/auth"
	"github.com/medrota/clinicrota-backend/internal/branches"
	"github.com/medrota/clinicrota-backend/internal/branchstaff"
	"github.com/medrota/clinicrota-backend/internal/doctors"
	"github.com/medrota/clinicrota-backend/internal/positions"
	"github.com/medrota/clinicrota-backend/internal/schedules"
	"github.com/medrota/clinicrota-backend/internal/staff"
	"github.com/medrota/clinicrota-backend/internal/users"
	pkgauth "github.com/medrota/clinicrota-backend/pkg/auth"
	"github.com/medrota/clinicrota-backend/pkg/auth/session"
	"github.com/medrota/clinicrota-backend/pkg/config"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	"github.com/medrota/clinicrota-backend/pkg/logger"
	"github.com/medrota/clinicrota-backend/pkg/pagination"
	"github.com/medrota/clinicrota-backend/pkg/types"
)

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(context.Context, string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{AccessToken: "a", RefreshToken: "r"}, nil
}

func (stubAuthService) Refresh(context.Context, auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return &auth.RefreshResponse{}, nil
}

func (stubAuthService) Logout(context.Context, string) error {
	return nil
}

type stubUserService struct{}

func (stubUserService) Create(context.Context, users.CreateInput) (*users.UserDTO, string, error) {
	return &users.UserDTO{}, "temp", nil
}

func (stubUserService) Get(context.Context, uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

func (stubUserService) List(context.Context, pagination.Params) (*users.UserList, error) {
	return &users.UserList{}, nil
}

func (stubUserService) Update(context.Context, uuid.UUID, users.UpdateUserDTO) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

func (stubUserService) ResetPassword(context.Context, uuid.UUID) (string, error) {
	return "temp", nil
}

type stubBranchService struct{}

func (stubBranchService) Create(context.Context, branches.CreateBranchDTO) (*branches.BranchDTO, error) {
	return &branches.BranchDTO{}, nil
}

func (stubBranchService) GetByID(context.Context, uuid.UUID) (*branches.BranchDTO, error) {
	return &branches.BranchDTO{}, nil
}

func (stubBranchService) List(context.Context, bool) ([]branches.BranchDTO, error) {
	return nil, nil
}

func (stubBranchService) Update(context.Context, uuid.UUID, branches.UpdateBranchDTO) (*branches.BranchDTO, error) {
	return &branches.BranchDTO{}, nil
}

func (stubBranchService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubPositionService struct{}

func (stubPositionService) Create(context.Context, positions.CreatePositionDTO) (*positions.PositionDTO, error) {
	return &positions.PositionDTO{}, nil
}

func (stubPositionService) GetByID(context.Context, uuid.UUID) (*positions.PositionDTO, error) {
	return &positions.PositionDTO{}, nil
}

func (stubPositionService) List(context.Context) ([]positions.PositionDTO, error) {
	return nil, nil
}

func (stubPositionService) Update(context.Context, uuid.UUID, positions.UpdatePositionDTO) (*positions.PositionDTO, error) {
	return &positions.PositionDTO{}, nil
}

func (stubPositionService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubDoctorService struct{}

func (stubDoctorService) Create(context.Context, doctors.CreateDoctorDTO) (*doctors.DoctorDTO, error) {
	return &doctors.DoctorDTO{}, nil
}

func (stubDoctorService) GetByID(context.Context, uuid.UUID) (*doctors.DoctorDTO, error) {
	return &doctors.DoctorDTO{}, nil
}

func (stubDoctorService) List(context.Context, *uuid.UUID, bool) ([]doctors.DoctorDTO, error) {
	return nil, nil
}

func (stubDoctorService) Update(context.Context, uuid.UUID, doctors.UpdateDoctorDTO) (*doctors.DoctorDTO, error) {
	return &doctors.DoctorDTO{}, nil
}

func (stubDoctorService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubBranchStaffService struct{}

func (stubBranchStaffService) Create(context.Context, branchstaff.CreateStaffDTO) (*branchstaff.StaffDTO, error) {
	return &branchstaff.StaffDTO{}, nil
}

func (stubBranchStaffService) GetByID(context.Context, uuid.UUID) (*branchstaff.StaffDTO, error) {
	return &branchstaff.StaffDTO{}, nil
}

func (stubBranchStaffService) ListByBranch(context.Context, uuid.UUID, bool) ([]branchstaff.StaffDTO, error) {
	return nil, nil
}

func (stubBranchStaffService) Update(context.Context, uuid.UUID, branchstaff.UpdateStaffDTO) (*branchstaff.StaffDTO, error) {
	return &branchstaff.StaffDTO{}, nil
}

func (stubBranchStaffService) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubStaffService struct{}

func (stubStaffService) Create(context.Context, staff.CreateStaffDTO) (*staff.StaffDTO, error) {
	return &staff.StaffDTO{}, nil
}

func (stubStaffService) GetByID(context.Context, uuid.UUID) (*staff.StaffDTO, error) {
	return &staff.StaffDTO{}, nil
}

func (stubStaffService) List(context.Context, staff.ListFilter) ([]staff.StaffDTO, error) {
	return nil, nil
}

func (stubStaffService) Update(context.Context, uuid.UUID, staff.UpdateStaffDTO) (*staff.StaffDTO, error) {
	return &staff.StaffDTO{}, nil
}

func (stubStaffService) Delete(context.Context, uuid.UUID) error {
	return nil
}

func (stubStaffService) ListEffectiveBranches(context.Context, uuid.UUID) ([]staff.EffectiveBranchDTO, error) {
	return nil, nil
}

func (stubStaffService) SetEffectiveBranch(context.Context, uuid.UUID, staff.SetEffectiveBranchDTO) (*staff.EffectiveBranchDTO, error) {
	return &staff.EffectiveBranchDTO{}, nil
}

func (stubStaffService) RemoveEffectiveBranch(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubScheduleService struct{}

func (stubScheduleService) List(context.Context, schedules.ListFilter) ([]schedules.EntryDTO, error) {
	return nil, nil
}

func (stubScheduleService) Set(context.Context, schedules.SetEntryDTO) (*schedules.EntryDTO, error) {
	return &schedules.EntryDTO{}, nil
}

func (stubScheduleService) CycleDay(context.Context, uuid.UUID, types.Date) (*schedules.CycleResult, error) {
	return &schedules.CycleResult{Outcome: schedules.CycleOutcomeCreated, Entry: &schedules.EntryDTO{}}, nil
}

type stubAssignmentService struct{}

func (stubAssignmentService) List(context.Context, assignments.ListFilter) ([]assignments.AssignmentDTO, error) {
	return nil, nil
}

func (stubAssignmentService) CycleCell(context.Context, assignments.CellInput) (*assignments.MutationResult, error) {
	return &assignments.MutationResult{Outcome: assignments.OutcomeCreated}, nil
}

func (stubAssignmentService) Assign(context.Context, assignments.AssignInput) (*assignments.MutationResult, error) {
	return &assignments.MutationResult{Outcome: assignments.OutcomeCreated}, nil
}

func (stubAssignmentService) SetStatus(context.Context, uuid.UUID, enums.ScheduleStatus) (*assignments.MutationResult, error) {
	return &assignments.MutationResult{Outcome: assignments.OutcomeUpdated}, nil
}

func (stubAssignmentService) Unassign(context.Context, uuid.UUID) (*assignments.MutationResult, error) {
	return &assignments.MutationResult{Outcome: assignments.OutcomeDeleted}, nil
}

func (stubAssignmentService) EligibleStaff(context.Context, uuid.UUID, types.Date, *uuid.UUID) ([]assignments.CandidateDTO, error) {
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:             cfg,
		Logger:             logg,
		SessionChecker:     stubSessionChecker{},
		AuthService:        stubAuthService{},
		UserService:        stubUserService{},
		BranchService:      stubBranchService{},
		PositionService:    stubPositionService{},
		DoctorService:      stubDoctorService{},
		BranchStaffService: stubBranchStaffService{},
		StaffService:       stubStaffService{},
		ScheduleService:    stubScheduleService{},
		AssignmentService:  stubAssignmentService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPrivatePingSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleViewer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for private ping got %d", resp.Code)
	}
}

func TestCalendarWritesRequireManagerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := `{"rotation_staff_id":"` + uuid.NewString() + `","branch_id":"` + uuid.NewString() + `","date":"2025-06-03"}`

	viewer := httptest.NewRequest(http.MethodPost, "/api/v1/rotation/cells/cycle", strings.NewReader(body))
	viewer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleViewer))
	viewer.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, viewer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer write got %d", resp.Code)
	}

	manager := httptest.NewRequest(http.MethodPost, "/api/v1/rotation/cells/cycle", strings.NewReader(body))
	manager.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleManager))
	manager.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, manager)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager write got %d", resp.Code)
	}
}

func TestCalendarReadsAllowViewerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rotation/assignments", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleViewer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for viewer read got %d", resp.Code)
	}
}

func TestUsersGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	manager := httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil)
	manager.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleManager))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, manager)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestLoginRouteIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"email":"admin@clinic.test","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login got %d", resp.Code)
	}
}
