package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medrota/clinicrota-backend/api/controllers"
	"github.com/medrota/clinicrota-backend/api/middleware"
	"github.com/medrota/clinicrota-backend/internal/assignments"
	"github.com/medrota/clinicrota-backend/internal/auth"
	"github.com/medrota/clinicrota-backend/internal/branches"
	"github.com/medrota/clinicrota-backend/internal/branchstaff"
	"github.com/medrota/clinicrota-backend/internal/doctors"
	"github.com/medrota/clinicrota-backend/internal/positions"
	"github.com/medrota/clinicrota-backend/internal/schedules"
	"github.com/medrota/clinicrota-backend/internal/staff"
	"github.com/medrota/clinicrota-backend/internal/users"
	"github.com/medrota/clinicrota-backend/pkg/auth/session"
	"github.com/medrota/clinicrota-backend/pkg/config"
	"github.com/medrota/clinicrota-backend/pkg/db"
	"github.com/medrota/clinicrota-backend/pkg/enums"
	"github.com/medrota/clinicrota-backend/pkg/logger"
	"github.com/medrota/clinicrota-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	Registry       *prometheus.Registry

	AuthService        auth.Service
	UserService        users.Service
	BranchService      branches.Service
	PositionService    positions.Service
	DoctorService      doctors.Service
	BranchStaffService branchstaff.Service
	StaffService       staff.Service
	ScheduleService    schedules.Service
	AssignmentService  assignments.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	refreshPolicy := middleware.NewAuthRateLimitPolicy(
		"refresh",
		cfg.AuthRateLimit.RefreshWindow,
		cfg.AuthRateLimit.RefreshIPLimit,
		0,
	)

	// A concrete nil *redis.Client must stay nil once it crosses an
	// interface boundary, otherwise the nil checks downstream never fire.
	var cachePinger redis.Pinger
	var idemStore redis.IdempotencyStore
	if deps.Redis != nil {
		cachePinger = deps.Redis
		idemStore = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cachePinger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		if deps.Redis != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.Login(deps.AuthService, logg))
			r.With(middleware.AuthRateLimit(refreshPolicy, deps.Redis, logg)).Post("/refresh", controllers.RefreshSession(deps.AuthService, logg))
		} else {
			r.Post("/login", controllers.Login(deps.AuthService, logg))
			r.Post("/refresh", controllers.RefreshSession(deps.AuthService, logg))
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/ping", controllers.PrivatePing())
		r.Post("/auth/logout", controllers.Logout(deps.AuthService, logg))

		manager := middleware.RequireRole(enums.UserRoleManager, logg)

		r.Route("/branches", func(r chi.Router) {
			r.Get("/", controllers.BranchList(deps.BranchService, logg))
			r.With(manager).Post("/", controllers.BranchCreate(deps.BranchService, logg))
			r.Get("/{branchID}", controllers.BranchGet(deps.BranchService, logg))
			r.With(manager).Patch("/{branchID}", controllers.BranchUpdate(deps.BranchService, logg))
			r.With(manager).Delete("/{branchID}", controllers.BranchDelete(deps.BranchService, logg))

			r.Route("/{branchID}/staff", func(r chi.Router) {
				r.Get("/", controllers.BranchStaffList(deps.BranchStaffService, logg))
				r.With(manager).Post("/", controllers.BranchStaffCreate(deps.BranchStaffService, logg))
				r.With(manager).Patch("/{memberID}", controllers.BranchStaffUpdate(deps.BranchStaffService, logg))
				r.With(manager).Delete("/{memberID}", controllers.BranchStaffDelete(deps.BranchStaffService, logg))
			})
		})

		r.Route("/positions", func(r chi.Router) {
			r.Get("/", controllers.PositionList(deps.PositionService, logg))
			r.With(manager).Post("/", controllers.PositionCreate(deps.PositionService, logg))
			r.Get("/{positionID}", controllers.PositionGet(deps.PositionService, logg))
			r.With(manager).Patch("/{positionID}", controllers.PositionUpdate(deps.PositionService, logg))
			r.With(manager).Delete("/{positionID}", controllers.PositionDelete(deps.PositionService, logg))
		})

		r.Route("/doctors", func(r chi.Router) {
			r.Get("/", controllers.DoctorList(deps.DoctorService, logg))
			r.With(manager).Post("/", controllers.DoctorCreate(deps.DoctorService, logg))
			r.Get("/{doctorID}", controllers.DoctorGet(deps.DoctorService, logg))
			r.With(manager).Patch("/{doctorID}", controllers.DoctorUpdate(deps.DoctorService, logg))
			r.With(manager).Delete("/{doctorID}", controllers.DoctorDelete(deps.DoctorService, logg))
		})

		r.Route("/rotation-staff", func(r chi.Router) {
			r.Get("/", controllers.StaffList(deps.StaffService, logg))
			r.With(manager).Post("/", controllers.StaffCreate(deps.StaffService, logg))
			r.Get("/{staffID}", controllers.StaffGet(deps.StaffService, logg))
			r.With(manager).Patch("/{staffID}", controllers.StaffUpdate(deps.StaffService, logg))
			r.With(manager).Delete("/{staffID}", controllers.StaffDelete(deps.StaffService, logg))

			r.Route("/{staffID}/effective-branches", func(r chi.Router) {
				r.Get("/", controllers.EffectiveBranchList(deps.StaffService, logg))
				r.With(manager).Put("/", controllers.EffectiveBranchSet(deps.StaffService, logg))
				r.With(manager).Delete("/{branchID}", controllers.EffectiveBranchRemove(deps.StaffService, logg))
			})
		})

		r.Route("/schedules/entries", func(r chi.Router) {
			r.Get("/", controllers.ScheduleList(deps.ScheduleService, logg))
			r.With(manager).Put("/", controllers.ScheduleSet(deps.ScheduleService, logg))
			r.With(manager).Post("/cycle", controllers.ScheduleCycle(deps.ScheduleService, logg))
		})

		r.Route("/rotation", func(r chi.Router) {
			r.Get("/assignments", controllers.AssignmentList(deps.AssignmentService, logg))
			r.With(manager).Post("/assignments", controllers.Assign(deps.AssignmentService, logg))
			r.With(manager).Patch("/assignments/{assignmentID}", controllers.AssignmentSetStatus(deps.AssignmentService, logg))
			r.With(manager).Delete("/assignments/{assignmentID}", controllers.AssignmentDelete(deps.AssignmentService, logg))
			r.With(manager).Post("/cells/cycle", controllers.CycleCell(deps.AssignmentService, logg))
			r.Get("/branches/{branchID}/eligible-staff", controllers.EligibleStaff(deps.AssignmentService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))
			r.Get("/", controllers.UserList(deps.UserService, logg))
			r.Post("/", controllers.UserCreate(deps.UserService, logg))
			r.Get("/{userID}", controllers.UserGet(deps.UserService, logg))
			r.Patch("/{userID}", controllers.UserUpdate(deps.UserService, logg))
			r.Post("/{userID}/reset-password", controllers.UserResetPassword(deps.UserService, logg))
		})
	})

	return r
}
