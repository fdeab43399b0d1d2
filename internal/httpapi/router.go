package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/AfyaLink-Health/health-records-service/internal/auth"
	"github.com/AfyaLink-Health/health-records-service/internal/cache"
	"github.com/AfyaLink-Health/health-records-service/internal/client"
	"github.com/AfyaLink-Health/health-records-service/internal/encounter"
	"github.com/AfyaLink-Health/health-records-service/internal/enrollment"
	"github.com/AfyaLink-Health/health-records-service/internal/messaging"
	"github.com/AfyaLink-Health/health-records-service/internal/metric"
	"github.com/AfyaLink-Health/health-records-service/internal/prescription"
	"github.com/AfyaLink-Health/health-records-service/internal/program"
	"github.com/AfyaLink-Health/health-records-service/internal/report"
	"github.com/AfyaLink-Health/health-records-service/internal/telemetry"
	"github.com/AfyaLink-Health/health-records-service/internal/users"
)

// SetupRouter initializes all routes for the application. metrics may be nil
// when telemetry is disabled.
func SetupRouter(db *sql.DB, tokens *auth.TokenStore, perms auth.Permissions, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *mux.Router {
	// Initialize user components
	userRepo := users.NewRepository(db)
	userService := users.NewService(userRepo, tokens, publisher)
	userHandler := users.NewHandler(userService)
	if metrics != nil {
		userHandler = users.NewHandlerWithMetrics(userService, metrics)
	}

	// Initialize client components
	clientRepo := client.NewRepository(db)
	clientService := client.NewService(clientRepo, cache.NewInMemoryStore(), publisher)
	clientHandler := client.NewHandler(clientService)

	// Initialize program components
	programRepo := program.NewRepository(db)
	programService := program.NewService(programRepo, publisher)
	programHandler := program.NewHandler(programService)

	// Initialize enrollment components
	enrollmentRepo := enrollment.NewRepository(db)
	enrollmentService := enrollment.NewService(enrollmentRepo, publisher)
	enrollmentHandler := enrollment.NewHandler(enrollmentService)
	if metrics != nil {
		enrollmentHandler = enrollment.NewHandlerWithMetrics(enrollmentService, metrics)
	}

	// Initialize prescription components
	prescriptionRepo := prescription.NewRepository(db)
	prescriptionService := prescription.NewService(prescriptionRepo, publisher)
	prescriptionHandler := prescription.NewHandler(prescriptionService)
	if metrics != nil {
		prescriptionHandler = prescription.NewHandlerWithMetrics(prescriptionService, metrics)
	}

	// Initialize metric components
	metricRepo := metric.NewRepository(db)
	metricService := metric.NewService(metricRepo, publisher)
	metricHandler := metric.NewHandler(metricService)
	if metrics != nil {
		metricHandler = metric.NewHandlerWithMetrics(metricService, metrics)
	}

	// Initialize encounter components
	encounterRepo := encounter.NewRepository(db)
	encounterService := encounter.NewService(encounterRepo, publisher)
	encounterHandler := encounter.NewHandler(encounterService)
	if metrics != nil {
		encounterHandler = encounter.NewHandlerWithMetrics(encounterService, metrics)
	}

	// Initialize report components
	reportRepo := report.NewRepository(db)
	reportService := report.NewService(reportRepo)
	reportHandler := report.NewHandler(reportService)

	var authMetrics auth.MetricsRecorder
	var permMetrics auth.PermissionMetricsRecorder
	if metrics != nil {
		authMetrics = metrics
		permMetrics = metrics
	}
	authn := auth.MiddlewareWithMetrics(tokens, authMetrics)
	require := func(permission string) func(http.Handler) http.Handler {
		return auth.RequirePermissionWithMetrics(permission, perms, permMetrics)
	}

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("health-records-service"))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"health-records-service"}`))
	}).Methods("GET")

	// Public auth routes
	r.HandleFunc("/api/auth/register", userHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/token", userHandler.Login).Methods("POST")

	// Account routes
	r.Handle("/api/auth/user",
		authn(require("settings:manage")(http.HandlerFunc(userHandler.GetProfile))),
	).Methods("GET")
	r.Handle("/api/auth/user",
		authn(require("settings:manage")(http.HandlerFunc(userHandler.UpdateProfile))),
	).Methods("PUT")
	r.Handle("/api/settings",
		authn(require("settings:manage")(http.HandlerFunc(userHandler.GetSettings))),
	).Methods("GET")
	r.Handle("/api/settings",
		authn(require("settings:manage")(http.HandlerFunc(userHandler.UpdateSettings))),
	).Methods("PUT")
	r.Handle("/api/change-password",
		authn(require("settings:manage")(http.HandlerFunc(userHandler.ChangePassword))),
	).Methods("POST")

	// Client routes
	r.Handle("/api/clients/register",
		authn(require("client:create")(http.HandlerFunc(clientHandler.Register))),
	).Methods("POST")
	r.Handle("/api/clients",
		authn(require("client:view")(http.HandlerFunc(clientHandler.List))),
	).Methods("GET")
	r.Handle("/api/clients/search",
		authn(require("client:search")(http.HandlerFunc(clientHandler.Search))),
	).Methods("GET")
	r.Handle("/api/clients/{id}",
		authn(require("client:view")(http.HandlerFunc(clientHandler.Get))),
	).Methods("GET")
	r.Handle("/api/clients/{id}/profile",
		authn(require("client:view")(http.HandlerFunc(clientHandler.GetProfile))),
	).Methods("GET")
	r.Handle("/api/clients/{id}/comprehensive",
		authn(require("client:view")(http.HandlerFunc(clientHandler.GetComprehensive))),
	).Methods("GET")
	r.Handle("/api/clients/{id}",
		authn(require("client:delete")(http.HandlerFunc(clientHandler.Delete))),
	).Methods("DELETE")

	// Program routes
	r.Handle("/api/programs",
		authn(require("program:create")(http.HandlerFunc(programHandler.Create))),
	).Methods("POST")
	r.Handle("/api/programs",
		authn(require("program:view")(http.HandlerFunc(programHandler.List))),
	).Methods("GET")
	r.Handle("/api/programs/{id}",
		authn(require("program:view")(http.HandlerFunc(programHandler.Get))),
	).Methods("GET")
	r.Handle("/api/programs/{id}",
		authn(require("program:delete")(http.HandlerFunc(programHandler.Delete))),
	).Methods("DELETE")

	// Enrollment routes
	r.Handle("/api/enrollments",
		authn(require("enrollment:create")(http.HandlerFunc(enrollmentHandler.Create))),
	).Methods("POST")
	r.Handle("/api/enrollments",
		authn(require("enrollment:view")(http.HandlerFunc(enrollmentHandler.List))),
	).Methods("GET")
	r.Handle("/api/enrollments/{id}",
		authn(require("enrollment:view")(http.HandlerFunc(enrollmentHandler.Get))),
	).Methods("GET")
	r.Handle("/api/enrollments/{id}/deactivate",
		authn(require("enrollment:update")(http.HandlerFunc(enrollmentHandler.Deactivate))),
	).Methods("POST")
	r.Handle("/api/enrollments/{id}",
		authn(require("enrollment:delete")(http.HandlerFunc(enrollmentHandler.Delete))),
	).Methods("DELETE")

	// Prescription routes
	r.Handle("/api/prescriptions",
		authn(require("prescription:create")(http.HandlerFunc(prescriptionHandler.Create))),
	).Methods("POST")
	r.Handle("/api/prescriptions",
		authn(require("prescription:view")(http.HandlerFunc(prescriptionHandler.List))),
	).Methods("GET")
	r.Handle("/api/prescriptions/{id}",
		authn(require("prescription:view")(http.HandlerFunc(prescriptionHandler.Get))),
	).Methods("GET")
	r.Handle("/api/prescriptions/{id}",
		authn(require("prescription:update")(http.HandlerFunc(prescriptionHandler.Update))),
	).Methods("PUT")
	r.Handle("/api/prescriptions/{id}",
		authn(require("prescription:delete")(http.HandlerFunc(prescriptionHandler.Delete))),
	).Methods("DELETE")

	// Metric routes
	r.Handle("/api/metrics",
		authn(require("metric:create")(http.HandlerFunc(metricHandler.Create))),
	).Methods("POST")
	r.Handle("/api/metrics",
		authn(require("metric:view")(http.HandlerFunc(metricHandler.List))),
	).Methods("GET")
	r.Handle("/api/metrics/{id}",
		authn(require("metric:view")(http.HandlerFunc(metricHandler.Get))),
	).Methods("GET")
	r.Handle("/api/metrics/{id}",
		authn(require("metric:delete")(http.HandlerFunc(metricHandler.Delete))),
	).Methods("DELETE")

	// Encounter routes
	r.Handle("/api/encounters",
		authn(require("encounter:create")(http.HandlerFunc(encounterHandler.Create))),
	).Methods("POST")
	r.Handle("/api/encounters",
		authn(require("encounter:view")(http.HandlerFunc(encounterHandler.List))),
	).Methods("GET")
	r.Handle("/api/encounters/{id}",
		authn(require("encounter:view")(http.HandlerFunc(encounterHandler.Get))),
	).Methods("GET")
	r.Handle("/api/encounters/{id}/status",
		authn(require("encounter:update")(http.HandlerFunc(encounterHandler.UpdateStatus))),
	).Methods("PATCH")
	r.Handle("/api/encounters/{id}",
		authn(require("encounter:delete")(http.HandlerFunc(encounterHandler.Delete))),
	).Methods("DELETE")

	// Report routes
	r.Handle("/api/reports",
		authn(require("report:view")(http.HandlerFunc(reportHandler.Generate))),
	).Methods("GET")
	r.Handle("/api/program-metrics",
		authn(require("report:view")(http.HandlerFunc(reportHandler.ProgramMetrics))),
	).Methods("GET")
	r.Handle("/api/resource-utilization",
		authn(require("report:view")(http.HandlerFunc(reportHandler.ResourceUtilization))),
	).Methods("GET")

	return r
}
