package router

import (
	"net/http"

	mem "github.com/Rambabu64681/Health-API/internal/adapters/storage/memory"
	"github.com/Rambabu64681/Health-API/internal/domain/appointments"
	"github.com/Rambabu64681/Health-API/internal/domain/audit"
	"github.com/Rambabu64681/Health-API/internal/domain/patients"
	"github.com/Rambabu64681/Health-API/internal/middleware"
	"github.com/Rambabu64681/Health-API/internal/platform/metrics"
	"github.com/Rambabu64681/Health-API/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Options struct {
	AuthVerifier auth.Verifier // nil => dev mode (X-Debug-User-ID)
	Logger       zerolog.Logger

	// AuditCapacity <= 0 falls back to audit.DefaultCapacity.
	AuditCapacity int
}

// NewRouter is the composition root: it owns the store instances and hands
// them to the handler layer by reference. All state is in-memory and lives for
// the router's lifetime; a restart reconstructs everything empty.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	patientRepo := mem.NewPatientRepo()
	appointmentRepo := mem.NewAppointmentRepo()
	auditRepo := mem.NewAuditRepo(opts.AuditCapacity)

	patientsSvc := patients.NewService(patientRepo)
	appointmentsSvc := appointments.NewService(appointmentRepo)
	auditSvc := audit.NewService(auditRepo)

	patients.RegisterRoutes(r, patientsSvc, appointmentsSvc, auditSvc, m)
	appointments.RegisterRoutes(r, appointmentsSvc, patientsSvc, auditSvc, m)
	audit.RegisterRoutes(r, auditSvc)

	return r
}
