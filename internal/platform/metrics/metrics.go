package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts store mutations by action. Registered against an explicit
// registerer so each composition root (and each test) gets its own set.
type Metrics struct {
	patientMutations     *prometheus.CounterVec
	appointmentMutations *prometheus.CounterVec
	auditEvents          prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		patientMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "health_api_patient_mutations_total",
			Help: "Successful patient store mutations by action",
		}, []string{"action"}),
		appointmentMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "health_api_appointment_mutations_total",
			Help: "Successful appointment store mutations by action",
		}, []string{"action"}),
		auditEvents: factory.NewCounter(prometheus.CounterOpts{
			Name: "health_api_audit_events_total",
			Help: "Audit events appended to the trail",
		}),
	}
}

func (m *Metrics) PatientMutation(action string) {
	m.patientMutations.WithLabelValues(action).Inc()
	m.auditEvents.Inc()
}

func (m *Metrics) AppointmentMutation(action string) {
	m.appointmentMutations.WithLabelValues(action).Inc()
	m.auditEvents.Inc()
}
