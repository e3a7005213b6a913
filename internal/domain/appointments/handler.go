package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Rambabu64681/Health-API/internal/domain/audit"
	"github.com/Rambabu64681/Health-API/internal/domain/patients"
	"github.com/Rambabu64681/Health-API/internal/middleware"
	"github.com/Rambabu64681/Health-API/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, patientsSvc *patients.Service, auditSvc *audit.Service, m *metrics.Metrics) {
	r.Route("/patients/{patientID}/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc, patientsSvc, auditSvc, m))
		ar.Get("/", listAppointmentsHandler(svc))
	})

	r.Route("/appointments/{appointmentID}", func(ar chi.Router) {
		ar.Get("/", getAppointmentHandler(svc))
		ar.Patch("/status", updateAppointmentStatusHandler(svc, auditSvc, m))
	})
}

type createAppointmentRequest struct {
	ScheduledAt string `json:"scheduled_at"` // RFC3339
	Department  string `json:"department"`
	Provider    string `json:"provider"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type appointmentResponse struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Department  string    `json:"department"`
	Provider    string    `json:"provider"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func createAppointmentHandler(svc *Service, patientsSvc *patients.Service, auditSvc *audit.Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID := chi.URLParam(r, "patientID")

		// The patient must exist at creation time. There is no live
		// foreign-key enforcement afterward.
		if _, err := patientsSvc.GetByID(r.Context(), patientID); err != nil {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ScheduledAt) == "" {
			http.Error(w, "scheduled_at is required", http.StatusBadRequest)
			return
		}
		t, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			http.Error(w, "scheduled_at must be RFC3339", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), patientID, CreateInput{
			ScheduledAt: t,
			Department:  req.Department,
			Provider:    req.Provider,
		})
		switch {
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, "scheduled_at, department and provider are required", http.StatusBadRequest)
			return
		case err != nil:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		m.AppointmentMutation(audit.ActionCreate)
		_, _ = auditSvc.Record(r.Context(), middleware.Actor(r.Context()),
			audit.ActionCreate, audit.EntityAppointment, a.ID,
			map[string]any{"patient_id": a.PatientID, "department": a.Department})

		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listAppointmentsHandler does not check that the patient exists: a patient
// with no appointments (or no patient at all) yields an empty array.
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPatient(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func updateAppointmentStatusHandler(svc *Service, auditSvc *audit.Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "appointmentID"), req.Status)
		switch {
		case errors.Is(err, ErrInvalidStatus):
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		case errors.Is(err, ErrNotFound):
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		m.AppointmentMutation(audit.ActionUpdateStatus)
		_, _ = auditSvc.Record(r.Context(), middleware.Actor(r.Context()),
			audit.ActionUpdateStatus, audit.EntityAppointment, a.ID,
			map[string]any{"patient_id": a.PatientID, "status": string(a.Status)})

		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		PatientID:   a.PatientID,
		ScheduledAt: a.ScheduledAt,
		Department:  a.Department,
		Provider:    a.Provider,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
