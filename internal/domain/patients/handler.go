package patients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Rambabu64681/Health-API/internal/domain/audit"
	"github.com/Rambabu64681/Health-API/internal/middleware"
	"github.com/Rambabu64681/Health-API/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// AppointmentCascade avoids importing the appointments package (breaks the
// cycle). DeleteByPatient must remove every appointment indexed under the
// patient and report the removed ids.
type AppointmentCascade interface {
	DeleteByPatient(ctx context.Context, patientID string) ([]string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, cascade AppointmentCascade, auditSvc *audit.Service, m *metrics.Metrics) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", createPatientHandler(svc, auditSvc, m))
		pr.Get("/", searchPatientsHandler(svc))

		// Exact MRN lookup; distinct from search, which is a substring match.
		pr.Get("/mrn/{mrn}", getPatientByMRNHandler(svc))

		pr.Get("/{patientID}", getPatientHandler(svc))
		pr.Patch("/{patientID}/status", updatePatientStatusHandler(svc, auditSvc, m))

		// Cascade: appointments go first, the patient record last.
		pr.Delete("/{patientID}", deletePatientHandler(svc, cascade, auditSvc, m))
	})
}

type createPatientRequest struct {
	MRN         string `json:"mrn"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD, optional
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type patientResponse struct {
	ID          string     `json:"id"`
	MRN         string     `json:"mrn"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func createPatientHandler(svc *Service, auditSvc *audit.Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var dob *time.Time
		if strings.TrimSpace(req.DateOfBirth) != "" {
			t, err := time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				http.Error(w, "date_of_birth must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			dob = &t
		}

		p, err := svc.Create(r.Context(), CreateInput{
			MRN:         req.MRN,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			DateOfBirth: dob,
			Phone:       req.Phone,
			Email:       req.Email,
		})
		switch {
		case errors.Is(err, ErrMRNExists):
			http.Error(w, "mrn already exists", http.StatusConflict)
			return
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, "mrn, first_name and last_name are required", http.StatusBadRequest)
			return
		case err != nil:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		m.PatientMutation(audit.ActionCreate)
		_, _ = auditSvc.Record(r.Context(), middleware.Actor(r.Context()),
			audit.ActionCreate, audit.EntityPatient, p.ID,
			map[string]any{"mrn": p.MRN})

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

func getPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func getPatientByMRNHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByMRN(r.Context(), chi.URLParam(r, "mrn"))
		if err != nil {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func searchPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Search(r.Context(), r.URL.Query().Get("q"), r.URL.Query().Get("status"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updatePatientStatusHandler(svc *Service, auditSvc *audit.Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "patientID"), req.Status)
		switch {
		case errors.Is(err, ErrInvalidStatus):
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		case errors.Is(err, ErrNotFound):
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		m.PatientMutation(audit.ActionUpdateStatus)
		_, _ = auditSvc.Record(r.Context(), middleware.Actor(r.Context()),
			audit.ActionUpdateStatus, audit.EntityPatient, p.ID,
			map[string]any{"status": string(p.Status)})

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func deletePatientHandler(svc *Service, cascade AppointmentCascade, auditSvc *audit.Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}

		removed, err := cascade.DeleteByPatient(r.Context(), p.ID)
		if err != nil {
			// Appointments failed partway; the patient record stays so the
			// remainder is still reachable.
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := svc.Delete(r.Context(), p.ID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		m.PatientMutation(audit.ActionDelete)
		_, _ = auditSvc.Record(r.Context(), middleware.Actor(r.Context()),
			audit.ActionDelete, audit.EntityPatient, p.ID,
			map[string]any{"mrn": p.MRN, "appointments_removed": len(removed)})

		w.WriteHeader(http.StatusNoContent)
	}
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:          p.ID,
		MRN:         p.MRN,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
		Phone:       p.Phone,
		Email:       p.Email,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
