package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rambabu64681/Health-API/internal/router"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil, // dev mode: X-Debug-User-ID
		Logger:       zerolog.Nop(),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_PatientLifecycle(t *testing.T) {
	ts := newTestServer(t)
	actor := "staff-1"

	// 1) Create patient with MRN M-100 => ACTIVE
	patientID := createPatient(t, ts.URL, actor, map[string]any{
		"mrn":           "M-100",
		"first_name":    "John",
		"last_name":     "Smith",
		"date_of_birth": "1984-06-02",
		"phone":         "555-0101",
		"email":         "john.smith@example.test",
	})
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID, actor, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get patient, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "ACTIVE" {
			t.Fatalf("expected initial status ACTIVE, got %q", resp.Status)
		}
	}

	// 2) Second patient with the same MRN => conflict
	{
		st, _ := doReq(t, ts.URL, "POST", "/patients", actor, map[string]any{
			"mrn":        "M-100",
			"first_name": "Jane",
			"last_name":  "Doe",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 for duplicate MRN, got %d", st)
		}
	}

	// 3) Lowercase status target => stored uppercase
	{
		st, body := doReq(t, ts.URL, "PATCH", "/patients/"+patientID+"/status", actor, map[string]any{
			"status": "inactive",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 status update, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "INACTIVE" {
			t.Fatalf("expected INACTIVE, got %q", resp.Status)
		}
	}

	// 4) Unknown status target => rejected, record unchanged
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/patients/"+patientID+"/status", actor, map[string]any{
			"status": "bogus",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid status, got %d", st)
		}

		_, body := doReq(t, ts.URL, "GET", "/patients/"+patientID, actor, nil)
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "INACTIVE" {
			t.Fatalf("expected status to stay INACTIVE, got %q", resp.Status)
		}
	}

	// 5) Create an appointment for the patient
	apptID := createAppointment(t, ts.URL, actor, patientID, map[string]any{
		"scheduled_at": time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339),
		"department":   "cardiology",
		"provider":     "dr-james",
	})
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/appointments", actor, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list appointments, got %d body=%s", st, string(body))
		}
		var resp []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp) != 1 || resp[0].ID != apptID {
			t.Fatalf("expected one appointment %s, got %s", apptID, string(body))
		}
	}

	// 6) Delete the patient => cascade removes the appointment
	{
		st, body := doReq(t, ts.URL, "DELETE", "/patients/"+patientID, actor, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete patient, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/appointments/"+apptID, actor, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 appointment after cascade, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/patients/"+patientID, actor, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 patient after delete, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/patients/mrn/M-100", actor, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 by MRN after delete, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/patients/"+patientID+"/appointments", actor, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 empty listing after cascade, got %d", st)
		}
		var resp []any
		_ = json.Unmarshal(body, &resp)
		if len(resp) != 0 {
			t.Fatalf("expected empty appointment list, got %s", string(body))
		}
	}

	// 7) The trail saw every mutation, newest first, attributed to the actor
	{
		st, body := doReq(t, ts.URL, "GET", "/audit?limit=10", actor, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 audit, got %d body=%s", st, string(body))
		}
		var events []struct {
			Actor      string `json:"actor"`
			Action     string `json:"action"`
			EntityType string `json:"entity_type"`
			EntityID   string `json:"entity_id"`
		}
		_ = json.Unmarshal(body, &events)
		if len(events) != 4 { // create patient, update status, create appt, delete patient
			t.Fatalf("expected 4 audit events, got %d body=%s", len(events), string(body))
		}
		if events[0].Action != "DELETE" || events[0].EntityType != "patient" || events[0].EntityID != patientID {
			t.Fatalf("expected newest event to be the patient DELETE, got %+v", events[0])
		}
		for _, e := range events {
			if e.Actor != actor {
				t.Fatalf("expected actor %q on every event, got %+v", actor, e)
			}
		}
	}
}

func TestHTTP_CreateAppointmentForUnknownPatient(t *testing.T) {
	ts := newTestServer(t)

	st, _ := doReq(t, ts.URL, "POST", "/patients/no-such-patient/appointments", "staff-1", map[string]any{
		"scheduled_at": time.Now().UTC().Format(time.RFC3339),
		"department":   "cardiology",
		"provider":     "dr-james",
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown patient, got %d", st)
	}
}

func TestHTTP_SearchPatients(t *testing.T) {
	ts := newTestServer(t)
	actor := "staff-1"

	createPatient(t, ts.URL, actor, map[string]any{"mrn": "M-1", "first_name": "Alice", "last_name": "Smith"})
	bobID := createPatient(t, ts.URL, actor, map[string]any{"mrn": "M-2", "first_name": "Bob", "last_name": "Smith"})
	createPatient(t, ts.URL, actor, map[string]any{"mrn": "M-3", "first_name": "Dan", "last_name": "Adams"})

	// Bob goes inactive; the ACTIVE filter must drop him.
	st, _ := doReq(t, ts.URL, "PATCH", "/patients/"+bobID+"/status", actor, map[string]any{"status": "INACTIVE"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 status update, got %d", st)
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/patients?q=smith&status=ACTIVE", actor, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d body=%s", st, string(body))
		}
		var resp []struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp) != 1 || resp[0].FirstName != "Alice" {
			t.Fatalf("expected only Alice Smith, got %s", string(body))
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/patients", actor, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 search all, got %d", st)
		}
		var resp []struct {
			LastName string `json:"last_name"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp) != 3 || resp[0].LastName != "Adams" {
			t.Fatalf("expected all three sorted by last name, got %s", string(body))
		}
	}
}

func TestHTTP_AnonymousMutationAuditedAsSystem(t *testing.T) {
	ts := newTestServer(t)

	// No X-Debug-User-ID header: the mutation still goes through.
	st, _ := doReq(t, ts.URL, "POST", "/patients", "", map[string]any{
		"mrn": "M-100", "first_name": "John", "last_name": "Smith",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 anonymous create, got %d", st)
	}

	_, body := doReq(t, ts.URL, "GET", "/audit?limit=1", "", nil)
	var events []struct {
		Actor string `json:"actor"`
	}
	_ = json.Unmarshal(body, &events)
	if len(events) != 1 || events[0].Actor != "system" {
		t.Fatalf("expected system actor, got %s", string(body))
	}
}

func createPatient(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/patients", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create patient, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create patient: missing id body=%s", string(body))
	}
	return resp.ID
}

func createAppointment(t *testing.T, baseURL, userID, patientID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/patients/"+patientID+"/appointments", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create appointment, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create appointment: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
