package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/punchcardhq/punchcard/pkg/domain"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if creds.Email != "ada@example.com" || creds.Password != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(AuthResponse{ //nolint:errcheck
			User:  domain.UserRecord{ID: "u1", FirstName: "Ada", Role: domain.RoleEmployee},
			Token: "tok-123",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	resp, err := c.Login(context.Background(), Credentials{Email: "ada@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if resp.Token != "tok-123" {
		t.Errorf("Token = %q, want %q", resp.Token, "tok-123")
	}
	if resp.User.Role != domain.RoleEmployee {
		t.Errorf("Role = %q, want %q", resp.User.Role, domain.RoleEmployee)
	}
}

func TestLogin_BadCredentialsSurfacesServiceMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "wrong1"})
	if err == nil {
		t.Fatal("expected error for bad credentials")
	}
	if !IsStatus(err, 401) {
		t.Errorf("IsStatus(err, 401) = false, want true; err = %v", err)
	}
	if got := Notice(err); got != "Invalid credentials" {
		t.Errorf("Notice(err) = %q, want %q", got, "Invalid credentials")
	}
}

func TestErrorWithoutMessageFieldFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "stack trace here"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	_, err := c.Notifications(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Notice(err); got != GenericErrorMessage {
		t.Errorf("Notice(err) = %q, want %q", got, GenericErrorMessage)
	}
}

func TestAttendanceSendsBearerAndMonth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/attendance/attendance" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "not authenticated"}) //nolint:errcheck
			return
		}
		if got := r.URL.Query().Get("month"); got != "2024-07" {
			t.Errorf("month = %q, want %q", got, "2024-07")
		}
		in := time.Date(2024, 7, 3, 9, 0, 0, 0, time.UTC)
		out := in.Add(8 * time.Hour)
		json.NewEncoder(w).Encode([]domain.AttendanceRecord{ //nolint:errcheck
			{ID: uuid.NewString(), CheckInTime: &in, CheckOutTime: &out, TotalWorkHours: 7.5, TotalPauseTime: 0.5, Status: "checked-out"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token")
	records, err := c.Attendance(context.Background(), "2024-07")
	if err != nil {
		t.Fatalf("Attendance() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].TotalWorkHours != 7.5 {
		t.Errorf("TotalWorkHours = %v, want 7.5", records[0].TotalWorkHours)
	}
}

func TestAdminAttendanceParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/attendance/admin" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("month") != "current" || q.Get("userId") != "emp-7" {
			t.Errorf("query = %q, want month=current userId=emp-7", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode([]domain.AdminRecord{ //nolint:errcheck
			{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	records, err := c.AdminAttendance(context.Background(), "emp-7", domain.PeriodCurrent)
	if err != nil {
		t.Fatalf("AdminAttendance() error: %v", err)
	}
	if len(records) != 1 || records[0].FirstName != "Grace" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestAttendanceAction(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.AttendanceAction(context.Background(), domain.ActionPause); err != nil {
		t.Fatalf("AttendanceAction() error: %v", err)
	}
	if gotPath != "/attendance/pause" {
		t.Errorf("path = %q, want %q", gotPath, "/attendance/pause")
	}
}

func TestAttendanceAction_RejectsUnknownAction(t *testing.T) {
	c := New("http://127.0.0.1:0", "tok")
	err := c.AttendanceAction(context.Background(), domain.Action("clockin"))
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
	if !strings.Contains(err.Error(), "unknown action") {
		t.Errorf("error = %q, want it to mention unknown action", err)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	if err := c.MarkNotificationRead(context.Background(), "n42"); err != nil {
		t.Fatalf("MarkNotificationRead() error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/notifications/n42/read" {
		t.Errorf("request = %s %s, want PUT /notifications/n42/read", gotMethod, gotPath)
	}
}

func TestSetTokenRetargetsRequests(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]domain.Notification{}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, "old")
	c.SetToken("new")
	if _, err := c.Notifications(context.Background()); err != nil {
		t.Fatalf("Notifications() error: %v", err)
	}
	if gotAuth != "Bearer new" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer new")
	}

	c.SetToken("")
	if _, err := c.Notifications(context.Background()); err != nil {
		t.Fatalf("Notifications() error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization after clear = %q, want empty", gotAuth)
	}
}

func TestUpdateRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/attendance/rec-1" {
			http.NotFound(w, r)
			return
		}
		var upd RecordUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if upd.CheckInTime == nil {
			t.Error("CheckInTime not sent")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	in := time.Date(2024, 7, 1, 8, 30, 0, 0, time.UTC)
	c := New(srv.URL, "tok")
	if err := c.UpdateRecord(context.Background(), "rec-1", RecordUpdate{CheckInTime: &in}); err != nil {
		t.Fatalf("UpdateRecord() error: %v", err)
	}
}

func TestEmployees(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/employees" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode([]domain.UserRecord{ //nolint:errcheck
			{ID: "e1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: domain.RoleEmployee},
			{ID: "e2", FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Role: domain.RoleEmployee},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	employees, err := c.Employees(context.Background())
	if err != nil {
		t.Fatalf("Employees() error: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("got %d employees, want 2", len(employees))
	}
	if employees[1].Email != "alan@example.com" {
		t.Errorf("employees[1].Email = %q", employees[1].Email)
	}
}
