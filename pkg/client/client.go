package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/punchcardhq/punchcard/pkg/domain"
)

// Credentials is the payload for the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the payload for the register endpoint. ConfirmPassword is
// validated client-side only and never sent.
type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponse is the service's reply to login and register.
type AuthResponse struct {
	User  domain.UserRecord `json:"user"`
	Token string            `json:"token"`
}

// ProfileUpdate is the payload for the profile endpoint.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// RecordUpdate is the admin payload for correcting an attendance record.
type RecordUpdate struct {
	CheckInTime  *time.Time `json:"checkInTime"`
	CheckOutTime *time.Time `json:"checkOutTime"`
}

// Client is the attendance service API client. All authenticated requests
// carry the bearer token currently held by the session store; SetToken
// retargets the client on login and logout.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates an API client for the given base URL (including the /api
// prefix) and initial bearer token. Token may be empty for a logged-out
// client.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token used for subsequent requests.
// An empty token returns the client to unauthenticated calls only.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

// Register creates a new account. The service assigns the role; the caller
// must not trust it to be anything other than a fresh employee.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/register", reg, &resp); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &resp, nil
}

// UpdateProfile updates the authenticated user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, p ProfileUpdate) error {
	if err := c.doRequest(ctx, http.MethodPut, "/auth/profile", p, nil); err != nil {
		return fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return nil
}

// Attendance fetches the authenticated user's records for a period.
func (c *Client) Attendance(ctx context.Context, period domain.Period) ([]domain.AttendanceRecord, error) {
	params := url.Values{}
	params.Set("month", string(period))

	var records []domain.AttendanceRecord
	if err := c.get(ctx, "/attendance/attendance?"+params.Encode(), &records); err != nil {
		return nil, fmt.Errorf("client.Attendance: %w", err)
	}
	return records, nil
}

// AdminAttendance fetches another employee's records for a period, joined
// with the employee's identity. Admin only.
func (c *Client) AdminAttendance(ctx context.Context, employeeID string, period domain.Period) ([]domain.AdminRecord, error) {
	params := url.Values{}
	params.Set("month", string(period))
	params.Set("userId", employeeID)

	var records []domain.AdminRecord
	if err := c.get(ctx, "/attendance/admin?"+params.Encode(), &records); err != nil {
		return nil, fmt.Errorf("client.AdminAttendance: %w", err)
	}
	return records, nil
}

// AttendanceAction issues a checkin/pause/resume/checkout command. The
// response body is ignored: the caller re-fetches the period afterwards
// rather than guessing the server-computed totals.
func (c *Client) AttendanceAction(ctx context.Context, action domain.Action) error {
	if !domain.ValidAction(action) {
		return fmt.Errorf("client.AttendanceAction: unknown action %q", action)
	}
	if err := c.post(ctx, "/attendance/"+string(action), nil, nil); err != nil {
		return fmt.Errorf("client.AttendanceAction(%s): %w", action, err)
	}
	return nil
}

// UpdateRecord corrects an attendance record's check-in/check-out times.
// Admin only.
func (c *Client) UpdateRecord(ctx context.Context, id string, upd RecordUpdate) error {
	if err := c.doRequest(ctx, http.MethodPut, "/attendance/"+url.PathEscape(id), upd, nil); err != nil {
		return fmt.Errorf("client.UpdateRecord: %w", err)
	}
	return nil
}

// Employees lists all employees. Admin only.
func (c *Client) Employees(ctx context.Context) ([]domain.UserRecord, error) {
	var users []domain.UserRecord
	if err := c.get(ctx, "/employees", &users); err != nil {
		return nil, fmt.Errorf("client.Employees: %w", err)
	}
	return users, nil
}

// Notifications fetches the authenticated user's notifications.
func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var notifs []domain.Notification
	if err := c.get(ctx, "/notifications", &notifs); err != nil {
		return nil, fmt.Errorf("client.Notifications: %w", err)
	}
	return notifs, nil
}

// MarkNotificationRead marks one notification as read. Callers remove the
// entry from the visible set only after this returns nil.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		return fmt.Errorf("client.MarkNotificationRead: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		return newHTTPError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
