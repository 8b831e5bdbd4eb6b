package domain

// Role is the closed set of roles the attendance service issues.
// Comparison is exact: the service sends "Admin" and "Employee" with this
// casing, and the gate must never normalize or guess.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleAdmin    Role = "Admin"
)

// Valid returns true if the role is one the service is known to issue.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// Home returns the route a user of this role lands on after login.
// Every non-admin role maps to the employee dashboard.
func (r Role) Home() Route {
	if r == RoleAdmin {
		return RouteAdmin
	}
	return RouteDashboard
}

// Route identifies a screen of the client.
type Route string

const (
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteDashboard Route = "/dashboard"
	RouteAdmin     Route = "/admin"
)

// UserRecord is the service's view of an account. The client holds a cached
// copy inside the session; it is replaced wholesale on login, profile update,
// and logout, never field-patched.
type UserRecord struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// FullName returns "First Last" for display.
func (u UserRecord) FullName() string {
	return u.FirstName + " " + u.LastName
}
