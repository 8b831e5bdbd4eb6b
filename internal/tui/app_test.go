package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/punchcardhq/punchcard/internal/session"
	"github.com/punchcardhq/punchcard/pkg/client"
	"github.com/punchcardhq/punchcard/pkg/domain"
)

func newTestApp(t *testing.T) (App, *session.Store) {
	t.Helper()
	store := openTestStore(t)
	a := NewApp(client.New("http://127.0.0.1:0", ""), store)
	a.width = 80
	a.height = 30
	return a, store
}

func signIn(t *testing.T, store *session.Store, role domain.Role) {
	t.Helper()
	err := store.Set(domain.UserRecord{
		ID: "u1", FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@example.com", Role: role,
	}, "tok")
	if err != nil {
		t.Fatal(err)
	}
}

func TestAppStartsAtLoginWhenLoggedOut(t *testing.T) {
	a, _ := newTestApp(t)
	if a.route != domain.RouteLogin {
		t.Errorf("route = %q, want login", a.route)
	}
}

func TestAppStartsAtRoleHome(t *testing.T) {
	tests := []struct {
		role domain.Role
		want domain.Route
	}{
		{domain.RoleEmployee, domain.RouteDashboard},
		{domain.RoleAdmin, domain.RouteAdmin},
	}
	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			store := openTestStore(t)
			signIn(t, store, tc.role)
			a := NewApp(client.New("http://127.0.0.1:0", ""), store)
			if a.route != tc.want {
				t.Errorf("route = %q, want %q", a.route, tc.want)
			}
		})
	}
}

func TestAppRegisterReachableWhenLoggedOut(t *testing.T) {
	a, _ := newTestApp(t)

	model, _ := a.Update(gotoRouteMsg{route: domain.RouteRegister})
	a = model.(App)
	if a.route != domain.RouteRegister {
		t.Fatalf("route = %q, want register", a.route)
	}

	// And back to login via the register screen's link.
	model, _ = a.Update(gotoRouteMsg{route: domain.RouteLogin})
	a = model.(App)
	if a.route != domain.RouteLogin {
		t.Errorf("route = %q, want login", a.route)
	}
}

func TestAppGuardsProtectedRoutes(t *testing.T) {
	a, _ := newTestApp(t)

	model, _ := a.Update(gotoRouteMsg{route: domain.RouteDashboard})
	a = model.(App)
	if a.route != domain.RouteLogin {
		t.Errorf("logged out: route = %q, want login", a.route)
	}

	model, _ = a.Update(gotoRouteMsg{route: domain.RouteAdmin})
	a = model.(App)
	if a.route != domain.RouteLogin {
		t.Errorf("logged out: route = %q, want login", a.route)
	}
}

func TestAppRedirectsWrongRoleToOwnHome(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, domain.RoleEmployee)

	model, _ := a.Update(gotoRouteMsg{route: domain.RouteAdmin})
	a = model.(App)
	if a.route != domain.RouteDashboard {
		t.Errorf("employee at admin route: route = %q, want dashboard", a.route)
	}
}

func TestAppSessionStartedRouting(t *testing.T) {
	t.Run("login goes to role home", func(t *testing.T) {
		a, store := newTestApp(t)
		signIn(t, store, domain.RoleAdmin)
		model, _ := a.Update(sessionStartedMsg{sess: store.Current()})
		a = model.(App)
		if a.route != domain.RouteAdmin {
			t.Errorf("route = %q, want admin", a.route)
		}
	})

	t.Run("register targets dashboard, gate decides", func(t *testing.T) {
		a, store := newTestApp(t)
		signIn(t, store, domain.RoleAdmin)
		model, _ := a.Update(sessionStartedMsg{sess: store.Current(), fromRegister: true})
		a = model.(App)
		if a.route != domain.RouteAdmin {
			t.Errorf("admin after register: route = %q, want admin home", a.route)
		}
	})

	t.Run("employee register lands on dashboard", func(t *testing.T) {
		a, store := newTestApp(t)
		signIn(t, store, domain.RoleEmployee)
		model, _ := a.Update(sessionStartedMsg{sess: store.Current(), fromRegister: true})
		a = model.(App)
		if a.route != domain.RouteDashboard {
			t.Errorf("route = %q, want dashboard", a.route)
		}
	})
}

func TestAppLogout(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, domain.RoleEmployee)
	model, _ := a.Update(gotoRouteMsg{route: domain.RouteDashboard})
	a = model.(App)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Q")})
	if cmd == nil {
		t.Fatal("expected a logout command")
	}
	if _, ok := cmd().(loggedOutMsg); !ok {
		t.Fatal("expected loggedOutMsg")
	}
	if store.Current().LoggedIn() {
		t.Error("expected session cleared")
	}

	model, _ = a.Update(loggedOutMsg{})
	a = model.(App)
	if a.route != domain.RouteLogin {
		t.Errorf("route = %q, want login", a.route)
	}
}

func TestAppQuitSuppressedWhileEditing(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, domain.RoleEmployee)

	// On the login screen every printable key is text entry.
	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	a = model.(App)
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("q on a form screen must type, not quit")
		}
	}

	model, _ = a.Update(gotoRouteMsg{route: domain.RouteDashboard})
	a = model.(App)
	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit on the dashboard")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Error("expected tea.QuitMsg on the dashboard")
	}
}

func TestAppViewShowsIdentity(t *testing.T) {
	a, store := newTestApp(t)
	signIn(t, store, domain.RoleEmployee)
	model, _ := a.Update(gotoRouteMsg{route: domain.RouteDashboard})
	a = model.(App)

	view := a.View()
	if !strings.Contains(view, "PUNCHCARD") {
		t.Error("view missing header")
	}
	if !strings.Contains(view, "Ada Lovelace") {
		t.Error("view missing user name")
	}
	if !strings.Contains(view, string(domain.RoleEmployee)) {
		t.Error("view missing role")
	}
}
