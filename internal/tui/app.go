package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/punchcardhq/punchcard/internal/gate"
	"github.com/punchcardhq/punchcard/internal/session"
	"github.com/punchcardhq/punchcard/pkg/client"
	"github.com/punchcardhq/punchcard/pkg/domain"
)

// sessionStartedMsg is emitted after a successful login or registration, once
// the session store has persisted the new pair.
type sessionStartedMsg struct {
	sess         domain.Session
	fromRegister bool
}

// loggedOutMsg is emitted after the session store has been cleared.
type loggedOutMsg struct{}

// gotoRouteMsg asks the app to switch screens (login <-> register links).
type gotoRouteMsg struct {
	route domain.Route
}

// App is the root Bubbletea model. Every screen switch passes through the
// access gate, so a session can only ever see the screens its role allows.
type App struct {
	client *client.Client
	store  *session.Store
	route  domain.Route

	login    loginModel
	register registerModel
	dash     dashModel
	admin    adminModel

	width  int
	height int
}

// routeRole maps a screen to the role it requires. Login and register are
// public: protected is false and the gate is never consulted for them.
func routeRole(r domain.Route) (role domain.Role, protected bool) {
	switch r {
	case domain.RouteDashboard:
		return domain.RoleEmployee, true
	case domain.RouteAdmin:
		return domain.RoleAdmin, true
	}
	return "", false
}

// NewApp creates the TUI application. The starting screen comes from the
// rehydrated session: logged-out users land on login, everyone else on
// their role's home.
func NewApp(c *client.Client, store *session.Store) App {
	a := App{
		client: c,
		store:  store,
		route:  domain.RouteLogin,
	}
	a.login = newLoginModel(c, store)
	a.register = newRegisterModel(c, store)

	if sess := store.Current(); sess.LoggedIn() {
		a.route = sess.Role().Home()
	}
	return a
}

func (a App) Init() tea.Cmd {
	return a.enterRoute(a.route)
}

// navigate switches to the requested screen, letting the gate substitute the
// screen the session is actually entitled to. Public screens switch
// unconditionally.
func (a App) navigate(to domain.Route) (App, tea.Cmd) {
	if required, protected := routeRole(to); protected {
		if d := gate.Guard(required, a.store.Current()); !d.Allowed {
			to = d.Target
		}
	}
	a.route = to
	return a, a.enterRoute(to)
}

// enterRoute builds a fresh model for the screen and returns its init
// command. Screens never persist state across visits: the period selector
// and cursors always reset.
func (a *App) enterRoute(to domain.Route) tea.Cmd {
	bodySize := tea.WindowSizeMsg{Width: a.width, Height: a.bodyHeight()}
	switch to {
	case domain.RouteLogin:
		a.login = newLoginModel(a.client, a.store)
		a.login, _ = a.login.Update(bodySize)
		return a.login.Init()
	case domain.RouteRegister:
		a.register = newRegisterModel(a.client, a.store)
		a.register, _ = a.register.Update(bodySize)
		return a.register.Init()
	case domain.RouteDashboard:
		a.dash = newDashModel(a.client, a.store, domain.RecentPeriods(time.Now(), periodDepth))
		a.dash, _ = a.dash.Update(bodySize)
		return a.dash.Init()
	case domain.RouteAdmin:
		a.admin = newAdminModel(a.client, domain.RecentPeriods(time.Now(), periodDepth))
		a.admin, _ = a.admin.Update(bodySize)
		return a.admin.Init()
	}
	return nil
}

// bodyHeight is the terminal height minus chrome: header(2) + help(1).
func (a App) bodyHeight() int {
	return a.height - 3
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: a.bodyHeight()}
		a.login, _ = a.login.Update(bodyMsg)
		a.register, _ = a.register.Update(bodyMsg)
		a.dash, _ = a.dash.Update(bodyMsg)
		a.admin, _ = a.admin.Update(bodyMsg)
		return a, nil

	case sessionStartedMsg:
		// Registration always targets the employee home; login targets the
		// role home. Either way the gate has the final word.
		if msg.fromRegister {
			return a.navigate(domain.RouteDashboard)
		}
		return a.navigate(msg.sess.Role().Home())

	case loggedOutMsg:
		return a.navigate(domain.RouteLogin)

	case gotoRouteMsg:
		return a.navigate(msg.route)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if !a.isEditing() {
				return a, tea.Quit
			}
		case "Q":
			if !a.isEditing() && a.store.Current().LoggedIn() {
				return a, a.logout()
			}
		}
	}

	var cmd tea.Cmd
	switch a.route {
	case domain.RouteLogin:
		a.login, cmd = a.login.Update(msg)
	case domain.RouteRegister:
		a.register, cmd = a.register.Update(msg)
	case domain.RouteDashboard:
		a.dash, cmd = a.dash.Update(msg)
	case domain.RouteAdmin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

// logout clears the persisted session off the UI goroutine and reports back.
func (a App) logout() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		store.Clear() //nolint:errcheck // cache is cleared regardless; the next start rechecks disk
		return loggedOutMsg{}
	}
}

// isEditing reports whether the active screen owns the keyboard (text entry),
// which suppresses global single-letter keys.
func (a App) isEditing() bool {
	switch a.route {
	case domain.RouteLogin, domain.RouteRegister:
		return true
	case domain.RouteDashboard:
		return a.dash.isEditing()
	case domain.RouteAdmin:
		return a.admin.isEditing()
	}
	return false
}

func (a App) View() string {
	header := " " + logoStyle.Render("PUNCHCARD")
	if sess := a.store.Current(); sess.LoggedIn() {
		header += "  " + metaStyle.Render(sess.User.FullName()+" · "+string(sess.User.Role))
	}
	header += "\n"

	var body, help string
	switch a.route {
	case domain.RouteLogin:
		body = a.login.View()
		help = " " + a.login.helpKeys()
	case domain.RouteRegister:
		body = a.register.View()
		help = " " + a.register.helpKeys()
	case domain.RouteDashboard:
		body = a.dash.View()
		help = " " + a.dash.helpKeys()
	case domain.RouteAdmin:
		body = a.admin.View()
		help = " " + a.admin.helpKeys()
	}

	body = truncateToHeight(body, a.bodyHeight())
	return header + "\n" + body + "\n" + help
}
