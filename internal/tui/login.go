package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/punchcardhq/punchcard/internal/forms"
	"github.com/punchcardhq/punchcard/internal/session"
	"github.com/punchcardhq/punchcard/pkg/client"
	"github.com/punchcardhq/punchcard/pkg/domain"
)

type loginField int

const (
	loginEmail loginField = iota
	loginPassword
	numLoginFields
)

// loginDoneMsg carries a failed login attempt. Successful logins emit
// sessionStartedMsg instead.
type loginDoneMsg struct {
	err error
}

type loginModel struct {
	client *client.Client
	store  *session.Store

	inputs     [numLoginFields]textinput.Model
	focus      loginField
	fieldErrs  forms.Errors
	notice     string
	submitting bool
	width      int
	height     int
}

func newLoginModel(c *client.Client, store *session.Store) loginModel {
	m := loginModel{client: c, store: store}

	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.CharLimit = 254
	email.Focus()
	m.inputs[loginEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	m.inputs[loginPassword] = password

	return m
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginDoneMsg:
		m.submitting = false
		m.notice = client.Notice(msg.err)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % numLoginFields)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus - 1 + numLoginFields) % numLoginFields)
			return m, nil
		case "enter":
			return m.submit()
		case "ctrl+n":
			return m, func() tea.Msg { return gotoRouteMsg{route: domain.RouteRegister} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *loginModel) setFocus(f loginField) {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[f].Focus()
}

// submit validates the form and, only if every field passes, issues the login
// request. A second submit while one is in flight is ignored.
func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.notice = ""

	form := forms.Login{
		Email:    strings.TrimSpace(m.inputs[loginEmail].Value()),
		Password: m.inputs[loginPassword].Value(),
	}
	if m.fieldErrs = forms.Validate(form); m.fieldErrs != nil {
		return m, nil
	}

	m.submitting = true
	c, store := m.client, m.store
	creds := client.Credentials{Email: form.Email, Password: form.Password}
	return m, func() tea.Msg {
		resp, err := c.Login(context.Background(), creds)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if err := store.Set(resp.User, resp.Token); err != nil {
			return loginDoneMsg{err: err}
		}
		return sessionStartedMsg{sess: store.Current()}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	b.WriteString(" " + selectedStyle.Render("Sign in") + "\n\n")

	labels := [numLoginFields]string{"Email", "Password"}
	fields := [numLoginFields]string{"Email", "Password"}
	for i := loginField(0); i < numLoginFields; i++ {
		cursor := " "
		if i == m.focus {
			cursor = accentStyle.Render(">")
		}
		b.WriteString(" " + cursor + " " + fieldLabelStyle.Render(padRight(labels[i], 10)) + m.inputs[i].View() + "\n")
		if msg, ok := m.fieldErrs[fields[i]]; ok {
			b.WriteString("              " + fieldErrorStyle.Render(msg) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("signing in..."))
	case m.notice != "":
		b.WriteString(" " + errorStyle.Render(m.notice))
	default:
		b.WriteString(" " + dimStyle.Render("no account yet? press ctrl+n to register"))
	}

	return b.String()
}

func (m loginModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " +
		helpEntry("enter", "sign in") + "  " +
		helpEntry("ctrl+n", "register") + "  " +
		helpEntry("ctrl+c", "quit")
}
