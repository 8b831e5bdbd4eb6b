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

type registerField int

const (
	regFirstName registerField = iota
	regLastName
	regEmail
	regPassword
	regConfirm
	numRegisterFields
)

type registerDoneMsg struct {
	err error
}

type registerModel struct {
	client *client.Client
	store  *session.Store

	inputs     [numRegisterFields]textinput.Model
	focus      registerField
	fieldErrs  forms.Errors
	notice     string
	submitting bool
	width      int
	height     int
}

func newRegisterModel(c *client.Client, store *session.Store) registerModel {
	m := registerModel{client: c, store: store}

	placeholders := [numRegisterFields]string{"Jane", "Doe", "you@company.com", "password", "repeat password"}
	for i := registerField(0); i < numRegisterFields; i++ {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 128
		if i == regEmail {
			in.CharLimit = 254
		}
		if i == regPassword || i == regConfirm {
			in.EchoMode = textinput.EchoPassword
		}
		m.inputs[i] = in
	}
	m.inputs[regFirstName].Focus()

	return m
}

func (m registerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case registerDoneMsg:
		m.submitting = false
		m.notice = client.Notice(msg.err)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % numRegisterFields)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus - 1 + numRegisterFields) % numRegisterFields)
			return m, nil
		case "enter":
			return m.submit()
		case "ctrl+n":
			return m, func() tea.Msg { return gotoRouteMsg{route: domain.RouteLogin} }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *registerModel) setFocus(f registerField) {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[f].Focus()
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.notice = ""

	form := forms.Register{
		FirstName:       strings.TrimSpace(m.inputs[regFirstName].Value()),
		LastName:        strings.TrimSpace(m.inputs[regLastName].Value()),
		Email:           strings.TrimSpace(m.inputs[regEmail].Value()),
		Password:        m.inputs[regPassword].Value(),
		ConfirmPassword: m.inputs[regConfirm].Value(),
	}
	if m.fieldErrs = forms.Validate(form); m.fieldErrs != nil {
		return m, nil
	}

	m.submitting = true
	c, store := m.client, m.store
	// ConfirmPassword is checked locally and never leaves the client.
	reg := client.Registration{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	}
	return m, func() tea.Msg {
		resp, err := c.Register(context.Background(), reg)
		if err != nil {
			return registerDoneMsg{err: err}
		}
		if err := store.Set(resp.User, resp.Token); err != nil {
			return registerDoneMsg{err: err}
		}
		return sessionStartedMsg{sess: store.Current(), fromRegister: true}
	}
}

func (m registerModel) View() string {
	var b strings.Builder

	b.WriteString(" " + selectedStyle.Render("Create account") + "\n\n")

	labels := [numRegisterFields]string{"First name", "Last name", "Email", "Password", "Confirm"}
	fields := [numRegisterFields]string{"FirstName", "LastName", "Email", "Password", "ConfirmPassword"}
	for i := registerField(0); i < numRegisterFields; i++ {
		cursor := " "
		if i == m.focus {
			cursor = accentStyle.Render(">")
		}
		b.WriteString(" " + cursor + " " + fieldLabelStyle.Render(padRight(labels[i], 12)) + m.inputs[i].View() + "\n")
		if msg, ok := m.fieldErrs[fields[i]]; ok {
			b.WriteString("                " + fieldErrorStyle.Render(msg) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("creating account..."))
	case m.notice != "":
		b.WriteString(" " + errorStyle.Render(m.notice))
	default:
		b.WriteString(" " + dimStyle.Render("already registered? press ctrl+n to sign in"))
	}

	return b.String()
}

func (m registerModel) helpKeys() string {
	return helpEntry("tab", "next field") + "  " +
		helpEntry("enter", "create account") + "  " +
		helpEntry("ctrl+n", "sign in") + "  " +
		helpEntry("ctrl+c", "quit")
}
