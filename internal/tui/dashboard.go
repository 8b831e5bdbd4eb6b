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

// periodDepth is how many past months the period selector reaches back.
const periodDepth = 11

type attendanceLoadedMsg struct {
	seq     int
	period  domain.Period
	records []domain.AttendanceRecord
	err     error
}

type actionDoneMsg struct {
	action domain.Action
	err    error
}

type profileSavedMsg struct {
	err error
}

type dashFocus int

const (
	focusTable dashFocus = iota
	focusNotifs
)

type profileField int

const (
	profFirstName profileField = iota
	profLastName
	profEmail
	numProfileFields
)

// dashModel is the employee dashboard: the attendance table for the selected
// period, the check-in/pause/resume/checkout actions, the notification feed
// and the profile editor. Attendance state is owned by the service; every
// action is followed by a re-fetch of the visible period, and responses from
// superseded fetches are discarded by sequence number.
type dashModel struct {
	client *client.Client
	store  *session.Store

	periods   []domain.Period
	periodIdx int
	fetchSeq  int
	records   []domain.AttendanceRecord
	cursor    int
	loading   bool

	notice    string
	noticeErr bool

	actionBusy bool
	focus      dashFocus
	notif      notifModel

	editing    bool
	profInputs [numProfileFields]textinput.Model
	profFocus  profileField
	profErrs   forms.Errors
	profSaving bool

	width  int
	height int
}

func newDashModel(c *client.Client, store *session.Store, periods []domain.Period) dashModel {
	m := dashModel{
		client:   c,
		store:    store,
		periods:  periods,
		fetchSeq: 1,
		loading:  true,
		notif:    newNotifModel(c),
	}

	placeholders := [numProfileFields]string{"first name", "last name", "email"}
	for i := profileField(0); i < numProfileFields; i++ {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 254
		m.profInputs[i] = in
	}

	return m
}

func (m dashModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(m.fetchSeq, m.period()),
		m.notif.load(),
	)
}

func (m dashModel) period() domain.Period {
	return m.periods[m.periodIdx]
}

// loadCmd fetches the attendance snapshot for one period. The sequence number
// tags the response so that only the latest request ever lands.
func (m dashModel) loadCmd(seq int, period domain.Period) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		records, err := c.Attendance(context.Background(), period)
		return attendanceLoadedMsg{seq: seq, period: period, records: records, err: err}
	}
}

func (m *dashModel) refetch() tea.Cmd {
	m.fetchSeq++
	m.loading = true
	return m.loadCmd(m.fetchSeq, m.period())
}

func (m dashModel) isEditing() bool {
	return m.editing
}

func (m dashModel) Update(msg tea.Msg) (dashModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case attendanceLoadedMsg:
		if msg.seq != m.fetchSeq {
			// A newer fetch is in flight or already landed.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.setNotice(client.Notice(msg.err), true)
			return m, nil
		}
		m.records = msg.records
		if m.cursor >= len(m.records) {
			m.cursor = 0
		}
		return m, nil

	case actionDoneMsg:
		m.actionBusy = false
		if msg.err != nil {
			// A rejected action means the local view was stale, so the
			// re-fetch happens either way.
			m.setNotice(client.Notice(msg.err), true)
		} else {
			m.setNotice(msg.action.Notice(), false)
		}
		return m, m.refetch()

	case profileSavedMsg:
		m.profSaving = false
		if msg.err != nil {
			m.setNotice(client.Notice(msg.err), true)
			return m, nil
		}
		m.editing = false
		m.setNotice("Profile updated successfully!", false)
		return m, nil

	case notifsLoadedMsg, notifMarkedMsg:
		var cmd tea.Cmd
		m.notif, cmd = m.notif.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			return m.updateProfile(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m dashModel) updateBrowse(msg tea.KeyMsg) (dashModel, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if m.periodIdx < len(m.periods)-1 {
			m.periodIdx++
			return m, m.refetch()
		}
		return m, nil
	case "l", "right":
		if m.periodIdx > 0 {
			m.periodIdx--
			return m, m.refetch()
		}
		return m, nil
	case "tab":
		if m.focus == focusTable {
			m.focus = focusNotifs
		} else {
			m.focus = focusTable
		}
		return m, nil
	case "c":
		return m.runAction(domain.ActionCheckIn)
	case "p":
		return m.runAction(domain.ActionPause)
	case "r":
		return m.runAction(domain.ActionResume)
	case "o":
		return m.runAction(domain.ActionCheckOut)
	case "e":
		return m.openProfile()
	case "R":
		return m, tea.Batch(m.refetch(), m.notif.load())
	}

	if m.focus == focusNotifs {
		var cmd tea.Cmd
		m.notif, cmd = m.notif.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	}
	return m, nil
}

// runAction issues one attendance command. While a command is in flight every
// further action key is ignored; the outcome message re-arms the keys and
// triggers the reconciling re-fetch.
func (m dashModel) runAction(action domain.Action) (dashModel, tea.Cmd) {
	if m.actionBusy {
		return m, nil
	}
	m.actionBusy = true
	m.clearNotice()
	c := m.client
	return m, func() tea.Msg {
		err := c.AttendanceAction(context.Background(), action)
		return actionDoneMsg{action: action, err: err}
	}
}

func (m dashModel) openProfile() (dashModel, tea.Cmd) {
	sess := m.store.Current()
	if !sess.LoggedIn() {
		return m, nil
	}
	m.editing = true
	m.profErrs = nil
	m.profInputs[profFirstName].SetValue(sess.User.FirstName)
	m.profInputs[profLastName].SetValue(sess.User.LastName)
	m.profInputs[profEmail].SetValue(sess.User.Email)
	m.setProfFocus(profFirstName)
	return m, textinput.Blink
}

func (m dashModel) updateProfile(msg tea.KeyMsg) (dashModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "tab", "down":
		m.setProfFocus((m.profFocus + 1) % numProfileFields)
		return m, nil
	case "shift+tab", "up":
		m.setProfFocus((m.profFocus - 1 + numProfileFields) % numProfileFields)
		return m, nil
	case "enter":
		return m.saveProfile()
	}

	var cmd tea.Cmd
	m.profInputs[m.profFocus], cmd = m.profInputs[m.profFocus].Update(msg)
	return m, cmd
}

func (m *dashModel) setProfFocus(f profileField) {
	m.profInputs[m.profFocus].Blur()
	m.profFocus = f
	m.profInputs[f].Focus()
}

// saveProfile validates and persists the profile. The stored session user is
// replaced only after the service accepts the update.
func (m dashModel) saveProfile() (dashModel, tea.Cmd) {
	if m.profSaving {
		return m, nil
	}

	form := forms.Profile{
		FirstName: strings.TrimSpace(m.profInputs[profFirstName].Value()),
		LastName:  strings.TrimSpace(m.profInputs[profLastName].Value()),
		Email:     strings.TrimSpace(m.profInputs[profEmail].Value()),
	}
	if m.profErrs = forms.Validate(form); m.profErrs != nil {
		return m, nil
	}

	m.profSaving = true
	c, store := m.client, m.store
	return m, func() tea.Msg {
		upd := client.ProfileUpdate{FirstName: form.FirstName, LastName: form.LastName, Email: form.Email}
		if err := c.UpdateProfile(context.Background(), upd); err != nil {
			return profileSavedMsg{err: err}
		}
		sess := store.Current()
		if sess.User != nil {
			user := *sess.User
			user.FirstName = form.FirstName
			user.LastName = form.LastName
			user.Email = form.Email
			if err := store.Set(user, sess.Token); err != nil {
				return profileSavedMsg{err: err}
			}
		}
		return profileSavedMsg{}
	}
}

func (m *dashModel) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m *dashModel) clearNotice() {
	m.notice = ""
	m.noticeErr = false
}

func (m dashModel) View() string {
	if m.editing {
		return m.profileView()
	}

	var b strings.Builder

	b.WriteString(" " + accentStyle.Render(m.period().Label()) + "  " +
		dimStyle.Render("h/l change month") + "\n\n")

	b.WriteString(" " + tableHeaderStyle.Render(
		padRight("Date", 12)+padRight("Check-In", 10)+padRight("Check-Out", 11)+
			padRight("Hours", 8)+padRight("Pause", 8)+"Status") + "\n")

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
	case len(m.records) == 0:
		b.WriteString(" " + dimStyle.Render("no attendance records for this period") + "\n")
	default:
		for i, rec := range m.records {
			row := padRight(formatDate(rec.CheckInTime), 12) +
				padRight(formatClock(rec.CheckInTime), 10) +
				padRight(formatClock(rec.CheckOutTime), 11) +
				padRight(formatHours(rec.TotalWorkHours), 8) +
				padRight(formatHours(rec.TotalPauseTime), 8)
			if m.focus == focusTable && i == m.cursor {
				b.WriteString(" " + selectedRowStyle.Render(row) + statusStyle(rec.Status).Render(rec.Status) + "\n")
			} else {
				b.WriteString(" " + normalStyle.Render(row) + statusStyle(rec.Status).Render(rec.Status) + "\n")
			}
		}
	}

	b.WriteString("\n")
	switch {
	case m.actionBusy:
		b.WriteString(" " + dimStyle.Render("working...") + "\n")
	case m.notice != "" && m.noticeErr:
		b.WriteString(" " + errorStyle.Render(m.notice) + "\n")
	case m.notice != "":
		b.WriteString(" " + successStyle.Render(m.notice) + "\n")
	default:
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.notif.View(m.width, m.focus == focusNotifs))

	return b.String()
}

func (m dashModel) profileView() string {
	var b strings.Builder

	b.WriteString(" " + selectedStyle.Render("Edit profile") + "\n\n")

	labels := [numProfileFields]string{"First name", "Last name", "Email"}
	fields := [numProfileFields]string{"FirstName", "LastName", "Email"}
	for i := profileField(0); i < numProfileFields; i++ {
		cursor := " "
		if i == m.profFocus {
			cursor = accentStyle.Render(">")
		}
		b.WriteString(" " + cursor + " " + fieldLabelStyle.Render(padRight(labels[i], 12)) + m.profInputs[i].View() + "\n")
		if msg, ok := m.profErrs[fields[i]]; ok {
			b.WriteString("                " + fieldErrorStyle.Render(msg) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.profSaving:
		b.WriteString(" " + dimStyle.Render("saving..."))
	case m.notice != "" && m.noticeErr:
		b.WriteString(" " + errorStyle.Render(m.notice))
	default:
		b.WriteString(" " + dimStyle.Render("enter to save, esc to cancel"))
	}

	return b.String()
}

func (m dashModel) helpKeys() string {
	if m.editing {
		return helpEntry("tab", "next field") + "  " +
			helpEntry("enter", "save") + "  " +
			helpEntry("esc", "cancel")
	}
	return helpEntry("c", "check in") + "  " +
		helpEntry("p", "pause") + "  " +
		helpEntry("r", "resume") + "  " +
		helpEntry("o", "check out") + "  " +
		helpEntry("h/l", "month") + "  " +
		helpEntry("tab", "notifications") + "  " +
		helpEntry("e", "profile") + "  " +
		helpEntry("Q", "logout")
}
