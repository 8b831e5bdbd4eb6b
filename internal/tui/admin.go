package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/punchcardhq/punchcard/internal/export"
	"github.com/punchcardhq/punchcard/pkg/client"
	"github.com/punchcardhq/punchcard/pkg/domain"
)

// editTimeLayout is the format admins type corrected times in.
const editTimeLayout = "2006-01-02 15:04"

type employeesLoadedMsg struct {
	employees []domain.UserRecord
	err       error
}

type adminLoadedMsg struct {
	seq     int
	records []domain.AdminRecord
	err     error
}

type recordSavedMsg struct {
	err error
}

type exportDoneMsg struct {
	dest string
	err  error
}

type adminFocus int

const (
	focusEmployees adminFocus = iota
	focusRecords
)

type editField int

const (
	editCheckIn editField = iota
	editCheckOut
	numEditFields
)

// adminModel is the admin dashboard: attendance across all employees or one
// selected employee, scoped to a period, with record correction and CSV
// export. Fetches are tagged with a sequence number so a slow response for a
// superseded employee/period selection never lands.
type adminModel struct {
	client *client.Client

	employees []domain.UserRecord
	empCursor int

	periods   []domain.Period
	periodIdx int
	fetchSeq  int
	records   []domain.AdminRecord
	recCursor int
	loading   bool

	focus     adminFocus
	notice    string
	noticeErr bool

	editing      bool
	editInputs   [numEditFields]textinput.Model
	editFocus    editField
	editRecordID string
	editErr      string
	saving       bool

	width  int
	height int
}

func newAdminModel(c *client.Client, periods []domain.Period) adminModel {
	m := adminModel{
		client:   c,
		periods:  periods,
		fetchSeq: 1,
		loading:  true,
		focus:    focusRecords,
	}

	for i := editField(0); i < numEditFields; i++ {
		in := textinput.New()
		in.Placeholder = editTimeLayout
		in.CharLimit = len(editTimeLayout)
		m.editInputs[i] = in
	}

	return m
}

func (m adminModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(m.fetchSeq, m.employeeID(), m.period()),
		m.loadEmployees(),
	)
}

func (m adminModel) period() domain.Period {
	return m.periods[m.periodIdx]
}

// employeeID returns the scope of the current selection, empty for all
// employees.
func (m adminModel) employeeID() string {
	if m.empCursor == 0 || m.empCursor > len(m.employees) {
		return ""
	}
	return m.employees[m.empCursor-1].ID
}

func (m adminModel) loadEmployees() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		employees, err := c.Employees(context.Background())
		return employeesLoadedMsg{employees: employees, err: err}
	}
}

func (m adminModel) loadCmd(seq int, employeeID string, period domain.Period) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		records, err := c.AdminAttendance(context.Background(), employeeID, period)
		return adminLoadedMsg{seq: seq, records: records, err: err}
	}
}

func (m *adminModel) refetch() tea.Cmd {
	m.fetchSeq++
	m.loading = true
	return m.loadCmd(m.fetchSeq, m.employeeID(), m.period())
}

func (m adminModel) isEditing() bool {
	return m.editing
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case employeesLoadedMsg:
		if msg.err != nil {
			m.setNotice(client.Notice(msg.err), true)
			return m, nil
		}
		m.employees = msg.employees
		if m.empCursor > len(m.employees) {
			// The selected employee is gone; fall back to the all-employees
			// scope and bring the records in line with it.
			m.empCursor = 0
			return m, m.refetch()
		}
		return m, nil

	case adminLoadedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.setNotice(client.Notice(msg.err), true)
			return m, nil
		}
		m.records = msg.records
		if m.recCursor >= len(m.records) {
			m.recCursor = 0
		}
		return m, nil

	case recordSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.editErr = client.Notice(msg.err)
			return m, nil
		}
		m.editing = false
		m.setNotice("Attendance record updated!", false)
		return m, m.refetch()

	case exportDoneMsg:
		if msg.err != nil {
			m.setNotice(msg.err.Error(), true)
			return m, nil
		}
		m.setNotice("Exported to "+msg.dest, false)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEdit(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m adminModel) updateBrowse(msg tea.KeyMsg) (adminModel, tea.Cmd) {
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
		if m.focus == focusEmployees {
			m.focus = focusRecords
		} else {
			m.focus = focusEmployees
		}
		return m, nil
	case "j", "down":
		if m.focus == focusEmployees {
			if m.empCursor < len(m.employees) {
				m.empCursor++
				return m, m.refetch()
			}
		} else if m.recCursor < len(m.records)-1 {
			m.recCursor++
		}
		return m, nil
	case "k", "up":
		if m.focus == focusEmployees {
			if m.empCursor > 0 {
				m.empCursor--
				return m, m.refetch()
			}
		} else if m.recCursor > 0 {
			m.recCursor--
		}
		return m, nil
	case "enter", "e":
		if m.focus == focusRecords {
			return m.openEdit()
		}
		return m, nil
	case "x":
		return m, m.exportFile()
	case "y":
		return m, m.exportClipboard()
	case "R":
		return m, tea.Batch(m.refetch(), m.loadEmployees())
	}
	return m, nil
}

func (m adminModel) openEdit() (adminModel, tea.Cmd) {
	if len(m.records) == 0 {
		return m, nil
	}
	rec := m.records[m.recCursor]
	m.editing = true
	m.editRecordID = rec.ID
	m.editErr = ""
	m.editInputs[editCheckIn].SetValue(editTimeValue(rec.CheckInTime))
	m.editInputs[editCheckOut].SetValue(editTimeValue(rec.CheckOutTime))
	m.setEditFocus(editCheckIn)
	return m, textinput.Blink
}

func editTimeValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(editTimeLayout)
}

func (m adminModel) updateEdit(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "tab", "down", "shift+tab", "up":
		if m.editFocus == editCheckIn {
			m.setEditFocus(editCheckOut)
		} else {
			m.setEditFocus(editCheckIn)
		}
		return m, nil
	case "enter":
		return m.saveEdit()
	}

	var cmd tea.Cmd
	m.editInputs[m.editFocus], cmd = m.editInputs[m.editFocus].Update(msg)
	return m, cmd
}

func (m *adminModel) setEditFocus(f editField) {
	m.editInputs[m.editFocus].Blur()
	m.editFocus = f
	m.editInputs[f].Focus()
}

// saveEdit parses the typed times and submits the correction. Blank fields
// clear the corresponding timestamp on the record.
func (m adminModel) saveEdit() (adminModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	checkIn, err := parseEditTime(m.editInputs[editCheckIn].Value())
	if err != nil {
		m.editErr = fmt.Sprintf("Check-in time must look like %s", editTimeLayout)
		return m, nil
	}
	checkOut, err := parseEditTime(m.editInputs[editCheckOut].Value())
	if err != nil {
		m.editErr = fmt.Sprintf("Check-out time must look like %s", editTimeLayout)
		return m, nil
	}

	m.saving = true
	m.editErr = ""
	c, id := m.client, m.editRecordID
	upd := client.RecordUpdate{CheckInTime: checkIn, CheckOutTime: checkOut}
	return m, func() tea.Msg {
		return recordSavedMsg{err: c.UpdateRecord(context.Background(), id, upd)}
	}
}

func parseEditTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(editTimeLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// exportFile writes the visible records to a CSV file in the working
// directory.
func (m adminModel) exportFile() tea.Cmd {
	records := m.records
	name := fmt.Sprintf("attendance-%s.csv", m.period())
	return func() tea.Msg {
		f, err := os.Create(name)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()
		if err := export.Write(f, records); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{dest: name}
	}
}

// exportClipboard copies the visible records as CSV text.
func (m adminModel) exportClipboard() tea.Cmd {
	records := m.records
	return func() tea.Msg {
		var b strings.Builder
		if err := export.Write(&b, records); err != nil {
			return exportDoneMsg{err: err}
		}
		if err := clipboard.WriteAll(b.String()); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{dest: "clipboard"}
	}
}

func (m *adminModel) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m adminModel) View() string {
	if m.editing {
		return m.editView()
	}

	var b strings.Builder

	b.WriteString(" " + accentStyle.Render(m.period().Label()) + "  " +
		dimStyle.Render("h/l change month") + "\n\n")

	b.WriteString(m.employeesView())
	b.WriteString("\n")
	b.WriteString(m.recordsView())

	b.WriteString("\n")
	switch {
	case m.notice != "" && m.noticeErr:
		b.WriteString(" " + errorStyle.Render(m.notice) + "\n")
	case m.notice != "":
		b.WriteString(" " + successStyle.Render(m.notice) + "\n")
	}

	return b.String()
}

func (m adminModel) employeesView() string {
	var b strings.Builder

	title := "Employees"
	if m.focus == focusEmployees {
		b.WriteString(" " + selectedStyle.Render(title) + "\n")
	} else {
		b.WriteString(" " + metaStyle.Render(title) + "\n")
	}

	names := make([]string, 0, len(m.employees)+1)
	names = append(names, "All employees")
	for _, e := range m.employees {
		names = append(names, e.FullName())
	}
	for i, name := range names {
		if i == m.empCursor {
			b.WriteString("   " + selectedRowStyle.Render("> "+name) + "\n")
		} else {
			b.WriteString("     " + normalStyle.Render(name) + "\n")
		}
	}

	return b.String()
}

func (m adminModel) recordsView() string {
	var b strings.Builder

	b.WriteString(" " + tableHeaderStyle.Render(
		padRight("Employee", 20)+padRight("Date", 12)+padRight("In", 7)+
			padRight("Out", 7)+padRight("Hours", 8)+padRight("Pause", 8)+"Status") + "\n")

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
	case len(m.records) == 0:
		b.WriteString(" " + dimStyle.Render("no attendance records for this selection") + "\n")
	default:
		for i, rec := range m.records {
			row := padRight(truncStr(rec.FirstName+" "+rec.LastName, 19), 20) +
				padRight(formatDate(rec.CheckInTime), 12) +
				padRight(formatClock(rec.CheckInTime), 7) +
				padRight(formatClock(rec.CheckOutTime), 7) +
				padRight(formatHours(rec.TotalWorkHours), 8) +
				padRight(formatHours(rec.TotalPauseTime), 8)
			if m.focus == focusRecords && i == m.recCursor {
				b.WriteString(" " + selectedRowStyle.Render(row) + statusStyle(rec.Status).Render(rec.Status) + "\n")
			} else {
				b.WriteString(" " + normalStyle.Render(row) + statusStyle(rec.Status).Render(rec.Status) + "\n")
			}
		}
	}

	return b.String()
}

func (m adminModel) editView() string {
	var b strings.Builder

	b.WriteString(" " + selectedStyle.Render("Edit attendance record") + "\n\n")

	labels := [numEditFields]string{"Check-in", "Check-out"}
	for i := editField(0); i < numEditFields; i++ {
		cursor := " "
		if i == m.editFocus {
			cursor = accentStyle.Render(">")
		}
		b.WriteString(" " + cursor + " " + fieldLabelStyle.Render(padRight(labels[i], 11)) + m.editInputs[i].View() + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.saving:
		b.WriteString(" " + dimStyle.Render("saving..."))
	case m.editErr != "":
		b.WriteString(" " + errorStyle.Render(m.editErr))
	default:
		b.WriteString(" " + dimStyle.Render("blank field clears the timestamp"))
	}

	return b.String()
}

func (m adminModel) helpKeys() string {
	if m.editing {
		return helpEntry("tab", "next field") + "  " +
			helpEntry("enter", "save") + "  " +
			helpEntry("esc", "cancel")
	}
	return helpEntry("tab", "pane") + "  " +
		helpEntry("j/k", "move") + "  " +
		helpEntry("h/l", "month") + "  " +
		helpEntry("e", "edit record") + "  " +
		helpEntry("x", "export csv") + "  " +
		helpEntry("y", "copy csv") + "  " +
		helpEntry("Q", "logout")
}
