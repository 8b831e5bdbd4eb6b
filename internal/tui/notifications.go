package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/punchcardhq/punchcard/pkg/client"
	"github.com/punchcardhq/punchcard/pkg/domain"
)

type notifsLoadedMsg struct {
	notifs []domain.Notification
	err    error
}

type notifMarkedMsg struct {
	id  string
	err error
}

// notifModel is the unread-notification feed embedded in the employee
// dashboard. It only ever holds unread entries; marking one read removes it
// from the list once the service confirms.
type notifModel struct {
	client *client.Client

	notifs       []domain.Notification
	cursor       int
	loading      bool
	markInFlight bool
	notice       string
}

func newNotifModel(c *client.Client) notifModel {
	return notifModel{client: c, loading: true}
}

func (m notifModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		notifs, err := c.Notifications(context.Background())
		return notifsLoadedMsg{notifs: notifs, err: err}
	}
}

func (m notifModel) Update(msg tea.Msg) (notifModel, tea.Cmd) {
	switch msg := msg.(type) {
	case notifsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.notice = client.Notice(msg.err)
			return m, nil
		}
		m.notice = ""
		m.notifs = nil
		for _, n := range msg.notifs {
			if !n.Read {
				m.notifs = append(m.notifs, n)
			}
		}
		m.clampCursor()
		return m, nil

	case notifMarkedMsg:
		m.markInFlight = false
		if msg.err != nil {
			m.notice = client.Notice(msg.err)
			return m, nil
		}
		m.notice = ""
		for i, n := range m.notifs {
			if n.ID == msg.id {
				m.notifs = append(m.notifs[:i], m.notifs[i+1:]...)
				break
			}
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.notifs)-1 {
				m.cursor++
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "enter", "m":
			return m.markRead()
		}
	}
	return m, nil
}

// markRead dismisses the selected notification. The entry stays in the list
// until the service acknowledges, and is kept if the call fails.
func (m notifModel) markRead() (notifModel, tea.Cmd) {
	if m.markInFlight || len(m.notifs) == 0 {
		return m, nil
	}
	m.markInFlight = true
	c, id := m.client, m.notifs[m.cursor].ID
	return m, func() tea.Msg {
		err := c.MarkNotificationRead(context.Background(), id)
		return notifMarkedMsg{id: id, err: err}
	}
}

func (m *notifModel) clampCursor() {
	if m.cursor >= len(m.notifs) {
		m.cursor = len(m.notifs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m notifModel) View(width int, focused bool) string {
	var b strings.Builder

	title := fmt.Sprintf("Notifications (%d)", len(m.notifs))
	if focused {
		b.WriteString(" " + selectedStyle.Render(title) + "\n")
	} else {
		b.WriteString(" " + metaStyle.Render(title) + "\n")
	}

	switch {
	case m.loading:
		b.WriteString("   " + dimStyle.Render("loading...") + "\n")
	case m.notice != "":
		b.WriteString("   " + errorStyle.Render(m.notice) + "\n")
	case len(m.notifs) == 0:
		b.WriteString("   " + dimStyle.Render("all caught up") + "\n")
	default:
		for i, n := range m.notifs {
			line := truncStr(n.Message, width-6)
			if focused && i == m.cursor {
				b.WriteString("   " + selectedRowStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString("     " + normalStyle.Render(line) + "\n")
			}
		}
	}

	return b.String()
}
