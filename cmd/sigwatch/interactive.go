package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	signalhost "github.com/wippyai/signal-host"
	"github.com/wippyai/signal-host/resource"
	"github.com/wippyai/signal-host/signal"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	boundStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	eventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxEventRows = 12

type watchEntry struct {
	rid   resource.Handle
	signo int
}

type interactiveModel struct {
	host   *signalhost.Host
	input  textinput.Model
	bound  map[resource.Handle]watchEntry
	events []string
	errMsg string
}

// deliveryMsg reports the outcome of one poll on a bound handle.
type deliveryMsg struct {
	err       error
	rid       resource.Handle
	signo     int
	delivered bool
}

func runInteractive(host *signalhost.Host) error {
	input := textinput.New()
	input.Placeholder = "bind HUP | unbind <rid> | quit"
	input.Focus()
	input.CharLimit = 64

	m := interactiveModel{
		host:  host,
		input: input,
		bound: make(map[resource.Handle]watchEntry),
	}

	_, err := tea.NewProgram(m).Run()
	return err
}

func (m interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

// pollCmd waits for the next delivery on a handle in the background.
func (m interactiveModel) pollCmd(rid resource.Handle, signo int) tea.Cmd {
	return func() tea.Msg {
		delivered, err := m.host.Manager().Poll(context.Background(), rid)
		return deliveryMsg{rid: rid, signo: signo, delivered: delivered, err: err}
	}
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.host.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.execute(strings.TrimSpace(m.input.Value()))
		}

	case deliveryMsg:
		if msg.err != nil {
			// The wait ended because the handle went away under a
			// concurrent unbind; drop the row quietly.
			delete(m.bound, msg.rid)
			return m, nil
		}
		if !msg.delivered {
			delete(m.bound, msg.rid)
			m.pushEvent(fmt.Sprintf("%s closed (rid %d)", signal.Name(msg.signo), msg.rid))
			return m, nil
		}
		m.pushEvent(fmt.Sprintf("%s delivered (rid %d)", signal.Name(msg.signo), msg.rid))
		// Re-arm for the next occurrence.
		return m, m.pollCmd(msg.rid, msg.signo)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m interactiveModel) execute(line string) (tea.Model, tea.Cmd) {
	m.input.SetValue("")
	m.errMsg = ""
	if line == "" {
		return m, nil
	}

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "quit", "q":
		m.host.Close()
		return m, tea.Quit

	case "bind", "b":
		if len(fields) != 2 {
			m.errMsg = "usage: bind <signal>"
			return m, nil
		}
		signo, err := parseSignal(fields[1])
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		rid, err := m.host.Manager().Bind(signo)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.bound[rid] = watchEntry{rid: rid, signo: signo}
		m.pushEvent(fmt.Sprintf("%s bound (rid %d)", signal.Name(signo), rid))
		return m, m.pollCmd(rid, signo)

	case "unbind", "u":
		if len(fields) != 2 {
			m.errMsg = "usage: unbind <rid>"
			return m, nil
		}
		var rid uint32
		if _, err := fmt.Sscanf(fields[1], "%d", &rid); err != nil {
			m.errMsg = "rid must be a number"
			return m, nil
		}
		if err := m.host.Manager().Unbind(resource.Handle(rid)); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		return m, nil

	default:
		m.errMsg = fmt.Sprintf("unknown command %q", fields[0])
		return m, nil
	}
}

func (m *interactiveModel) pushEvent(line string) {
	m.events = append(m.events, line)
	if len(m.events) > maxEventRows {
		m.events = m.events[len(m.events)-maxEventRows:]
	}
}

func (m interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sigwatch"))
	b.WriteString("\n\n")

	if len(m.bound) == 0 {
		b.WriteString(helpStyle.Render("no signals bound"))
		b.WriteString("\n")
	} else {
		entries := make([]watchEntry, 0, len(m.bound))
		for _, e := range m.bound {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].rid < entries[j].rid })
		for _, e := range entries {
			b.WriteString(boundStyle.Render(
				fmt.Sprintf("  rid %-3d %s", e.rid, signal.Name(e.signo))))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	for _, ev := range m.events {
		b.WriteString(eventStyle.Render("  " + ev))
		b.WriteString("\n")
	}
	if len(m.events) > 0 {
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("  " + m.errMsg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: run command • esc: quit"))
	b.WriteString("\n")

	return b.String()
}
