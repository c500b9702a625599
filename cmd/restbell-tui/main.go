// restbell-tui is a terminal surface for a running restbell server.
//
// It renders the shared rest timer and the quick-rest chips, sends commands
// over the REST API and consumes the server's event stream, so the countdown
// it shows is always the server's countdown.
//
// Usage:
//
//	restbell-tui [flags]
//
// Flags:
//
//	-addr string  Base URL of the restbell server (default "http://localhost:8080")
//	-key string   API key for timer commands (or RESTBELL_API_KEY)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/claude/restbell/internal/preset"
	"github.com/claude/restbell/internal/timer"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "base URL of the restbell server")
	key := flag.String("key", os.Getenv("RESTBELL_API_KEY"), "API key for timer commands")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := newClient(*addr, *key)

	chips, err := c.presets(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "restbell-tui: %v\n", err)
		os.Exit(1)
	}
	events, err := c.stream(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "restbell-tui: %v\n", err)
		os.Exit(1)
	}

	m := model{client: c, chips: chips, events: events, ctx: ctx}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "restbell-tui: %v\n", err)
		os.Exit(1)
	}
}

// --- Messages ---

// eventMsg wraps one timer event from the server stream.
type eventMsg timer.Event

// streamClosedMsg means the event stream ended; the UI shows a disconnect.
type streamClosedMsg struct{}

// cmdErrMsg carries a failed command so the status line can show it.
type cmdErrMsg struct{ err error }

// --- Model ---

type model struct {
	client *client
	chips  []preset.Preset
	events <-chan timer.Event
	ctx    context.Context

	last      timer.Event
	haveState bool
	lostLink  bool
	errText   string
}

func (m model) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent blocks on the stream and feeds the next event into the
// update loop. Re-issued after every received event.
func (m model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return streamClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m model) command(path string, body any) tea.Cmd {
	return func() tea.Msg {
		if err := m.client.post(m.ctx, path, body); err != nil {
			return cmdErrMsg{err: err}
		}
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.last = timer.Event(msg)
		m.haveState = true
		m.errText = ""
		return m, tea.Batch(m.waitForEvent(), ringBell(m.last.Cues))

	case streamClosedMsg:
		m.lostLink = true
		return m, nil

	case cmdErrMsg:
		m.errText = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			return m, m.command("start", nil)
		case "p":
			return m, m.command("pause", nil)
		case "x":
			return m, m.command("stop", nil)
		case "o":
			return m, m.command("panel", map[string]bool{"visible": !m.last.State.PanelVisible})
		case "1", "2", "3", "4", "5":
			i := int(msg.String()[0] - '1')
			if i < len(m.chips) {
				return m, m.command("quickstart", map[string]int{"seconds": m.chips[i].Seconds})
			}
		}
	}
	return m, nil
}

// ringBell sounds the terminal bell once per audio cue in the event. The
// bell is the only audio device a terminal has; tone distinctions are lost
// but the rhythm survives.
func ringBell(cues []timer.Cue) tea.Cmd {
	if len(cues) == 0 {
		return nil
	}
	return func() tea.Msg {
		for range cues {
			fmt.Fprint(os.Stderr, "\a")
		}
		return nil
	}
}

// --- View ---

var (
	displayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	doneStyle = displayStyle.
			Foreground(lipgloss.Color("196")).
			BorderForeground(lipgloss.Color("196"))

	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			MarginRight(1)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m model) View() string {
	if m.lostLink {
		return dimStyle.Render("\n  connection to server lost — q to quit\n")
	}
	if !m.haveState {
		return dimStyle.Render("\n  waiting for timer state…\n")
	}

	st := m.last.State
	box := displayStyle
	if st.RemainingSeconds == 0 && st.Running {
		box = doneStyle
	}
	display := box.Render(m.last.Display)

	var chips string
	for i, p := range m.chips {
		chips += chipStyle.Render(fmt.Sprintf("%d %s", i+1, p.Label))
	}

	mode := "paused"
	if st.Running {
		mode = "counting"
	}
	if st.RemainingSeconds == 0 && st.Running {
		mode = "done"
	}
	statusLine := dimStyle.Render(fmt.Sprintf("%s  •  s start  p pause  x stop  1-%d rest  o panel  q quit", mode, len(m.chips)))
	if m.errText != "" {
		statusLine = dimStyle.Render("error: " + m.errText)
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		"",
		display,
		"",
		chips,
		"",
		statusLine,
	)
	if st.PanelVisible {
		view = lipgloss.JoinVertical(lipgloss.Left, view, "", m.panelView())
	}
	return view + "\n"
}

// panelView is the expanded control panel: the same state with more words.
func (m model) panelView() string {
	st := m.last.State
	return dimStyle.Render(fmt.Sprintf(
		"remaining %ds  running %t  (panel open — o to close)",
		st.RemainingSeconds, st.Running,
	))
}
