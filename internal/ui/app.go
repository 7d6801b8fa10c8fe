package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gatekeep-io/gatekeep/internal/approval"
	"github.com/gatekeep-io/gatekeep/internal/bridge"
	"github.com/gatekeep-io/gatekeep/internal/config"
	"github.com/gatekeep-io/gatekeep/internal/event"
	"github.com/gatekeep-io/gatekeep/internal/util"
)

// Model is the top-level TUI: a scrolling transcript of past decisions with
// at most one approval modal active at a time. Requests arriving while a
// modal is up are queued in arrival order.
type Model struct {
	cfg      *config.Config
	statusCh chan tea.Msg
	events   *event.Sender
	accent   lipgloss.Color

	termWidth  int
	termHeight int
	ready      bool
	transcript viewport.Model
	history    []string

	current *ApprovalModal
	queue   []bridge.RequestMsg
	pending map[string]chan approval.Decision

	// Commands of pending exec requests, kept so an approved-for-session
	// decision can be turned into a pattern after the modal is gone.
	pendingCmds map[string][]string

	// Command patterns approved for the remainder of this session.
	sessionPatterns map[string]bool

	lastCommand string
}

// NewModel builds the dashboard. StatusCh is the channel the bridge server
// and the modal's event sender both feed into.
func NewModel(cfg *config.Config) *Model {
	statusCh := make(chan tea.Msg, 100)
	return &Model{
		cfg:             cfg,
		statusCh:        statusCh,
		events:          event.NewChannelSender(statusCh),
		accent:          lipgloss.Color(cfg.AccentColor),
		pending:         make(map[string]chan approval.Decision),
		pendingCmds:     make(map[string][]string),
		sessionPatterns: make(map[string]bool),
	}
}

// StatusCh exposes the message channel so the bridge server (and the demo
// seeder) can deliver requests into the Update loop.
func (m *Model) StatusCh() chan tea.Msg {
	return m.statusCh
}

func (m *Model) Init() tea.Cmd {
	return listenForStatus(m.statusCh)
}

// listenForStatus pumps one message from the status channel into bubbletea.
func listenForStatus(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		if !m.ready {
			m.transcript = viewport.New(msg.Width, 1)
			m.ready = true
		}
		m.layout()
		return m, nil

	case bridge.RequestMsg:
		return m.handleRequest(msg)

	case event.InsertHistoryMsg:
		m.appendHistory(msg.Lines...)
		return m, listenForStatus(m.statusCh)

	case event.OpMsg:
		m.dispatchOp(msg.Op)
		return m, listenForStatus(m.statusCh)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleRequest(msg bridge.RequestMsg) (tea.Model, tea.Cmd) {
	if exec, ok := msg.Request.(approval.ExecRequest); ok {
		m.lastCommand = util.CommandDisplay(exec.Command)
		if pattern := util.CommandPattern(exec.Command); m.sessionPatterns[pattern] || m.cfg.AutoApproved(pattern) {
			msg.ResponseCh <- approval.Approved
			m.appendHistory(
				fmt.Sprintf("auto-approved: %s", m.lastCommand),
				"",
			)
			return m, listenForStatus(m.statusCh)
		}
	}

	m.pending[msg.Request.CallID()] = msg.ResponseCh
	if exec, ok := msg.Request.(approval.ExecRequest); ok {
		m.pendingCmds[exec.ID] = exec.Command
	}
	m.queue = append(m.queue, msg)
	if m.current == nil {
		m.promoteNext()
	}
	return m, listenForStatus(m.statusCh)
}

// dispatchOp forwards the operator's decision to the waiting bridge client
// and records session-wide approvals.
func (m *Model) dispatchOp(op approval.Op) {
	ch, ok := m.pending[op.CallID()]
	if !ok {
		return
	}
	delete(m.pending, op.CallID())
	ch <- op.Decided()

	cmd, hadCmd := m.pendingCmds[op.CallID()]
	delete(m.pendingCmds, op.CallID())

	if op.Decided() == approval.ApprovedForSession && hadCmd {
		m.sessionPatterns[util.CommandPattern(cmd)] = true
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.current != nil {
		if msg.String() == "ctrl+c" {
			m.current.Interrupt()
		} else {
			m.current.HandleKey(msg)
		}
		if m.current.IsComplete() {
			m.current = nil
			m.promoteNext()
		}
		m.layout()
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "c":
		if m.lastCommand != "" {
			clipboard.WriteAll(m.lastCommand)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.transcript, cmd = m.transcript.Update(msg)
	return m, cmd
}

// promoteNext pops the oldest queued request into a fresh modal.
func (m *Model) promoteNext() {
	if len(m.queue) == 0 {
		return
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	m.current = NewApprovalModal(next.Request, m.events, m.accent)
	m.layout()
}

func (m *Model) appendHistory(lines ...string) {
	m.history = append(m.history, lines...)
	if limit := m.cfg.HistoryLines; limit > 0 && len(m.history) > limit {
		m.history = m.history[len(m.history)-limit:]
	}
	if m.ready {
		m.transcript.SetContent(strings.Join(m.history, "\n"))
		m.transcript.GotoBottom()
	}
}

// layout resizes the transcript so the modal region below it gets exactly
// the height it asks for.
func (m *Model) layout() {
	if !m.ready {
		return
	}

	// Header, separator, help line.
	chrome := 3
	modalHeight := 0
	if m.current != nil {
		modalHeight = m.current.DesiredHeight(m.termWidth) + 1
	}

	h := m.termHeight - chrome - modalHeight
	if h < 1 {
		h = 1
	}
	m.transcript.Width = m.termWidth
	m.transcript.Height = h
}

func (m *Model) View() string {
	if !m.ready {
		return "starting..."
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.accent)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("gatekeep"))
	if n := len(m.queue); n > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d queued)", n)))
	}
	b.WriteString("\n")

	b.WriteString(m.transcript.View())
	b.WriteString("\n")

	if m.current != nil {
		b.WriteString(m.current.View(m.termWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + strings.Join(m.helpHints(), dimStyle.Render("  •  ")))
	return b.String()
}

func (m *Model) helpHints() []string {
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var hints []string
	if m.current != nil {
		hints = append(hints,
			helpStyle.Render("←→: choose"),
			helpStyle.Render("enter: confirm"),
			helpStyle.Render("esc: abort"),
		)
	} else {
		hints = append(hints, helpStyle.Render("↑↓: scroll"))
		if m.lastCommand != "" {
			hints = append(hints, helpStyle.Render("c: copy last command"))
		}
		hints = append(hints, helpStyle.Render("q: quit"))
	}
	return hints
}
