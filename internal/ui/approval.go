package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gatekeep-io/gatekeep/internal/approval"
	"github.com/gatekeep-io/gatekeep/internal/event"
	"github.com/gatekeep-io/gatekeep/internal/util"
)

// promptLine is one logical line of the confirmation prompt. The text is
// kept unstyled so wrapped line counts can be measured; the style is applied
// per wrapped chunk at render time.
type promptLine struct {
	text  string
	style lipgloss.Style
}

// ApprovalModal prompts the user to approve or deny a pending request. It
// captures all input while visible and emits exactly one decision over its
// lifetime: first the history transcript, then the operation carrying the
// decision back to the requester.
type ApprovalModal struct {
	request approval.Request
	events  *event.Sender
	prompt  []promptLine
	options []SelectOption
	accent  lipgloss.Color

	// Currently highlighted index in the button strip.
	selected int

	// Set once a decision has been sent; the host can then discard the
	// modal. Never reset.
	done bool
}

// NewApprovalModal builds a modal for req, bound to the catalog matching the
// request's variant. Decisions are pushed through events.
func NewApprovalModal(req approval.Request, events *event.Sender, accent lipgloss.Color) *ApprovalModal {
	return &ApprovalModal{
		request: req,
		events:  events,
		prompt:  buildPrompt(req),
		options: selectOptionsFor(req),
		accent:  accent,
	}
}

func buildPrompt(req approval.Request) []promptLine {
	headStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	reasonStyle := lipgloss.NewStyle().Italic(true)

	var lines []promptLine
	switch r := req.(type) {
	case approval.ExecRequest:
		cmd := util.CommandDisplay(r.Command)
		lines = append(lines,
			promptLine{text: "agent wants to run:", style: headStyle},
			promptLine{text: fmt.Sprintf("%s$ %s", util.DisplayPath(r.Cwd), cmd)},
			promptLine{text: ""},
		)
		if r.Reason != "" {
			lines = append(lines,
				promptLine{text: r.Reason, style: reasonStyle},
				promptLine{text: ""},
			)
		}
	case approval.PatchRequest:
		if r.Reason != "" {
			lines = append(lines,
				promptLine{text: r.Reason, style: reasonStyle},
				promptLine{text: ""},
			)
		}
		if r.GrantRoot != "" {
			lines = append(lines,
				promptLine{
					text:  fmt.Sprintf("This will grant write access to %s for the remainder of this session.", r.GrantRoot),
					style: dimStyle,
				},
				promptLine{text: ""},
			)
		}
	}
	return lines
}

// HandleKey processes one key event. Bubble Tea only delivers key presses,
// and the modal captures all input while visible, so the event is always
// considered consumed whether or not it caused a transition. After the
// terminal transition every key is a no-op.
func (w *ApprovalModal) HandleKey(msg tea.KeyMsg) {
	if w.done {
		return
	}

	switch msg.Type {
	case tea.KeyLeft:
		w.selected = (w.selected + len(w.options) - 1) % len(w.options)
	case tea.KeyRight:
		w.selected = (w.selected + 1) % len(w.options)
	case tea.KeyEnter:
		w.decide(w.options[w.selected].Decision)
	case tea.KeyEsc:
		w.decide(approval.Abort)
	default:
		key := msg.String()
		for _, opt := range w.options {
			if opt.Key == key {
				w.decide(opt.Decision)
				return
			}
		}
	}
}

// Interrupt handles ctrl+c (or any external cancel signal) while the modal
// is visible. Behaves like pressing Escape: abort the request.
func (w *ApprovalModal) Interrupt() {
	w.decide(approval.Abort)
}

// IsComplete returns true once a decision has been sent and the modal no
// longer needs to be displayed.
func (w *ApprovalModal) IsComplete() bool {
	return w.done
}

// Request returns the request this modal gates.
func (w *ApprovalModal) Request() approval.Request {
	return w.request
}

func (w *ApprovalModal) decide(decision approval.Decision) {
	w.decideWithFeedback(decision, "")
}

// decideWithFeedback emits the history transcript and the operation, in that
// order, exactly once. Non-blank feedback is appended to the transcript as a
// labeled block; no caller supplies feedback today but the formatting
// contract is kept for when one does.
func (w *ApprovalModal) decideWithFeedback(decision approval.Decision, feedback string) {
	if w.done {
		return
	}

	var lines []string
	switch r := w.request.(type) {
	case approval.ExecRequest:
		lines = append(lines,
			"approval decision",
			"$ "+util.CommandDisplay(r.Command),
			fmt.Sprintf("decision: %s", decision),
		)
	case approval.PatchRequest:
		lines = append(lines, fmt.Sprintf("patch approval decision: %s", decision))
	}
	if strings.TrimSpace(feedback) != "" {
		lines = append(lines, "feedback:")
		lines = append(lines, strings.Split(feedback, "\n")...)
	}
	lines = append(lines, "")
	w.events.InsertHistory(lines)

	switch r := w.request.(type) {
	case approval.ExecRequest:
		w.events.Op(approval.ExecApproval{ID: r.ID, Decision: decision})
	case approval.PatchRequest:
		w.events.Op(approval.PatchApproval{ID: r.ID, Decision: decision})
	}

	w.done = true
}
