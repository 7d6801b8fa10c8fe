package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gatekeep-io/gatekeep/internal/approval"
)

// wrapLine hard-wraps text into chunks of at most width runes. An empty line
// yields one empty chunk so blank prompt lines keep their vertical space.
// Non-positive widths disable wrapping.
func wrapLine(text string, width int) []string {
	if width <= 0 || len([]rune(text)) <= width {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > width {
		chunks = append(chunks, string(runes[:width]))
		runes = runes[width:]
	}
	return append(chunks, string(runes))
}

// promptHeight counts the terminal rows the prompt occupies at the given
// width.
func (w *ApprovalModal) promptHeight(width int) int {
	n := 0
	for _, line := range w.prompt {
		n += len(wrapLine(line.text, width))
	}
	return n
}

// DesiredHeight reports how many rows the modal needs at the given width:
// the wrapped prompt plus one row per catalog entry for the response region.
// The host sizes the reserved region with this before calling View.
func (w *ApprovalModal) DesiredHeight(width int) int {
	return w.promptHeight(width) + len(w.options)
}

// View renders the modal at the given width. The prompt comes first, then
// the response region: a title, the button strip, and the highlighted
// option's description, each behind a vertical accent bar. The response
// region is clipped to one row per catalog entry so the output occupies
// exactly DesiredHeight(width) rows.
func (w *ApprovalModal) View(width int) string {
	if width <= 0 {
		return ""
	}

	var rows []string
	for _, line := range w.prompt {
		for _, chunk := range wrapLine(line.text, width) {
			rows = append(rows, line.style.Render(chunk))
		}
	}

	bar := lipgloss.NewStyle().Foreground(w.accent).Render("▌") + " "
	titleStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("243"))

	response := []string{
		bar + titleStyle.Render(w.title()),
		bar + w.renderButtons(),
		bar + descStyle.Render(w.options[w.selected].Description),
	}
	if len(response) > len(w.options) {
		response = response[:len(w.options)]
	}
	rows = append(rows, response...)

	return strings.Join(rows, "\n")
}

func (w *ApprovalModal) title() string {
	switch w.request.(type) {
	case approval.PatchRequest:
		return "Apply changes?"
	}
	return "Allow command?"
}

// renderButtons draws the option labels side by side. The selected button is
// inverted in the accent color; the shortcut glyph (first rune of the label)
// is underlined on every button.
func (w *ApprovalModal) renderButtons() string {
	selectedStyle := lipgloss.NewStyle().Background(w.accent).Foreground(lipgloss.Color("0"))
	normalStyle := lipgloss.NewStyle().Background(lipgloss.Color("237")).Foreground(lipgloss.Color("252"))

	parts := make([]string, 0, len(w.options))
	for i, opt := range w.options {
		style := normalStyle
		if i == w.selected {
			style = selectedStyle
		}
		runes := []rune(opt.Label)
		head := style.Underline(true).Render(" " + string(runes[0]))
		tail := style.Render(string(runes[1:]) + " ")
		parts = append(parts, head+tail)
	}
	return strings.Join(parts, " ")
}
