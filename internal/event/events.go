package event

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gatekeep-io/gatekeep/internal/approval"
)

// InsertHistoryMsg carries transcript lines for the permanent on-screen
// record. Lines are appended in order; a trailing empty string renders as a
// blank separator.
type InsertHistoryMsg struct {
	Lines []string
}

// OpMsg carries a decided operation back to whoever is waiting on the
// originating request.
type OpMsg struct {
	Op approval.Op
}

// Sender pushes outbound notifications from the modal to the host. Pushing
// never blocks the caller: the modal runs on the UI goroutine and must not
// stall even if the consumer is backed up.
type Sender struct {
	send func(tea.Msg)
}

// NewSender wraps an arbitrary delivery function. The function must not
// block; use NewChannelSender for channel-backed delivery.
func NewSender(send func(tea.Msg)) *Sender {
	return &Sender{send: send}
}

// NewChannelSender delivers into ch without ever blocking. If the channel is
// full the message is dropped.
func NewChannelSender(ch chan<- tea.Msg) *Sender {
	return &Sender{send: func(msg tea.Msg) {
		select {
		case ch <- msg:
		default:
		}
	}}
}

// InsertHistory pushes a history-insert notification.
func (s *Sender) InsertHistory(lines []string) {
	s.send(InsertHistoryMsg{Lines: lines})
}

// Op pushes an operation notification.
func (s *Sender) Op(op approval.Op) {
	s.send(OpMsg{Op: op})
}
