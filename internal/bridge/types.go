package bridge

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gatekeep-io/gatekeep/internal/approval"
)

// RequestMsg delivers an agent request to the TUI. The TUI answers by
// sending exactly one decision on ResponseCh.
type RequestMsg struct {
	Request    approval.Request
	ResponseCh chan approval.Decision
}

// Ensure RequestMsg satisfies tea.Msg (it does implicitly, but this is for documentation).
var _ tea.Msg = RequestMsg{}

// approvalHTTPRequest is the wire shape clients POST to /approval. ID is
// optional; the server assigns one when it is empty.
type approvalHTTPRequest struct {
	ID        string   `json:"id,omitempty"`
	Kind      string   `json:"kind"`
	Command   []string `json:"command,omitempty"`
	Cwd       string   `json:"cwd,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	GrantRoot string   `json:"grant_root,omitempty"`
}

// approvalHTTPResponse carries the operator's decision back to the client,
// echoing the request's identifier.
type approvalHTTPResponse struct {
	ID       string            `json:"id"`
	Decision approval.Decision `json:"decision"`
}
