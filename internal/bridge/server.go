package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/gatekeep-io/gatekeep/internal/approval"
)

// Server listens on localhost for approval requests from agent-side clients
// (the MCP handler, gatereq) and forwards them to the TUI via statusCh.
type Server struct {
	listener net.Listener
	server   *http.Server
	statusCh chan<- tea.Msg
	timeout  time.Duration

	mu      sync.Mutex
	pending map[string]chan approval.Decision
}

// NewServer binds to addr and starts serving. Requests left undecided for
// longer than timeout are aborted on the operator's behalf.
func NewServer(statusCh chan<- tea.Msg, addr string, timeout time.Duration) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind approval server: %w", err)
	}

	s := &Server{
		listener: listener,
		statusCh: statusCh,
		timeout:  timeout,
		pending:  make(map[string]chan approval.Decision),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/approval", s.handleApproval)
	s.server = &http.Server{Handler: mux}

	go s.server.Serve(listener)

	return s, nil
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Addr returns the full listen address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) handleApproval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var httpReq approvalHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&httpReq); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	id := httpReq.ID
	if id == "" {
		id = uuid.New().String()
	}
	req, err := buildRequest(id, httpReq)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	responseCh := make(chan approval.Decision, 1)

	s.mu.Lock()
	s.pending[id] = responseCh
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
	}()

	// Send to TUI
	s.statusCh <- RequestMsg{Request: req, ResponseCh: responseCh}

	// Wait for the operator's decision or time out
	select {
	case decision := <-responseCh:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(approvalHTTPResponse{ID: id, Decision: decision})
	case <-time.After(s.timeout):
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(approvalHTTPResponse{ID: id, Decision: approval.Abort})
	}
}

func buildRequest(id string, httpReq approvalHTTPRequest) (approval.Request, error) {
	switch httpReq.Kind {
	case "exec":
		if len(httpReq.Command) == 0 {
			return nil, fmt.Errorf("exec request requires a command")
		}
		return approval.ExecRequest{
			ID:      id,
			Command: httpReq.Command,
			Cwd:     httpReq.Cwd,
			Reason:  httpReq.Reason,
		}, nil
	case "patch":
		return approval.PatchRequest{
			ID:        id,
			Reason:    httpReq.Reason,
			GrantRoot: httpReq.GrantRoot,
		}, nil
	}
	return nil, fmt.Errorf("unknown request kind %q", httpReq.Kind)
}

// Shutdown gracefully shuts down the server and aborts any pending requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for id, ch := range s.pending {
		ch <- approval.Abort
		delete(s.pending, id)
	}
	s.mu.Unlock()

	return s.server.Shutdown(ctx)
}
