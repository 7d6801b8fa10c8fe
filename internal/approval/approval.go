package approval

// Decision is the human's ruling on a pending request. The values match the
// wire encoding used by the HTTP bridge.
type Decision string

const (
	Approved           Decision = "approved"
	ApprovedForSession Decision = "approved_for_session"
	Denied             Decision = "denied"
	Abort              Decision = "abort"
)

// Valid reports whether d is one of the four known decisions.
func (d Decision) Valid() bool {
	switch d {
	case Approved, ApprovedForSession, Denied, Abort:
		return true
	}
	return false
}

// Allows reports whether the decision permits the gated action to proceed.
func (d Decision) Allows() bool {
	return d == Approved || d == ApprovedForSession
}

// Request is an agent-originated action awaiting a decision. It is a sealed
// union: ExecRequest and PatchRequest are the only variants, and every switch
// over a Request should handle both.
type Request interface {
	// CallID returns the identifier that the resulting Op must echo.
	CallID() string

	isRequest()
}

// ExecRequest asks to run a shell command.
type ExecRequest struct {
	ID      string
	Command []string
	Cwd     string
	Reason  string
}

// PatchRequest asks to apply a file patch. GrantRoot, when set, is a
// directory that gains write access for the remainder of the session if the
// request is approved.
type PatchRequest struct {
	ID        string
	Reason    string
	GrantRoot string
}

func (r ExecRequest) CallID() string  { return r.ID }
func (r PatchRequest) CallID() string { return r.ID }

func (ExecRequest) isRequest()  {}
func (PatchRequest) isRequest() {}

// Op is the structured operation carried back to the agent runtime once a
// decision has been made. Sealed union with two variants, matching Request.
type Op interface {
	// CallID echoes the originating request's identifier.
	CallID() string
	// Decided returns the decision the operation carries.
	Decided() Decision

	isOp()
}

// ExecApproval answers an ExecRequest.
type ExecApproval struct {
	ID       string
	Decision Decision
}

// PatchApproval answers a PatchRequest.
type PatchApproval struct {
	ID       string
	Decision Decision
}

func (o ExecApproval) CallID() string { return o.ID }
func (o PatchApproval) CallID() string { return o.ID }

func (o ExecApproval) Decided() Decision { return o.Decision }
func (o PatchApproval) Decided() Decision { return o.Decision }

func (ExecApproval) isOp()  {}
func (PatchApproval) isOp() {}
