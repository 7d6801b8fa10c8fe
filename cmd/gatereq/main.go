package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

type approvalRequest struct {
	Kind      string   `json:"kind"`
	Command   []string `json:"command,omitempty"`
	Cwd       string   `json:"cwd,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	GrantRoot string   `json:"grant_root,omitempty"`
}

type approvalResponse struct {
	Decision string `json:"decision"`
}

// gatereq submits one approval request to a running gatekeep instance and
// blocks until the operator decides. Exit status 0 means the request was
// allowed, 1 means it was not.
func main() {
	addr := flag.String("addr", "", "address of the gatekeep approval bridge (host:port)")
	kind := flag.String("kind", "exec", "request kind: exec or patch")
	cwd := flag.String("cwd", "", "working directory for exec requests (default: current)")
	reason := flag.String("reason", "", "why the agent wants to do this")
	grantRoot := flag.String("grant-root", "", "directory to grant write access to (patch only)")
	flag.Parse()

	if *addr == "" {
		log.Fatal("--addr flag is required")
	}

	req := approvalRequest{
		Kind:      *kind,
		Reason:    *reason,
		GrantRoot: *grantRoot,
	}

	switch *kind {
	case "exec":
		if flag.NArg() == 0 {
			log.Fatal("exec requests need a command after the flags")
		}
		req.Command = flag.Args()
		req.Cwd = *cwd
		if req.Cwd == "" {
			req.Cwd, _ = os.Getwd()
		}
	case "patch":
	default:
		log.Fatalf("unknown kind %q", *kind)
	}

	body, err := json.Marshal(req)
	if err != nil {
		log.Fatalf("Failed to encode request: %v", err)
	}

	resp, err := http.Post(fmt.Sprintf("http://%s/approval", *addr), "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Failed to reach approval bridge: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Approval bridge returned %s", resp.Status)
	}

	var decision approvalResponse
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}

	fmt.Println(decision.Decision)
	if decision.Decision != "approved" && decision.Decision != "approved_for_session" {
		os.Exit(1)
	}
}
