package bridge

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gatekeep-io/gatekeep/internal/approval"
)

// JSON-RPC types for MCP protocol
type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonRPCError   `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Tool names whose input describes a file mutation rather than a command.
var patchTools = map[string]bool{
	"Edit":         true,
	"Write":        true,
	"MultiEdit":    true,
	"NotebookEdit": true,
}

// RunMCPHandler is the entry point for the "approval-handler" subcommand.
// It implements an MCP server over stdin/stdout that bridges the agent's
// permission prompts to the main gatekeep process via HTTP.
func RunMCPHandler() error {
	port := os.Getenv("GATEKEEP_APPROVAL_PORT")
	if port == "" {
		return fmt.Errorf("GATEKEEP_APPROVAL_PORT not set")
	}

	baseURL := fmt.Sprintf("http://127.0.0.1:%s", port)

	scanner := bufio.NewScanner(os.Stdin)
	// Increase buffer for large messages
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			continue
		}

		// Notifications have no ID — don't respond
		if req.ID == nil || string(req.ID) == "null" {
			continue
		}

		resp := handleMCPRequest(req, baseURL)
		out, err := json.Marshal(resp)
		if err != nil {
			continue
		}
		fmt.Fprintf(os.Stdout, "%s\n", out)
	}

	return scanner.Err()
}

func handleMCPRequest(req jsonRPCRequest, baseURL string) jsonRPCResponse {
	switch req.Method {
	case "initialize":
		return respondResult(req.ID, map[string]any{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo": map[string]any{
				"name":    "gatekeep-auth",
				"version": "1.0.0",
			},
		})

	case "tools/list":
		return respondResult(req.ID, map[string]any{
			"tools": []map[string]any{
				{
					"name":        "request_approval",
					"description": "Ask the operator to approve a tool execution",
					"inputSchema": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"tool_name": map[string]any{
								"type":        "string",
								"description": "The tool requesting approval",
							},
							"input": map[string]any{
								"type":        "object",
								"description": "The tool input/arguments",
							},
						},
						"required": []string{"tool_name", "input"},
					},
				},
			},
		})

	case "tools/call":
		return handleToolCall(req, baseURL)

	default:
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &jsonRPCError{Code: -32601, Message: "method not found"},
		}
	}
}

func handleToolCall(req jsonRPCRequest, baseURL string) jsonRPCResponse {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return respondError(req.ID, -32602, "invalid params")
	}

	var args struct {
		ToolName string          `json:"tool_name"`
		Input    json.RawMessage `json:"input"`
	}
	if err := json.Unmarshal(params.Arguments, &args); err != nil {
		return respondError(req.ID, -32602, "invalid arguments")
	}

	httpReq := buildHTTPRequest(args.ToolName, args.Input)

	body, _ := json.Marshal(httpReq)

	resp, err := http.Post(baseURL+"/approval", "application/json", bytes.NewReader(body))
	if err != nil {
		return respondDeny(req.ID, "failed to contact approval server")
	}
	defer resp.Body.Close()

	var httpResp approvalHTTPResponse
	if err := json.NewDecoder(resp.Body).Decode(&httpResp); err != nil {
		return respondDeny(req.ID, "failed to decode approval response")
	}

	if httpResp.Decision.Allows() {
		return respondAllow(req.ID, args.Input)
	}
	if httpResp.Decision == approval.Abort {
		return respondDeny(req.ID, "Operator aborted the request")
	}
	return respondDeny(req.ID, "Operator denied the request")
}

// buildHTTPRequest maps a tool invocation onto an approval request. Shell
// tools become exec requests; file-mutation tools become patch requests.
func buildHTTPRequest(toolName string, input json.RawMessage) approvalHTTPRequest {
	var obj map[string]any
	json.Unmarshal(input, &obj)

	if patchTools[toolName] {
		reason := fmt.Sprintf("%s wants to modify files", toolName)
		if path, ok := obj["file_path"].(string); ok {
			reason = fmt.Sprintf("%s wants to modify %s", toolName, path)
		}
		return approvalHTTPRequest{Kind: "patch", Reason: reason}
	}

	cmd := extractCommand(obj, input)
	cwd, _ := obj["cwd"].(string)
	if cwd == "" {
		cwd, _ = os.Getwd()
	}
	reason, _ := obj["description"].(string)

	return approvalHTTPRequest{
		Kind:    "exec",
		Command: []string{"bash", "-lc", cmd},
		Cwd:     cwd,
		Reason:  reason,
	}
}

func extractCommand(obj map[string]any, input json.RawMessage) string {
	if obj == nil {
		return string(input)
	}

	if cmd, ok := obj["command"].(string); ok {
		return cmd
	}
	// Fallback: stringify the whole input
	parts := make([]string, 0)
	for k, v := range obj {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, " ")
}

func respondResult(id json.RawMessage, result any) jsonRPCResponse {
	data, _ := json.Marshal(result)
	return jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  data,
	}
}

func respondError(id json.RawMessage, code int, message string) jsonRPCResponse {
	return jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &jsonRPCError{Code: code, Message: message},
	}
}

func respondAllow(id json.RawMessage, updatedInput json.RawMessage) jsonRPCResponse {
	result := map[string]any{
		"content": []map[string]any{
			{
				"type": "text",
				"text": fmt.Sprintf(`{"behavior":"allow","updatedInput":%s}`, updatedInput),
			},
		},
	}
	data, _ := json.Marshal(result)
	return jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  data,
	}
}

func respondDeny(id json.RawMessage, message string) jsonRPCResponse {
	msgJSON, _ := json.Marshal(message)
	result := map[string]any{
		"content": []map[string]any{
			{
				"type": "text",
				"text": fmt.Sprintf(`{"behavior":"deny","message":%s}`, msgJSON),
			},
		},
	}
	data, _ := json.Marshal(result)
	return jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  data,
	}
}
