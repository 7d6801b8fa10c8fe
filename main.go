package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/gatekeep-io/gatekeep/internal/approval"
	"github.com/gatekeep-io/gatekeep/internal/bridge"
	"github.com/gatekeep-io/gatekeep/internal/cmd"
	"github.com/gatekeep-io/gatekeep/internal/config"
	"github.com/gatekeep-io/gatekeep/internal/ui"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "edit":
			if err := cmd.RunEdit(); err != nil {
				log.Fatalf("❌ %v", err)
			}
			return
		case "reset":
			if err := cmd.RunReset(); err != nil {
				log.Fatalf("❌ %v", err)
			}
			return
		case "approval-handler":
			if err := bridge.RunMCPHandler(); err != nil {
				log.Fatalf("approval handler: %v", err)
			}
			return
		}
	}

	configPath := flag.String("config", "", "path to config file (default: platform config dir)")
	listen := flag.String("listen", "", "bridge listen address (overrides config)")
	demo := flag.Bool("demo", false, "seed a few example requests instead of waiting for an agent")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	model := ui.NewModel(cfg)

	timeout := time.Duration(cfg.RequestTimeoutMinutes) * time.Minute
	server, err := bridge.NewServer(model.StatusCh(), cfg.Listen, timeout)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	mcpPath, mcpCleanup, err := bridge.GenerateMCPConfig(server.Port())
	if err != nil {
		log.Printf("⚠️ Failed to generate MCP config: %v", err)
	} else {
		defer mcpCleanup()
		log.Printf("Approval bridge listening on %s", server.Addr())
		log.Printf("MCP config written to %s", mcpPath)
	}

	if *demo {
		go seedDemoRequests(model.StatusCh())
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Bridge shutdown: %v", err)
	}
}

// loadConfig reads the config file, writing the default template on first
// run so the user has something to edit.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	exists, existingPath, err := config.ConfigExists()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	if exists {
		return config.Load(existingPath)
	}

	if err := config.EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}
	newPath, err := config.ConfigPath()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(newPath, []byte(config.ConfigTemplate), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write default config: %w", err)
	}
	log.Printf("Wrote default config to %s", newPath)

	return config.DefaultConfig(), nil
}

// seedDemoRequests pushes a few canned requests through the same channel
// the bridge uses, so the modal flow can be exercised without an agent.
func seedDemoRequests(statusCh chan tea.Msg) {
	cwd, _ := os.Getwd()

	requests := []approval.Request{
		approval.ExecRequest{
			ID:      uuid.New().String(),
			Command: []string{"bash", "-lc", "rm -rf build/ && make all"},
			Cwd:     cwd,
			Reason:  "Rebuild the project from a clean slate",
		},
		approval.PatchRequest{
			ID:        uuid.New().String(),
			Reason:    "Update the retry policy in the HTTP client",
			GrantRoot: cwd,
		},
		approval.ExecRequest{
			ID:      uuid.New().String(),
			Command: []string{"git", "push", "origin", "main"},
			Cwd:     cwd,
		},
	}

	for _, req := range requests {
		responseCh := make(chan approval.Decision, 1)
		statusCh <- bridge.RequestMsg{Request: req, ResponseCh: responseCh}
		go func() { <-responseCh }()
		time.Sleep(200 * time.Millisecond)
	}
}
