package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/gatekeep-io/gatekeep/internal/config"
)

// RunReset deletes the configuration file.
func RunReset() error {
	configPath, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Println("No configuration to reset.")
		return nil
	}

	fmt.Printf("This will delete: %s\n", configPath)
	fmt.Print("Are you sure? [y/N] ")

	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil || strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Reset cancelled.")
		return nil
	}

	if err := os.Remove(configPath); err != nil {
		return fmt.Errorf("failed to delete config: %w", err)
	}

	fmt.Println("✓ Configuration deleted.")
	fmt.Println("Run 'gatekeep' to set up a new configuration.")

	return nil
}
