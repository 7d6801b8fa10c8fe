package config

// ConfigTemplate is the default configuration written on first setup.
const ConfigTemplate = `# gatekeep configuration

# Bind address for the approval bridge. Port 0 picks a free port.
listen: "127.0.0.1:0"

# How long a bridge client waits for a decision before its request is
# aborted on the operator's behalf.
request_timeout_minutes: 5

# ANSI-256 color for the modal accent bar and highlighted button.
accent_color: "39"

# Transcript lines kept in memory.
history_lines: 500

# Command patterns approved without prompting. A pattern is the first
# command token followed by " *".
auto_approve:
  - "ls *"
  - "cat *"
  - "git status *"
`

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Listen:                "127.0.0.1:0",
		RequestTimeoutMinutes: 5,
		AccentColor:           "39",
		HistoryLines:          500,
		AutoApprove: []string{
			"ls *",
			"cat *",
			"git status *",
		},
	}
}
