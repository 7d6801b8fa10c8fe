package util

import (
	"os"
	"path/filepath"
	"strings"
)

// CommandDisplay returns the human-readable form of an argv. Agents commonly
// wrap shell scripts as ["bash", "-lc", script]; in that case the script is
// shown as-is. Anything else is joined with minimal shell quoting.
func CommandDisplay(command []string) string {
	if len(command) == 3 && command[0] == "bash" && (command[1] == "-lc" || command[1] == "-c") {
		return command[2]
	}

	quoted := make([]string, len(command))
	for i, tok := range command {
		quoted[i] = quoteToken(tok)
	}
	return strings.Join(quoted, " ")
}

// quoteToken single-quotes a token when it contains characters a shell would
// interpret, escaping embedded single quotes.
func quoteToken(tok string) string {
	if tok == "" {
		return "''"
	}
	if !strings.ContainsFunc(tok, needsQuoting) {
		return tok
	}
	return "'" + strings.ReplaceAll(tok, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	switch r {
	case '_', '@', '%', '+', '=', ':', ',', '.', '/', '-':
		return false
	}
	return true
}

// CommandPattern reduces an argv to a coarse glob-like pattern (first token
// plus a wildcard) used for session-wide approvals.
func CommandPattern(command []string) string {
	display := CommandDisplay(command)
	fields := strings.Fields(display)
	if len(fields) == 0 {
		return "*"
	}
	return fields[0] + " *"
}

// MatchesPattern reports whether the command's pattern equals pattern.
func MatchesPattern(command []string, pattern string) bool {
	return CommandPattern(command) == pattern
}

// DisplayPath renders path relative to the user's home directory with a ~/
// prefix when possible. If the path is not under the home directory (or the
// home directory cannot be resolved) the absolute form is returned unchanged.
func DisplayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}

	rel, err := filepath.Rel(home, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return path
	}
	return "~/" + filepath.ToSlash(rel)
}
