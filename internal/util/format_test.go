package util

import "testing"

func TestCommandDisplay(t *testing.T) {
	tests := []struct {
		name    string
		command []string
		want    string
	}{
		{"shell wrapper", []string{"bash", "-lc", "rm -rf build && make"}, "rm -rf build && make"},
		{"shell wrapper short flag", []string{"bash", "-c", "echo hi"}, "echo hi"},
		{"plain argv", []string{"git", "push", "origin", "main"}, "git push origin main"},
		{"quoted token", []string{"echo", "hello world"}, "echo 'hello world'"},
		{"embedded quote", []string{"echo", "it's"}, `echo 'it'\''s'`},
		{"empty token", []string{"printf", ""}, "printf ''"},
		{"safe punctuation", []string{"ls", "-la", "./src"}, "ls -la ./src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommandDisplay(tt.command); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCommandPattern(t *testing.T) {
	tests := []struct {
		name    string
		command []string
		want    string
	}{
		{"plain", []string{"git", "status"}, "git *"},
		{"shell wrapper", []string{"bash", "-lc", "npm install"}, "npm *"},
		{"single token", []string{"make"}, "make *"},
		{"empty", nil, "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommandPattern(tt.command); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMatchesPattern(t *testing.T) {
	if !MatchesPattern([]string{"git", "push"}, "git *") {
		t.Error("expected git push to match git *")
	}
	if MatchesPattern([]string{"rm", "-rf", "/"}, "git *") {
		t.Error("rm must not match git *")
	}
}

func TestDisplayPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"under home", "/home/tester/projects/app", "~/projects/app"},
		{"home itself", "/home/tester", "/home/tester"},
		{"outside home", "/srv/app", "/srv/app"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayPath(tt.path); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
