package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty line", "", 10, []string{""}},
		{"fits", "hello", 10, []string{"hello"}},
		{"exact", "hello", 5, []string{"hello"}},
		{"splits", "hello world", 5, []string{"hello", " worl", "d"}},
		{"width one", "abc", 1, []string{"a", "b", "c"}},
		{"no wrapping at zero width", "hello", 0, []string{"hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLine(tt.text, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d chunks, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestDesiredHeightMonotonic(t *testing.T) {
	rec := &recorder{}
	w := execModal(rec)

	prev := w.DesiredHeight(120)
	for _, width := range []int{80, 40, 20, 10, 5, 1} {
		h := w.DesiredHeight(width)
		if h < prev {
			t.Errorf("height at width %d is %d, smaller than %d at wider width", width, h, prev)
		}
		prev = h
	}
}

func TestViewMatchesDesiredHeight(t *testing.T) {
	for _, width := range []int{120, 80, 24} {
		rec := &recorder{}
		for name, w := range map[string]*ApprovalModal{
			"exec":  execModal(rec),
			"patch": patchModal(rec),
		} {
			rows := strings.Count(w.View(width), "\n") + 1
			if want := w.DesiredHeight(width); rows != want {
				t.Errorf("%s at width %d: rendered %d rows, desired %d", name, width, rows, want)
			}
		}
	}
}

func TestViewDegenerateWidths(t *testing.T) {
	rec := &recorder{}
	w := execModal(rec)

	if got := w.View(0); got != "" {
		t.Errorf("expected empty render at zero width, got %q", got)
	}
	if got := w.View(-3); got != "" {
		t.Errorf("expected empty render at negative width, got %q", got)
	}
	// Must not panic at extreme narrowness.
	_ = w.View(1)
	_ = w.DesiredHeight(0)
}

func TestTitlePerKind(t *testing.T) {
	rec := &recorder{}

	if view := execModal(rec).View(80); !strings.Contains(view, "Allow command?") {
		t.Error("exec view missing title")
	}
	if view := patchModal(rec).View(80); !strings.Contains(view, "Apply changes?") {
		t.Error("patch view missing title")
	}
}

func TestDescriptionFollowsHighlight(t *testing.T) {
	rec := &recorder{}
	w := execModal(rec)

	if view := w.View(120); !strings.Contains(view, w.options[0].Description) {
		t.Error("expected description of first option")
	}

	w.HandleKey(tea.KeyMsg{Type: tea.KeyRight})

	view := w.View(120)
	if !strings.Contains(view, w.options[1].Description) {
		t.Error("expected description of highlighted option after Right")
	}
	if strings.Contains(view, w.options[0].Description) {
		t.Error("description of unhighlighted option should not be shown")
	}
}

func TestExecPromptShowsCommand(t *testing.T) {
	rec := &recorder{}
	w := execModal(rec)

	view := w.View(200)
	if !strings.Contains(view, "git push origin main") {
		t.Error("expected command in prompt")
	}
	if !strings.Contains(view, "publish the release branch") {
		t.Error("expected reason in prompt")
	}
}
