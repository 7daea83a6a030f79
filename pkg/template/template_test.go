package template

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFill(t *testing.T) {
	tmpl := "Summarize {{TOPIC}} for a {{AUDIENCE}} audience."
	vars := map[string]string{"TOPIC": "photosynthesis", "AUDIENCE": "beginner"}

	got := Fill(tmpl, vars)
	want := "Summarize photosynthesis for a beginner audience."
	if got != want {
		t.Errorf("Fill() = %q, want %q", got, want)
	}
}

func TestFill_MissingVariableLeftIntact(t *testing.T) {
	got := Fill("Hello {{NAME}}, welcome to {{PLACE}}.", map[string]string{"NAME": "Ada"})
	want := "Hello Ada, welcome to {{PLACE}}."
	if got != want {
		t.Errorf("Fill() = %q, want %q", got, want)
	}
}

func TestFill_EmptyValue(t *testing.T) {
	got := Fill("before {{GAP}} after", map[string]string{"GAP": ""})
	if got != "before  after" {
		t.Errorf("Fill() = %q, want %q", got, "before  after")
	}
}

func TestFill_Idempotent(t *testing.T) {
	tmpl := "{{A}} and {{B}}"
	vars := map[string]string{"A": "one"}

	once := Fill(tmpl, vars)
	twice := Fill(once, vars)
	if once != twice {
		t.Errorf("second Fill changed output: %q -> %q", once, twice)
	}
}

func TestFill_ValueContainingPlaceholderSyntax(t *testing.T) {
	// A substituted value that looks like a placeholder must not be
	// re-expanded by a later substitution pass.
	got := Fill("{{A}}", map[string]string{"A": "{{A}}"})
	if got != "{{A}}" {
		t.Errorf("Fill() = %q, want %q", got, "{{A}}")
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("{{FIRST}} then {{SECOND}} then {{FIRST}} again")
	want := []string{"FIRST", "SECOND"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders() = %v, want %v", got, want)
	}
}

func TestPlaceholders_None(t *testing.T) {
	if got := Placeholders("no placeholders here"); len(got) != 0 {
		t.Errorf("Placeholders() = %v, want empty", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.txt")
	if err := os.WriteFile(path, []byte("Answer: {{QUESTION}}"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if got != "Answer: {{QUESTION}}" {
		t.Errorf("LoadFile() = %q", got)
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	if _, err := LoadFile("/nonexistent/prompt.txt"); err == nil {
		t.Fatal("LoadFile() expected error for missing file, got nil")
	}
}
