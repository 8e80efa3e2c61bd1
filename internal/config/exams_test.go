package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validCatalogYAML = `
exams:
  - id: pointers
    title: Pointers Quiz
    stat: Data
    time_limit: 120
    questions:
      - prompt: "What does & do?"
        choices: ["Dereferences", "Takes an address"]
        answer: 1
      - prompt: "What does * do in an expression?"
        choices: ["Takes an address", "Dereferences"]
        answer: 1
`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exams.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadExamCatalog(t *testing.T) {
	c, err := LoadExamCatalog(writeCatalog(t, validCatalogYAML))
	if err != nil {
		t.Fatalf("LoadExamCatalog: %v", err)
	}
	exam := c.Get("pointers")
	if exam == nil {
		t.Fatalf("exam not found")
	}
	if exam.TimeLimit != 120 || len(exam.Questions) != 2 {
		t.Fatalf("exam=%+v", exam)
	}
	if c.Get("missing") != nil {
		t.Fatalf("unknown id must return nil")
	}
}

func TestLoadExamCatalogRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		mangle  func(string) string
		wantErr string
	}{
		{
			name:    "duplicate id",
			mangle:  func(s string) string { return s + strings.ReplaceAll(s, "exams:", "") },
			wantErr: "duplicate",
		},
		{
			name:    "zero time limit",
			mangle:  func(s string) string { return strings.ReplaceAll(s, "time_limit: 120", "time_limit: 0") },
			wantErr: "time limit",
		},
		{
			name:    "single choice",
			mangle:  func(s string) string { return strings.ReplaceAll(s, `["Dereferences", "Takes an address"]`, `["Dereferences"]`) },
			wantErr: "choices",
		},
		{
			name:    "answer out of range",
			mangle:  func(s string) string { return strings.ReplaceAll(s, "answer: 1", "answer: 5") },
			wantErr: "out of range",
		},
		{
			name:    "empty id",
			mangle:  func(s string) string { return strings.ReplaceAll(s, "id: pointers", `id: ""`) },
			wantErr: "empty id",
		},
		{
			name:    "not yaml",
			mangle:  func(string) string { return "{{nope" },
			wantErr: "parse",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadExamCatalog(writeCatalog(t, tc.mangle(validCatalogYAML)))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err=%v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestResolveExamCatalog(t *testing.T) {
	t.Setenv("STUDYQUEST_EXAMS", "")

	c, err := ResolveExamCatalog("")
	if err != nil {
		t.Fatalf("ResolveExamCatalog: %v", err)
	}
	if len(c.Exams) == 0 {
		t.Fatalf("built-in catalog is empty")
	}

	path := writeCatalog(t, validCatalogYAML)
	t.Setenv("STUDYQUEST_EXAMS", path)
	c, err = ResolveExamCatalog("")
	if err != nil {
		t.Fatalf("ResolveExamCatalog(env): %v", err)
	}
	if c.Get("pointers") == nil {
		t.Fatalf("env catalog not loaded")
	}

	// An explicit path wins over the env var.
	other := writeCatalog(t, strings.ReplaceAll(validCatalogYAML, "id: pointers", "id: generics"))
	c, err = ResolveExamCatalog(other)
	if err != nil {
		t.Fatalf("ResolveExamCatalog(path): %v", err)
	}
	if c.Get("generics") == nil {
		t.Fatalf("explicit path not loaded")
	}

	if _, err := ResolveExamCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultCatalogIsValid(t *testing.T) {
	c := DefaultExamCatalog()
	if err := c.validate(); err != nil {
		t.Fatalf("built-in catalog invalid: %v", err)
	}
	for _, id := range []string{"basics", "control-flow", "concurrency"} {
		exam := c.Get(id)
		if exam == nil {
			t.Fatalf("missing built-in exam %s", id)
		}
		if len(exam.Questions) != 5 {
			t.Fatalf("exam %s has %d questions, want 5", id, len(exam.Questions))
		}
	}
}
