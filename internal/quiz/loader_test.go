package quiz_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/p-n-ai/pathfinder/internal/quiz"
)

func TestDefault(t *testing.T) {
	bank, err := quiz.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if bank.Len() != 13 {
		t.Errorf("Len() = %d, want 13", bank.Len())
	}
	if got := bank.Question(0).Gate; got != quiz.GateEducation {
		t.Errorf("Question(0).Gate = %q, want education", got)
	}
	if got := bank.Question(bank.Len() - 1).Gate; got != quiz.GateAge {
		t.Errorf("last question gate = %q, want age", got)
	}

	lowTiers := 0
	for _, o := range bank.Question(0).Options {
		if o.LowTier() {
			lowTiers++
		}
	}
	if lowTiers != 1 {
		t.Errorf("education question has %d low-tier options, want 1", lowTiers)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.yaml")
	os.WriteFile(path, []byte(`
questions:
  - id: dest
    text: Where next?
    options:
      - label: Myanmar
        scores: { myanmar: 3 }
        profile: { study_destination: MYANMAR }
      - label: Anywhere
`), 0o644)

	bank, err := quiz.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if bank.Len() != 1 {
		t.Errorf("Len() = %d, want 1", bank.Len())
	}
	opt, ok := bank.Option(0, "Myanmar")
	if !ok {
		t.Fatal("Option(0, Myanmar) not found")
	}
	if opt.Points(quiz.Myanmar) != 3 {
		t.Errorf("Points(myanmar) = %d, want 3", opt.Points(quiz.Myanmar))
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := quiz.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadFile() should fail for a missing file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "not yaml",
			doc:     "questions: [",
			wantErr: "parsing",
		},
		{
			name:    "no questions",
			doc:     "questions: []",
			wantErr: "validation failed",
		},
		{
			name: "negative score",
			doc: `
questions:
  - id: q
    text: Q
    options:
      - label: A
        scores: { ged: -1 }
`,
			wantErr: "validation failed",
		},
		{
			name: "empty label",
			doc: `
questions:
  - id: q
    text: Q
    options:
      - label: ""
`,
			wantErr: "validation failed",
		},
		{
			name: "unknown gate",
			doc: `
questions:
  - id: q
    text: Q
    gate: income
    options:
      - label: A
`,
			wantErr: "validation failed",
		},
		{
			name: "duplicate id",
			doc: `
questions:
  - id: q
    text: Q
    options: [{ label: A }]
  - id: q
    text: Q again
    options: [{ label: B }]
`,
			wantErr: "duplicate id",
		},
		{
			name: "duplicate label",
			doc: `
questions:
  - id: q
    text: Q
    options: [{ label: A }, { label: A }]
`,
			wantErr: "duplicate option",
		},
		{
			name: "age option without age",
			doc: `
questions:
  - id: age
    text: How old?
    gate: age
    options: [{ label: Young }]
`,
			wantErr: "needs an age",
		},
		{
			name: "two education gates",
			doc: `
questions:
  - id: a
    text: A
    gate: education
    options: [{ label: Low, tier: low }]
  - id: b
    text: B
    gate: education
    options: [{ label: Low, tier: low }]
`,
			wantErr: "already assigned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quiz.Load([]byte(tt.doc))
			if err == nil {
				t.Fatal("Load() should return error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_UnknownPathwayIgnored(t *testing.T) {
	bank, err := quiz.Load([]byte(`
questions:
  - id: q
    text: Q
    options:
      - label: A
        scores: { ged: 2, ib: 5 }
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	opt, _ := bank.Option(0, "A")
	for _, p := range quiz.Pathways {
		want := 0
		if p == quiz.GED {
			want = 2
		}
		if got := opt.Points(p); got != want {
			t.Errorf("Points(%s) = %d, want %d", p, got, want)
		}
	}
}
