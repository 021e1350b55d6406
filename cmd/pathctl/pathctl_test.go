package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-n-ai/pathfinder/internal/catalog"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// fastTrackAnswers answers only the education and age gates: below grade 9
// and 18–24, out of the 13 questions in the embedded bank.
func fastTrackAnswers(t *testing.T, wrapped bool) string {
	t.Helper()
	answers := make([]*string, 13)
	edu, age := "Below Grade 9 (or no formal schooling)", "18–24"
	answers[0], answers[12] = &edu, &age

	var doc any = answers
	if wrapped {
		doc = map[string]any{"answers": answers}
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestBankValidate_Embedded(t *testing.T) {
	out, err := execute(t, "bank", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "13 questions, 2 gate questions")
}

func TestBankValidate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("questions: []\n"), 0o600))

	_, err := execute(t, "bank", "validate", path)
	assert.Error(t, err)
}

func TestScore_JSON(t *testing.T) {
	for _, wrapped := range []bool{false, true} {
		t.Run(fmt.Sprintf("wrapped=%v", wrapped), func(t *testing.T) {
			out, err := execute(t, "score", fastTrackAnswers(t, wrapped), "--json")
			require.NoError(t, err)

			var res struct {
				Scenario    string `json:"scenario"`
				Recommended struct {
					Pathway string `json:"pathway"`
					Score   int    `json:"score"`
				} `json:"recommended"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &res))
			assert.Equal(t, "fasttrack", res.Scenario)
			assert.Equal(t, "ged", res.Recommended.Pathway)
			assert.Equal(t, 7, res.Recommended.Score)
		})
	}
}

func TestScore_Text(t *testing.T) {
	out, err := execute(t, "score", fastTrackAnswers(t, false))
	require.NoError(t, err)

	assert.Contains(t, out, "Scenario: Fasttrack")
	assert.Contains(t, out, "PATHWAY")
	assert.Contains(t, out, "Why:")
	assert.Contains(t, out, "Scholarships (")
	assert.NotContains(t, out, "Next steps:")
}

func TestScore_BoostFlag(t *testing.T) {
	out, err := execute(t, "score", fastTrackAnswers(t, false), "--json", "--fasttrack-boost", "10")
	require.NoError(t, err)

	var res struct {
		Recommended struct {
			Score int `json:"score"`
		} `json:"recommended"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 11, res.Recommended.Score)
}

func TestScore_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"score", filepath.Join(dir, "nope.json")}},
		{"not json", []string{"score", write("bad.json", "answers?")}},
		{"unknown label", []string{"score", write("unknown.json", `["No such option"]`)}},
		{"no args", []string{"score"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCatalog_ExportImport(t *testing.T) {
	want, err := catalog.Default()
	require.NoError(t, err)

	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, want.WriteJSON(f))
	require.NoError(t, f.Close())

	sheet := filepath.Join(dir, "catalog.xlsx")
	out, err := execute(t, "catalog", "export", in, sheet)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("exported %d scholarships", want.Len()))

	back := filepath.Join(dir, "back.json")
	out, err = execute(t, "catalog", "import", sheet, back)
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("imported %d scholarships", want.Len()))

	got, err := catalog.LoadFile(back)
	require.NoError(t, err)
	assert.Equal(t, want.Len(), got.Len())
	for _, s := range want.All() {
		_, ok := got.Get(string(s.ID))
		assert.True(t, ok, "missing %s after round trip", s.ID)
	}
}
