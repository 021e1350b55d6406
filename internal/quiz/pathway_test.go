package quiz_test

import (
	"encoding/json"
	"testing"

	"github.com/p-n-ai/pathfinder/internal/quiz"
)

func TestPathways_FixedOrder(t *testing.T) {
	want := []string{"myanmar", "ged", "ossd", "igcse", "alevel"}
	for i, p := range quiz.Pathways {
		if p.String() != want[i] {
			t.Errorf("Pathways[%d] = %s, want %s", i, p, want[i])
		}
		if p.Label() == "" || p.Description() == "" {
			t.Errorf("%s has no label or description", p)
		}
	}
}

func TestParsePathway(t *testing.T) {
	tests := []struct {
		in     string
		want   quiz.Pathway
		wantOK bool
	}{
		{"ged", quiz.GED, true},
		{" ALevel ", quiz.ALevel, true},
		{"myanmar", quiz.Myanmar, true},
		{"ib", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := quiz.ParsePathway(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParsePathway(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestPathway_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		P quiz.Pathway `json:"p"`
	}{quiz.OSSD})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if string(data) != `{"p":"ossd"}` {
		t.Errorf("Marshal = %s", data)
	}

	var p quiz.Pathway
	if err := json.Unmarshal([]byte(`"igcse"`), &p); err != nil || p != quiz.IGCSE {
		t.Errorf("Unmarshal = %v, %v; want igcse", p, err)
	}
	if err := json.Unmarshal([]byte(`"sat"`), &p); err == nil {
		t.Error("Unmarshal(sat) should fail")
	}
}

func TestTotals_MarshalJSON(t *testing.T) {
	var totals quiz.Totals
	totals[quiz.GED] = 5
	totals[quiz.Myanmar] = 1

	data, err := json.Marshal(totals)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	want := `{"alevel":0,"ged":5,"igcse":0,"myanmar":1,"ossd":0}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
