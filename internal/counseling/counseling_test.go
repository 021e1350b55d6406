package counseling_test

import (
	"strings"
	"testing"

	"github.com/p-n-ai/pathfinder/internal/counseling"
	"github.com/p-n-ai/pathfinder/internal/quiz"
	"github.com/p-n-ai/pathfinder/internal/scoring"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		scenario scoring.Scenario
		wantKey  string
	}{
		{scoring.ScenarioFoundation, "foundation"},
		{scoring.ScenarioFastTrack, "fasttrack"},
		{scoring.ScenarioStandard, "standard"},
		{scoring.Scenario("unknown"), "standard"},
	}
	for _, tt := range tests {
		c := counseling.Resolve(tt.scenario)
		if c.Key != tt.wantKey {
			t.Errorf("Resolve(%q).Key = %q, want %q", tt.scenario, c.Key, tt.wantKey)
		}
		if c.Headline == "" || c.Body == "" || c.CallToAction == "" {
			t.Errorf("Resolve(%q) has empty copy: %+v", tt.scenario, c)
		}
	}
}

func TestResolveSituation(t *testing.T) {
	for _, s := range []string{counseling.SituationInterrupted, counseling.SituationDisplaced} {
		c, ok := counseling.ResolveSituation(s)
		if !ok || c.Key != s {
			t.Errorf("ResolveSituation(%q) = %+v, %v", s, c, ok)
		}
	}
	if _, ok := counseling.ResolveSituation("standard"); ok {
		t.Error("ResolveSituation(standard) ok = true, want false")
	}
}

func TestSituation(t *testing.T) {
	tests := []struct {
		tags   []string
		want   string
		wantOK bool
	}{
		{nil, "", false},
		{[]string{"local"}, "", false},
		{[]string{"interrupted"}, "interrupted", true},
		{[]string{"interrupted", "displaced"}, "displaced", true},
	}
	for _, tt := range tests {
		got, ok := counseling.Situation(tt.tags)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Situation(%v) = %q, %v; want %q, %v", tt.tags, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRemediationSteps(t *testing.T) {
	steps := counseling.RemediationSteps()
	if len(steps) != 4 {
		t.Fatalf("len = %d, want 4", len(steps))
	}
	for i, s := range steps {
		if s.Step != i+1 {
			t.Errorf("steps[%d].Step = %d, want %d", i, s.Step, i+1)
		}
	}
	if !strings.Contains(steps[0].Title, "bridging") {
		t.Errorf("first step = %q, want the bridging class", steps[0].Title)
	}

	steps[0].Title = "changed"
	if counseling.RemediationSteps()[0].Title == "changed" {
		t.Error("RemediationSteps() exposes shared state")
	}
}

func TestNote(t *testing.T) {
	foundation := counseling.Note(scoring.ScenarioFoundation, quiz.GED)
	fasttrack := counseling.Note(scoring.ScenarioFastTrack, quiz.GED)

	if !strings.Contains(foundation, "16") {
		t.Errorf("foundation GED note = %q, want the age prerequisite", foundation)
	}
	if !strings.HasPrefix(fasttrack, "Recommended") {
		t.Errorf("fasttrack GED note = %q, want a recommendation", fasttrack)
	}
	for _, p := range quiz.Pathways {
		if counseling.Note(scoring.ScenarioStandard, p) == "" {
			t.Errorf("standard note for %s is empty", p)
		}
	}
	if got := counseling.Note(scoring.ScenarioStandard, quiz.Pathway(42)); got != "" {
		t.Errorf("Note(invalid) = %q, want empty", got)
	}
	if got, want := counseling.Notes(scoring.ScenarioFastTrack)(quiz.GED), fasttrack; got != want {
		t.Errorf("Notes()(ged) = %q, want %q", got, want)
	}
}
