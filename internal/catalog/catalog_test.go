package catalog_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/p-n-ai/pathfinder/internal/catalog"
	"github.com/p-n-ai/pathfinder/internal/eligibility"
)

func TestDefault(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if c.Len() != 11 {
		t.Errorf("Len() = %d, want 11", c.Len())
	}

	s, ok := c.Get("ged-testing-waiver-mm")
	if !ok {
		t.Fatal("Get(ged-testing-waiver-mm) not found")
	}
	if !s.EligibilityTags.Contains("fasttrack") {
		t.Errorf("EligibilityTags = %v, want fasttrack", s.EligibilityTags)
	}
}

func TestParseJSON_Shapes(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantLen int
	}{
		{"bare list", `[{"name":"A"},{"name":"B"}]`, 2},
		{"results wrapper", `{"results":[{"message":"A"}]}`, 1},
		{"no results key", `{"count":0}`, 0},
		{"null results", `{"results":null}`, 0},
		{"empty list", `[]`, 0},
		{"scraped nulls", `[{"message":"A","deadline":null,"amount":null,"eligibility":null}]`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := catalog.ParseJSON([]byte(tt.doc))
			if err != nil {
				t.Fatalf("ParseJSON() error = %v", err)
			}
			if c.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", c.Len(), tt.wantLen)
			}
		})
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"results": [`},
		{"scalar", `42`},
		{"record not object", `["a"]`},
		{"bad tags", `[{"eligibilityTags": {"ged": true}}]`},
		{"results not list", `{"results": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := catalog.ParseJSON([]byte(tt.doc)); err == nil {
				t.Error("ParseJSON() should return error")
			}
		})
	}
}

func TestDecodeRecords_SkipsInvalid(t *testing.T) {
	items := []json.RawMessage{
		json.RawMessage(`{"id":"a","eligibilityTags":"ged"}`),
		json.RawMessage(`{"id":"b","eligibilityTags":5}`),
		json.RawMessage(`"not a record"`),
		json.RawMessage(`{"id":"c"}`),
	}

	got := catalog.DecodeRecords(items)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("DecodeRecords() = %+v, want records a and c", got)
	}
	if got := catalog.DecodeRecords(nil); got == nil || len(got) != 0 {
		t.Errorf("DecodeRecords(nil) = %#v, want empty non-nil", got)
	}
}

func TestGet_ByPosition(t *testing.T) {
	c, _ := catalog.ParseJSON([]byte(`[{"message":"first"},{"id":"x","message":"second"}]`))

	s, ok := c.Get("0")
	if !ok || s.Message != "first" {
		t.Errorf("Get(0) = %v, %v", s.Message, ok)
	}
	if _, ok := c.Get("1"); ok {
		t.Error("Get(1) should not address a record that has its own id")
	}
	if s, ok := c.Get("x"); !ok || s.Message != "second" {
		t.Errorf("Get(x) = %v, %v", s.Message, ok)
	}
	if _, ok := c.Get("99"); ok {
		t.Error("Get(99) ok = true")
	}
}

func TestSearch(t *testing.T) {
	c, _ := catalog.ParseJSON([]byte(`[
		{"message":"Nursing Bursary","source":"Local"},
		{"name":"DAAD Award","education_level":"Graduate"},
		{"message":"STEM Grant","eligibility":"Study in: Germany"}
	]`))

	tests := []struct {
		q    string
		want int
	}{
		{"", 3},
		{"  ", 3},
		{"nursing", 1},
		{"GRADUATE", 1},
		{"germany", 1},
		{"local", 1},
		{"a", 3},
		{"zzz", 0},
	}
	for _, tt := range tests {
		if got := c.Search(tt.q); len(got) != tt.want {
			t.Errorf("Search(%q) = %d records, want %d", tt.q, len(got), tt.want)
		}
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	var buf bytes.Buffer
	if err := c.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	again, err := catalog.ParseJSON(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	if again.Len() != c.Len() {
		t.Errorf("Len() = %d, want %d", again.Len(), c.Len())
	}
}

func TestXLSX_RoundTrip(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	if err := c.ExportXLSX(path); err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	imported, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if imported.Len() != c.Len() {
		t.Fatalf("Len() = %d, want %d", imported.Len(), c.Len())
	}

	for i, want := range c.All() {
		got := imported.All()[i]
		if got.ID != want.ID || got.Title() != want.Title() {
			t.Errorf("record %d = %s/%s, want %s/%s", i, got.ID, got.Title(), want.ID, want.Title())
		}
		if !reflect.DeepEqual(got.EligibilityTags, want.EligibilityTags) {
			t.Errorf("record %d tags = %v, want %v", i, got.EligibilityTags, want.EligibilityTags)
		}
		if !reflect.DeepEqual(got.Fields, want.Fields) {
			t.Errorf("record %d fields = %v, want %v", i, got.Fields, want.Fields)
		}
	}
}

func TestReadXLSX_HeaderMapping(t *testing.T) {
	records := []eligibility.Scholarship{
		{Message: "Only message", EligibilityTags: eligibility.TokenSet{"ged", "igcse"}},
	}
	var buf bytes.Buffer
	if err := catalog.New(records).WriteXLSX(&buf); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	c, err := catalog.ReadXLSX(&buf)
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
	got := c.All()[0]
	if got.Message != "Only message" || !got.EligibilityTags.Contains("IGCSE") {
		t.Errorf("record = %+v", got)
	}

	out, _ := json.Marshal(got)
	if !strings.Contains(string(out), `"eligibilityTags":["ged","igcse"]`) {
		t.Errorf("Marshal = %s", out)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "catalog.txt")
	os.WriteFile(txt, []byte("x"), 0o644)
	if _, err := catalog.LoadFile(txt); err == nil {
		t.Error("LoadFile(.txt) should fail")
	}
	if _, err := catalog.LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadFile(missing) should fail")
	}

	bad := filepath.Join(dir, "bad.xlsx")
	os.WriteFile(bad, []byte("not a workbook"), 0o644)
	if _, err := catalog.LoadFile(bad); err == nil {
		t.Error("LoadFile(bad xlsx) should fail")
	}
}
