package eligibility

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TokenSet is a list of trimmed, non-empty tokens. It decodes from either a
// comma-separated string or a JSON list.
type TokenSet []string

// ParseTokens splits a comma-separated string into a TokenSet.
func ParseTokens(s string) TokenSet {
	var out TokenSet
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (s *TokenSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = ParseTokens(str)
		return nil
	case len(data) > 0 && data[0] == '[':
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		var out TokenSet
		for _, item := range items {
			if item == nil {
				continue
			}
			if tok := strings.TrimSpace(fmt.Sprint(item)); tok != "" {
				out = append(out, tok)
			}
		}
		*s = out
		return nil
	}
	return fmt.Errorf("token set must be a string or a list, got %s", data)
}

// Text is a display string that also accepts a JSON number, as scraped
// catalogs mix "USD 500" and 500.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*t = Text(n.String())
	return nil
}

// Scholarship is one catalog record. Tag and facet fields are always
// present, possibly empty.
type Scholarship struct {
	ID             Text   `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	Message        string `json:"message,omitempty"`
	Source         string `json:"source,omitempty"`
	Description    string `json:"description,omitempty"`
	URL            string `json:"url,omitempty"`
	PermalinkURL   string `json:"permalink_url,omitempty"`
	Location       string `json:"location,omitempty"`
	FundingType    string `json:"fundingType,omitempty"`
	Amount         Text   `json:"amount,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
	Eligibility    string `json:"eligibility,omitempty"`
	EducationLevel string `json:"education_level,omitempty"`

	EligibilityTags   TokenSet `json:"eligibilityTags,omitempty"`
	StudyDestinations TokenSet `json:"study_destinations,omitempty"`
	Fields            TokenSet `json:"fields,omitempty"`
	EducationLevels   TokenSet `json:"education_levels,omitempty"`

	raw json.RawMessage
}

type scholarshipFields Scholarship

// UnmarshalJSON decodes the known fields and keeps the original bytes so
// the record can be re-emitted unmodified.
func (s *Scholarship) UnmarshalJSON(data []byte) error {
	var f scholarshipFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*s = Scholarship(f)
	s.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the original record when it was decoded from JSON.
func (s Scholarship) MarshalJSON() ([]byte, error) {
	if len(s.raw) > 0 {
		return s.raw, nil
	}
	return json.Marshal(scholarshipFields(s))
}

// Title returns the best available display name.
func (s *Scholarship) Title() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Message != "":
		return s.Message
	}
	return "Untitled"
}

// Levels returns the education-level facet, falling back to the single
// education_level field.
func (s *Scholarship) Levels() TokenSet {
	if len(s.EducationLevels) > 0 {
		return s.EducationLevels
	}
	return ParseTokens(s.EducationLevel)
}
