package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Pathway is one of the fixed academic pathways a learner can be steered to.
// The set is closed; iteration always follows the declaration order.
type Pathway int

const (
	Myanmar Pathway = iota
	GED
	OSSD
	IGCSE
	ALevel

	// NumPathways is the number of known pathways.
	NumPathways = int(ALevel) + 1
)

// Pathways lists every pathway in the fixed iteration order used for
// totals, tie-breaking and display.
var Pathways = [NumPathways]Pathway{Myanmar, GED, OSSD, IGCSE, ALevel}

var pathwayKeys = [NumPathways]string{"myanmar", "ged", "ossd", "igcse", "alevel"}

var pathwayLabels = [NumPathways]string{
	"Myanmar Matriculation",
	"GED (US)",
	"OSSD (Canadian Ontario)",
	"IGCSE",
	"A-Levels (UK)",
}

var pathwayDescriptions = [NumPathways]string{
	"Myanmar national curriculum and matriculation exam. Best if you plan to study at a Myanmar university and want local recognition.",
	"General Educational Development (US). Flexible, self-paced, often for adults or those who need a recognized high-school equivalency without traditional school.",
	"Ontario Secondary School Diploma (Canadian). Credit-based, often available online. Good for Canada and many international universities.",
	"International GCSE (Cambridge/UK). Broad subject range, exam-based. Widely recognized for UK, Commonwealth, and international study.",
	"UK A-Levels. Focus on 2–3 subjects in depth. Strong for UK and Commonwealth university entry.",
}

// Valid reports whether p is a known pathway.
func (p Pathway) Valid() bool {
	return p >= 0 && int(p) < NumPathways
}

// String returns the wire key, e.g. "alevel".
func (p Pathway) String() string {
	if !p.Valid() {
		return fmt.Sprintf("pathway(%d)", int(p))
	}
	return pathwayKeys[p]
}

// Label returns the display name.
func (p Pathway) Label() string {
	if !p.Valid() {
		return p.String()
	}
	return pathwayLabels[p]
}

// Description returns a one-paragraph summary of the pathway.
func (p Pathway) Description() string {
	if !p.Valid() {
		return ""
	}
	return pathwayDescriptions[p]
}

// ParsePathway maps a wire key to its Pathway. Matching ignores case and
// surrounding space.
func ParsePathway(key string) (Pathway, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range pathwayKeys {
		if k == key {
			return Pathway(i), true
		}
	}
	return 0, false
}

func (p Pathway) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown pathway %d", int(p))
	}
	return []byte(pathwayKeys[p]), nil
}

func (p *Pathway) UnmarshalText(text []byte) error {
	v, ok := ParsePathway(string(text))
	if !ok {
		return fmt.Errorf("unknown pathway %q", string(text))
	}
	*p = v
	return nil
}

// Totals holds one running score per pathway, indexed by Pathway.
type Totals [NumPathways]int

// Get returns the total for p.
func (t Totals) Get(p Pathway) int {
	return t[p]
}

// MarshalJSON renders totals as an object keyed by wire key.
func (t Totals) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, NumPathways)
	for _, p := range Pathways {
		m[p.String()] = t[p]
	}
	return json.Marshal(m)
}
