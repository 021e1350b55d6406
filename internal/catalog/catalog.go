// Package catalog loads the scholarship catalog the eligibility filter runs
// against. Catalogs come from JSON (a bare list or {"results": [...]}),
// from an XLSX sheet, or from the embedded demo catalog.
package catalog

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/p-n-ai/pathfinder/internal/eligibility"
)

// Catalog is an immutable, fully materialised list of scholarships.
type Catalog struct {
	records []eligibility.Scholarship
}

// New wraps records in a Catalog.
func New(records []eligibility.Scholarship) *Catalog {
	if records == nil {
		records = []eligibility.Scholarship{}
	}
	return &Catalog{records: records}
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// All returns the records in source order.
func (c *Catalog) All() []eligibility.Scholarship {
	return c.records
}

// Get looks a record up by id. Records without an id are addressed by
// their position in the catalog.
func (c *Catalog) Get(id string) (eligibility.Scholarship, bool) {
	for _, s := range c.records {
		if string(s.ID) == id {
			return s, true
		}
	}
	if i, err := strconv.Atoi(id); err == nil && i >= 0 && i < len(c.records) && c.records[i].ID == "" {
		return c.records[i], true
	}
	return eligibility.Scholarship{}, false
}

// Search returns records whose name, message, source, education level or
// eligibility text contains q, ignoring case. A blank query returns all.
func (c *Catalog) Search(q string) []eligibility.Scholarship {
	caser := cases.Fold()
	needle := caser.String(strings.TrimSpace(q))
	if needle == "" {
		return c.records
	}

	out := make([]eligibility.Scholarship, 0)
	for _, s := range c.records {
		for _, field := range []string{s.Name, s.Message, s.Source, s.EducationLevel, s.Eligibility} {
			if field != "" && strings.Contains(caser.String(field), needle) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
