// Package eligibility filters a scholarship catalog down to the records a
// learner may qualify for.
//
// Two rules exist. Tag matching keeps records whose eligibility tags share
// at least one tag with the learner's derived tags. Facet matching checks
// destination, field and education level against a student profile. A
// Criteria value composes both into one predicate.
package eligibility

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/p-n-ai/pathfinder/internal/profile"
	"github.com/p-n-ai/pathfinder/internal/quiz"
	"github.com/p-n-ai/pathfinder/internal/scoring"
)

// Derived tags beyond pathway keys.
const (
	TagGrade11       = "grade11+"
	TagInternational = "international"
)

const anyToken = "any"

// fold returns s in case-folded form. A Caser is not safe for concurrent
// use, so each call builds its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Contains reports whether the set holds token, ignoring case.
func (s TokenSet) Contains(token string) bool {
	want := fold(token)
	for _, t := range s {
		if fold(t) == want {
			return true
		}
	}
	return false
}

// Intersects reports whether the set shares any token with tags, ignoring case.
func (s TokenSet) Intersects(tags []string) bool {
	for _, tag := range tags {
		if s.Contains(tag) {
			return true
		}
	}
	return false
}

// MatchTags reports whether the record's eligibility tags intersect tags.
// An empty tag list matches nothing.
func MatchTags(s *Scholarship, tags []string) bool {
	return len(tags) > 0 && s.EligibilityTags.Intersects(tags)
}

// MatchFacets reports whether the record fits the profile on destination,
// field and education level. An absent facet never excludes a record.
func MatchFacets(s *Scholarship, p profile.Profile) bool {
	return matchChoice(s.StudyDestinations, p.StudyDestination) &&
		matchChoice(s.Fields, p.Field) &&
		matchLevel(s.Levels(), p.EducationLevel)
}

func matchChoice(facet TokenSet, desired string) bool {
	if desired == "" || fold(desired) == anyToken {
		return true
	}
	if len(facet) == 0 || facet.Contains(anyToken) {
		return true
	}
	return facet.Contains(desired)
}

// matchLevel tolerates inconsistent phrasing: either side may contain the
// other, so "Undergraduate" matches "undergraduate students".
func matchLevel(levels TokenSet, desired string) bool {
	if desired == "" || fold(desired) == anyToken {
		return true
	}
	if len(levels) == 0 || levels.Contains(anyToken) {
		return true
	}
	want := fold(desired)
	for _, l := range levels {
		have := fold(l)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return true
		}
	}
	return false
}

// Criteria selects records by derived tags, by profile facets, or both.
//
// With tags alone a record must share a tag. With a profile alone it must
// fit the facets. With both, a tagged record must share a tag and fit the
// facets, and an untagged record is judged on facets only. Empty criteria
// match every record.
type Criteria struct {
	Tags    []string
	Profile *profile.Profile
}

// Match reports whether s satisfies the criteria.
func (c Criteria) Match(s *Scholarship) bool {
	hasTags := len(c.Tags) > 0
	switch {
	case hasTags && c.Profile == nil:
		return MatchTags(s, c.Tags)
	case !hasTags && c.Profile != nil:
		return MatchFacets(s, *c.Profile)
	case hasTags:
		if len(s.EligibilityTags) > 0 && !MatchTags(s, c.Tags) {
			return false
		}
		return MatchFacets(s, *c.Profile)
	}
	return true
}

// Filter returns the matching records in catalog order. The result is
// never nil.
func Filter(catalog []Scholarship, c Criteria) []Scholarship {
	out := make([]Scholarship, 0)
	for i := range catalog {
		if c.Match(&catalog[i]) {
			out = append(out, catalog[i])
		}
	}
	return out
}

// DeriveTags builds the tag list for a ranking: the two best positive
// pathways, "grade11+" when A-Level scored, "international", then extras.
// Duplicates and blanks are dropped.
func DeriveTags(ranked []scoring.Ranked, extras ...string) []string {
	var tags []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, r := range scoring.Top(ranked, 2) {
		add(r.Pathway.String())
	}
	for _, r := range ranked {
		if r.Pathway == quiz.ALevel && r.Score > 0 {
			add(TagGrade11)
		}
	}
	add(TagInternational)
	for _, e := range extras {
		add(strings.TrimSpace(e))
	}
	return tags
}
