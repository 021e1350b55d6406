// Package profile consolidates per-answer profile fragments into one student profile.
package profile

import "github.com/p-n-ai/pathfinder/internal/quiz"

// Field keys recognised in option profile fragments.
const (
	FieldStudyDestination = "study_destination"
	FieldEducationLevel   = "education_level"
	FieldTargetDegree     = "target_degree"
	FieldField            = "field"
	FieldTimeline         = "timeline"
	FieldLearningStyle    = "learning_style"
	FieldSchedule         = "schedule"
	FieldEnglish          = "english"
	FieldRecognition      = "recognition"
	FieldBudget           = "budget"
)

// Neutral values meaning "no preference".
const (
	AnyDestination = "ANY"
	AnyField       = "ANY"
	AnyLevel       = "Any"
)

// Profile is a consolidated student profile used for facet matching.
type Profile struct {
	StudyDestination string `json:"study_destination"`
	EducationLevel   string `json:"education_level"`
	TargetDegree     string `json:"target_degree"`
	Field            string `json:"field"`
	Timeline         string `json:"timeline"`
	LearningStyle    string `json:"learning_style"`
	Schedule         string `json:"schedule"`
	English          string `json:"english"`
	Recognition      string `json:"recognition"`
	Budget           string `json:"budget"`
}

// Default returns the profile before any answer is merged in.
func Default() Profile {
	return Profile{
		StudyDestination: AnyDestination,
		EducationLevel:   AnyLevel,
		TargetDegree:     AnyLevel,
		Field:            AnyField,
		Timeline:         "FLEXIBLE",
		LearningStyle:    "BALANCED",
		Schedule:         "MEDIUM",
		English:          "INTERMEDIATE",
		Recognition:      "INTERNATIONAL",
		Budget:           "MEDIUM",
	}
}

// Build merges the profile fragment of every answered option in sequence
// order onto the default profile. A later answer overwrites any field an
// earlier one set. A target degree other than "Any" then replaces the
// education level.
func Build(answers quiz.Answers) Profile {
	p := Default()
	for _, opt := range answers {
		if opt == nil {
			continue
		}
		for k, v := range opt.Profile {
			p.Set(k, v)
		}
	}

	if p.TargetDegree != "" && p.TargetDegree != AnyLevel {
		p.EducationLevel = p.TargetDegree
	}
	return p
}

// Set assigns one field by key. Unknown keys are ignored and reported false.
func (p *Profile) Set(key, value string) bool {
	if f := p.field(key); f != nil {
		*f = value
		return true
	}
	return false
}

// Get returns one field by key.
func (p *Profile) Get(key string) (string, bool) {
	if f := p.field(key); f != nil {
		return *f, true
	}
	return "", false
}

func (p *Profile) field(key string) *string {
	switch key {
	case FieldStudyDestination:
		return &p.StudyDestination
	case FieldEducationLevel:
		return &p.EducationLevel
	case FieldTargetDegree:
		return &p.TargetDegree
	case FieldField:
		return &p.Field
	case FieldTimeline:
		return &p.Timeline
	case FieldLearningStyle:
		return &p.LearningStyle
	case FieldSchedule:
		return &p.Schedule
	case FieldEnglish:
		return &p.English
	case FieldRecognition:
		return &p.Recognition
	case FieldBudget:
		return &p.Budget
	}
	return nil
}
