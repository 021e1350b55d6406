package quiz

// Gate names mark the questions the gatekeeper rules read.
const (
	GateEducation = "education"
	GateAge       = "age"
)

// TierLow marks the education options that count as the lowest schooling tier.
const TierLow = "low"

// Question is one multiple-choice quiz question.
type Question struct {
	ID      string   `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	Gate    string   `yaml:"gate,omitempty" json:"gate,omitempty"`
	Options []Option `yaml:"options" json:"options"`
}

// Option is one selectable answer. Scores are keyed by pathway wire key;
// keys that name no known pathway are ignored.
type Option struct {
	Label   string            `yaml:"label" json:"label"`
	Scores  map[string]int    `yaml:"scores,omitempty" json:"scores,omitempty"`
	Profile map[string]string `yaml:"profile,omitempty" json:"profile,omitempty"`

	// Tier classifies an answer to the education gate question.
	Tier string `yaml:"tier,omitempty" json:"tier,omitempty"`
	// Age is the lower bound, in years, of an age gate bracket.
	Age *int `yaml:"age,omitempty" json:"age,omitempty"`
	// Tags are situation tags such as "interrupted" or "displaced".
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Points returns what the option contributes to p.
func (o *Option) Points(p Pathway) int {
	if o == nil || !p.Valid() {
		return 0
	}
	return o.Scores[p.String()]
}

// LowTier reports whether the option marks the lowest education tier.
func (o *Option) LowTier() bool {
	return o != nil && o.Tier == TierLow
}

// Answers is an answer sequence aligned 1:1 with a Bank's questions.
// A nil slot is an unanswered question.
type Answers []*Option

// Answered returns the number of non-nil slots.
func (a Answers) Answered() int {
	n := 0
	for _, o := range a {
		if o != nil {
			n++
		}
	}
	return n
}

// Tags returns the situation tags of all answered options in sequence
// order, without duplicates.
func (a Answers) Tags() []string {
	var tags []string
	seen := make(map[string]bool)
	for _, o := range a {
		if o == nil {
			continue
		}
		for _, tag := range o.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
