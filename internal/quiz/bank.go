package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOption is returned when an answer label does not name an option
// of its question.
var ErrUnknownOption = errors.New("unknown option")

// Bank is the ordered, immutable question catalog. It is safe for
// concurrent use once built.
type Bank struct {
	questions []Question
	gates     map[string]int
}

// NewBank checks the questions and builds a bank around them.
func NewBank(questions []Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}

	b := &Bank{
		questions: questions,
		gates:     make(map[string]int),
	}
	ids := make(map[string]bool, len(questions))

	for i, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question %d: id is required", i)
		}
		if ids[q.ID] {
			return nil, fmt.Errorf("question %q: duplicate id", q.ID)
		}
		ids[q.ID] = true

		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %q: no options", q.ID)
		}
		labels := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if labels[o.Label] {
				return nil, fmt.Errorf("question %q: duplicate option %q", q.ID, o.Label)
			}
			labels[o.Label] = true
			for key, pts := range o.Scores {
				if pts < 0 {
					return nil, fmt.Errorf("question %q option %q: negative score for %s", q.ID, o.Label, key)
				}
			}
		}

		switch q.Gate {
		case "":
		case GateEducation, GateAge:
			if _, dup := b.gates[q.Gate]; dup {
				return nil, fmt.Errorf("question %q: gate %q already assigned", q.ID, q.Gate)
			}
			b.gates[q.Gate] = i
			if q.Gate == GateAge {
				for _, o := range q.Options {
					if o.Age == nil {
						return nil, fmt.Errorf("question %q option %q: age gate option needs an age", q.ID, o.Label)
					}
				}
			}
		default:
			return nil, fmt.Errorf("question %q: unknown gate %q", q.ID, q.Gate)
		}
	}

	return b, nil
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// Questions returns the questions in presentation order.
func (b *Bank) Questions() []Question {
	return b.questions
}

// Question returns the question at position i.
func (b *Bank) Question(i int) Question {
	return b.questions[i]
}

// Text returns the text of the question at position i, or "Question" when
// i is out of range.
func (b *Bank) Text(i int) string {
	if i < 0 || i >= len(b.questions) {
		return "Question"
	}
	return b.questions[i].Text
}

// GateAnswer returns the answer given to the question tagged with gate, or
// nil when the bank has no such question or it was left unanswered.
func (b *Bank) GateAnswer(answers Answers, gate string) *Option {
	i, ok := b.gates[gate]
	if !ok || i >= len(answers) {
		return nil
	}
	return answers[i]
}

// Option returns the option of question i whose label matches. Labels
// compare exactly after trimming surrounding space.
func (b *Bank) Option(i int, label string) (*Option, bool) {
	if i < 0 || i >= len(b.questions) {
		return nil, false
	}
	label = strings.TrimSpace(label)
	q := &b.questions[i]
	for j := range q.Options {
		if q.Options[j].Label == label {
			return &q.Options[j], true
		}
	}
	return nil, false
}

// Resolve turns one label per question into an answer sequence. A nil or
// blank label leaves its question unanswered; missing trailing slots are
// unanswered too.
func (b *Bank) Resolve(labels []*string) (Answers, error) {
	if len(labels) > len(b.questions) {
		return nil, fmt.Errorf("got %d answers for %d questions", len(labels), len(b.questions))
	}

	answers := make(Answers, len(b.questions))
	for i, label := range labels {
		if label == nil || strings.TrimSpace(*label) == "" {
			continue
		}
		opt, ok := b.Option(i, *label)
		if !ok {
			return nil, fmt.Errorf("question %q: %w %q", b.questions[i].ID, ErrUnknownOption, *label)
		}
		answers[i] = opt
	}
	return answers, nil
}

// Labels is the inverse of Resolve.
func (b *Bank) Labels(answers Answers) []*string {
	out := make([]*string, len(b.questions))
	for i := range out {
		if i < len(answers) && answers[i] != nil {
			label := answers[i].Label
			out[i] = &label
		}
	}
	return out
}
