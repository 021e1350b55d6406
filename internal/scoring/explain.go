package scoring

import (
	"fmt"
	"slices"

	"github.com/p-n-ai/pathfinder/internal/quiz"
)

// FallbackExplanation is returned when no answer contributed to the top pathway.
const FallbackExplanation = "Your answers were mixed, so we chose the closest overall fit."

const maxReasons = 4

type contribution struct {
	question string
	label    string
	points   int
}

// Explain lists up to four answers that contributed most to top, highest
// first, as readable sentences. Ties keep question order.
func Explain(bank *quiz.Bank, answers quiz.Answers, top quiz.Pathway) []string {
	var contribs []contribution
	for i, opt := range answers {
		pts := opt.Points(top)
		if pts <= 0 {
			continue
		}
		contribs = append(contribs, contribution{
			question: bank.Text(i),
			label:    opt.Label,
			points:   pts,
		})
	}

	if len(contribs) == 0 {
		return []string{FallbackExplanation}
	}

	slices.SortStableFunc(contribs, func(a, b contribution) int {
		return b.points - a.points
	})
	if len(contribs) > maxReasons {
		contribs = contribs[:maxReasons]
	}

	reasons := make([]string, len(contribs))
	for i, c := range contribs {
		reasons[i] = fmt.Sprintf("%s — you chose '%s'.", c.question, c.label)
	}
	return reasons
}
