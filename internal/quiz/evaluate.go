package quiz

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// annotationWhitelist holds grammar tags and placeholders that are neither
// masked in hints nor required in answers.
var annotationWhitelist = []string{"n", "ving", "v", "vt", "vi", "adj", "adv", "...", "sb", "sth", "one's"}

// IsAnnotation reports whether tok is a whitelisted annotation (case-insensitive)
func IsAnnotation(tok string) bool {
	return lo.Contains(annotationWhitelist, strings.ToLower(tok))
}

// Result is the outcome of grading one answer
type Result struct {
	Correct bool   `json:"correct"`
	Input   string `json:"input"`
	// Canonical is the expected answer as shown to the user after a miss
	Canonical string `json:"canonical"`
}

// Evaluate grades input against item. Sentence mode compares directly;
// the other modes compare normalized forms.
func Evaluate(mode Mode, item Item, input string) Result {
	answer := strings.ToLower(item.Answer(mode))
	given := strings.ToLower(strings.TrimSpace(input))

	var correct bool
	if mode == ModeSentence {
		correct = given == strings.TrimSpace(answer)
	} else {
		correct = Normalize(given) == Normalize(strings.TrimSpace(answer))
	}

	return Result{Correct: correct, Input: input, Canonical: answer}
}

// Normalize splits s on single spaces, drops annotation tokens and sorts the
// alternatives of any slash-separated token. Case is preserved; callers lower
// both sides before comparing.
func Normalize(s string) string {
	tokens := lo.FilterMap(strings.Split(s, " "), func(tok string, _ int) (string, bool) {
		if IsAnnotation(tok) {
			return "", false
		}
		if strings.Contains(tok, "/") {
			alts := strings.Split(tok, "/")
			sort.Strings(alts)
			return strings.Join(alts, "/"), true
		}
		return tok, true
	})
	return strings.Join(tokens, " ")
}
