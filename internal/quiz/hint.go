package quiz

import (
	"strings"
)

// HintMode controls how much of each answer word a hint reveals
type HintMode int

const (
	HintFirstLast HintMode = iota // f_l
	HintFirst                     // f_
	HintNone                      // _
)

var hintLabels = [...]string{"first & last letter", "first letter", "no letters"}

// Next cycles 0 -> 1 -> 2 -> 0
func (m HintMode) Next() HintMode {
	return (m.normalize() + 1) % 3
}

// Label is a short description for toggle buttons
func (m HintMode) Label() string {
	return hintLabels[m.normalize()]
}

func (m HintMode) normalize() HintMode {
	if m < HintFirstLast || m > HintNone {
		return HintFirstLast
	}
	return m
}

// ParseHintMode maps an integer from a request onto a mode, defaulting to HintFirstLast
func ParseHintMode(v int) HintMode {
	return HintMode(v).normalize()
}

// FormatWordHint masks a single word. Annotations pass through untouched
// and words of three letters or fewer collapse to "_".
func FormatWordHint(word string, mode HintMode) string {
	if IsAnnotation(word) {
		return word
	}

	runes := []rune(word)
	if len(runes) <= 3 {
		return "_"
	}

	switch mode.normalize() {
	case HintFirstLast:
		return string(runes[0]) + "_" + string(runes[len(runes)-1])
	case HintFirst:
		return string(runes[0]) + "_"
	default:
		return "_"
	}
}

// FormatHint masks a whole answer word by word. Slash alternatives are
// hinted separately and joined with " / ".
func FormatHint(answer string, mode HintMode) string {
	words := strings.Split(answer, " ")
	for i, word := range words {
		parts := strings.Split(word, "/")
		if len(parts) > 1 {
			for j, part := range parts {
				parts[j] = FormatWordHint(part, mode)
			}
			words[i] = strings.Join(parts, " / ")
			continue
		}
		words[i] = FormatWordHint(word, mode)
	}
	return strings.Join(words, " ")
}
