package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects how a session presents and grades its items
type Mode int

const (
	ModeFlashcard Mode = iota
	ModeWord
	ModeSentence
)

// String returns the mode name used in URLs and logs
func (m Mode) String() string {
	switch m {
	case ModeFlashcard:
		return "card"
	case ModeWord:
		return "word"
	case ModeSentence:
		return "sentence"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a URL segment into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card", "flashcard":
		return ModeFlashcard, nil
	case "word":
		return ModeWord, nil
	case "sentence":
		return ModeSentence, nil
	}
	return 0, fmt.Errorf("unknown quiz mode %q", s)
}

// Namespace returns the progress namespace a mode persists under.
// Flashcards keep no progress and share the word namespace only nominally.
func (m Mode) Namespace() Namespace {
	if m == ModeSentence {
		return SentenceNamespace
	}
	return WordNamespace
}

// Item is one unit to be quizzed. Word and flashcard modes use English and
// Chinese; sentence mode shows the sentence as context and asks for WordEnglish.
type Item struct {
	English     string `json:"english"`
	Chinese     string `json:"chinese"`
	WordEnglish string `json:"word_english,omitempty"`
	WordChinese string `json:"word_chinese,omitempty"`
}

// Answer returns the field the user has to type for the given mode
func (it Item) Answer(mode Mode) string {
	if mode == ModeSentence {
		return it.WordEnglish
	}
	return it.English
}

// UnmarshalJSON accepts both the capitalised word payload ({"English","Chinese"})
// and the lowercase sentence payload. Null fields decode as empty strings.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pick := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := raw[k]; ok && v != nil {
				return *v
			}
		}
		return ""
	}

	*it = Item{
		English:     pick("english", "English"),
		Chinese:     pick("chinese", "Chinese"),
		WordEnglish: pick("word_english", "WordEnglish"),
		WordChinese: pick("word_chinese", "WordChinese"),
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
