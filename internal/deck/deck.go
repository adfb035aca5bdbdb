// Package deck holds the word and sentence payloads handed to quiz front-ends
// and the deck file format used by the export and drill commands.
package deck

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vocabdrill/internal/quiz"
)

// Payload is the data injected into a quiz page
type Payload struct {
	Words          []quiz.Item `json:"words"`
	Questions      []quiz.Item `json:"questions"`
	Quotes         []string    `json:"quotes,omitempty"`
	CurrentLibrary string      `json:"current_library"`
	CSRFToken      string      `json:"csrf_token,omitempty"`
	// MissingSentences lists words that had no example sentence
	MissingSentences []string `json:"missing_sentences,omitempty"`
}

// Entry is one word in a deck file, in the injected word format
type Entry struct {
	English string `json:"English"`
	Chinese string `json:"Chinese"`
}

// File is a deck on disk. Words drive flashcard and word quizzes,
// Questions drive the sentence quiz.
type File struct {
	Library   string      `json:"library,omitempty"`
	Words     []quiz.Item `json:"words"`
	Questions []quiz.Item `json:"questions,omitempty"`
}

// ErrEmptyDeck is returned for files that contain no usable rows
var ErrEmptyDeck = errors.New("deck file has no words")

// Entries converts items to the word export format
func Entries(items []quiz.Item) []Entry {
	out := make([]Entry, len(items))
	for i, it := range items {
		out[i] = Entry{English: it.English, Chinese: it.Chinese}
	}
	return out
}

// WriteJSON writes f as indented JSON. A file without questions is written
// as a bare word array so it matches the injected word payload.
func WriteJSON(w io.Writer, f File) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if len(f.Questions) == 0 {
		return encoder.Encode(Entries(f.Words))
	}
	return encoder.Encode(f)
}

// LoadFile reads a deck by extension: .csv or JSON for anything else
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read deck file: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ParseCSV(bytes.NewReader(data))
	}
	return ParseJSON(data)
}

// ParseJSON accepts either a bare array of words or a File object
func ParseJSON(data []byte) (File, error) {
	var f File
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &f.Words); err != nil {
			return File{}, fmt.Errorf("failed to parse deck: %w", err)
		}
	} else if err := json.Unmarshal(trimmed, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse deck: %w", err)
	}
	if len(f.Words) == 0 && len(f.Questions) == 0 {
		return File{}, ErrEmptyDeck
	}
	return f, nil
}

// ParseCSV reads rows of english,chinese[,word_english,word_chinese]. A
// header row naming the english column is skipped. Rows with a
// word_english value become sentence questions; the rest become words.
func ParseCSV(r io.Reader) (File, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return File{}, fmt.Errorf("failed to parse deck: %w", err)
	}

	var f File
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "english") {
			continue
		}
		if len(rec) < 2 {
			continue
		}
		item := quiz.Item{English: strings.TrimSpace(rec[0]), Chinese: strings.TrimSpace(rec[1])}
		if len(rec) >= 4 && strings.TrimSpace(rec[2]) != "" {
			item.WordEnglish = strings.TrimSpace(rec[2])
			item.WordChinese = strings.TrimSpace(rec[3])
			f.Questions = append(f.Questions, item)
			continue
		}
		f.Words = append(f.Words, item)
	}

	if len(f.Words) == 0 && len(f.Questions) == 0 {
		return File{}, ErrEmptyDeck
	}
	return f, nil
}
