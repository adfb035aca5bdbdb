package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log"

	"github.com/samber/lo"

	"vocabdrill/internal/deck"
	"vocabdrill/internal/models"
	"vocabdrill/internal/quiz"
	"vocabdrill/internal/repository"
)

// ErrNoLibrary is returned when no library is selected or it no longer exists
var ErrNoLibrary = errors.New("library not found")

// QuizService builds question pools from the library database
type QuizService struct {
	libraryRepo *repository.LibraryRepository
}

// NewQuizService creates a new quiz service
func NewQuizService(libraryRepo *repository.LibraryRepository) *QuizService {
	return &QuizService{libraryRepo: libraryRepo}
}

// Material is what one library offers the quiz pages
type Material struct {
	Library   *models.Library
	Words     []quiz.Item
	Questions []quiz.Item
	// Missing lists words with no example sentence
	Missing []string
}

// Load fetches the words of libraryName and one example sentence per word.
// The sentence picked for a word is stable for a given client.
func (s *QuizService) Load(ctx context.Context, clientID, libraryName string) (*Material, error) {
	if libraryName == "" {
		return nil, ErrNoLibrary
	}
	lib, err := s.libraryRepo.GetLibraryByName(ctx, libraryName)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}
	if lib == nil {
		return nil, ErrNoLibrary
	}

	words, err := s.libraryRepo.ListWords(ctx, lib.ID)
	if err != nil {
		return nil, err
	}

	english := lo.Uniq(lo.Map(words, func(w models.Word, _ int) string { return w.English }))
	sentences, err := s.libraryRepo.ListSentencesForWords(ctx, english)
	if err != nil {
		return nil, err
	}

	m := &Material{
		Library: lib,
		Words: lo.Map(words, func(w models.Word, _ int) quiz.Item {
			return quiz.Item{English: w.English, Chinese: w.Chinese}
		}),
	}
	for _, w := range words {
		candidates := sentences[w.English]
		if len(candidates) == 0 {
			m.Missing = append(m.Missing, w.English)
			continue
		}
		sent := candidates[pickSentence(clientID, w.English, len(candidates))]
		m.Questions = append(m.Questions, quiz.Item{
			English:     sent.English,
			Chinese:     sent.Chinese,
			WordEnglish: sent.WordEnglish,
			WordChinese: sent.WordChinese,
		})
	}

	if len(m.Missing) > 0 {
		log.Printf("Library %q: %d of %d words have no sentence", lib.Name, len(m.Missing), len(words))
	}
	return m, nil
}

// Pool builds the question pool for mode
func (m *Material) Pool(mode quiz.Mode) (*quiz.Pool, error) {
	if mode == quiz.ModeSentence {
		return quiz.BuildPool(mode, m.Questions)
	}
	return quiz.BuildPool(mode, m.Words)
}

// Payload returns the data injected into quiz pages
func (m *Material) Payload(quotes []string, csrfToken string) deck.Payload {
	return deck.Payload{
		Words:            m.Words,
		Questions:        m.Questions,
		Quotes:           quotes,
		CurrentLibrary:   m.Library.Name,
		CSRFToken:        csrfToken,
		MissingSentences: m.Missing,
	}
}

// pickSentence hashes client and word so a reload keeps the same sentence
// and the persisted indices stay meaningful
func pickSentence(clientID, word string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(clientID))
	h.Write([]byte{0})
	h.Write([]byte(word))
	return int(h.Sum32() % uint32(n))
}
